package gmail

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/mailwatch-cli/internal/core/domain"
)

// historyEntries flattens Gmail history records into domain entries. A
// record can carry several change kinds at once; the first populated slot
// in priority order wins, matching how Gmail partitions each record in
// practice. Records with no recognised slot fall back to the bare message
// list with an empty kind.
func historyEntries(records []*gmail.History) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(records))
	for _, h := range records {
		switch {
		case len(h.MessagesAdded) > 0:
			entry := domain.HistoryEntry{Kind: domain.HistoryMessageAdded}
			for _, ma := range h.MessagesAdded {
				if ma.Message != nil {
					entry.MessageIDs = append(entry.MessageIDs, ma.Message.Id)
				}
			}
			entries = append(entries, entry)

		case len(h.MessagesDeleted) > 0:
			entry := domain.HistoryEntry{Kind: domain.HistoryMessageDeleted}
			for _, md := range h.MessagesDeleted {
				if md.Message != nil {
					entry.MessageIDs = append(entry.MessageIDs, md.Message.Id)
				}
			}
			entries = append(entries, entry)

		case len(h.LabelsAdded) > 0:
			entry := domain.HistoryEntry{Kind: domain.HistoryLabelAdded}
			for _, la := range h.LabelsAdded {
				if la.Message != nil {
					entry.MessageIDs = append(entry.MessageIDs, la.Message.Id)
				}
				entry.DeltaLabels = appendUnique(entry.DeltaLabels, la.LabelIds)
			}
			entries = append(entries, entry)

		case len(h.LabelsRemoved) > 0:
			entry := domain.HistoryEntry{Kind: domain.HistoryLabelRemoved}
			for _, lr := range h.LabelsRemoved {
				if lr.Message != nil {
					entry.MessageIDs = append(entry.MessageIDs, lr.Message.Id)
				}
				entry.DeltaLabels = appendUnique(entry.DeltaLabels, lr.LabelIds)
			}
			entries = append(entries, entry)

		default:
			entry := domain.HistoryEntry{}
			for _, msg := range h.Messages {
				entry.MessageIDs = append(entry.MessageIDs, msg.Id)
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func appendUnique(dst []string, src []string) []string {
	for _, s := range src {
		seen := false
		for _, d := range dst {
			if d == s {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}

// resolvedMessage maps a full-format Gmail message into the domain shape.
func resolvedMessage(msg *gmail.Message) *domain.ResolvedMessage {
	resolved := &domain.ResolvedMessage{
		ID:       msg.Id,
		LabelIDs: msg.LabelIds,
	}
	if msg.Payload == nil {
		return resolved
	}

	for _, h := range msg.Payload.Headers {
		resolved.Headers = append(resolved.Headers, domain.Header{Name: h.Name, Value: h.Value})
	}
	root := partTree(msg.Payload)
	resolved.Root = &root
	return resolved
}

// partTree converts one MIME part and its children. Body data arrives
// base64url-encoded; a part whose body fails to decode keeps its place in
// the tree with empty content rather than poisoning the whole message.
func partTree(p *gmail.MessagePart) domain.Part {
	part := domain.Part{
		Kind:     domain.ClassifyPart(p.MimeType),
		MimeType: p.MimeType,
		Filename: p.Filename,
	}

	if p.Body != nil {
		part.AttachmentID = p.Body.AttachmentId
		part.Size = p.Body.Size
		if p.Body.Data != "" {
			if data, err := base64.URLEncoding.DecodeString(p.Body.Data); err == nil {
				part.Body = data
			}
		}
	}

	for _, child := range p.Parts {
		part.Children = append(part.Children, partTree(child))
	}
	return part
}
