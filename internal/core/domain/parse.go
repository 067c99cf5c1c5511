package domain

import (
	"net/mail"
	"strings"
)

// ParseAddress parses a single raw address header segment. Best effort with
// a two-branch policy: on a successful parse the name defaults to the
// address when no display name is present; on any parse failure the raw
// segment is echoed as both fields rather than surfacing an error.
func ParseAddress(raw string) Address {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return Address{Name: raw, Address: raw}
	}
	name := addr.Name
	if name == "" {
		name = addr.Address
	}
	return Address{Name: name, Address: addr.Address}
}

// ParseAddressList parses a multi-recipient header (To, Cc, Bcc). The header
// is split on ", " and each segment parsed independently, preserving order.
func ParseAddressList(raw string) []Address {
	segments := strings.Split(raw, ", ")
	addresses := make([]Address, 0, len(segments))
	for _, segment := range segments {
		addresses = append(addresses, ParseAddress(segment))
	}
	return addresses
}

// ParseMessage derives the output record from a resolved message and the
// history entry that referenced it. The change kind is the entry's kind;
// deleted and not-found messages return immediately as stubs with no
// header, body or attachment extraction attempted.
func ParseMessage(resolved *ResolvedMessage, entry HistoryEntry) Message {
	msg := Message{
		ID:          resolved.ID,
		ChangeKind:  entry.Kind,
		LabelIDs:    resolved.LabelIDs,
		Attachments: []Attachment{},
		NotFound:    resolved.NotFound,
	}

	if resolved.Root == nil {
		return msg
	}

	if from, ok := resolved.Header("From"); ok {
		addr := ParseAddress(from)
		msg.From = &addr
	}
	if to, ok := resolved.Header("To"); ok {
		msg.To = ParseAddressList(to)
	}
	if cc, ok := resolved.Header("Cc"); ok {
		msg.Cc = ParseAddressList(cc)
	}
	if bcc, ok := resolved.Header("Bcc"); ok {
		msg.Bcc = ParseAddressList(bcc)
	}
	if subject, ok := resolved.Header("Subject"); ok {
		msg.Subject = subject
	}
	if date, ok := resolved.Header("Date"); ok {
		msg.Date = date
	}

	walkPart(resolved.Root, &msg)
	return msg
}

// walkPart walks the document tree depth-first in pre-order. The last
// text/plain and text/html leaves win; attachment metadata is appended in
// traversal order; ignored leaves are dropped.
func walkPart(part *Part, msg *Message) {
	switch part.Kind {
	case PartMultipart:
		for i := range part.Children {
			walkPart(&part.Children[i], msg)
		}
	case PartText:
		if part.MimeType == "text/html" {
			msg.BodyHTML = string(part.Body)
		} else {
			msg.BodyText = string(part.Body)
		}
	case PartAttachment:
		msg.Attachments = append(msg.Attachments, Attachment{
			MimeType:     part.MimeType,
			Filename:     part.Filename,
			AttachmentID: part.AttachmentID,
			Size:         part.Size,
		})
	case PartIgnored:
		// dropped
	}
}
