package domain

import "strings"

// PartKind classifies a node of a message's document tree.
type PartKind string

const (
	// PartMultipart is a container node with ordered children.
	PartMultipart PartKind = "multipart"
	// PartText is a text/plain or text/html body leaf.
	PartText PartKind = "text"
	// PartAttachment is a binary leaf carrying attachment metadata.
	PartAttachment PartKind = "attachment"
	// PartIgnored is any other content kind. Silently dropped by the parser.
	PartIgnored PartKind = "ignored"
)

// attachmentPrefixes are the MIME type families treated as attachments.
var attachmentPrefixes = []string{
	"image/", "audio/", "video/", "application/", "font/", "model/",
}

// ClassifyPart maps a MIME type to its part kind. This is the single place
// the classification rule lives; decoders must not re-derive it.
func ClassifyPart(mimeType string) PartKind {
	switch {
	case strings.HasPrefix(mimeType, "multipart/"):
		return PartMultipart
	case mimeType == "text/plain" || mimeType == "text/html":
		return PartText
	}
	for _, prefix := range attachmentPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			return PartAttachment
		}
	}
	return PartIgnored
}

// Part is one node of the recursive document tree. Exactly the fields for
// its kind are populated: Children for multipart, Body for text, the
// attachment fields for attachment.
type Part struct {
	Kind     PartKind
	MimeType string

	// Children holds the ordered sub-parts of a multipart node.
	Children []Part

	// Body is the decoded text of a text leaf.
	Body []byte

	// Attachment metadata.
	Filename     string
	AttachmentID string
	Size         int64
}

// Header is a single message header, name matched case-sensitively.
type Header struct {
	Name  string
	Value string
}

// ResolvedMessage is the full fetched representation of a message referenced
// by a history entry. Deleted or unknown messages come back as a NotFound
// stub with no labels, headers or document tree.
type ResolvedMessage struct {
	ID       string
	LabelIDs []string
	Headers  []Header
	// Root is the document tree, nil for deleted/not-found messages.
	Root *Part
	// NotFound marks a message the provider no longer has.
	NotFound bool
}

// Header returns the value of the first header with the given name.
// Matching is exact and case-sensitive.
func (m *ResolvedMessage) Header(name string) (string, bool) {
	for _, h := range m.Headers {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// Address is a parsed mail address. When the header has no display name,
// Name falls back to the address; when the header cannot be parsed at all,
// both fields echo the raw header string.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Attachment is attachment metadata extracted from the document tree.
// Data stays nil until an explicit attachment fetch fills it.
type Attachment struct {
	MimeType     string `json:"mimeType"`
	Filename     string `json:"filename"`
	AttachmentID string `json:"attachmentId"`
	Size         int64  `json:"size"`
	Data         []byte `json:"data,omitempty"`
}

// Message is the output unit of a fetch: a resolved record plus the fields
// derived from its headers and document tree. Header-derived fields are only
// populated when the corresponding header exists.
type Message struct {
	ID         string      `json:"id"`
	ChangeKind HistoryKind `json:"changeKind"`
	LabelIDs   []string    `json:"labelIds,omitempty"`

	From    *Address  `json:"from,omitempty"`
	To      []Address `json:"to,omitempty"`
	Cc      []Address `json:"cc,omitempty"`
	Bcc     []Address `json:"bcc,omitempty"`
	Subject string    `json:"subject,omitempty"`
	Date    string    `json:"date,omitempty"`

	BodyText string `json:"bodyText,omitempty"`
	BodyHTML string `json:"bodyHtml,omitempty"`

	Attachments []Attachment `json:"attachments"`

	// NotFound marks a stub for a message the provider no longer has.
	// Stubs carry no content fields.
	NotFound bool `json:"notFound,omitempty"`
}
