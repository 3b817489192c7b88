package model

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
)

// Attachment is a file attached to a sales document: a filename plus its
// content in canonical base64 (standard alphabet, padded, no whitespace).
// Both invariants are enforced at construction, so a held Attachment is
// always well-formed.
type Attachment struct {
	filename      string
	contentBase64 string
}

// NewAttachment builds an attachment from already-encoded content. The
// content must survive a decode/re-encode round trip unchanged.
func NewAttachment(filename, contentBase64 string) (Attachment, error) {
	if filename == "" {
		return Attachment{}, NewStructuralError("filename", nil, "is required", nil)
	}
	if contentBase64 == "" || !isCanonicalBase64(contentBase64) {
		return Attachment{}, NewStructuralError("content_base64", contentBase64, "must be non-empty canonical base64", nil)
	}
	return Attachment{filename: filename, contentBase64: contentBase64}, nil
}

// AttachmentFromBinary builds an attachment from raw bytes.
func AttachmentFromBinary(filename string, content []byte) (Attachment, error) {
	return NewAttachment(filename, base64.StdEncoding.EncodeToString(content))
}

// AttachmentFromFile builds an attachment by reading path; the attachment
// filename is the path's base name.
func AttachmentFromFile(path string) (Attachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, NewStructuralError("filename", path, "cannot read file", err)
	}
	return AttachmentFromBinary(filepath.Base(path), content)
}

// Filename returns the attachment filename.
func (a Attachment) Filename() string { return a.filename }

// ContentBase64 returns the encoded content.
func (a Attachment) ContentBase64() string { return a.contentBase64 }

// Content decodes the attachment back to raw bytes.
func (a Attachment) Content() ([]byte, error) {
	return base64.StdEncoding.Strict().DecodeString(a.contentBase64)
}

type attachmentJSON struct {
	Filename      string `json:"filename"`
	ContentBase64 string `json:"content_base64"`
}

func (a Attachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(attachmentJSON{Filename: a.filename, ContentBase64: a.contentBase64})
}

func (a *Attachment) UnmarshalJSON(data []byte) error {
	var in attachmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	att, err := NewAttachment(in.Filename, in.ContentBase64)
	if err != nil {
		return err
	}
	*a = att
	return nil
}

// isCanonicalBase64 checks that s decodes strictly and re-encodes to itself.
func isCanonicalBase64(s string) bool {
	decoded, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(decoded) == s
}
