package vcon

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vcon-dev/fake-vcons/internal/util"
)

// Version is the container format version this package reads and writes.
const Version = "0.0.1"

// Vcon is the top-level conversation container. Parties, dialog, analysis
// and attachments are ordered lists; cross-references between them are by
// index, so reordering any list invalidates the container.
//
// Contract:
//   - Add* mutators append, return the new element's index and bump
//     UpdatedAt
//   - Encode/Decode round-trip preserves field values and list order
//   - Clone performs deep copies for safe divergence
//
// A Vcon is not safe for concurrent mutation; stores copy on save/get.
type Vcon struct {
	Vcon        string       `json:"vcon"`
	UUID        string       `json:"uuid"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
	Subject     string       `json:"subject,omitempty"`
	Redacted    *DocRef      `json:"redacted,omitempty"`
	Appended    *DocRef      `json:"appended,omitempty"`
	Group       []GroupRef   `json:"group,omitempty"`
	Parties     []Party      `json:"parties,omitempty"`
	Dialog      []Dialog     `json:"dialog,omitempty"`
	Analysis    []Analysis   `json:"analysis,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// New creates an empty container with a fresh UUID and UTC creation
// timestamps at the current format version.
func New() *Vcon {
	now := util.NowTimestamp()
	return &Vcon{
		Vcon:      Version,
		UUID:      uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the UpdatedAt timestamp.
func (v *Vcon) Touch() {
	v.UpdatedAt = util.NowTimestamp()
}

// AddParty appends a party and returns its index for use in dialog and
// attachment references.
func (v *Vcon) AddParty(p Party) int {
	v.Parties = append(v.Parties, p)
	v.Touch()
	return len(v.Parties) - 1
}

// AddDialog appends a dialog entry and returns its index.
func (v *Vcon) AddDialog(d Dialog) int {
	v.Dialog = append(v.Dialog, d)
	v.Touch()
	return len(v.Dialog) - 1
}

// AddAnalysis appends an analysis record and returns its index.
func (v *Vcon) AddAnalysis(a Analysis) int {
	v.Analysis = append(v.Analysis, a)
	v.Touch()
	return len(v.Analysis) - 1
}

// AddAttachment appends an attachment and returns its index.
func (v *Vcon) AddAttachment(a Attachment) int {
	v.Attachments = append(v.Attachments, a)
	v.Touch()
	return len(v.Attachments) - 1
}

// Clone returns a deep copy of the container safe for independent mutation.
func (v *Vcon) Clone() *Vcon {
	clone := *v
	if v.Redacted != nil {
		ref := *v.Redacted
		clone.Redacted = &ref
	}
	if v.Appended != nil {
		ref := *v.Appended
		clone.Appended = &ref
	}
	clone.Group = append([]GroupRef(nil), v.Group...)
	clone.Parties = append([]Party(nil), v.Parties...)
	clone.Dialog = make([]Dialog, len(v.Dialog))
	for i, d := range v.Dialog {
		d.Parties = Indices{values: d.Parties.Values(), scalar: d.Parties.scalar, present: d.Parties.present}
		clone.Dialog[i] = d
	}
	clone.Analysis = make([]Analysis, len(v.Analysis))
	for i, a := range v.Analysis {
		a.Dialog = Indices{values: a.Dialog.Values(), scalar: a.Dialog.scalar, present: a.Dialog.present}
		clone.Analysis[i] = a
	}
	clone.Attachments = make([]Attachment, len(v.Attachments))
	for i, a := range v.Attachments {
		if a.Party != nil {
			idx := *a.Party
			a.Party = &idx
		}
		clone.Attachments[i] = a
	}
	return &clone
}

// Decode parses a bare (unsigned) container from JSON. Signed or encrypted
// envelopes must be unwrapped via the envelope package first.
func Decode(data []byte) (*Vcon, error) {
	switch DetectForm(data) {
	case FormSigned:
		return nil, fmt.Errorf("container is signed; verify the envelope first")
	case FormEncrypted:
		return nil, fmt.Errorf("container is encrypted; decrypt the envelope first")
	}
	var v Vcon
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode vcon: %w", err)
	}
	return &v, nil
}

// Encode serializes the container as compact JSON.
func (v *Vcon) Encode() ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode vcon: %w", err)
	}
	return data, nil
}

// EncodeIndent serializes the container as two-space indented JSON, the
// layout used for files on disk.
func (v *Vcon) EncodeIndent() ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode vcon: %w", err)
	}
	return data, nil
}
