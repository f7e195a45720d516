package vcon

import (
	"encoding/json"
	"fmt"
)

// Dialog type tags accepted by the format.
const (
	DialogRecording  = "recording"
	DialogText       = "text"
	DialogTransfer   = "transfer"
	DialogIncomplete = "incomplete"
)

// DialogTypes enumerates the valid dialog type tags in a stable order.
var DialogTypes = []string{DialogRecording, DialogText, DialogTransfer, DialogIncomplete}

// Body encodings commonly used for inline content.
const (
	EncodingBase64URL = "base64url"
	EncodingJSON      = "json"
	EncodingNone      = "none"
)

// Party describes a conversation participant. All fields are optional; a
// valid party carries at least one identifier (tel, mailto or name).
type Party struct {
	Tel    string `json:"tel,omitempty"`
	Mailto string `json:"mailto,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	UUID   string `json:"uuid,omitempty"`
}

// Dialog is one recorded span or text turn of the conversation. Content is
// carried inline in Body (encoded per Encoding) or externally via URL.
type Dialog struct {
	Type     string  `json:"type"`
	Start    string  `json:"start"`
	Duration float64 `json:"duration,omitempty"`
	Parties  Indices `json:"parties,omitzero"`
	Mimetype string  `json:"mimetype,omitempty"`
	Filename string  `json:"filename,omitempty"`
	Body     string  `json:"body,omitempty"`
	URL      string  `json:"url,omitempty"`
	Encoding string  `json:"encoding,omitempty"`
}

// Analysis is a derived insight (transcript, sentiment, summary, ...)
// attached to one or more dialog entries by index.
type Analysis struct {
	Type     string  `json:"type"`
	Dialog   Indices `json:"dialog,omitzero"`
	Vendor   string  `json:"vendor,omitempty"`
	Mimetype string  `json:"mimetype,omitempty"`
	Body     string  `json:"body,omitempty"`
	Encoding string  `json:"encoding,omitempty"`
}

// Attachment is a supplemental file contributed by a party.
type Attachment struct {
	Start    string `json:"start,omitempty"`
	Party    *int   `json:"party,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`
	Filename string `json:"filename,omitempty"`
	Body     string `json:"body,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// DocRef references another container document, used by the redacted
// (less-redacted prior version) and appended (supplementary data) links.
type DocRef struct {
	UUID        string `json:"uuid,omitempty"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"`
	Body        string `json:"body,omitempty"`
	Encoding    string `json:"encoding,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
}

// GroupRef references a container aggregated by a group-form vCon.
type GroupRef struct {
	UUID     string `json:"uuid,omitempty"`
	URL      string `json:"url,omitempty"`
	Body     string `json:"body,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// Indices is a list of cross-references into a sibling list (party or dialog
// indexes). The wire form is either a single JSON number or an array of
// numbers; both decode into Indices and the original shape is preserved on
// re-encode so round-trips stay faithful.
type Indices struct {
	values  []int
	scalar  bool
	present bool
}

// NewIndices builds an Indices value from explicit index values.
func NewIndices(values ...int) Indices {
	return Indices{values: append([]int(nil), values...), present: true}
}

// NewIndex builds a single scalar index reference.
func NewIndex(value int) Indices {
	return Indices{values: []int{value}, scalar: true, present: true}
}

// Values returns a copy of the referenced indexes.
func (ix Indices) Values() []int {
	return append([]int(nil), ix.values...)
}

// Len returns the number of referenced indexes.
func (ix Indices) Len() int { return len(ix.values) }

// IsZero reports whether the field was absent from the wire form. Used by
// the encoder (omitzero) to drop absent references on re-encode.
func (ix Indices) IsZero() bool { return !ix.present }

// UnmarshalJSON accepts a single integer or an array of integers.
func (ix *Indices) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*ix = Indices{values: []int{single}, scalar: true, present: true}
		return nil
	}
	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("index reference must be an integer or integer array")
	}
	*ix = Indices{values: list, present: true}
	return nil
}

// MarshalJSON preserves the decoded shape: scalar references re-encode as a
// bare number, everything else as an array.
func (ix Indices) MarshalJSON() ([]byte, error) {
	if ix.scalar && len(ix.values) == 1 {
		return json.Marshal(ix.values[0])
	}
	if ix.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(ix.values)
}
