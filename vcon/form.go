package vcon

import "github.com/tidwall/gjson"

// Form identifies which of the three mutually exclusive container states a
// JSON document is in: unsigned (bare object), signed (JWS envelope) or
// encrypted (JWE envelope).
type Form int

const (
	// FormUnknown means the document is not recognizable as any vCon form.
	FormUnknown Form = iota
	// FormUnsigned is a bare container object with plaintext fields.
	FormUnsigned
	// FormSigned is a JWS general-serialization envelope wrapping the container.
	FormSigned
	// FormEncrypted is a JWE general-serialization envelope wrapping the container.
	FormEncrypted
)

// String returns the lower-case form name.
func (f Form) String() string {
	switch f {
	case FormUnsigned:
		return "unsigned"
	case FormSigned:
		return "signed"
	case FormEncrypted:
		return "encrypted"
	default:
		return "unknown"
	}
}

// DetectForm inspects a JSON document's top-level shape without fully
// decoding it. A signed or encrypted envelope never exposes plaintext
// container fields at the top level, so the envelope keys are checked before
// the bare-object key.
func DetectForm(data []byte) Form {
	if !gjson.ValidBytes(data) {
		return FormUnknown
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return FormUnknown
	}
	if doc.Get("ciphertext").Exists() {
		return FormEncrypted
	}
	// Both the general ("signatures" array) and flattened ("signature")
	// JWS JSON serializations occur in the wild.
	if doc.Get("payload").Exists() && (doc.Get("signatures").Exists() || doc.Get("signature").Exists()) {
		return FormSigned
	}
	if doc.Get("vcon").Exists() {
		return FormUnsigned
	}
	return FormUnknown
}

// IsCandidate reports whether a JSON document looks like a vCon in any of
// the three forms. Used by directory scanners to skip unrelated JSON files.
func IsCandidate(data []byte) bool {
	return DetectForm(data) != FormUnknown
}
