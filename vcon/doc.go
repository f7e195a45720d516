// Package vcon provides the foundational domain types and operations for
// vCon ("virtual conversation") containers. It defines:
//
//   - Vcon (the top-level conversation container with ordered parties,
//     dialog, analysis and attachment lists)
//   - Party / Dialog / Analysis / Attachment element records
//   - JSON encoding / decoding preserving list order
//   - Validation of required fields, enum values, timestamps and
//     cross-list index references
//   - Form detection (unsigned, signed, encrypted)
//
// The package intentionally keeps implementation concerns (persistence,
// envelope cryptography, generation) out of scope; those live in the store,
// envelope and faker packages which build on the types defined here.
package vcon
