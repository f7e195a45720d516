// Package envelope implements the signed and encrypted container forms.
// A bare container can be wrapped in a JWS JSON serialization (integrity and
// authenticity) or a JWE JSON serialization (confidentiality); this package
// produces and unwraps both envelopes using RSA keys with the algorithms the
// format registers (RS256 for signing, RSA-OAEP with A256GCM for encryption).
package envelope
