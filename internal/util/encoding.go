package util

import (
	"encoding/base64"
	"fmt"
)

// EncodeBase64URL encodes raw bytes using unpadded base64url, the encoding
// vCon containers use for inline dialog and attachment bodies.
func EncodeBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeBase64URL decodes an unpadded base64url body, falling back to the
// padded alphabet for data written by permissive encoders.
func DecodeBase64URL(s string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64url body: %w", err)
	}
	return data, nil
}
