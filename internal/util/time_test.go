package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2024-09-05T21:22:52+00:00", true, time.Date(2024, 9, 5, 21, 22, 52, 0, time.UTC)},
		{"2024-09-05T21:22:52.749585+00:00", true, time.Date(2024, 9, 5, 21, 22, 52, 749585000, time.UTC)},
		{"2024-09-05T21:22:52Z", true, time.Date(2024, 9, 5, 21, 22, 52, 0, time.UTC)},
		{"2024-09-05 21:22:52", true, time.Date(2024, 9, 5, 21, 22, 52, 0, time.UTC)},
		{"2024-09-05T21:22:52+00+00:00", false, time.Time{}},
		{"not-a-date", false, time.Time{}},
		{"", false, time.Time{}},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.True(t, got.Equal(tc.want), "%s: got %v", tc.in, got)
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	now := time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)
	s := FormatTimestamp(now)
	parsed, err := ParseTimestamp(s)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(now))
}

func TestBase64URLRoundTrip(t *testing.T) {
	body := []byte("Hello, thanks for calling support. How can I help?")
	encoded := EncodeBase64URL(body)
	decoded, err := DecodeBase64URL(encoded)
	assert.NoError(t, err)
	assert.Equal(t, body, decoded)

	// Padded input from permissive encoders still decodes.
	padded := "aGVsbG8="
	decoded, err = DecodeBase64URL(padded)
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)

	_, err = DecodeBase64URL("!!!")
	assert.Error(t, err)
}
