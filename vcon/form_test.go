package vcon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectForm(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Form
	}{
		{"unsigned", `{"vcon":"0.0.1","uuid":"x","created_at":"2024-11-08T12:00:00Z"}`, FormUnsigned},
		{"signed general", `{"payload":"eyJ2Y29uIjoiMC4wLjEifQ","signatures":[{"protected":"e30","signature":"sig"}]}`, FormSigned},
		{"signed flattened", `{"payload":"eyJ2Y29uIjoiMC4wLjEifQ","protected":"e30","signature":"sig"}`, FormSigned},
		{"encrypted", `{"protected":"e30","recipients":[],"iv":"aXY","ciphertext":"Y3Q","tag":"dGFn"}`, FormEncrypted},
		{"unrelated object", `{"hello":"world"}`, FormUnknown},
		{"array", `[1,2,3]`, FormUnknown},
		{"invalid json", `{`, FormUnknown},
		{"empty", ``, FormUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectForm([]byte(tc.in)))
		})
	}
}

func TestFormString(t *testing.T) {
	assert.Equal(t, "unsigned", FormUnsigned.String())
	assert.Equal(t, "signed", FormSigned.String())
	assert.Equal(t, "encrypted", FormEncrypted.String())
	assert.Equal(t, "unknown", FormUnknown.String())
}

func TestIsCandidate(t *testing.T) {
	assert.True(t, IsCandidate([]byte(`{"vcon":"0.0.1"}`)))
	assert.False(t, IsCandidate([]byte(`{"not":"vcon"}`)))
	assert.False(t, IsCandidate([]byte(`not json`)))
}
