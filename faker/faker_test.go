package faker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcon-dev/fake-vcons/internal/util"
	"github.com/vcon-dev/fake-vcons/vcon"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestGenerateProducesValidContainer(t *testing.T) {
	f := New(func(o *Options) { o.Now = fixedClock() })

	v, err := f.Generate(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.Empty(t, v.Validate())
	assert.Equal(t, vcon.Version, v.Vcon)
	assert.NotEmpty(t, v.Subject)
	assert.Len(t, v.Parties, 2)
	assert.NotEmpty(t, v.Dialog)
	require.Len(t, v.Analysis, 1)
	assert.Equal(t, "transcript", v.Analysis[0].Type)
	assert.Equal(t, Vendor, v.Analysis[0].Vendor)
	assert.Equal(t, len(v.Dialog), v.Analysis[0].Dialog.Len())
	require.Len(t, v.Attachments, 1)
	assert.Equal(t, "script.json", v.Attachments[0].Filename)
}

func TestGenerateDialogBodiesDecode(t *testing.T) {
	f := New(func(o *Options) { o.Now = fixedClock() })

	v, err := f.Generate(context.Background(), Prompt{Topic: "billing"})
	require.NoError(t, err)
	assert.Contains(t, v.Subject, "Billing")
	for _, d := range v.Dialog {
		assert.Equal(t, vcon.EncodingBase64URL, d.Encoding)
		body, err := util.DecodeBase64URL(d.Body)
		require.NoError(t, err)
		assert.NotEmpty(t, body)
		assert.Positive(t, d.Duration)
	}
}

func TestGenerateTurnTimeline(t *testing.T) {
	f := New(func(o *Options) {
		o.Now = fixedClock()
		o.TurnGap = time.Minute
	})

	v, err := f.Generate(context.Background(), Prompt{})
	require.NoError(t, err)
	var prev time.Time
	for i, d := range v.Dialog {
		start, err := util.ParseTimestamp(d.Start)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, time.Minute, start.Sub(prev))
		}
		prev = start
	}
}

type failingBackend struct{}

func (failingBackend) GenerateScript(context.Context, Prompt) (*Script, error) {
	return nil, fmt.Errorf("backend unavailable")
}

type badScriptBackend struct{}

func (badScriptBackend) GenerateScript(context.Context, Prompt) (*Script, error) {
	return &Script{Subject: "broken", Parties: []ScriptParty{{Name: "Solo"}}, Turns: []Turn{{Party: 4, Message: "hi"}}}, nil
}

func TestGenerateBackendErrors(t *testing.T) {
	f := New(func(o *Options) { o.Backend = failingBackend{} })
	_, err := f.Generate(context.Background(), Prompt{})
	assert.ErrorContains(t, err, "backend unavailable")

	f = New(func(o *Options) { o.Backend = badScriptBackend{} })
	_, err = f.Generate(context.Background(), Prompt{})
	assert.ErrorContains(t, err, "invalid script")
}

func TestSynthesizedIdentifiers(t *testing.T) {
	backend := scriptBackend{script: &Script{
		Subject: "identifiers",
		Parties: []ScriptParty{{Name: "No Contact Info", Role: "customer"}},
		Turns:   []Turn{{Party: 0, Message: "hello there"}},
	}}
	f := New(func(o *Options) {
		o.Backend = backend
		o.Now = fixedClock()
	})
	v, err := f.Generate(context.Background(), Prompt{})
	require.NoError(t, err)
	p := v.Parties[0]
	assert.Equal(t, "+14155550100", p.Tel)
	assert.Equal(t, "no.contact.info@example.com", p.Mailto)
	assert.Empty(t, v.Validate())
}

type scriptBackend struct{ script *Script }

func (b scriptBackend) GenerateScript(context.Context, Prompt) (*Script, error) {
	return b.script, nil
}

func TestStaticBackendRoundRobin(t *testing.T) {
	b := NewStaticBackend()
	seen := map[string]bool{}
	for range 3 {
		s, err := b.GenerateScript(context.Background(), Prompt{})
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		seen[s.Subject] = true
	}
	assert.Len(t, seen, 3)
}

func TestStaticBackendTopicMatch(t *testing.T) {
	b := NewStaticBackend()
	s, err := b.GenerateScript(context.Background(), Prompt{Topic: "package"})
	require.NoError(t, err)
	assert.Contains(t, s.Subject, "Package")
}
