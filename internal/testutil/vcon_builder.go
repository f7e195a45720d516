package testutil

import (
	"github.com/vcon-dev/fake-vcons/internal/util"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// VconBuilder helps construct containers with fluent chaining for tests.
// Example:
//
//	v := NewVconBuilder().Subject("billing").Agent("Ana", "+14155550101").TextTurn(0, "hello").Build()
type VconBuilder struct {
	subject string
	parties []vcon.Party
	dialog  []vcon.Dialog
	start   string
}

// NewVconBuilder creates a new builder with a fixed start timestamp so
// generated containers are reproducible.
func NewVconBuilder() *VconBuilder {
	return &VconBuilder{start: "2024-11-08T12:00:00Z"}
}

// Subject sets the container subject (chainable).
func (b *VconBuilder) Subject(s string) *VconBuilder {
	b.subject = s
	return b
}

// Agent appends an agent party with phone identifier (chainable).
func (b *VconBuilder) Agent(name, tel string) *VconBuilder {
	b.parties = append(b.parties, vcon.Party{Name: name, Tel: tel, Role: "agent"})
	return b
}

// Customer appends a customer party with email identifier (chainable).
func (b *VconBuilder) Customer(name, mailto string) *VconBuilder {
	b.parties = append(b.parties, vcon.Party{Name: name, Mailto: mailto, Role: "customer"})
	return b
}

// Party appends an arbitrary party (chainable).
func (b *VconBuilder) Party(p vcon.Party) *VconBuilder {
	b.parties = append(b.parties, p)
	return b
}

// TextTurn appends a text dialog turn spoken by the given party index (chainable).
func (b *VconBuilder) TextTurn(party int, message string) *VconBuilder {
	b.dialog = append(b.dialog, vcon.Dialog{
		Type:     vcon.DialogText,
		Start:    b.start,
		Parties:  vcon.NewIndex(party),
		Mimetype: "text/plain",
		Body:     util.EncodeBase64URL([]byte(message)),
		Encoding: vcon.EncodingBase64URL,
	})
	return b
}

// Build returns the assembled *vcon.Vcon.
func (b *VconBuilder) Build() *vcon.Vcon {
	v := vcon.New()
	v.Subject = b.subject
	for _, p := range b.parties {
		v.AddParty(p)
	}
	for _, d := range b.dialog {
		v.AddDialog(d)
	}
	return v
}
