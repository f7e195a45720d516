package faker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ScriptParty describes one participant of a generated conversation.
// Missing tel/mailto identifiers are synthesized during assembly.
type ScriptParty struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Tel    string `json:"tel,omitempty"`
	Mailto string `json:"mailto,omitempty"`
}

// Turn is one text exchange; Party indexes into the script's party list.
type Turn struct {
	Party   int    `json:"party"`
	Message string `json:"message"`
}

// Script is the intermediate conversation shape produced by backends before
// assembly into a container.
type Script struct {
	Subject string        `json:"subject"`
	Parties []ScriptParty `json:"parties"`
	Turns   []Turn        `json:"turns"`
}

// Validate checks that the script is assemblable: at least one named party,
// at least one turn and every turn pointing at a valid party.
func (s *Script) Validate() error {
	if len(s.Parties) == 0 {
		return fmt.Errorf("script has no parties")
	}
	for i, p := range s.Parties {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("script party %d has no name", i)
		}
	}
	if len(s.Turns) == 0 {
		return fmt.Errorf("script has no turns")
	}
	for i, t := range s.Turns {
		if t.Party < 0 || t.Party >= len(s.Parties) {
			return fmt.Errorf("script turn %d references party %d out of range [0,%d)", i, t.Party, len(s.Parties))
		}
		if strings.TrimSpace(t.Message) == "" {
			return fmt.Errorf("script turn %d has an empty message", i)
		}
	}
	return nil
}

// Prompt steers script generation.
type Prompt struct {
	// Topic of the conversation (e.g. "billing dispute"). Backends pick one
	// when empty.
	Topic string
	// Language for the generated dialog. Defaults to English.
	Language string
}

// Backend produces conversation scripts. Implementations must return a
// script that passes Validate.
type Backend interface {
	GenerateScript(ctx context.Context, prompt Prompt) (*Script, error)
}

// ParseScriptJSON decodes a backend's raw model output into a Script. Model
// responses wrapped in markdown code fences are unwrapped first.
func ParseScriptJSON(raw string) (*Script, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	var script Script
	if err := json.Unmarshal([]byte(s), &script); err != nil {
		return nil, fmt.Errorf("parse script json: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("generated script invalid: %w", err)
	}
	return &script, nil
}
