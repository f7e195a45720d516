package vcon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vcon-dev/fake-vcons/internal/util"
)

// Issue is a single validation finding. Path locates the offending field
// (e.g. "dialog[2].type"); an empty path means the container as a whole.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validate checks the container against the format rules and returns all
// findings. A nil result means the container is valid.
//
// Checks cover required top-level fields, the version pin, timestamp
// formats, party identifier rules, dialog type/start/parties requirements,
// mutual exclusion of redacted/appended/group, and that every index
// reference lands inside the list it points into.
func (v *Vcon) Validate() []Issue {
	var issues []Issue
	add := func(path, format string, args ...any) {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if v.Vcon == "" {
		add("vcon", "missing required field")
	} else if v.Vcon != Version {
		add("vcon", "invalid version %q, expected %q", v.Vcon, Version)
	}

	if v.UUID == "" {
		add("uuid", "missing required field")
	} else if err := uuid.Validate(v.UUID); err != nil {
		add("uuid", "invalid uuid %q", v.UUID)
	}

	if v.CreatedAt == "" {
		add("created_at", "missing required field")
	} else if _, err := util.ParseTimestamp(v.CreatedAt); err != nil {
		add("created_at", "invalid timestamp %q", v.CreatedAt)
	}
	if v.UpdatedAt != "" {
		if _, err := util.ParseTimestamp(v.UpdatedAt); err != nil {
			add("updated_at", "invalid timestamp %q", v.UpdatedAt)
		}
	}

	exclusive := 0
	if v.Redacted != nil {
		exclusive++
	}
	if v.Appended != nil {
		exclusive++
	}
	if v.Group != nil {
		exclusive++
	}
	if exclusive > 1 {
		add("", "redacted, appended and group are mutually exclusive")
	}

	for i, p := range v.Parties {
		issues = append(issues, validateParty(p, i)...)
	}
	for i, d := range v.Dialog {
		issues = append(issues, validateDialog(d, i, len(v.Parties))...)
	}
	for i, a := range v.Analysis {
		issues = append(issues, validateAnalysis(a, i, len(v.Dialog))...)
	}
	for i, a := range v.Attachments {
		issues = append(issues, validateAttachment(a, i, len(v.Parties))...)
	}
	return issues
}

// Valid reports whether Validate finds no issues.
func (v *Vcon) Valid() bool { return len(v.Validate()) == 0 }

func validateParty(p Party, index int) []Issue {
	var issues []Issue
	path := fmt.Sprintf("parties[%d]", index)
	if p.Tel == "" && p.Mailto == "" && p.Name == "" {
		issues = append(issues, Issue{Path: path, Message: "must have at least one identifier (tel, mailto or name)"})
	}
	if p.Tel != "" && !strings.HasPrefix(p.Tel, "+") {
		issues = append(issues, Issue{Path: path + ".tel", Message: "must start with '+'"})
	}
	if p.Mailto != "" && !strings.Contains(p.Mailto, "@") {
		issues = append(issues, Issue{Path: path + ".mailto", Message: fmt.Sprintf("invalid mailto %q", p.Mailto)})
	}
	return issues
}

func validateDialog(d Dialog, index, partyCount int) []Issue {
	var issues []Issue
	path := fmt.Sprintf("dialog[%d]", index)
	if d.Type == "" {
		issues = append(issues, Issue{Path: path + ".type", Message: "missing required field"})
	} else if !slices.Contains(DialogTypes, d.Type) {
		issues = append(issues, Issue{Path: path + ".type", Message: fmt.Sprintf("invalid type %q, must be one of %v", d.Type, DialogTypes)})
	}
	if d.Start == "" {
		issues = append(issues, Issue{Path: path + ".start", Message: "missing required field"})
	} else if _, err := util.ParseTimestamp(d.Start); err != nil {
		issues = append(issues, Issue{Path: path + ".start", Message: fmt.Sprintf("invalid timestamp %q", d.Start)})
	}
	if d.Duration < 0 {
		issues = append(issues, Issue{Path: path + ".duration", Message: "must not be negative"})
	}
	if d.Parties.IsZero() {
		issues = append(issues, Issue{Path: path + ".parties", Message: "missing required field"})
	} else {
		for _, idx := range d.Parties.Values() {
			if idx < 0 || idx >= partyCount {
				issues = append(issues, Issue{Path: path + ".parties", Message: fmt.Sprintf("party index %d out of range [0,%d)", idx, partyCount)})
			}
		}
	}
	return issues
}

func validateAnalysis(a Analysis, index, dialogCount int) []Issue {
	var issues []Issue
	path := fmt.Sprintf("analysis[%d]", index)
	if a.Type == "" {
		issues = append(issues, Issue{Path: path + ".type", Message: "missing required field"})
	}
	for _, idx := range a.Dialog.Values() {
		if idx < 0 || idx >= dialogCount {
			issues = append(issues, Issue{Path: path + ".dialog", Message: fmt.Sprintf("dialog index %d out of range [0,%d)", idx, dialogCount)})
		}
	}
	return issues
}

func validateAttachment(a Attachment, index, partyCount int) []Issue {
	var issues []Issue
	path := fmt.Sprintf("attachments[%d]", index)
	if a.Start != "" {
		if _, err := util.ParseTimestamp(a.Start); err != nil {
			issues = append(issues, Issue{Path: path + ".start", Message: fmt.Sprintf("invalid timestamp %q", a.Start)})
		}
	}
	if a.Party != nil && (*a.Party < 0 || *a.Party >= partyCount) {
		issues = append(issues, Issue{Path: path + ".party", Message: fmt.Sprintf("party index %d out of range [0,%d)", *a.Party, partyCount)})
	}
	return issues
}
