package faker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vcon-dev/fake-vcons/internal/util"
	"github.com/vcon-dev/fake-vcons/logging"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// Vendor is recorded on analysis entries produced by the faker.
const Vendor = "fake-vcons"

// wordsPerSecond approximates speech pace for synthesized dialog durations.
const wordsPerSecond = 2.5

// Options configure the Faker.
type Options struct {
	// Backend produces conversation scripts. Defaults to StaticBackend.
	Backend Backend
	// TurnGap is the simulated wall-clock spacing between dialog turns.
	TurnGap time.Duration
	// Now overrides the clock for deterministic output in tests.
	Now func() time.Time
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Faker assembles complete vCon containers from generated scripts.
type Faker struct {
	opts Options
}

// New creates a Faker with optional overrides. Any unset option falls back
// to an offline-safe default.
func New(optFns ...func(o *Options)) *Faker {
	opts := Options{
		Backend: NewStaticBackend(),
		TurnGap: 15 * time.Second,
		Now:     time.Now,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Faker{opts: opts}
}

// Generate produces one complete, valid container: a script from the
// backend turned into parties, dialog, a transcript analysis and a script
// attachment. Generation fails if the backend script or the assembled
// container does not validate.
func (f *Faker) Generate(ctx context.Context, prompt Prompt) (*vcon.Vcon, error) {
	script, err := f.opts.Backend.GenerateScript(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("backend returned invalid script: %w", err)
	}

	v := f.assemble(script)
	if issues := v.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("assembled container invalid: %s", issues[0])
	}
	f.opts.Logger.Debug("generated vcon", "uuid", v.UUID, "subject", v.Subject, "turns", len(script.Turns))
	return v, nil
}

// assemble builds the container from a validated script.
func (f *Faker) assemble(script *Script) *vcon.Vcon {
	v := vcon.New()
	v.Subject = script.Subject

	start := f.opts.Now().UTC().Add(-time.Duration(len(script.Turns)) * f.opts.TurnGap)
	v.CreatedAt = util.FormatTimestamp(start)
	v.UpdatedAt = v.CreatedAt

	for i, sp := range script.Parties {
		v.AddParty(vcon.Party{
			Name:   sp.Name,
			Role:   sp.Role,
			Tel:    synthesizeTel(sp, i),
			Mailto: synthesizeMailto(sp),
		})
	}

	var transcript strings.Builder
	dialogIdx := make([]int, 0, len(script.Turns))
	for i, turn := range script.Turns {
		turnStart := start.Add(time.Duration(i) * f.opts.TurnGap)
		idx := v.AddDialog(vcon.Dialog{
			Type:     vcon.DialogText,
			Start:    util.FormatTimestamp(turnStart),
			Duration: turnDuration(turn.Message),
			Parties:  vcon.NewIndex(turn.Party),
			Mimetype: "text/plain",
			Body:     util.EncodeBase64URL([]byte(turn.Message)),
			Encoding: vcon.EncodingBase64URL,
		})
		dialogIdx = append(dialogIdx, idx)
		fmt.Fprintf(&transcript, "%s: %s\n", script.Parties[turn.Party].Name, turn.Message)
	}

	v.AddAnalysis(vcon.Analysis{
		Type:     "transcript",
		Dialog:   vcon.NewIndices(dialogIdx...),
		Vendor:   Vendor,
		Mimetype: "text/plain",
		Body:     transcript.String(),
		Encoding: vcon.EncodingNone,
	})

	if scriptJSON, err := json.Marshal(script); err == nil {
		party := 0
		v.AddAttachment(vcon.Attachment{
			Start:    v.CreatedAt,
			Party:    &party,
			Mimetype: "application/json",
			Filename: "script.json",
			Body:     util.EncodeBase64URL(scriptJSON),
			Encoding: vcon.EncodingBase64URL,
		})
	}

	// Keep the timestamps coherent: mutators bump UpdatedAt to wall time.
	v.UpdatedAt = util.FormatTimestamp(f.opts.Now())
	return v
}

// turnDuration estimates how long a text turn would take spoken aloud.
func turnDuration(message string) float64 {
	words := len(strings.Fields(message))
	if words == 0 {
		return 0
	}
	return float64(words) / wordsPerSecond
}

// synthesizeTel fills in a deterministic E.164 number when the script left
// the party without a phone identifier.
func synthesizeTel(p ScriptParty, index int) string {
	if p.Tel != "" {
		return p.Tel
	}
	if p.Mailto != "" {
		return ""
	}
	return fmt.Sprintf("+1415555%04d", index+100)
}

// synthesizeMailto derives an email address from the party name when no
// identifier was provided at all.
func synthesizeMailto(p ScriptParty) string {
	if p.Mailto != "" || p.Tel != "" {
		return p.Mailto
	}
	slug := strings.ToLower(strings.Join(strings.Fields(p.Name), "."))
	if slug == "" {
		return ""
	}
	return slug + "@example.com"
}
