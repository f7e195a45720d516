package faker

import (
	"fmt"
	"strings"
)

// SystemInstruction is the shared steering prompt for model-backed script
// generation. Backends send it verbatim as the system message.
const SystemInstruction = `You write realistic customer-service conversation scripts.
Respond with a single JSON object and nothing else, using this shape:
{
  "subject": "short conversation subject",
  "parties": [{"name": "Full Name", "role": "agent" or "customer", "tel": "+E.164 optional", "mailto": "email optional"}],
  "turns": [{"party": <index into parties>, "message": "what they say"}]
}
Use exactly two parties (one agent, one customer) and 6 to 12 turns.
Party indexes are zero-based. Do not wrap the JSON in markdown fences.`

// BuildUserPrompt renders the per-request user message for a prompt.
func BuildUserPrompt(p Prompt) string {
	var b strings.Builder
	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		topic = "a plausible customer service issue of your choice"
	}
	fmt.Fprintf(&b, "Write a conversation script about %s.", topic)
	if lang := strings.TrimSpace(p.Language); lang != "" {
		fmt.Fprintf(&b, " Write the dialog in %s.", lang)
	}
	return b.String()
}
