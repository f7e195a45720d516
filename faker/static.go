package faker

import (
	"context"
	"strings"
	"sync"
)

// StaticBackend serves canned conversation scripts without any network
// dependency. Scripts are selected by topic match when the prompt names one,
// otherwise round-robin. Safe for concurrent use.
type StaticBackend struct {
	mu      sync.Mutex
	next    int
	scripts []Script
}

// NewStaticBackend returns a backend with the built-in script set.
func NewStaticBackend() *StaticBackend {
	return &StaticBackend{scripts: builtinScripts()}
}

// GenerateScript returns a copy of the next canned script.
func (b *StaticBackend) GenerateScript(_ context.Context, prompt Prompt) (*Script, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.next
	if topic := strings.ToLower(strings.TrimSpace(prompt.Topic)); topic != "" {
		for i, s := range b.scripts {
			if strings.Contains(strings.ToLower(s.Subject), topic) {
				idx = i
				break
			}
		}
	} else {
		b.next = (b.next + 1) % len(b.scripts)
	}

	script := b.scripts[idx]
	script.Parties = append([]ScriptParty(nil), script.Parties...)
	script.Turns = append([]Turn(nil), script.Turns...)
	return &script, nil
}

func builtinScripts() []Script {
	return []Script{
		{
			Subject: "Billing dispute on invoice 4821",
			Parties: []ScriptParty{
				{Name: "Dana Reeves", Role: "agent", Tel: "+14155550111", Mailto: "dana.reeves@example.com"},
				{Name: "Marcus Webb", Role: "customer", Tel: "+14155550187"},
			},
			Turns: []Turn{
				{Party: 0, Message: "Thanks for calling support, this is Dana. How can I help you today?"},
				{Party: 1, Message: "Hi Dana, I'm calling about invoice 4821. I was charged twice this month."},
				{Party: 0, Message: "I'm sorry about that. Let me pull up the invoice and take a look."},
				{Party: 1, Message: "Sure, take your time."},
				{Party: 0, Message: "I can see the duplicate charge. I've issued a refund; it should post within three business days."},
				{Party: 1, Message: "That's great, thank you for sorting it out so quickly."},
			},
		},
		{
			Subject: "Appointment scheduling for annual checkup",
			Parties: []ScriptParty{
				{Name: "Priya Natarajan", Role: "agent", Mailto: "priya.n@example.com"},
				{Name: "Tom Okafor", Role: "customer", Tel: "+14155550142"},
			},
			Turns: []Turn{
				{Party: 0, Message: "Good morning, scheduling desk, Priya speaking."},
				{Party: 1, Message: "Morning! I'd like to book my annual checkup sometime next week."},
				{Party: 0, Message: "We have Tuesday at 10am or Thursday at 2pm available."},
				{Party: 1, Message: "Thursday at 2pm works for me."},
				{Party: 0, Message: "You're booked for Thursday at 2pm. We'll send a reminder the day before."},
			},
		},
		{
			Subject: "Package tracking for delayed order",
			Parties: []ScriptParty{
				{Name: "Leo Martinez", Role: "agent", Tel: "+14155550170"},
				{Name: "Aisha Bell", Role: "customer", Mailto: "aisha.bell@example.com"},
			},
			Turns: []Turn{
				{Party: 1, Message: "Hello, my order was supposed to arrive Monday and I still don't have it."},
				{Party: 0, Message: "Let me check the tracking for you. Could I have the order number?"},
				{Party: 1, Message: "It's 7754-2210."},
				{Party: 0, Message: "The carrier shows it held at the regional depot. It's out for delivery tomorrow."},
				{Party: 1, Message: "Alright, I'll keep an eye out. Thanks for checking."},
			},
		},
	}
}
