// Package openai provides a faker.Backend implementation using the OpenAI
// Chat Completions API. It sends the shared script-generation prompt and
// parses the model's JSON reply into a faker.Script.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/vcon-dev/fake-vcons/faker"
)

// Options configure the OpenAI backend. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Backend wraps the OpenAI Chat Completions API behind faker.Backend.
type Backend struct {
	client *openai.Client
	opts   Options
}

// NewBackend creates a backend using the official client (API key from the
// environment).
func NewBackend(optFns ...func(o *Options)) *Backend {
	client := openai.NewClient()
	return NewBackendFromClient(&client, optFns...)
}

// NewBackendFromClient creates a backend from an existing client.
func NewBackendFromClient(client *openai.Client, optFns ...func(o *Options)) *Backend {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.9,
		MaxCompletionTokens: 2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{client: client, opts: opts}
}

// GenerateScript asks the model for a conversation script and parses it.
func (b *Backend) GenerateScript(ctx context.Context, prompt faker.Prompt) (*faker.Script, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(faker.SystemInstruction),
			openai.UserMessage(faker.BuildUserPrompt(prompt)),
		},
		Model:               b.opts.Model,
		Temperature:         openai.Float(b.opts.Temperature),
		MaxCompletionTokens: openai.Int(b.opts.MaxCompletionTokens),
	}
	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}
	return faker.ParseScriptJSON(resp.Choices[0].Message.Content)
}
