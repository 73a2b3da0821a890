package chapters

import (
	"context"
	"fmt"

	ollamasdk "github.com/rozoomcool/go-ollama-sdk"
)

const defaultOllamaModel = "llama3.1"

// implements Generator against a local Ollama server
type OllamaGenerator struct {
	client  *ollamasdk.OllamaClient
	model   string
	options Options
}

func NewOllamaGenerator(baseURL string, opts Options) (*OllamaGenerator, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}

	model := opts.Model
	if model == "" {
		model = defaultOllamaModel
	}

	return &OllamaGenerator{
		client:  ollamasdk.NewClient(baseURL),
		model:   model,
		options: opts,
	}, nil
}

func (g *OllamaGenerator) Generate(ctx context.Context, req Request) ([]Label, error) {
	messages := []ollamasdk.ChatMessage{
		{Role: "system", Content: BuildSystemPrompt()},
		{Role: "user", Content: BuildUserPrompt(req, g.options)},
	}

	type chatResult struct {
		text string
		err  error
	}

	// the sdk call takes no context
	done := make(chan chatResult, 1)
	go func() {
		text, err := g.client.Chat(g.model, messages)
		done <- chatResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("ollama chat: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("ollama chat failed: %w", res.err)
		}
		return ParseLabels(res.text)
	}
}
