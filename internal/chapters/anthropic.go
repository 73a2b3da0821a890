package chapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mgpai22/vidstamp/internal/apierr"
)

// implements Generator using Anthropic Claude
type AnthropicGenerator struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicGenerator(apiKey string, opts Options) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicGenerator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) ([]Label, error) {
	message, err := g.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:       g.model,
			MaxTokens:   2048,
			Temperature: anthropic.Float(g.options.temperature()),
			System: []anthropic.TextBlockParam{
				{Text: BuildSystemPrompt()},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(BuildUserPrompt(req, g.options)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("message request failed: %w", apierr.Classify(err))
	}

	return parseMessage(message)
}

func parseMessage(message *anthropic.Message) ([]Label, error) {
	if message == nil || len(message.Content) == 0 {
		return nil, apierr.Malformed("empty response from Anthropic")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return ParseLabels(sb.String())
}
