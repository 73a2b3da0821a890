package chapters

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mgpai22/vidstamp/internal/apierr"
)

// implements Generator using OpenAI Chat Completions
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAIGenerator(
	apiKey, organization string,
	opts Options,
) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(organization))
	}

	model := opts.Model
	if model == "" {
		model = openai.ChatModelGPT4o
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(reqOpts...),
		model:   model,
		options: opts,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) ([]Label, error) {
	completion, err := g.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(BuildSystemPrompt()),
				openai.UserMessage(BuildUserPrompt(req, g.options)),
			},
			Model:       g.model,
			Temperature: openai.Float(g.options.temperature()),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", apierr.Classify(err))
	}

	return parseCompletion(completion)
}

func parseCompletion(completion *openai.ChatCompletion) ([]Label, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return nil, apierr.Malformed("empty response from OpenAI")
	}

	return ParseLabels(completion.Choices[0].Message.Content)
}
