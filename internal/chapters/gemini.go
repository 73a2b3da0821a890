package chapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mgpai22/vidstamp/internal/apierr"
)

// implements Generator using Google Gemini
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiGenerator(ctx context.Context, apiKey string, opts Options) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiGenerator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]Label, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildSystemPrompt(), genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.options.temperature())),
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(BuildUserPrompt(req, g.options)),
		cfg,
	)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", apierr.Classify(err))
	}

	return parseGenerateResponse(result)
}

func parseGenerateResponse(result *genai.GenerateContentResponse) ([]Label, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, apierr.Malformed("empty response from Gemini")
	}

	return ParseLabels(result.Text())
}
