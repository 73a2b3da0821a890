package apierr

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// Classify attaches a sentinel to errors returned by the provider SDKs
// based on the HTTP status they carry. Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return FromStatus(openaiErr.StatusCode, err)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return FromStatus(anthropicErr.StatusCode, err)
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return FromStatus(geminiErr.Code, err)
	}
	var geminiErrPtr *genai.APIError
	if errors.As(err, &geminiErrPtr) {
		return FromStatus(geminiErrPtr.Code, err)
	}

	return err
}
