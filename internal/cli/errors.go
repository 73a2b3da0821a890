package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/mgpai22/vidstamp/internal/apierr"
	"github.com/mgpai22/vidstamp/internal/audio"
	"github.com/mgpai22/vidstamp/internal/config"
	"github.com/mgpai22/vidstamp/internal/ffmpeg"
	"github.com/mgpai22/vidstamp/internal/output"
	"github.com/mgpai22/vidstamp/internal/subtitle"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitGeneral      = 1
	ExitUsage        = 2
	ExitMedia        = 3
	ExitFormat       = 4
	ExitCollaborator = 5
	ExitWrite        = 6
	ExitInterrupt    = 130
)

// ErrUsage marks invalid flag values or arguments.
var ErrUsage = errors.New("invalid usage")

// message fragments of cobra's untyped argument and flag errors
var cobraUsagePatterns = []string{
	"required flag",
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"invalid argument",
	"flag needs an argument",
	"accepts ",
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	var (
		formatErr *subtitle.FormatError
		writeErr  *output.WriteError
		mediaErr  *audio.MediaError
		collabErr *apierr.CollaboratorError
	)
	switch {
	case errors.As(err, &formatErr), errors.Is(err, subtitle.ErrMalformedCaption):
		return ExitFormat
	case errors.As(err, &writeErr):
		return ExitWrite
	case errors.As(err, &mediaErr), errors.Is(err, ffmpeg.ErrNotFound):
		return ExitMedia
	case errors.As(err, &collabErr), errors.Is(err, config.ErrMissingCredential):
		return ExitCollaborator
	case errors.Is(err, ErrUsage), isCobraUsageError(err):
		return ExitUsage
	}

	return ExitGeneral
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, p := range cobraUsagePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
