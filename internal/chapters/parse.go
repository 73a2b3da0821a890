package chapters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/vidstamp/internal/apierr"
)

var ErrNoLabels = errors.New("no chapter labels in response")

// splits model output into labels: code fence lines and blank lines are
// dropped, every other line is kept trimmed and in order
func ParseLabels(text string) ([]Label, error) {
	var labels []Label
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		labels = append(labels, Label(line))
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: %w", apierr.ErrMalformedResponse, ErrNoLabels)
	}

	return labels, nil
}
