package chapters

import (
	"bytes"

	"github.com/mgpai22/vidstamp/internal/output"
)

// one label per line, each followed by a newline
func RenderLabels(labels []Label) []byte {
	var buf bytes.Buffer
	for _, l := range labels {
		buf.WriteString(string(l))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// writes labels to path, replacing any existing file. An empty slice
// produces an empty file. Failures are *output.WriteError.
func WriteLabels(path string, labels []Label) error {
	return output.WriteFile(path, RenderLabels(labels))
}
