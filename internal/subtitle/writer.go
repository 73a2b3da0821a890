package subtitle

import "github.com/mgpai22/vidstamp/internal/output"

// WriteFile commits the rendered body to path. The destination is replaced
// atomically; failures are reported as *output.WriteError.
func (d *Document) WriteFile(path string) error {
	return output.WriteFile(path, []byte(d.Body))
}
