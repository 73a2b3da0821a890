package subtitle

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTranscript  = errors.New("transcript has no segments")
	ErrNegativeTime     = errors.New("negative timestamp")
	ErrEndBeforeStart   = errors.New("end time before start time")
	ErrInvalidTime      = errors.New("timestamp is not a finite number in range")
	ErrMalformedCaption = errors.New("malformed caption file")
)

// FormatError reports segment input that cannot become a caption file.
// Index is the 0-based segment position, or -1 for the sequence as a whole.
type FormatError struct {
	Index   int
	Segment Segment
	Err     error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("cannot format captions: %v", e.Err)
	}
	return fmt.Sprintf(
		"cannot format captions: segment %d (start=%g end=%g): %v",
		e.Index+1,
		e.Segment.Start,
		e.Segment.End,
		e.Err,
	)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
