package audio

import (
	"errors"
	"fmt"
)

var (
	ErrNoAudioStream = errors.New("file does not contain an audio stream")
	ErrNoDuration    = errors.New("no determinable duration")
)

// MediaError reports a failure to open or inspect a media file.
type MediaError struct {
	Path string
	Err  error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media %s: %v", e.Path, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}
