package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/vidstamp/internal/audio"
)

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		name      string
		opts      ExtractAudioOptions
		wantCodec string
		wantRate  int
		bitrate   any
	}{
		{
			name:      "defaults to 16kHz mono pcm",
			opts:      ExtractAudioOptions{},
			wantCodec: "pcm_s16le",
			wantRate:  16000,
		},
		{
			name:      "mp3 with bitrate",
			opts:      ExtractAudioOptions{Format: "MP3", SampleRate: 44100, Channels: 2, Bitrate: "128k"},
			wantCodec: "libmp3lame",
			wantRate:  44100,
			bitrate:   "128k",
		},
		{
			name:      "flac ignores bitrate",
			opts:      ExtractAudioOptions{Format: "flac", Bitrate: "320k"},
			wantCodec: "flac",
			wantRate:  16000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := extractArgs(tt.opts)

			assert.Equal(t, tt.wantCodec, args["acodec"])
			assert.Equal(t, tt.wantRate, args["ar"])
			assert.Contains(t, args, "vn")
			assert.Equal(t, tt.bitrate, args["b:a"])
		})
	}
}

func TestExtractAudioMissingVideo(t *testing.T) {
	p := NewProcessor()
	dir := t.TempDir()

	err := p.ExtractAudio(
		context.Background(),
		filepath.Join(dir, "missing.mp4"),
		filepath.Join(dir, "out.wav"),
		DefaultExtractAudioOptions(),
	)

	var merr *audio.MediaError
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExtractAudioCanceled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mp4")
	require.NoError(t, os.WriteFile(in, []byte("not a video"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewProcessor().ExtractAudio(ctx, in, filepath.Join(dir, "out.wav"), DefaultExtractAudioOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
