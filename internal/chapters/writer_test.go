package chapters

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/vidstamp/internal/output"
)

func TestRenderLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   string
	}{
		{
			name:   "two chapters",
			labels: []Label{"0:00 - Introduction", "0:15 - Setup"},
			want:   "0:00 - Introduction\n0:15 - Setup\n",
		},
		{
			name:   "empty list",
			labels: nil,
			want:   "",
		},
		{
			name:   "duplicates and odd lines kept verbatim",
			labels: []Label{"1:00 - Recap", "1:00 - Recap", "  not a timestamp  "},
			want:   "1:00 - Recap\n1:00 - Recap\n  not a timestamp  \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(RenderLabels(tt.labels)))
		})
	}
}

func TestWriteLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer\n"), 0o644))

	err := WriteLabels(path, []Label{"0:00 - Introduction", "0:15 - Setup"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0:00 - Introduction\n0:15 - Setup\n", string(data))
}

func TestWriteLabelsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.txt")

	require.NoError(t, WriteLabels(path, []Label{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteLabelsUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteLabels(filepath.Join(blocker, "timestamps.txt"), []Label{"0:00 - Intro"})

	var werr *output.WriteError
	require.True(t, errors.As(err, &werr), "got %v", err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no partial file may be left behind")
}
