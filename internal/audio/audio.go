package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/vidstamp/internal/ffmpeg"
)

// audio chunk info
type ChunkInfo struct {
	Path      string
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
}

// media file information from ffprobe
type Info struct {
	Path       string
	Duration   time.Duration
	HasAudio   bool
	HasVideo   bool
	AudioCodec string
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// Probe inspects a media file with ffprobe. Any failure, including a file
// without a positive duration, is returned as *MediaError.
func Probe(ctx context.Context, filePath string) (*Info, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, &MediaError{Path: filePath, Err: err}
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, &MediaError{Path: filePath, Err: err}
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, &MediaError{Path: filePath, Err: fmt.Errorf("ffprobe failed: %w", err)}
	}

	return parseProbeOutput(filePath, out.Bytes())
}

// duration of an audio/video file
func GetDuration(ctx context.Context, filePath string) (time.Duration, error) {
	info, err := Probe(ctx, filePath)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

func parseProbeOutput(filePath string, data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &MediaError{
			Path: filePath,
			Err:  fmt.Errorf("failed to parse ffprobe output: %w", err),
		}
	}

	info := &Info{Path: filePath}

	seconds := parseSeconds(probe.Format.Duration)
	for _, s := range probe.Streams {
		switch s.CodecType {
		case "audio":
			if !info.HasAudio {
				info.AudioCodec = s.CodecName
			}
			info.HasAudio = true
		case "video":
			info.HasVideo = true
		}
		// container duration missing (some mkv/webm), use the longest stream
		if d := parseSeconds(s.Duration); d > seconds {
			seconds = d
		}
	}

	if seconds <= 0 {
		return nil, &MediaError{Path: filePath, Err: ErrNoDuration}
	}
	info.Duration = time.Duration(math.Round(seconds*1e6)) * time.Microsecond

	return info, nil
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// splits an audio file into chunks of specified duration, one ffmpeg run at
// a time
func ChunkAudio(
	ctx context.Context,
	audioPath string,
	chunkDuration time.Duration,
	outputDir string,
) ([]ChunkInfo, error) {
	if chunkDuration <= 0 {
		return nil, fmt.Errorf(
			"chunk duration must be positive, got %v",
			chunkDuration,
		)
	}

	totalDuration, err := GetDuration(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	cut := func(out string, span [2]time.Duration) error {
		kwargs := ffmpeg.KwArgs{
			"ss": span[0].Seconds(),
			"t":  (span[1] - span[0]).Seconds(),
			"c":  "copy", // Copy codec for speed
		}
		return ffmpeg.Input(audioPath).
			Output(out, kwargs).
			OverWriteOutput().
			SetFfmpegPath(ffmpegPath).
			Run()
	}

	return writeChunks(
		ctx,
		audioPath,
		outputDir,
		chunkSpans(totalDuration, chunkDuration),
		cut,
	)
}

// writeChunks cuts each span into its own file. On failure or
// cancellation every chunk written so far, including a partial one, is
// removed before returning.
func writeChunks(
	ctx context.Context,
	audioPath string,
	outputDir string,
	spans [][2]time.Duration,
	cut func(out string, span [2]time.Duration) error,
) ([]ChunkInfo, error) {
	baseName := strings.TrimSuffix(
		filepath.Base(audioPath),
		filepath.Ext(audioPath),
	)
	ext := filepath.Ext(audioPath)

	var chunks []ChunkInfo
	for i, span := range spans {
		if err := ctx.Err(); err != nil {
			_ = CleanupChunks(chunks)
			return nil, err
		}

		chunkPath := filepath.Join(
			outputDir,
			fmt.Sprintf("%s_chunk_%03d%s", baseName, i, ext),
		)

		if err := cut(chunkPath, span); err != nil {
			_ = CleanupChunks(append(chunks, ChunkInfo{Path: chunkPath}))
			return nil, fmt.Errorf("failed to create chunk %d: %w", i, err)
		}

		chunks = append(chunks, ChunkInfo{
			Path:      chunkPath,
			Index:     i,
			StartTime: span[0],
			EndTime:   span[1],
		})
	}

	return chunks, nil
}

// chunkSpans returns [start, end) pairs covering total.
func chunkSpans(total, size time.Duration) [][2]time.Duration {
	var spans [][2]time.Duration
	for start := time.Duration(0); start < total; start += size {
		end := min(start+size, total)
		spans = append(spans, [2]time.Duration{start, end})
	}
	return spans
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".3gp":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
		".wma":  true,
		".aiff": true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}

// removes all chunk files
func CleanupChunks(chunks []ChunkInfo) error {
	var lastErr error
	for _, chunk := range chunks {
		if err := os.Remove(chunk.Path); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return lastErr
}
