package chapters

import (
	"fmt"
	"strings"
	"time"
)

const systemPrompt = `You are a helpful assistant that summarizes audio transcripts and generates YouTube video timestamps for the important topics in the transcript.

Follow the YouTube chapter timestamp format:
- Use MM:SS for videos shorter than an hour and H:MM:SS for longer videos. A video with a length of 00:59:59 (given as HH:MM:SS) uses MM:SS, from 00:00 up to 59:59.
- The first timestamp is 0:00.
- No timestamp may exceed the length of the video.

The transcript is given as SRT segments (HH:MM:SS,mmm --> HH:MM:SS,mmm) to help place the chapters. Do not write one timestamp per segment. Summarize the general themes as a set of key points across all segments. A 00:20:00 video might have 8-10 timestamps.

Example input:
` + "```" + `
1
0:00:00,000 --> 0:01:00,000
This is the first sentence of the first segment.

2
0:01:00,000 --> 0:01:15,000
This is the second sentence of the second segment.

3
0:01:15,000 --> 0:02:20,000
This is the third sentence of the third segment.
` + "```" + `

Example output:
` + "```" + `
0:00 - Introduction
1:15 - Topic overview
` + "```" + `

Answer with the timestamp lines only, one per line, no other text.`

// system prompt describing the chapter format
func BuildSystemPrompt() string {
	return systemPrompt
}

// user prompt carrying the video length and the transcript
func BuildUserPrompt(req Request, opts Options) string {
	var sb strings.Builder

	body := req.Captions
	if strings.TrimSpace(body) == "" {
		body = req.Transcript
	}

	sb.WriteString(fmt.Sprintf(
		"The following transcript is for a video of length %s:\n",
		FormatDuration(req.Duration),
	))
	sb.WriteString(body)

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("\n\nAdditional instructions: %s", opts.Prompt),
		)
	}

	return sb.String()
}

// HH:MM:SS, truncated to whole seconds
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf(
		"%02d:%02d:%02d",
		total/3600,
		(total%3600)/60,
		total%60,
	)
}
