package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var timestampRegex = regexp.MustCompile(
	`^\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})`,
)

// ParseFile reads an SRT file from disk.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads SRT entries from r. Both unpadded (0:00:01,000) and padded
// (00:00:01,000) hours are accepted, as are a leading BOM and CRLF line
// endings. Multi-line text is joined with "\n".
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		entries   []Entry
		current   *Entry
		haveTimes bool
		textLines []string
		lineNum   int
	)

	flush := func() {
		if current != nil {
			current.Text = strings.Join(textLines, "\n")
			entries = append(entries, *current)
		}
		current = nil
		haveTimes = false
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if current != nil && !haveTimes {
				return nil, fmt.Errorf(
					"%w: entry %d has no timestamp line (line %d)",
					ErrMalformedCaption,
					current.Index,
					lineNum,
				)
			}
			flush()
			continue
		}

		switch {
		case current == nil:
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, fmt.Errorf(
					"%w: expected entry index at line %d, got %q",
					ErrMalformedCaption,
					lineNum,
					line,
				)
			}
			current = &Entry{Index: index}

		case !haveTimes:
			matches := timestampRegex.FindStringSubmatch(line)
			if len(matches) != 9 {
				return nil, fmt.Errorf(
					"%w: invalid timestamp line %d: %q",
					ErrMalformedCaption,
					lineNum,
					line,
				)
			}
			start, err := parseTimecode(matches[1:5])
			if err != nil {
				return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
			}
			end, err := parseTimecode(matches[5:9])
			if err != nil {
				return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
			}
			current.Start = start
			current.End = end
			haveTimes = true

		default:
			textLines = append(textLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read SRT: %w", err)
	}

	if current != nil && !haveTimes {
		return nil, fmt.Errorf(
			"%w: entry %d has no timestamp line",
			ErrMalformedCaption,
			current.Index,
		)
	}
	flush()

	return entries, nil
}

func parseTimecode(parts []string) (Timecode, error) {
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: %q", ErrMalformedCaption, p)
		}
		values[i] = v
	}

	tc := Timecode{
		Hours:   values[0],
		Minutes: values[1],
		Seconds: values[2],
		Millis:  values[3],
	}
	if tc.Minutes >= 60 || tc.Seconds >= 60 {
		return Timecode{}, fmt.Errorf("%w: %s out of range", ErrMalformedCaption, tc)
	}

	return tc, nil
}
