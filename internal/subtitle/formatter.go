package subtitle

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Format renders segments as an SRT document. Every segment becomes exactly
// one entry, in input order, numbered from 1. All segments are validated
// before any text is produced. An empty sequence is rejected.
func Format(segments []Segment) (*Document, error) {
	if len(segments) == 0 {
		return nil, &FormatError{Index: -1, Err: ErrEmptyTranscript}
	}

	for i, seg := range segments {
		if err := validateSegment(seg); err != nil {
			return nil, &FormatError{Index: i, Segment: seg, Err: err}
		}
	}

	entries := make([]Entry, len(segments))
	texts := make([]string, 0, len(segments))

	var sb strings.Builder
	for i, seg := range segments {
		entry := Entry{
			Index: i + 1,
			Start: TimecodeFromSeconds(seg.Start),
			End:   TimecodeFromSeconds(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		}
		entries[i] = entry
		writeEntry(&sb, entry)

		if entry.Text != "" {
			texts = append(texts, entry.Text)
		}
	}

	return &Document{
		Entries:    entries,
		Body:       sb.String(),
		Transcript: strings.Join(texts, " "),
	}, nil
}

func validateSegment(seg Segment) error {
	for _, v := range []float64{seg.Start, seg.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v > maxSeconds {
			return ErrInvalidTime
		}
		if v < 0 {
			return ErrNegativeTime
		}
	}
	if seg.End < seg.Start {
		return ErrEndBeforeStart
	}
	return nil
}

func writeEntry(sb *strings.Builder, e Entry) {
	fmt.Fprintf(sb, "%d\n%s --> %s\n%s\n\n", e.Index, e.Start, e.End, e.Text)
}

// WriteTo writes the rendered body to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Body)
	return int64(n), err
}
