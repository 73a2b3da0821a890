package subtitle

// Segment is one unit of recognized speech as returned by a transcriber.
// Times are seconds from the start of the media.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Entry is a single numbered caption.
type Entry struct {
	Index int
	Start Timecode
	End   Timecode
	Text  string
}

// Document is a fully rendered caption file.
type Document struct {
	Entries []Entry

	// Body is the complete SRT text.
	Body string

	// Transcript is every non-empty segment text joined by single spaces.
	Transcript string
}

// SegmentsFromEntries converts parsed captions back into segments so they
// can be reformatted. Timecodes are exact milliseconds, so the round trip
// through Format is lossless.
func SegmentsFromEntries(entries []Entry) []Segment {
	segments := make([]Segment, len(entries))
	for i, e := range entries {
		segments[i] = Segment{
			Start: e.Start.TotalSeconds(),
			End:   e.End.TotalSeconds(),
			Text:  e.Text,
		}
	}
	return segments
}
