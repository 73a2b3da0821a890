package subtitle

import (
	"fmt"
	"math"
	"time"
)

const (
	millisPerHour   = 3_600_000
	millisPerMinute = 60_000
	millisPerSecond = 1_000

	// maxSeconds keeps the millisecond conversion well inside int64 and
	// float64's exact integer range.
	maxSeconds = 1e9
)

// Timecode is an elapsed time split into SRT components.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

// TimecodeFromSeconds truncates seconds toward zero at millisecond
// resolution. A tolerance of a few ulps absorbs float representation error
// (9.599 is stored as 9.59899...) so exact millisecond values survive, while
// anything genuinely below the next millisecond (0.9999995) stays below it.
// seconds must be finite and non-negative.
func TimecodeFromSeconds(seconds float64) Timecode {
	return TimecodeFromDuration(time.Duration(truncateMillis(seconds)) * time.Millisecond)
}

// TimecodeFromDuration truncates d to whole milliseconds.
func TimecodeFromDuration(d time.Duration) Timecode {
	ms := d.Milliseconds()
	return Timecode{
		Hours:   int(ms / millisPerHour),
		Minutes: int(ms / millisPerMinute % 60),
		Seconds: int(ms / millisPerSecond % 60),
		Millis:  int(ms % millisPerSecond),
	}
}

func (t Timecode) Milliseconds() int64 {
	return int64(t.Hours)*millisPerHour +
		int64(t.Minutes)*millisPerMinute +
		int64(t.Seconds)*millisPerSecond +
		int64(t.Millis)
}

func (t Timecode) Duration() time.Duration {
	return time.Duration(t.Milliseconds()) * time.Millisecond
}

// TotalSeconds is the whole timecode as fractional seconds.
func (t Timecode) TotalSeconds() float64 {
	return float64(t.Milliseconds()) / millisPerSecond
}

// String renders H:MM:SS,mmm. Hours are not padded.
func (t Timecode) String() string {
	return fmt.Sprintf("%d:%02d:%02d,%03d", t.Hours, t.Minutes, t.Seconds, t.Millis)
}

// truncateMillis floors seconds*1000, forgiving only the error that the
// multiplication itself can introduce.
func truncateMillis(seconds float64) int64 {
	scaled := seconds * millisPerSecond
	return int64(math.Floor(scaled + math.Abs(scaled)*1e-15))
}
