package subtitle

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidInput reports out-of-domain arguments to the formatter and builders.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStructural reports SRT text that fails the structural format contract.
	ErrStructural = errors.New("invalid srt structure")
	// ErrWrite reports a directory creation or file write failure.
	ErrWrite = errors.New("write srt file")
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete subtitle track
type Subtitle struct {
	Entries []Entry
}

// SRT serializes the track, renumbering entries 1..N in slice order.
func (s *Subtitle) SRT() string {
	var sb strings.Builder
	for i, entry := range s.Entries {
		sb.WriteString(BuildEntry(
			i+1,
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime),
			entry.Text,
		))
	}
	return sb.String()
}
