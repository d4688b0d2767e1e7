package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timestampLineRegex = regexp.MustCompile(
	`(\d{2,}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2},\d{3})`,
)

// ParseSRT reads SRT entries with their timings. It is lenient about spacing
// around the arrow; use Validate for the structural contract.
func ParseSRT(r io.Reader) (*Subtitle, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	var currentEntry *Entry
	var timed bool
	var textLines []string
	lineNum := 0

	flush := func() {
		if currentEntry != nil && timed {
			currentEntry.Text = strings.Join(textLines, "\n")
			entries = append(entries, *currentEntry)
		}
		currentEntry = nil
		timed = false
		textLines = nil
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if currentEntry != nil && timed {
				flush()
			}
			continue
		}

		if currentEntry == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				currentEntry = &Entry{Index: index}
				continue
			}
			return nil, fmt.Errorf("expected entry index at line %d", lineNum)
		}

		if !timed {
			matches := timestampLineRegex.FindStringSubmatch(line)
			if len(matches) != 3 {
				return nil, fmt.Errorf("expected timestamp range at line %d", lineNum)
			}
			startTime, err := ParseTimestamp(matches[1])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid start timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			endTime, err := ParseTimestamp(matches[2])
			if err != nil {
				return nil, fmt.Errorf(
					"invalid end timestamp at line %d: %w",
					lineNum,
					err,
				)
			}
			currentEntry.StartTime = startTime
			currentEntry.EndTime = endTime
			timed = true
			continue
		}

		textLines = append(textLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT: %w", err)
	}
	if currentEntry != nil && !timed {
		return nil, fmt.Errorf("entry %d has no timestamp range", currentEntry.Index)
	}
	flush()

	return &Subtitle{Entries: entries}, nil
}

// TimingIssue is a timing problem Validate does not look for.
type TimingIssue struct {
	Index  int
	Start  time.Duration
	End    time.Duration
	Reason string
}

// CheckTiming reports entries that end before they start and entries that
// begin before the previous one ends.
func CheckTiming(sub *Subtitle) []TimingIssue {
	var issues []TimingIssue
	var prevEnd time.Duration

	for i, entry := range sub.Entries {
		if entry.EndTime <= entry.StartTime {
			issues = append(issues, TimingIssue{
				Index:  entry.Index,
				Start:  entry.StartTime,
				End:    entry.EndTime,
				Reason: "end is not after start",
			})
		}
		if i > 0 && entry.StartTime < prevEnd {
			issues = append(issues, TimingIssue{
				Index:  entry.Index,
				Start:  entry.StartTime,
				End:    entry.EndTime,
				Reason: fmt.Sprintf("overlaps previous entry ending at %s", formatSRTTime(prevEnd)),
			})
		}
		prevEnd = entry.EndTime
	}

	return issues
}
