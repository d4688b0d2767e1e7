package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// largest whole second a time.Duration can hold
const maxTimestampSeconds = float64(math.MaxInt64 / int64(time.Second))

var timestampRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)

// FormatTimestamp converts a non-negative number of seconds to HH:MM:SS,mmm.
//
// The value is rounded to whole milliseconds once, before it is split into
// fields, so a fraction like 0.9996 carries into the seconds field instead of
// printing a four digit millisecond count. Hours grow past two digits for
// values of 100 hours or more. Values a time.Duration cannot hold are
// rejected, so every result parses back with ParseTimestamp.
func FormatTimestamp(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 ||
		seconds > maxTimestampSeconds {
		return "", fmt.Errorf(
			"%w: timestamp seconds must be a non-negative finite number, got %v",
			ErrInvalidInput,
			seconds,
		)
	}

	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	minutes := totalMillis / 60_000 % 60
	secs := totalMillis / 1000 % 60
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis), nil
}

// ParseTimestamp parses an HH:MM:SS,mmm timestamp.
func ParseTimestamp(s string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: malformed timestamp %q", ErrInvalidInput, s)
	}
	return parseSRTTimestamp(matches[1], matches[2], matches[3], matches[4])
}

func parseSRTTimestamp(
	hours, minutes, seconds, millis string,
) (time.Duration, error) {
	var fields [4]int64
	for i, field := range []string{hours, minutes, seconds, millis} {
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		fields[i] = n
	}
	h, m, s, ms := fields[0], fields[1], fields[2], fields[3]
	if m > 59 || s > 59 {
		return 0, fmt.Errorf(
			"%w: minutes and seconds must be below 60",
			ErrInvalidInput,
		)
	}

	rest := m*int64(time.Minute) + s*int64(time.Second) + ms*int64(time.Millisecond)
	if h > (math.MaxInt64-rest)/int64(time.Hour) {
		return 0, fmt.Errorf(
			"%w: timestamp %s:%s:%s,%s exceeds the supported range",
			ErrInvalidInput,
			hours, minutes, seconds, millis,
		)
	}

	return time.Duration(h*int64(time.Hour) + rest), nil
}

func formatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Millisecond)
	hours := int64(d / time.Hour)
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60
	millis := int64(d/time.Millisecond) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
