package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	timestampSeparator = " --> "
	validMessage       = "Valid SRT format"
)

// ValidationResult is the outcome of a structural check. Line is the 1-based
// line the failure was detected on, or 0 when it is not tied to one line.
type ValidationResult struct {
	Valid   bool
	Message string
	Line    int
}

// ValidationError describes the first structural violation in an SRT text.
type ValidationError struct {
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrStructural
}

// Validate checks SRT text for sequential indices, a timestamp range line after
// each index, and a line after every timestamp. Timestamps are only checked for
// the " --> " separator, not for their value.
func Validate(content string) ValidationResult {
	err := ValidateErr(content)
	if err == nil {
		return ValidationResult{Valid: true, Message: validMessage}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return ValidationResult{Message: verr.Reason, Line: verr.Line}
	}
	return ValidationResult{Message: err.Error()}
}

// ValidateErr is Validate for callers that prefer an error value. The returned
// error is a *ValidationError.
func ValidateErr(content string) error {
	content = normalizeNewlines(content)
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return &ValidationError{Reason: "Empty SRT content"}
	}

	cur := &lineCursor{lines: strings.Split(trimmed, "\n")}
	expected := 1

	for {
		for !cur.atEnd() && isBlank(cur.peek()) {
			cur.advance()
		}
		if cur.atEnd() {
			return nil
		}

		indexLine := cur.lineNo()
		if n, ok := parseIndex(cur.advance()); !ok || n != expected {
			return &ValidationError{
				Line:   indexLine,
				Reason: fmt.Sprintf("Invalid entry index at line %d", indexLine),
			}
		}

		if cur.atEnd() {
			return &ValidationError{
				Line:   indexLine,
				Reason: "Unexpected end of file after index",
			}
		}
		timestampLine := cur.lineNo()
		if len(strings.Split(cur.advance(), timestampSeparator)) != 2 {
			return &ValidationError{
				Line: timestampLine,
				Reason: fmt.Sprintf(
					"Invalid timestamp format at line %d",
					timestampLine,
				),
			}
		}

		if cur.atEnd() {
			return &ValidationError{
				Line:   timestampLine,
				Reason: "Unexpected end of file after timestamp",
			}
		}
		for !cur.atEnd() && !isBlank(cur.peek()) {
			cur.advance()
		}

		expected++
	}
}

// forward-only cursor over the lines of one validation call
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) atEnd() bool {
	return c.pos >= len(c.lines)
}

func (c *lineCursor) peek() string {
	return c.lines[c.pos]
}

func (c *lineCursor) advance() string {
	line := c.lines[c.pos]
	c.pos++
	return line
}

// 1-based number of the line peek would return
func (c *lineCursor) lineNo() int {
	return c.pos + 1
}

func parseIndex(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
