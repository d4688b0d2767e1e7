package subtitle

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NarrationUnit is one narrated block: how long the line is on screen and
// what is said.
type NarrationUnit struct {
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// NarrationOptions controls block alignment and line wrapping.
type NarrationOptions struct {
	BlockSeconds    float64
	MaxCharsPerLine int
}

func DefaultNarrationOptions() NarrationOptions {
	return NarrationOptions{
		BlockSeconds:    5,
		MaxCharsPerLine: 42, // Standard subtitle line length
	}
}

// BuildNarration lays units out in consecutive blocks starting at zero: unit i
// starts at i*BlockSeconds and ends Duration seconds later. A unit may not run
// past its block.
func BuildNarration(units []NarrationUnit, opts NarrationOptions) (string, error) {
	if len(units) == 0 {
		return "", fmt.Errorf("%w: no narration units", ErrInvalidInput)
	}
	if opts.BlockSeconds <= 0 {
		opts.BlockSeconds = DefaultNarrationOptions().BlockSeconds
	}
	if opts.MaxCharsPerLine <= 0 {
		opts.MaxCharsPerLine = DefaultNarrationOptions().MaxCharsPerLine
	}

	var sb strings.Builder
	for i, unit := range units {
		if unit.Duration <= 0 || unit.Duration > opts.BlockSeconds {
			return "", fmt.Errorf(
				"%w: unit %d duration %vs outside (0, %v]",
				ErrInvalidInput,
				i+1,
				unit.Duration,
				opts.BlockSeconds,
			)
		}

		text := cleanNarrationText(unit.Text, opts.MaxCharsPerLine)
		if text == "" {
			return "", fmt.Errorf("%w: unit %d has no text", ErrInvalidInput, i+1)
		}

		startSeconds := float64(i) * opts.BlockSeconds
		start, err := FormatTimestamp(startSeconds)
		if err != nil {
			return "", err
		}
		end, err := FormatTimestamp(startSeconds + unit.Duration)
		if err != nil {
			return "", err
		}
		if end == start {
			return "", fmt.Errorf(
				"%w: unit %d duration %vs rounds to zero milliseconds",
				ErrInvalidInput,
				i+1,
				unit.Duration,
			)
		}

		sb.WriteString(BuildEntry(i+1, start, end, text))
	}

	out := sb.String()
	if err := ValidateErr(out); err != nil {
		return "", fmt.Errorf("built narration is not valid SRT: %w", err)
	}
	return out, nil
}

// drops fences and blank lines, which would end the entry early, and wraps
// single-line text that is too long for one subtitle line
func cleanNarrationText(text string, maxCharsPerLine int) string {
	text = strings.ReplaceAll(text, codeFence, "")

	var lines []string
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 1 {
		return wrapText(lines[0], maxCharsPerLine)
	}
	return strings.Join(lines, "\n")
}

// splits text onto two lines at the word break closest to the middle
func wrapText(text string, maxCharsPerLine int) string {
	runeCount := utf8.RuneCountInString(text)

	// if text fits on one line, return as is
	if runeCount <= maxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	middle := runeCount / 2
	bestSplit := 0
	bestDiff := runeCount

	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += utf8.RuneCountInString(word)
		if i > 0 {
			currentLen++ // space
		}

		diff := abs(currentLen - middle)
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	if bestSplit > 0 && bestSplit < len(words) {
		line1 := strings.Join(words[:bestSplit], " ")
		line2 := strings.Join(words[bestSplit:], " ")
		return line1 + "\n" + line2
	}

	return text
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
