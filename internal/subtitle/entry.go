package subtitle

import (
	"strconv"
	"strings"
)

// marker that generated text sometimes arrives wrapped in
const codeFence = "```"

// BuildEntry renders one SRT block, trailing blank line included. Timestamps
// are emitted as given; every code fence marker is removed from the text.
func BuildEntry(index int, start, end, text string) string {
	text = strings.ReplaceAll(text, codeFence, "")

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(index))
	sb.WriteString("\n")
	sb.WriteString(start)
	sb.WriteString(timestampSeparator)
	sb.WriteString(end)
	sb.WriteString("\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")
	return sb.String()
}
