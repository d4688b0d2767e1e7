package subtitle

import (
	"strings"
	"testing"
	"time"
)

func TestParseSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	sub, err := ParseSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}

	if len(sub.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sub.Entries))
	}

	if sub.Entries[0].StartTime != 1*time.Second {
		t.Errorf(
			"entry 0: expected start 1s, got %v",
			sub.Entries[0].StartTime,
		)
	}
	if sub.Entries[0].EndTime != 4*time.Second {
		t.Errorf("entry 0: expected end 4s, got %v", sub.Entries[0].EndTime)
	}
	if sub.Entries[0].Text != "Hello, world!" {
		t.Errorf(
			"entry 0: expected 'Hello, world!', got %q",
			sub.Entries[0].Text,
		)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if sub.Entries[1].Text != expectedText {
		t.Errorf(
			"entry 1: expected %q, got %q",
			expectedText,
			sub.Entries[1].Text,
		)
	}
	if sub.Entries[2].Index != 3 {
		t.Errorf("entry 2: expected index 3, got %d", sub.Entries[2].Index)
	}
}

func TestParseSRTErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing index", content: "00:00:01,000 --> 00:00:02,000\nHi\n"},
		{name: "bad timestamp", content: "1\n00:00:01.000 --> 00:00:02.000\nHi\n"},
		{name: "index only", content: "1\n"},
		{name: "hours beyond duration range", content: "1\n2777777:46:40,000 --> 2777777:46:41,000\nHi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSRT(strings.NewReader(tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSubtitleSRTRoundTrip(t *testing.T) {
	built, err := BuildNarration([]NarrationUnit{
		{Duration: 4.5, Text: "One"},
		{Duration: 5, Text: "Two words that are long enough to need wrapping here"},
	}, DefaultNarrationOptions())
	if err != nil {
		t.Fatalf("BuildNarration returned error: %v", err)
	}

	sub, err := ParseSRT(strings.NewReader(built))
	if err != nil {
		t.Fatalf("ParseSRT returned error: %v", err)
	}
	if got := sub.SRT(); got != built {
		t.Errorf("SRT() =\n%q\nwant\n%q", got, built)
	}
}

func TestCheckTiming(t *testing.T) {
	sub := &Subtitle{Entries: []Entry{
		{Index: 1, StartTime: 0, EndTime: 5 * time.Second, Text: "ok"},
		{Index: 2, StartTime: 4 * time.Second, EndTime: 8 * time.Second, Text: "overlap"},
		{Index: 3, StartTime: 9 * time.Second, EndTime: 9 * time.Second, Text: "empty range"},
		{Index: 4, StartTime: 10 * time.Second, EndTime: 11 * time.Second, Text: "ok"},
	}}

	issues := CheckTiming(sub)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
	if issues[0].Index != 2 || !strings.Contains(issues[0].Reason, "00:00:05,000") {
		t.Errorf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Index != 3 {
		t.Errorf("unexpected second issue: %+v", issues[1])
	}
}
