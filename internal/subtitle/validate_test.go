package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoEntrySRT = `1
00:00:00,000 --> 00:00:05,000
Hello there.

2
00:00:05,000 --> 00:00:10,000
Goodbye.

`

func TestBuildEntry(t *testing.T) {
	got := BuildEntry(1, "00:00:00,000", "00:00:05,000", "```Hello```")
	want := "1\n00:00:00,000 --> 00:00:05,000\nHello\n\n"
	if got != want {
		t.Errorf("BuildEntry() = %q, want %q", got, want)
	}

	// timestamps are not checked here
	got = BuildEntry(7, "later", "sooner", "a```b")
	want = "7\nlater --> sooner\nab\n\n"
	if got != want {
		t.Errorf("BuildEntry() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		valid    bool
		message  string
		wantLine int
	}{
		{
			name:    "two entries",
			content: twoEntrySRT,
			valid:   true,
			message: "Valid SRT format",
		},
		{
			name:     "out of order index",
			content:  strings.Replace(twoEntrySRT, "\n2\n", "\n3\n", 1),
			message:  "Invalid entry index at line 5",
			wantLine: 5,
		},
		{
			name:     "single hyphen separator",
			content:  strings.Replace(twoEntrySRT, "00:00:00,000 --> 00:00:05,000", "00:00:00,000 - 00:00:05,000", 1),
			message:  "Invalid timestamp format at line 2",
			wantLine: 2,
		},
		{
			name:    "empty",
			content: "",
			message: "Empty SRT content",
		},
		{
			name:    "whitespace only",
			content: " \n\n\t\n",
			message: "Empty SRT content",
		},
		{
			name:     "index is not a number",
			content:  "one\n00:00:00,000 --> 00:00:01,000\nHi\n",
			message:  "Invalid entry index at line 1",
			wantLine: 1,
		},
		{
			name:     "first index is not 1",
			content:  "2\n00:00:00,000 --> 00:00:01,000\nHi\n",
			message:  "Invalid entry index at line 1",
			wantLine: 1,
		},
		{
			name:     "dangling index",
			content:  "1\n00:00:00,000 --> 00:00:01,000\nHi\n\n2\n",
			message:  "Unexpected end of file after index",
			wantLine: 5,
		},
		{
			name:     "ends after timestamp",
			content:  "1\n00:00:00,000 --> 00:00:01,000\n",
			message:  "Unexpected end of file after timestamp",
			wantLine: 2,
		},
		{
			name:     "two separators",
			content:  "1\n00:00:00,000 --> 00:00:01,000 --> 00:00:02,000\nHi\n",
			message:  "Invalid timestamp format at line 2",
			wantLine: 2,
		},
		{
			name:    "multi-line body",
			content: "1\n00:00:00,000 --> 00:00:01,000\nfirst\nsecond\n\n2\n00:00:01,000 --> 00:00:02,000\nthird\n",
			valid:   true,
			message: "Valid SRT format",
		},
		{
			name:    "crlf and bom",
			content: "\ufeff" + strings.ReplaceAll(twoEntrySRT, "\n", "\r\n"),
			valid:   true,
			message: "Valid SRT format",
		},
		{
			name:    "leading blank lines and padded index",
			content: "\n\n 01 \n00:00:00,000 --> 00:00:01,000\nHi\n",
			valid:   true,
			message: "Valid SRT format",
		},
		{
			// without a blank line the next block is read as body text
			name:    "missing blank separator",
			content: "1\n00:00:00,000 --> 00:00:01,000\nHi\n2\n00:00:01,000 --> 00:00:02,000\nThere\n",
			valid:   true,
			message: "Valid SRT format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.content)
			if got.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (message %q)", got.Valid, tt.valid, got.Message)
			}
			if got.Message != tt.message {
				t.Errorf("Message = %q, want %q", got.Message, tt.message)
			}
			if got.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", got.Line, tt.wantLine)
			}
		})
	}
}

func TestValidateErr(t *testing.T) {
	if err := ValidateErr(twoEntrySRT); err != nil {
		t.Fatalf("ValidateErr() returned error for valid content: %v", err)
	}

	err := ValidateErr("1\nbad\nHi\n")
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected ErrStructural, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Line != 2 {
		t.Errorf("Line = %d, want 2", verr.Line)
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	// no counter state may leak between calls
	for i := 0; i < 3; i++ {
		if got := Validate(twoEntrySRT); !got.Valid {
			t.Fatalf("call %d: expected valid, got %q", i, got.Message)
		}
	}
}

func TestSaveSRT(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files", "run")

	res := SaveSRT(dir, twoEntrySRT)
	if !res.OK {
		t.Fatalf("SaveSRT failed: %s", res.Message)
	}
	wantPath := filepath.Join(dir, NarrationFileName)
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	if !strings.Contains(res.Message, wantPath) {
		t.Errorf("Message %q does not mention %q", res.Message, wantPath)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != twoEntrySRT {
		t.Errorf("saved content = %q, want %q", data, twoEntrySRT)
	}

	// directory already exists
	if res := SaveSRT(dir, twoEntrySRT); !res.OK {
		t.Fatalf("second SaveSRT failed: %s", res.Message)
	}
}

func TestSaveSRTRejectsInvalidContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")

	res := SaveSRT(dir, "1\n00:00:00,000 - 00:00:05,000\nHi\n")
	if res.OK {
		t.Fatal("expected SaveSRT to fail")
	}
	if !strings.HasPrefix(res.Message, "Invalid SRT content: ") {
		t.Errorf("Message = %q, want invalid content prefix", res.Message)
	}
	if !errors.Is(res.Err, ErrStructural) {
		t.Errorf("Err = %v, want ErrStructural", res.Err)
	}
	if errors.Is(res.Err, ErrWrite) {
		t.Error("invalid content must not be reported as a write error")
	}
	if _, err := os.Stat(filepath.Join(dir, NarrationFileName)); !os.IsNotExist(err) {
		t.Errorf("expected no file on disk, stat error: %v", err)
	}
}

func TestSaveSRTReportsWriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write blocker file: %v", err)
	}

	res := SaveSRT(blocker, twoEntrySRT)
	if res.OK {
		t.Fatal("expected SaveSRT to fail")
	}
	if !strings.HasPrefix(res.Message, "Error saving SRT file: ") {
		t.Errorf("Message = %q, want write error prefix", res.Message)
	}
	if !errors.Is(res.Err, ErrWrite) {
		t.Errorf("Err = %v, want ErrWrite", res.Err)
	}
	if errors.Is(res.Err, ErrStructural) {
		t.Error("write failure must not be reported as invalid content")
	}
}
