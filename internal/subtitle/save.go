package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
)

// NarrationFileName is the fixed name SaveSRT writes inside a run directory.
const NarrationFileName = "narration.srt"

// SaveResult reports what SaveSRT did. Err is nil on success and otherwise
// matches ErrStructural or ErrWrite under errors.Is.
type SaveResult struct {
	OK      bool
	Path    string
	Message string
	Err     error
}

// SaveSRT validates content and, only if it is structurally valid, writes it to
// dir/narration.srt, creating dir when needed. Nothing is retried.
func SaveSRT(dir, content string) SaveResult {
	if err := ValidateErr(content); err != nil {
		return SaveResult{
			Message: "Invalid SRT content: " + err.Error(),
			Err:     err,
		}
	}

	path := filepath.Join(dir, NarrationFileName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return writeFailure(path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return writeFailure(path, err)
	}

	return SaveResult{
		OK:      true,
		Path:    path,
		Message: fmt.Sprintf("Successfully saved SRT file to %s", path),
	}
}

func writeFailure(path string, err error) SaveResult {
	return SaveResult{
		Path:    path,
		Message: "Error saving SRT file: " + err.Error(),
		Err:     fmt.Errorf("%w: %w", ErrWrite, err),
	}
}
