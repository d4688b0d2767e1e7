package crew

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const (
	runDirTimeLayout = "20060102_150405"
	untitled         = "Untitled"
	resultExt        = ".txt"
)

var roleFileNames = map[string]string{
	RoleCharacterDesigner: "characters",
	RoleMusicDesigner:     "music",
	RoleNarrator:          "narration",
	RoleSceneDesigner:     "scenes",
	RoleStoryWriter:       "story",
	RoleTitleGenerator:    "title",
}

// SanitizeTitle keeps letters, digits, space, '-' and '_', trims the
// result and turns spaces into underscores.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	safe := strings.TrimSpace(b.String())
	if safe == "" {
		return untitled
	}
	return strings.ReplaceAll(safe, " ", "_")
}

// RunDir names the directory for one run: <base>/<YYYYMMDD_HHMMSS>_<title>.
func RunDir(base string, now time.Time, title string) string {
	return filepath.Join(base, now.Format(runDirTimeLayout)+"_"+SanitizeTitle(title))
}

// FileNameForRole maps an agent role to the file its output is stored in.
func FileNameForRole(role string) string {
	if name, ok := roleFileNames[role]; ok {
		return name + resultExt
	}
	return strings.ReplaceAll(strings.ToLower(role), " ", "_") + resultExt
}

// ResultSaver writes task outputs into a run directory.
type ResultSaver struct {
	dir string
}

func NewResultSaver(dir string) *ResultSaver {
	return &ResultSaver{dir: dir}
}

// Save stores content under the role's file name and returns the path.
func (s *ResultSaver) Save(role, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	path := filepath.Join(s.dir, FileNameForRole(role))
	if err := os.WriteFile(path, []byte(stripFence(content)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return path, nil
}

// stripFence removes one surrounding ``` pair when content both starts
// and ends with it.
func stripFence(content string) string {
	const fence = "```"

	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, fence) || !strings.HasSuffix(content, fence) {
		return content
	}
	if len(content) < 2*len(fence) {
		return ""
	}
	return strings.TrimSpace(content[len(fence) : len(content)-len(fence)])
}
