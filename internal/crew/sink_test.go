package crew

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Night Shift", "Night_Shift"},
		{"punctuation", "Night Shift: Part 1?", "Night_Shift_Part_1"},
		{"keeps dash and underscore", "one-two_three", "one-two_three"},
		{"trims", "  Quiet Room  ", "Quiet_Room"},
		{"unicode letters", "Café Noir", "Café_Noir"},
		{"empty", "", "Untitled"},
		{"only symbols", "!!! ???", "Untitled"},
		{"newline dropped", "Dawn\nFall", "DawnFall"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.input); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunDir(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	got := RunDir("files", now, "The End")
	want := filepath.Join("files", "20250102_030405_The_End")
	if got != want {
		t.Errorf("RunDir() = %q, want %q", got, want)
	}
}

func TestFileNameForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleCharacterDesigner, "characters.txt"},
		{RoleMusicDesigner, "music.txt"},
		{RoleNarrator, "narration.txt"},
		{RoleSceneDesigner, "scenes.txt"},
		{RoleStoryWriter, "story.txt"},
		{RoleTitleGenerator, "title.txt"},
		{"Sound Editor", "sound_editor.txt"},
	}

	for _, tt := range tests {
		if got := FileNameForRole(tt.role); got != tt.want {
			t.Errorf("FileNameForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"```\nfenced\n```", "fenced"},
		{"  ```inner```  ", "inner"},
		{"```only opening", "```only opening"},
		{"```", ""},
		{"```\n```a```\n```", "```a```"},
	}

	for _, tt := range tests {
		if got := stripFence(tt.input); got != tt.want {
			t.Errorf("stripFence(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResultSaverCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run", "nested")
	saver := NewResultSaver(dir)

	path, err := saver.Save(RoleStoryWriter, "```\nOnce upon a time\n```")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if path != filepath.Join(dir, "story.txt") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Once upon a time" {
		t.Errorf("content = %q", data)
	}
}
