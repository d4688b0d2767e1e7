package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mgpai22/filmcrew/internal/config"
	"github.com/mgpai22/filmcrew/internal/subtitle"
	"github.com/mgpai22/filmcrew/internal/video"
	"github.com/spf13/cobra"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"abc", "****"},
		{"abcd", "****"},
		{"sk-test-123456", "****3456"},
	}

	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	if got := renderTable(nil, nil, nil); got != "" {
		t.Errorf("renderTable(no headers) = %q, want empty", got)
	}

	out := renderTable(
		[]string{"Entry", "Problem"},
		[][]string{{"2", "overlap"}, {"3", "end is not after start"}},
		[]columnAlignment{alignRight},
	)
	for _, want := range []string{"Entry", "Problem", "overlap", "end is not after start"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTimingRows(t *testing.T) {
	rows := timingRows([]subtitle.TimingIssue{{
		Index:  2,
		Start:  1500 * time.Millisecond,
		End:    time.Second,
		Reason: "end is not after start",
	}})

	want := []string{"2", "00:00:01,500", "00:00:01,000", "end is not after start"}
	if len(rows) != 1 || strings.Join(rows[0], "|") != strings.Join(want, "|") {
		t.Errorf("timingRows() = %v, want %v", rows, want)
	}
}

func TestConfigRowsMasksKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "secret-value-9876"

	for _, row := range configRows(&cfg) {
		if row[0] == "llm.api_key" && row[1] != "****9876" {
			t.Errorf("api key shown as %q", row[1])
		}
		if row[0] == "llm.model" && !strings.HasSuffix(row[1], "(default)") {
			t.Errorf("model = %q, want provider default", row[1])
		}
	}
}

func TestNormalizeSRT(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "renumbers and respaces",
			input: "\ufeff7\r\n00:00:01,000-->00:00:02,500\r\nHi\r\n\r\n9\r\n00:00:03,000  -->  00:00:04,000\r\nThere\r\n",
			want:  "1\n00:00:01,000 --> 00:00:02,500\nHi\n\n2\n00:00:03,000 --> 00:00:04,000\nThere\n\n",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "not srt", input: "hello\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeSRT([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeSRT() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeSRT() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("normalizeSRT() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyGenerateFlagsProviderSwitch(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		env       map[string]string
		wantModel string
		wantKey   string
	}{
		{
			name:      "keeps FILMCREW_MODEL",
			provider:  "anthropic",
			env:       map[string]string{"FILMCREW_MODEL": "claude-sonnet-4-5", "ANTHROPIC_API_KEY": "ak"},
			wantModel: "claude-sonnet-4-5",
			wantKey:   "ak",
		},
		{
			name:      "openai model name",
			provider:  "openai",
			env:       map[string]string{"OPENAI_MODEL_NAME": "gpt-4o", "OPENAI_API_KEY": "ok"},
			wantModel: "gpt-4o",
			wantKey:   "ok",
		},
		{
			name:      "provider default",
			provider:  "anthropic",
			wantModel: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"FILMCREW_MODEL", "OPENAI_MODEL_NAME", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
				t.Setenv(key, tt.env[key])
			}

			cmd := &cobra.Command{}
			addGenerateFlags(cmd)
			if err := cmd.Flags().Set("provider", tt.provider); err != nil {
				t.Fatal(err)
			}

			cfg := config.Default()
			cfg.LLM.Model = "gemini-2.5-pro"
			cfg.LLM.APIKey = "gemini-key"

			if err := applyGenerateFlags(cmd, &cfg); err != nil {
				t.Fatalf("applyGenerateFlags() error = %v", err)
			}
			if cfg.LLM.Provider != tt.provider {
				t.Errorf("provider = %q, want %q", cfg.LLM.Provider, tt.provider)
			}
			if cfg.LLM.Model != tt.wantModel {
				t.Errorf("model = %q, want %q", cfg.LLM.Model, tt.wantModel)
			}
			if cfg.LLM.APIKey != tt.wantKey {
				t.Errorf("api key = %q, want %q", cfg.LLM.APIKey, tt.wantKey)
			}
		})
	}
}

func TestJoinFailureSuggestsReencode(t *testing.T) {
	concatErr := errors.New("ffmpeg concat failed: exit status 1")

	tests := []struct {
		name     string
		err      error
		reencode bool
		wantHint bool
	}{
		{"stream copy failure", concatErr, false, true},
		{"already reencoding", concatErr, true, false},
		{"too few inputs", video.ErrTooFewInputs, false, false},
		{"cancelled", context.Canceled, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinFailure(tt.err, tt.reencode)
			if !errors.Is(got, tt.err) {
				t.Errorf("joinFailure() = %v, does not wrap %v", got, tt.err)
			}
			if hint := strings.Contains(got.Error(), "--reencode"); hint != tt.wantHint {
				t.Errorf("joinFailure() = %q, hint %v, want %v", got, hint, tt.wantHint)
			}
		})
	}
}
