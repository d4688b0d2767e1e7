package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned by the provider constructors when no key is set.
var ErrMissingAPIKey = errors.New("API key is required")

// Request is a single generation call. System carries the persona the model
// should adopt; Prompt is the task itself.
type Request struct {
	System string
	Prompt string
}

// interface for free-text generation
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// text generation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Providers lists every supported provider in display order.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
}

// ParseProvider maps a user supplied name onto a Provider.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Providers() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf(
		"unsupported text generation provider %q: use gemini, openai, or anthropic",
		name,
	)
}

// APIKeyEnv is the environment variable a provider's key is read from.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

// DefaultModel is used when Options.Model is empty.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-5-mini"
	case ProviderAnthropic:
		return "claude-haiku-4-5"
	default:
		return ""
	}
}

type Options struct {
	Model     string
	MaxTokens int // response cap, only honored by providers that require one
}

// creates Generator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Generator, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIGenerator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicGenerator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported text generation provider: %s", provider)
	}
}

// language tags models put on an opening fence
var fenceTags = map[string]bool{
	"json":      true,
	"srt":       true,
	"text":      true,
	"txt":       true,
	"plaintext": true,
	"markdown":  true,
	"md":        true,
}

// CleanResponse trims the reply and drops a code fence wrapped around all of
// it, including a known language tag on the opening fence.
func CleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if fenceTags[strings.ToLower(strings.TrimSpace(s[:nl]))] {
			s = s[nl+1:]
		}
	}

	return strings.TrimSpace(s)
}

// truncates a string to maxLen bytes
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
