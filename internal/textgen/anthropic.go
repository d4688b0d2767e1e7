package textgen

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicMaxTokens = 4096

// implements Generator using Anthropic Claude
type AnthropicGenerator struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicGenerator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicGenerator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (g *AnthropicGenerator) maxTokens() int64 {
	if g.options.MaxTokens > 0 {
		return int64(g.options.MaxTokens)
	}
	return defaultAnthropicMaxTokens
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens(),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.Prompt),
			),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	return g.parseResponse(message)
}

func (g *AnthropicGenerator) parseResponse(
	message *anthropic.Message,
) (string, error) {
	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf(
			"no text in Anthropic response (stop reason: %s)",
			truncateString(string(message.StopReason), 40),
		)
	}

	return responseText, nil
}

func (g *AnthropicGenerator) Model() string {
	return string(g.model)
}
