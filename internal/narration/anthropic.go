package narration

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/world"
)

// MessageClient is the slice of the Anthropic Messages API the narrator
// uses. *anthropic.MessageService satisfies it.
type MessageClient interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// NewMessageClient returns the Messages service of a client authenticated
// with apiKey.
func NewMessageClient(apiKey string) MessageClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &client.Messages
}

// ModelConfig selects and tunes the model.
type ModelConfig struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

// Validate reports the first missing setting.
func (c ModelConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("narration: model must be set")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("narration: max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("narration: temperature must be in [0,1], got %g", c.Temperature)
	}
	return nil
}

// AnthropicNarrator narrates with Claude through the Messages API.
type AnthropicNarrator struct {
	client MessageClient
	cfg    ModelConfig
	logger *zap.Logger
}

// NewAnthropicNarrator validates cfg and returns a narrator. An empty
// system prompt uses DefaultSystemPrompt.
func NewAnthropicNarrator(client MessageClient, cfg ModelConfig, logger *zap.Logger) (*AnthropicNarrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnthropicNarrator{client: client, cfg: cfg, logger: logger}, nil
}

// Narrate implements Narrator.
func (n *AnthropicNarrator) Narrate(ctx context.Context, req Request) (Response, error) {
	prompt := req.Prompt()
	n.logger.Debug("requesting narration", zap.String("model", n.cfg.Model), zap.Int("prompt_bytes", len(prompt)))
	text, err := complete(ctx, n.client, n.cfg, prompt)
	if err != nil {
		return Response{}, fmt.Errorf("narration: %w", err)
	}
	return Response{Text: text}, nil
}

// AnthropicExtractor extracts worldbook entities with Claude.
type AnthropicExtractor struct {
	client MessageClient
	cfg    ModelConfig
}

// NewAnthropicExtractor returns an extractor. Temperature is forced low for
// repeatable output.
func NewAnthropicExtractor(client MessageClient, cfg ModelConfig) (*AnthropicExtractor, error) {
	cfg.Temperature = 0.1
	cfg.SystemPrompt = "You extract structured data and reply with JSON only."
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &AnthropicExtractor{client: client, cfg: cfg}, nil
}

// Extract implements Extractor.
func (e *AnthropicExtractor) Extract(ctx context.Context, narration string) (world.Extraction, error) {
	text, err := complete(ctx, e.client, e.cfg, ExtractionPrompt(narration))
	if err != nil {
		return world.Extraction{}, fmt.Errorf("narration: extraction: %w", err)
	}
	return ParseEntities(text)
}

func complete(ctx context.Context, client MessageClient, cfg ModelConfig, prompt string) (string, error) {
	msg, err := client.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cfg.Model),
		MaxTokens:   int64(cfg.MaxTokens),
		Temperature: anthropic.Float(cfg.Temperature),
		System:      []anthropic.TextBlockParam{{Text: cfg.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return b.String(), nil
}
