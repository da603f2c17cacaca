package prompts

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"longsd/core"
	"longsd/logging"
)

// CompletionClient sends one text completion request and returns the raw text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAICompletionClient calls the legacy /completions endpoint.
type OpenAICompletionClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAICompletionClient builds a client from the completion settings in cfg.
func NewOpenAICompletionClient(cfg *core.Config) *OpenAICompletionClient {
	return &OpenAICompletionClient{
		client:      core.NewOpenAIClient(cfg),
		model:       cfg.CompletionModel,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

// Complete implements CompletionClient. Every failure wraps ErrCompletionFailed.
func (c *OpenAICompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.model,
		Prompt:      prompt,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrCompletionFailed)
	}
	return resp.Choices[0].Text, nil
}

// Generator produces SectionPrompts for a text, one completion per section.
type Generator struct {
	client CompletionClient
	logger *logging.Logger
}

// NewGenerator returns a Generator. A nil logger discards output.
func NewGenerator(client CompletionClient, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{client: client, logger: logger.Named("prompts")}
}

// Generate requests start, middle and end in order. The first failed
// request aborts generation; later sections are not requested and the call
// is not retried. Fewer than five prompts per section is accepted as is.
func (g *Generator) Generate(ctx context.Context, text string) (SectionPrompts, error) {
	result := NewSectionPrompts()

	for _, section := range Sections {
		g.logger.Debug("Generating image prompts", logging.Section(string(section)))

		raw, err := g.client.Complete(ctx, BuildPayload(text, section))
		if err != nil {
			if !errors.Is(err, ErrCompletionFailed) {
				err = fmt.Errorf("%w: %v", ErrCompletionFailed, err)
			}
			return nil, fmt.Errorf("section %s: %w", section, err)
		}
		g.logger.Debug("Raw completion",
			logging.Section(string(section)),
			zap.String("completion", raw))

		prompts := ParseCompletion(raw)
		if len(prompts) < 5 {
			g.logger.Warn("Completion returned fewer than five prompts",
				logging.Section(string(section)),
				zap.Int("count", len(prompts)))
		}
		result[section] = append(result[section], prompts...)
	}

	return result, nil
}
