package core

import (
	"github.com/sashabaranov/go-openai"
)

// NewOpenAIClient builds a completion client from the configured token and base URL.
// An empty OpenAIBaseURL keeps the library default (https://api.openai.com/v1).
func NewOpenAIClient(cfg *Config) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.OpenAIToken)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}
