// Package assistant forwards free-text kitchen questions to a hosted
// language model. It is an optional surface for everything the local
// duty engine does not cover; duty questions themselves never reach it.
package assistant

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const systemPrompt = "You are a helpful assistant for a restaurant kitchen " +
	"operations dashboard. Answer questions about cooking, food safety and " +
	"kitchen management concisely."

// Assistant lazily initializes and caches the hosted model client.
type Assistant struct {
	model string

	mu       sync.Mutex
	instance llms.LLM
}

// New creates an assistant for the given model name.
func New(model string) *Assistant {
	return &Assistant{model: model}
}

// Chat sends one free-text message to the hosted model.
func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	model, err := a.getModel()
	if err != nil {
		return "", err
	}
	return llms.GenerateFromSinglePrompt(ctx, model, systemPrompt+"\n\nUser: "+message)
}

func (a *Assistant) getModel() (llms.LLM, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.instance != nil {
		return a.instance, nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	llm, err := openai.New(
		openai.WithModel(a.model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI model: %w", err)
	}
	a.instance = llm
	return llm, nil
}
