// Package generator turns a free-text prompt into a diagram through a completion provider.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	llmHandlers "process-maps-backend/internal/llm_handlers"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrNoContent     = errors.New("no content generated")
	ErrNotJSONObject = errors.New("completion is not a JSON object")
	ErrNoProvider    = errors.New("no completion provider configured")
)

type Generator struct {
	llmClient llmHandlers.Client
}

func New(client llmHandlers.Client) *Generator {
	return &Generator{llmClient: client}
}

// Generate asks the provider for a diagram and returns its JSON object untouched.
// The node/edge structure is not checked; callers merging it must tolerate malformed output.
func (g *Generator) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if g.llmClient == nil {
		return nil, ErrNoProvider
	}

	messages := []llmHandlers.Message{{Role: llmHandlers.RoleUser, Content: prompt}}
	response, err := g.llmClient.Chat(ctx, SystemPrompt, messages)
	if err != nil {
		return nil, fmt.Errorf("LLM chat error: %w", err)
	}

	return parseDiagram(response)
}

func parseDiagram(response string) (json.RawMessage, error) {
	content := stripCodeFence(response)
	if content == "" {
		return nil, ErrNoContent
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &object); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}
	if object == nil {
		return nil, ErrNotJSONObject
	}
	return json.RawMessage(content), nil
}

// stripCodeFence removes a surrounding ```json fence some providers add despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
