package llmHandlers

import (
	"context"
	"time"
)

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// requestTimeout bounds a single completion call.
const requestTimeout = 60 * time.Second

type Message struct {
	Role    MessageRole
	Content string
}

// Client is a chat completion provider. Implementations ask the provider for a strict JSON
// answer where the API supports it.
type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
}
