// Package completion is a thin OpenAI-compatible chat completion client used
// to turn assembled context into recommendations.
package completion

import "context"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Request contains the parameters for a completion request.
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Response contains the result of a completion request.
type Response struct {
	Content      string
	Model        string
	FinishReason string
	InputTokens  int
	OutputTokens int
}

// Provider sends completion requests.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}
