// Package ai wraps the Gemini API behind an Assistant interface with
// fixed fallback replies. Conversational calls never return an error:
// a missing key or a failed request produces a canned string so the
// chat surface always has something to render.
package ai

import "context"

// Fallback replies shown when the assistant cannot answer.
const (
	MissingKeyReply  = "Please configure an API key to use AI features."
	UnavailableReply = "The AI service is temporarily unavailable. Please try again later."
	EmptyReply       = "No response generated."
	SummaryFailed    = "Summary generation failed."
)

// Assistant is the single-turn text generation surface the client uses.
// Ask, Summarize and Polish always return renderable text. GenerateComment
// is best effort and reports failure so callers can skip it quietly.
type Assistant interface {
	Ask(ctx context.Context, query string) string
	Summarize(ctx context.Context, title, content string) string
	Polish(ctx context.Context, draft string) string
	GenerateComment(ctx context.Context, title, content string) (string, error)
}

// disabled stands in when no API key is configured.
type disabled struct{}

func (disabled) Ask(ctx context.Context, query string) string { return MissingKeyReply }

func (disabled) Summarize(ctx context.Context, title, content string) string {
	return MissingKeyReply
}

func (disabled) Polish(ctx context.Context, draft string) string { return MissingKeyReply }

func (disabled) GenerateComment(ctx context.Context, title, content string) (string, error) {
	return "", ErrDisabled
}
