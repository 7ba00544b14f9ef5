package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// ErrDisabled is returned by best-effort calls when no API key is set.
var ErrDisabled = errors.New("assistant disabled: no API key configured")

// errEmptyResponse marks a call that succeeded but produced no text.
var errEmptyResponse = errors.New("empty response")

// Gemini talks to the Gemini API through the official client. Each call
// is single turn: the prompt carries all the context the model gets.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewAssistant returns a Gemini-backed assistant, or a disabled one
// when apiKey is empty. Client construction failure also degrades to
// the disabled assistant rather than blocking startup.
func NewAssistant(apiKey, model string) Assistant {
	if apiKey == "" {
		log.Printf("[AI] Gemini API key not found, AI features disabled")
		return disabled{}
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		log.Printf("[AI] Failed to create Gemini client: %v", err)
		return disabled{}
	}

	if model == "" {
		model = "gemini-3-flash-preview"
	}

	return &Gemini{client: client, model: model}
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func (g *Gemini) Ask(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(
		"You are a helpful assistant integrated into a community forum called BROADFORUM. "+
			"Answer the user's query concisely and helpfully. Query: %s", query)

	text, err := g.generate(ctx, prompt)
	if errors.Is(err, errEmptyResponse) {
		return EmptyReply
	}
	if err != nil {
		log.Printf("[AI] Ask failed: %v", err)
		return UnavailableReply
	}
	return text
}

func (g *Gemini) Summarize(ctx context.Context, title, content string) string {
	prompt := fmt.Sprintf(
		"Please summarize this forum post in one short paragraph. The forum is BROADFORUM. "+
			"Title: %q. Content: %q", title, content)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		log.Printf("[AI] Summarize failed: %v", err)
		return SummaryFailed
	}
	return text
}

func (g *Gemini) Polish(ctx context.Context, draft string) string {
	prompt := fmt.Sprintf(
		"Rewrite the following forum post draft so it reads clearly and politely. "+
			"Keep the meaning and roughly the same length. Return only the rewritten text. Draft: %s", draft)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		log.Printf("[AI] Polish failed: %v", err)
		return UnavailableReply
	}
	return text
}

func (g *Gemini) GenerateComment(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, thoughtful comment a forum reader might leave on this post. "+
			"One or two sentences, no preamble. Title: %q. Content: %q", title, content)

	return g.generate(ctx, prompt)
}
