package ai

import "context"

// Canned is an offline assistant that replays fixed strings. The
// simulator and tests use it to exercise the chat paths without
// network access.
type Canned struct {
	Reply   string
	Comment string
	Fail    bool
}

func (c *Canned) answer() string {
	if c.Fail {
		return UnavailableReply
	}
	if c.Reply == "" {
		return EmptyReply
	}
	return c.Reply
}

func (c *Canned) Ask(ctx context.Context, query string) string { return c.answer() }

func (c *Canned) Summarize(ctx context.Context, title, content string) string {
	if c.Fail {
		return SummaryFailed
	}
	return c.answer()
}

func (c *Canned) Polish(ctx context.Context, draft string) string { return c.answer() }

func (c *Canned) GenerateComment(ctx context.Context, title, content string) (string, error) {
	if c.Fail {
		return "", ErrDisabled
	}
	if c.Comment == "" {
		return "Interesting take, thanks for sharing the details.", nil
	}
	return c.Comment, nil
}
