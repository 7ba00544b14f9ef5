package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingKeyDisablesAssistant(t *testing.T) {
	a := NewAssistant("", "")

	assert.Equal(t, MissingKeyReply, a.Ask(context.Background(), "hello"))
	assert.Equal(t, MissingKeyReply, a.Summarize(context.Background(), "title", "content"))
	assert.Equal(t, MissingKeyReply, a.Polish(context.Background(), "draft"))

	_, err := a.GenerateComment(context.Background(), "title", "content")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestCannedFallbacks(t *testing.T) {
	a := &Canned{Fail: true}

	assert.Equal(t, UnavailableReply, a.Ask(context.Background(), "q"))
	assert.Equal(t, SummaryFailed, a.Summarize(context.Background(), "t", "c"))

	_, err := a.GenerateComment(context.Background(), "t", "c")
	assert.Error(t, err)
}

func TestCannedReplies(t *testing.T) {
	a := &Canned{Reply: "hi there", Comment: "nice post"}

	assert.Equal(t, "hi there", a.Ask(context.Background(), "q"))

	comment, err := a.GenerateComment(context.Background(), "t", "c")
	assert.NoError(t, err)
	assert.Equal(t, "nice post", comment)
}
