package actors

import (
	"context"
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"broad-forum/internal/ai"
	"broad-forum/internal/models"
	"broad-forum/internal/utils"
)

// Message types for assistant operations
type (
	// StartChatMsg resets the transcript, as if the chat view had been
	// freshly mounted.
	StartChatMsg struct{}

	AskAssistantMsg struct {
		Query string
	}

	GetTranscriptMsg struct{}

	// GenerateCommentMsg asks for a best-effort AI comment on a post.
	// On success the result is sent to ReplyTo as AddGeneratedCommentMsg;
	// on failure nothing happens.
	GenerateCommentMsg struct {
		PostID  uuid.UUID
		Title   string
		Content string
		ReplyTo *actor.PID
	}

	// assistantReplyMsg carries a finished network call back onto the
	// mailbox. Replies from a previous chat generation are discarded.
	assistantReplyMsg struct {
		generation uint64
		text       string
	}
)

// TranscriptState is the chat view's render input
type TranscriptState struct {
	Messages []models.ChatMessage
	Loading  bool
}

// AssistantActor owns the chat transcript and serializes access to it.
// Network calls run off the mailbox so the actor stays responsive; each
// reply is tagged with the generation it was requested under, and a
// reset in between makes the reply stale.
type AssistantActor struct {
	assistant  ai.Assistant
	timeout    time.Duration
	metrics    *utils.MetricsCollector
	transcript []models.ChatMessage
	generation uint64
	loading    bool
}

func NewAssistantActor(assistant ai.Assistant, timeout time.Duration, metrics *utils.MetricsCollector) actor.Actor {
	return &AssistantActor{
		assistant: assistant,
		timeout:   timeout,
		metrics:   metrics,
	}
}

func (a *AssistantActor) Receive(actorCtx actor.Context) {
	switch msg := actorCtx.Message().(type) {
	case *actor.Started:
		log.Printf("AssistantActor started")

	case *StartChatMsg:
		a.transcript = nil
		a.loading = false
		a.generation++
		actorCtx.Respond(a.state())

	case *AskAssistantMsg:
		a.handleAsk(actorCtx, msg)

	case *GetTranscriptMsg:
		actorCtx.Respond(a.state())

	case *assistantReplyMsg:
		a.handleReply(msg)

	case *GenerateCommentMsg:
		a.handleGenerateComment(actorCtx, msg)
	}
}

func (a *AssistantActor) state() *TranscriptState {
	messages := make([]models.ChatMessage, len(a.transcript))
	copy(messages, a.transcript)
	return &TranscriptState{Messages: messages, Loading: a.loading}
}

func (a *AssistantActor) handleAsk(actorCtx actor.Context, msg *AskAssistantMsg) {
	startTime := time.Now()

	a.transcript = append(a.transcript, models.ChatMessage{
		Role:    models.RoleUser,
		Content: msg.Query,
		SentAt:  time.Now(),
	})
	a.loading = true

	generation := a.generation
	self := actorCtx.Self()
	system := actorCtx.ActorSystem()
	assistant := a.assistant
	timeout := a.timeout

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text := assistant.Ask(ctx, msg.Query)
		system.Root.Send(self, &assistantReplyMsg{generation: generation, text: text})
	}()

	a.metrics.AddOperationLatency("ask_assistant", time.Since(startTime))
	actorCtx.Respond(a.state())
}

func (a *AssistantActor) handleReply(msg *assistantReplyMsg) {
	if msg.generation != a.generation {
		// The chat was reset while the call was in flight.
		log.Printf("AssistantActor: dropping stale reply (generation %d, now %d)", msg.generation, a.generation)
		return
	}
	a.loading = false
	a.transcript = append(a.transcript, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: msg.text,
		SentAt:  time.Now(),
	})
}

func (a *AssistantActor) handleGenerateComment(actorCtx actor.Context, msg *GenerateCommentMsg) {
	replyTo := msg.ReplyTo
	system := actorCtx.ActorSystem()
	assistant := a.assistant
	timeout := a.timeout
	postID := msg.PostID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := assistant.GenerateComment(ctx, msg.Title, msg.Content)
		if err != nil {
			// Best effort only.
			return
		}
		system.Root.Send(replyTo, &AddGeneratedCommentMsg{PostID: postID, Content: text})
	}()
}
