package actors

import (
	"context"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"

	"broad-forum/internal/ai"
	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

func spawnAssistantActor(t *testing.T, assistant ai.Assistant) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewAssistantActor(assistant, time.Second, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props)
}

// gatedAssistant blocks Ask until released, so tests can control when
// the reply lands.
type gatedAssistant struct {
	release chan struct{}
	reply   string
}

func (g *gatedAssistant) Ask(ctx context.Context, query string) string {
	<-g.release
	return g.reply
}

func (g *gatedAssistant) Summarize(ctx context.Context, title, content string) string {
	return g.reply
}

func (g *gatedAssistant) Polish(ctx context.Context, draft string) string { return g.reply }

func (g *gatedAssistant) GenerateComment(ctx context.Context, title, content string) (string, error) {
	return g.reply, nil
}

func transcript(t *testing.T, system *actor.ActorSystem, pid *actor.PID) *TranscriptState {
	t.Helper()
	return request(t, system, pid, &GetTranscriptMsg{}).(*TranscriptState)
}

func TestAskAppendsUserMessageAndReply(t *testing.T) {
	system, pid := spawnAssistantActor(t, &ai.Canned{Reply: "42"})

	state := request(t, system, pid, &AskAssistantMsg{Query: "what is the answer"}).(*TranscriptState)
	assert.True(t, state.Loading)
	assert.Len(t, state.Messages, 1)
	assert.Equal(t, models.RoleUser, state.Messages[0].Role)

	assert.Eventually(t, func() bool {
		s := transcript(t, system, pid)
		return !s.Loading && len(s.Messages) == 2
	}, 2*time.Second, 10*time.Millisecond)

	s := transcript(t, system, pid)
	assert.Equal(t, models.RoleAssistant, s.Messages[1].Role)
	assert.Equal(t, "42", s.Messages[1].Content)
}

func TestFailureBecomesApologyText(t *testing.T) {
	system, pid := spawnAssistantActor(t, &ai.Canned{Fail: true})

	request(t, system, pid, &AskAssistantMsg{Query: "anything"})

	assert.Eventually(t, func() bool {
		s := transcript(t, system, pid)
		return !s.Loading && len(s.Messages) == 2
	}, 2*time.Second, 10*time.Millisecond)

	s := transcript(t, system, pid)
	assert.Equal(t, ai.UnavailableReply, s.Messages[1].Content)
}

func TestStartChatDropsInFlightReply(t *testing.T) {
	gated := &gatedAssistant{release: make(chan struct{}), reply: "late"}
	system, pid := spawnAssistantActor(t, gated)

	request(t, system, pid, &AskAssistantMsg{Query: "slow question"})

	// Reset while the call is still in flight.
	state := request(t, system, pid, &StartChatMsg{}).(*TranscriptState)
	assert.Empty(t, state.Messages)
	assert.False(t, state.Loading)

	close(gated.release)

	// The stale reply never shows up in the fresh transcript.
	time.Sleep(200 * time.Millisecond)
	s := transcript(t, system, pid)
	assert.Empty(t, s.Messages)
	assert.False(t, s.Loading)
}

func TestGenerateCommentDeliversToFeed(t *testing.T) {
	system := actor.NewActorSystem()
	st := store.NewStore()
	metrics := utils.NewMetricsCollector()

	feedPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewFeedActor(st, metrics)
	}))
	assistantPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewAssistantActor(&ai.Canned{Comment: "Solid analysis."}, time.Second, metrics)
	}))

	post := st.HomePosts()[0]
	system.Root.Send(assistantPID, &GenerateCommentMsg{
		PostID:  post.ID,
		Title:   post.Title,
		Content: post.Content,
		ReplyTo: feedPID,
	})

	assert.Eventually(t, func() bool {
		comments := request(t, system, feedPID, &GetCommentsMsg{PostID: post.ID}).([]models.Comment)
		for _, c := range comments {
			if c.Author == AIAuthor && c.Content == "Solid analysis." {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGenerateCommentFailureIsSilent(t *testing.T) {
	system := actor.NewActorSystem()
	st := store.NewStore()
	metrics := utils.NewMetricsCollector()

	feedPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewFeedActor(st, metrics)
	}))
	assistantPID := system.Root.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return NewAssistantActor(&ai.Canned{Fail: true}, time.Second, metrics)
	}))

	post := st.HomePosts()[0]
	system.Root.Send(assistantPID, &GenerateCommentMsg{
		PostID:  post.ID,
		Title:   post.Title,
		Content: post.Content,
		ReplyTo: feedPID,
	})

	time.Sleep(200 * time.Millisecond)
	comments := request(t, system, feedPID, &GetCommentsMsg{PostID: post.ID}).([]models.Comment)
	for _, c := range comments {
		assert.NotEqual(t, AIAuthor, c.Author)
	}
}
