package engine

import (
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"broad-forum/internal/ai"
	"broad-forum/internal/auth"
	"broad-forum/internal/engine/actors"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

// Engine spawns the client's actors and hands out their PIDs
type Engine struct {
	sessionActor    *protoactor.PID
	navigationActor *protoactor.PID
	feedActor       *protoactor.PID
	directoryActor  *protoactor.PID
	assistantActor  *protoactor.PID
}

func NewEngine(
	system *protoactor.ActorSystem,
	st *store.Store,
	issuer *auth.TokenIssuer,
	assistant ai.Assistant,
	aiTimeout time.Duration,
	metrics *utils.MetricsCollector,
) *Engine {
	context := system.Root

	sessionProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewSessionActor(st, issuer, metrics)
	})
	sessionPID := context.Spawn(sessionProps)

	navigationProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewNavigationActor()
	})
	navigationPID := context.Spawn(navigationProps)

	feedProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewFeedActor(st, metrics)
	})
	feedPID := context.Spawn(feedProps)

	directoryProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewAppDirectoryActor(st, metrics)
	})
	directoryPID := context.Spawn(directoryProps)

	assistantProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewAssistantActor(assistant, aiTimeout, metrics)
	})
	assistantPID := context.Spawn(assistantProps)

	return &Engine{
		sessionActor:    sessionPID,
		navigationActor: navigationPID,
		feedActor:       feedPID,
		directoryActor:  directoryPID,
		assistantActor:  assistantPID,
	}
}

// GetSessionActor returns the PID of the session actor
func (e *Engine) GetSessionActor() *protoactor.PID {
	return e.sessionActor
}

// GetNavigationActor returns the PID of the navigation actor
func (e *Engine) GetNavigationActor() *protoactor.PID {
	return e.navigationActor
}

// GetFeedActor returns the PID of the feed actor
func (e *Engine) GetFeedActor() *protoactor.PID {
	return e.feedActor
}

// GetDirectoryActor returns the PID of the app directory actor
func (e *Engine) GetDirectoryActor() *protoactor.PID {
	return e.directoryActor
}

// GetAssistantActor returns the PID of the assistant actor
func (e *Engine) GetAssistantActor() *protoactor.PID {
	return e.assistantActor
}
