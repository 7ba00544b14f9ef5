package actors

import (
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

// AppFilter narrows the directory listing.
type AppFilter string

const (
	AppFilterAll       AppFilter = "all"
	AppFilterOfficial  AppFilter = "official"
	AppFilterCommunity AppFilter = "community"
)

// Message types for app directory operations
type (
	ListAppsMsg struct {
		Filter AppFilter
	}

	SubmitAppMsg struct {
		Name        string
		URL         string
		Description string
		Author      string
	}

	UpdateAppMsg struct {
		AppID       uuid.UUID
		Requester   string
		Name        string
		URL         string
		Description string
	}

	DeleteAppMsg struct {
		AppID     uuid.UUID
		Requester string
	}
)

// AppDirectoryActor owns the OPC app directory: the seeded official
// listings plus community submissions. Community apps belong to their
// author; only the author may edit or delete them, and official apps
// are immutable.
type AppDirectoryActor struct {
	apps    []models.OpcApp
	metrics *utils.MetricsCollector
}

func NewAppDirectoryActor(st *store.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &AppDirectoryActor{
		apps:    st.Apps(),
		metrics: metrics,
	}
}

func (a *AppDirectoryActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("AppDirectoryActor started")

	case *ListAppsMsg:
		a.handleList(context, msg)

	case *SubmitAppMsg:
		a.handleSubmit(context, msg)

	case *UpdateAppMsg:
		a.handleUpdate(context, msg)

	case *DeleteAppMsg:
		a.handleDelete(context, msg)
	}
}

func (a *AppDirectoryActor) handleList(context actor.Context, msg *ListAppsMsg) {
	out := make([]models.OpcApp, 0, len(a.apps))
	for _, app := range a.apps {
		switch msg.Filter {
		case AppFilterOfficial:
			if app.Type != models.AppTypeOfficial {
				continue
			}
		case AppFilterCommunity:
			if app.Type != models.AppTypeCommunity {
				continue
			}
		}
		out = append(out, app)
	}
	context.Respond(out)
}

func (a *AppDirectoryActor) handleSubmit(context actor.Context, msg *SubmitAppMsg) {
	startTime := time.Now()

	app := models.OpcApp{
		ID:          uuid.New(),
		Name:        msg.Name,
		Type:        models.AppTypeCommunity,
		URL:         msg.URL,
		Description: msg.Description,
		Author:      msg.Author,
		Stars:       0,
		CreatedAt:   time.Now(),
	}
	a.apps = append(a.apps, app)

	a.metrics.AddOperationLatency("submit_app", time.Since(startTime))
	log.Printf("AppDirectoryActor: %s submitted app %s", msg.Author, app.Name)
	context.Respond(app)
}

func (a *AppDirectoryActor) findApp(id uuid.UUID) (int, bool) {
	for i, app := range a.apps {
		if app.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (a *AppDirectoryActor) handleUpdate(context actor.Context, msg *UpdateAppMsg) {
	i, found := a.findApp(msg.AppID)
	if !found {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "app not found", nil))
		return
	}

	app := &a.apps[i]
	if app.Type == models.AppTypeOfficial || app.Author != msg.Requester {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "only the submitting author may edit this app", nil))
		return
	}

	if msg.Name != "" {
		app.Name = msg.Name
	}
	if msg.URL != "" {
		app.URL = msg.URL
	}
	if msg.Description != "" {
		app.Description = msg.Description
	}
	context.Respond(*app)
}

func (a *AppDirectoryActor) handleDelete(context actor.Context, msg *DeleteAppMsg) {
	i, found := a.findApp(msg.AppID)
	if !found {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "app not found", nil))
		return
	}

	app := a.apps[i]
	if app.Type == models.AppTypeOfficial || app.Author != msg.Requester {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "only the submitting author may delete this app", nil))
		return
	}

	a.apps = append(a.apps[:i], a.apps[i+1:]...)
	log.Printf("AppDirectoryActor: %s deleted app %s", msg.Requester, app.Name)
	context.Respond(true)
}
