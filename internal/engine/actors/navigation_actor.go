package actors

import (
	"log"

	"github.com/asynkron/protoactor-go/actor"

	"broad-forum/internal/models"
)

// View is the closed set of screens the client can show. Detail views
// carry the entity they present, so an empty detail screen cannot be
// represented.
type View interface {
	ViewName() string
}

type (
	HomeView            struct{}
	PopularView         struct{}
	CommunitiesView     struct{}
	AppStoreView        struct{}
	AppManageView       struct{}
	SettingsView        struct{}
	ChatView            struct{}
	PostDetailView      struct{ Post models.Post }
	CommunityDetailView struct{ Community models.Community }
)

func (HomeView) ViewName() string            { return "home" }
func (PopularView) ViewName() string         { return "popular" }
func (CommunitiesView) ViewName() string     { return "communities" }
func (AppStoreView) ViewName() string        { return "appstore" }
func (AppManageView) ViewName() string       { return "appmanage" }
func (SettingsView) ViewName() string        { return "settings" }
func (ChatView) ViewName() string            { return "chat" }
func (PostDetailView) ViewName() string      { return "post_detail" }
func (CommunityDetailView) ViewName() string { return "community_detail" }

// ScrollBehavior mirrors the scroll reset the web shell performed on
// each transition.
type ScrollBehavior string

const (
	ScrollNone   ScrollBehavior = "none"
	ScrollAuto   ScrollBehavior = "auto"
	ScrollSmooth ScrollBehavior = "smooth"
)

// Message types for navigation operations
type (
	NavigateMsg struct {
		View View
	}

	OpenPostMsg struct {
		Post models.Post
	}

	OpenCommunityMsg struct {
		Community models.Community
	}

	BackMsg struct{}

	SetSortMsg struct {
		Sort models.SortMode
	}

	ToggleMobileNavMsg struct{}

	GetNavStateMsg struct{}
)

// NavState is a snapshot of everything a shell needs to render chrome
type NavState struct {
	View             View
	CommunityContext *models.Community
	Sort             models.SortMode
	MobileNavOpen    bool
	Scroll           ScrollBehavior
	Generation       uint64
}

// NavigationActor is the view-selection state machine. It keeps a
// single community slot as back context for post detail; the slot is
// only ever overwritten by opening a community, never cleared by plain
// navigation. That makes back-from-post go to the most recently viewed
// community even when the post was opened from home.
type NavigationActor struct {
	view             View
	communityContext *models.Community
	sort             models.SortMode
	mobileNavOpen    bool
	lastScroll       ScrollBehavior
	generation       uint64
}

func NewNavigationActor() actor.Actor {
	return &NavigationActor{
		view:       HomeView{},
		sort:       models.DefaultSort,
		lastScroll: ScrollNone,
	}
}

func (a *NavigationActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("NavigationActor started")

	case *NavigateMsg:
		a.handleNavigate(context, msg)

	case *OpenPostMsg:
		a.view = PostDetailView{Post: msg.Post}
		a.lastScroll = ScrollSmooth
		a.generation++
		context.Respond(a.snapshot())

	case *OpenCommunityMsg:
		a.communityContext = &msg.Community
		a.view = CommunityDetailView{Community: msg.Community}
		a.lastScroll = ScrollAuto
		a.generation++
		context.Respond(a.snapshot())

	case *BackMsg:
		a.handleBack(context)

	case *SetSortMsg:
		a.sort = msg.Sort
		context.Respond(a.snapshot())

	case *ToggleMobileNavMsg:
		a.mobileNavOpen = !a.mobileNavOpen
		context.Respond(a.snapshot())

	case *GetNavStateMsg:
		context.Respond(a.snapshot())
	}
}

func (a *NavigationActor) handleNavigate(context actor.Context, msg *NavigateMsg) {
	a.view = msg.View
	// Leaving a detail view drops its post structurally; the community
	// context slot stays put.
	a.sort = models.DefaultSort
	a.mobileNavOpen = false
	a.lastScroll = ScrollAuto
	a.generation++
	log.Printf("NavigationActor: navigated to %s", msg.View.ViewName())
	context.Respond(a.snapshot())
}

func (a *NavigationActor) handleBack(context actor.Context) {
	if _, ok := a.view.(PostDetailView); !ok {
		// Back is only meaningful from post detail.
		context.Respond(a.snapshot())
		return
	}

	if a.communityContext != nil {
		a.view = CommunityDetailView{Community: *a.communityContext}
		a.lastScroll = ScrollNone
		a.generation++
		context.Respond(a.snapshot())
		return
	}

	a.view = HomeView{}
	a.sort = models.DefaultSort
	a.mobileNavOpen = false
	a.lastScroll = ScrollAuto
	a.generation++
	context.Respond(a.snapshot())
}

func (a *NavigationActor) snapshot() *NavState {
	state := &NavState{
		View:          a.view,
		Sort:          a.sort,
		MobileNavOpen: a.mobileNavOpen,
		Scroll:        a.lastScroll,
		Generation:    a.generation,
	}
	if a.communityContext != nil {
		c := *a.communityContext
		state.CommunityContext = &c
	}
	return state
}
