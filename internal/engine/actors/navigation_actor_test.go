package actors

import (
	"testing"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"

	"broad-forum/internal/models"
	"broad-forum/internal/store"
)

func spawnNavigationActor(t *testing.T) (*actor.ActorSystem, *actor.PID) {
	t.Helper()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(NewNavigationActor)
	return system, system.Root.Spawn(props)
}

func TestNavigateResetsSortAndScroll(t *testing.T) {
	system, pid := spawnNavigationActor(t)

	request(t, system, pid, &SetSortMsg{Sort: models.SortNew})
	request(t, system, pid, &ToggleMobileNavMsg{})

	state := request(t, system, pid, &NavigateMsg{View: PopularView{}}).(*NavState)
	assert.Equal(t, "popular", state.View.ViewName())
	assert.Equal(t, models.DefaultSort, state.Sort)
	assert.False(t, state.MobileNavOpen)
	assert.Equal(t, ScrollAuto, state.Scroll)
}

func TestOpenPostCarriesThePost(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	post := store.NewStore().HomePosts()[0]

	state := request(t, system, pid, &OpenPostMsg{Post: post}).(*NavState)
	detail, ok := state.View.(PostDetailView)
	if !ok {
		t.Fatalf("expected post detail, got %s", state.View.ViewName())
	}
	assert.Equal(t, post.ID, detail.Post.ID)
	assert.Equal(t, ScrollSmooth, state.Scroll)
}

func TestNavigateAwayDropsSelectedPost(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	post := store.NewStore().HomePosts()[0]

	request(t, system, pid, &OpenPostMsg{Post: post})
	state := request(t, system, pid, &NavigateMsg{View: HomeView{}}).(*NavState)

	_, isDetail := state.View.(PostDetailView)
	assert.False(t, isDetail)
}

func TestBackFromPostWithoutCommunityGoesHome(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	post := store.NewStore().HomePosts()[0]

	request(t, system, pid, &OpenPostMsg{Post: post})
	state := request(t, system, pid, &BackMsg{}).(*NavState)
	assert.Equal(t, "home", state.View.ViewName())
}

func TestBackFromPostReturnsToCommunity(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	st := store.NewStore()
	community := st.Communities()[0]
	post := st.HomePosts()[0]

	request(t, system, pid, &OpenCommunityMsg{Community: community})
	request(t, system, pid, &OpenPostMsg{Post: post})

	state := request(t, system, pid, &BackMsg{}).(*NavState)
	detail, ok := state.View.(CommunityDetailView)
	if !ok {
		t.Fatalf("expected community detail, got %s", state.View.ViewName())
	}
	assert.Equal(t, community.ID, detail.Community.ID)
}

// The community slot is never cleared by plain navigation, so a post
// opened from home still goes back to the last visited community.
func TestBackUsesStaleCommunityContext(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	st := store.NewStore()
	community := st.Communities()[0]
	post := st.HomePosts()[0]

	request(t, system, pid, &OpenCommunityMsg{Community: community})
	request(t, system, pid, &NavigateMsg{View: HomeView{}})
	request(t, system, pid, &OpenPostMsg{Post: post})

	state := request(t, system, pid, &BackMsg{}).(*NavState)
	detail, ok := state.View.(CommunityDetailView)
	if !ok {
		t.Fatalf("expected community detail, got %s", state.View.ViewName())
	}
	assert.Equal(t, community.ID, detail.Community.ID)
}

func TestBackOutsidePostDetailIsNoOp(t *testing.T) {
	system, pid := spawnNavigationActor(t)

	before := request(t, system, pid, &GetNavStateMsg{}).(*NavState)
	after := request(t, system, pid, &BackMsg{}).(*NavState)
	assert.Equal(t, before.View, after.View)
	assert.Equal(t, before.Generation, after.Generation)
}

func TestTransitionsBumpGeneration(t *testing.T) {
	system, pid := spawnNavigationActor(t)
	st := store.NewStore()

	start := request(t, system, pid, &GetNavStateMsg{}).(*NavState).Generation

	s1 := request(t, system, pid, &NavigateMsg{View: ChatView{}}).(*NavState).Generation
	assert.Greater(t, s1, start)

	s2 := request(t, system, pid, &OpenCommunityMsg{Community: st.Communities()[0]}).(*NavState).Generation
	assert.Greater(t, s2, s1)

	s3 := request(t, system, pid, &OpenPostMsg{Post: st.HomePosts()[0]}).(*NavState).Generation
	assert.Greater(t, s3, s2)
}
