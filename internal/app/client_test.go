package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"broad-forum/internal/ai"
	"broad-forum/internal/config"
	"broad-forum/internal/engine/actors"
	"broad-forum/internal/forms"
	"broad-forum/internal/models"
	"broad-forum/internal/utils"
)

func newTestClient(t *testing.T, assistant ai.Assistant) *Client {
	t.Helper()
	cfg := &config.Config{
		AI:        config.DefaultAIConfig(),
		JWTSecret: "test-secret",
	}
	client := NewClient(cfg, assistant)
	t.Cleanup(client.Shutdown)
	return client
}

func TestIntegrationFlow(t *testing.T) {
	client := newTestClient(t, &ai.Canned{Reply: "Sure, here you go.", Comment: "Good point about storage."})

	// Step 1: A visitor browses the home feed.
	home, err := client.Feed(actors.FeedHome, models.SortBest)
	assert.NoError(t, err)
	assert.NotEmpty(t, home)
	post := home[0]

	// Step 2: Joining a community while signed out surfaces the login prompt.
	community := client.Communities()[0]
	_, err = client.ToggleJoin(community.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsLoginPrompt(err))

	// Step 3: The demo account signs in.
	session, err := client.Login(forms.LoginForm{Username: "user_99", Password: actors.DemoPassword})
	assert.NoError(t, err)
	assert.True(t, session.LoggedIn)
	assert.NotEmpty(t, session.Token)

	// Step 4: Joining now works.
	joinResult, err := client.ToggleJoin(community.ID)
	assert.NoError(t, err)
	assert.True(t, joinResult.Joined)

	joined, err := client.JoinedCommunities()
	assert.NoError(t, err)
	assert.Len(t, joined, 1)

	// Step 5: Open the post; the detail view carries it and an AI
	// comment gets requested in the background.
	navState, err := client.OpenPost(post)
	assert.NoError(t, err)
	detail, ok := navState.View.(actors.PostDetailView)
	if !ok {
		t.Fatalf("expected post detail, got %s", navState.View.ViewName())
	}
	assert.Equal(t, post.ID, detail.Post.ID)

	assert.Eventually(t, func() bool {
		comments, err := client.Comments(post.ID)
		if err != nil {
			return false
		}
		for _, c := range comments {
			if c.Author == actors.AIAuthor {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	// Step 6: Vote the post up and back to neutral.
	voteResult, err := client.VotePost(post.ID, models.VoteUp)
	assert.NoError(t, err)
	assert.Equal(t, post.Upvotes+1, voteResult.Count)

	voteResult, err = client.VotePost(post.ID, models.VoteUp)
	assert.NoError(t, err)
	assert.Equal(t, post.Upvotes, voteResult.Count)
	assert.Equal(t, models.VoteNone, voteResult.Direction)

	// Step 7: Comment on the post as the signed-in user.
	comment, err := client.AddComment(post.ID, "Agreed, the cost data is the key part.")
	assert.NoError(t, err)
	assert.Equal(t, "User_99", comment.Author)

	// Step 8: Create a post through the validated draft.
	created, err := client.CreatePost(forms.PostDraft{
		Title:       "Retrofit results from our pilot building",
		Summary:     "Energy use down 38%.",
		Content:     "Full measurement methodology inside.",
		CommunityID: community.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, community.Name, created.CommunityName)

	// Step 9: Chat with the assistant.
	_, err = client.Navigate(actors.ChatView{})
	assert.NoError(t, err)

	_, err = client.AskAssistant("What is BROADFORUM?")
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		state, err := client.Transcript()
		return err == nil && !state.Loading && len(state.Messages) == 2
	}, 2*time.Second, 10*time.Millisecond)

	state, err := client.Transcript()
	assert.NoError(t, err)
	assert.Equal(t, "Sure, here you go.", state.Messages[1].Content)

	// Step 10: Submit an app, then log out; membership is gone.
	app, err := client.SubmitApp(forms.AppDraft{Name: "Pilot Dashboard", URL: "pilot.example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "https://pilot.example.com", app.URL)
	assert.Equal(t, models.AppTypeCommunity, app.Type)

	assert.NoError(t, client.Logout())

	joined, err = client.JoinedCommunities()
	assert.NoError(t, err)
	assert.Empty(t, joined)

	// The created post is still there for the rest of the session.
	posts, err := client.CommunityPosts(community.Name)
	assert.NoError(t, err)
	found := false
	for _, p := range posts {
		if p.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGatedOperationsRequireSession(t *testing.T) {
	client := newTestClient(t, &ai.Canned{})
	post := client.Store.HomePosts()[0]

	_, err := client.AddComment(post.ID, "hello")
	assert.True(t, utils.IsLoginPrompt(err))

	_, err = client.CreatePost(forms.PostDraft{})
	assert.True(t, utils.IsLoginPrompt(err))

	_, err = client.SubmitApp(forms.AppDraft{Name: "X", URL: "x.example.com"})
	assert.True(t, utils.IsLoginPrompt(err))
}

func TestRegisterThroughFacade(t *testing.T) {
	client := newTestClient(t, &ai.Canned{})

	form := forms.RegisterForm{
		Username:        "fresh",
		DisplayName:     "Fresh User",
		Password:        "password123",
		ConfirmPassword: "password123",
		CaptchaInput:    client.Captcha().Code(),
		Agreed:          true,
	}
	session, err := client.Register(form)
	assert.NoError(t, err)
	assert.True(t, session.LoggedIn)
	assert.Equal(t, "Fresh User", session.DisplayName)
}

func TestRegisterBadCaptchaRegenerates(t *testing.T) {
	client := newTestClient(t, &ai.Canned{})

	before := client.Captcha().Code()
	wrong := "0000"
	if before == wrong {
		wrong = "0001"
	}

	_, err := client.Register(forms.RegisterForm{
		Username:        "fresh",
		DisplayName:     "Fresh User",
		Password:        "password123",
		ConfirmPassword: "password123",
		CaptchaInput:    wrong,
		Agreed:          true,
	})
	assert.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrCaptchaMismatch))
}

func TestSummarizeAndPolishNeverFail(t *testing.T) {
	client := newTestClient(t, &ai.Canned{Fail: true})
	post := client.Store.HomePosts()[0]

	assert.Equal(t, ai.SummaryFailed, client.SummarizePost(post))
	assert.Equal(t, ai.UnavailableReply, client.PolishDraft("draft text"))
}

func TestAppManagementLifecycle(t *testing.T) {
	client := newTestClient(t, &ai.Canned{})

	_, err := client.Login(forms.LoginForm{Username: "user_99", Password: actors.DemoPassword})
	assert.NoError(t, err)

	submitted, err := client.SubmitApp(forms.AppDraft{
		Name:        "Grid Monitor",
		URL:         "grid.example.com",
		Description: "Realtime load dashboards.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://grid.example.com", submitted.URL)
	assert.Equal(t, models.AppTypeCommunity, submitted.Type)

	updated, err := client.UpdateApp(submitted.ID, "Grid Monitor Pro", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "Grid Monitor Pro", updated.Name)
	assert.Equal(t, submitted.URL, updated.URL)

	assert.NoError(t, client.DeleteApp(submitted.ID))

	apps, err := client.Apps(actors.AppFilterCommunity)
	assert.NoError(t, err)
	assert.Empty(t, apps)

	official := client.Store.Apps()[0]
	_, err = client.UpdateApp(official.ID, "Renamed", "", "")
	assert.True(t, utils.IsErrorCode(err, utils.ErrForbidden))
}

func TestProfileUpdateThroughFacade(t *testing.T) {
	client := newTestClient(t, &ai.Canned{})

	profile := models.Profile{DisplayName: "User_99", Bio: "New bio"}
	_, err := client.UpdateProfile(profile)
	assert.True(t, utils.IsLoginPrompt(err))

	_, err = client.Login(forms.LoginForm{Username: "user_99", Password: actors.DemoPassword})
	assert.NoError(t, err)

	saved, err := client.UpdateProfile(profile)
	assert.NoError(t, err)
	assert.Equal(t, "New bio", saved.Bio)

	current, err := client.Profile()
	assert.NoError(t, err)
	assert.Equal(t, "New bio", current.Bio)
	assert.Empty(t, current.Email)
}
