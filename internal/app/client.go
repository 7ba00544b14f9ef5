// Package app is the single entry point front ends talk to. It owns
// the actor system wiring and converts actor responses into plain
// results and errors.
package app

import (
	"context"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"broad-forum/internal/ai"
	"broad-forum/internal/auth"
	"broad-forum/internal/config"
	"broad-forum/internal/engine"
	"broad-forum/internal/engine/actors"
	"broad-forum/internal/forms"
	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

// DefaultRequestTimeout bounds every actor round trip.
const DefaultRequestTimeout = 5 * time.Second

// Client dispatches every user interaction to the engine. All state
// lives behind the actors; the client itself holds only wiring and the
// registration captcha.
type Client struct {
	System         *protoactor.ActorSystem
	Context        *protoactor.RootContext
	Engine         *engine.Engine
	Store          *store.Store
	Metrics        *utils.MetricsCollector
	Assistant      ai.Assistant
	RequestTimeout time.Duration

	aiTimeout time.Duration
	captcha   *forms.Captcha
}

// NewClient wires the store, the actors and the assistant together.
func NewClient(cfg *config.Config, assistant ai.Assistant) *Client {
	system := protoactor.NewActorSystem()
	st := store.NewStore()
	metrics := utils.NewMetricsCollector()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret)

	eng := engine.NewEngine(system, st, issuer, assistant, cfg.AI.Timeout, metrics)

	return &Client{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Store:          st,
		Metrics:        metrics,
		Assistant:      assistant,
		RequestTimeout: DefaultRequestTimeout,
		aiTimeout:      cfg.AI.Timeout,
		captcha:        forms.NewCaptcha(),
	}
}

// ask sends a request to an actor and unwraps AppError responses.
func (c *Client) ask(pid *protoactor.PID, msg interface{}) (interface{}, error) {
	c.Metrics.IncrementRequests()

	future := c.Context.RequestFuture(pid, msg, c.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		c.Metrics.IncrementErrors()
		return nil, utils.NewActorTimeoutError(pid.String())
	}
	if appErr, ok := result.(*utils.AppError); ok {
		c.Metrics.IncrementErrors()
		return nil, appErr
	}
	return result, nil
}

// Captcha exposes the registration challenge for rendering.
func (c *Client) Captcha() *forms.Captcha {
	return c.captcha
}

// --- Session ---

func (c *Client) Login(form forms.LoginForm) (*actors.SessionState, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.LoginMsg{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}
	return result.(*actors.SessionState), nil
}

func (c *Client) Register(form forms.RegisterForm) (*actors.SessionState, error) {
	if err := form.Validate(c.captcha); err != nil {
		return nil, err
	}
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.RegisterMsg{
		Username:    form.Username,
		DisplayName: form.DisplayName,
		Password:    form.Password,
	})
	if err != nil {
		return nil, err
	}
	return result.(*actors.SessionState), nil
}

func (c *Client) Logout() error {
	if _, err := c.ask(c.Engine.GetSessionActor(), &actors.LogoutMsg{}); err != nil {
		return err
	}
	// The web shell lands on home after logout.
	_, err := c.Navigate(actors.HomeView{})
	return err
}

func (c *Client) Session() (*actors.SessionState, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.GetSessionMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.SessionState), nil
}

func (c *Client) Profile() (models.Profile, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.GetProfileMsg{})
	if err != nil {
		return models.Profile{}, err
	}
	return result.(models.Profile), nil
}

func (c *Client) UpdateProfile(profile models.Profile) (models.Profile, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.UpdateProfileMsg{Profile: profile})
	if err != nil {
		return models.Profile{}, err
	}
	return result.(models.Profile), nil
}

func (c *Client) ToggleJoin(communityID uuid.UUID) (*actors.JoinResult, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.ToggleJoinMsg{CommunityID: communityID})
	if err != nil {
		return nil, err
	}
	return result.(*actors.JoinResult), nil
}

func (c *Client) JoinedCommunities() ([]models.Community, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.GetJoinedCommunitiesMsg{})
	if err != nil {
		return nil, err
	}
	return result.([]models.Community), nil
}

func (c *Client) IsJoined(communityID uuid.UUID) (bool, error) {
	result, err := c.ask(c.Engine.GetSessionActor(), &actors.IsJoinedMsg{CommunityID: communityID})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// requireSession returns the active session or the login-required
// error the UI turns into the login prompt.
func (c *Client) requireSession(action string) (*actors.SessionState, error) {
	session, err := c.Session()
	if err != nil {
		return nil, err
	}
	if !session.LoggedIn {
		return nil, utils.NewLoginRequiredError(action)
	}
	return session, nil
}

// --- Navigation ---

func (c *Client) Navigate(view actors.View) (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.NavigateMsg{View: view})
	if err != nil {
		return nil, err
	}
	// Entering the chat view remounts the conversation.
	if _, isChat := view.(actors.ChatView); isChat {
		if _, err := c.ask(c.Engine.GetAssistantActor(), &actors.StartChatMsg{}); err != nil {
			return nil, err
		}
	}
	return result.(*actors.NavState), nil
}

// OpenPost switches to the post's detail view and kicks off the
// one-time AI comment for it in the background.
func (c *Client) OpenPost(post models.Post) (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.OpenPostMsg{Post: post})
	if err != nil {
		return nil, err
	}

	needed, err := c.ask(c.Engine.GetFeedActor(), &actors.NeedsAICommentMsg{PostID: post.ID})
	if err == nil && needed == true {
		c.Context.Send(c.Engine.GetAssistantActor(), &actors.GenerateCommentMsg{
			PostID:  post.ID,
			Title:   post.Title,
			Content: post.Content,
			ReplyTo: c.Engine.GetFeedActor(),
		})
	}
	return result.(*actors.NavState), nil
}

func (c *Client) OpenCommunity(community models.Community) (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.OpenCommunityMsg{Community: community})
	if err != nil {
		return nil, err
	}
	return result.(*actors.NavState), nil
}

func (c *Client) Back() (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.BackMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.NavState), nil
}

func (c *Client) SetSort(sort models.SortMode) (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.SetSortMsg{Sort: sort})
	if err != nil {
		return nil, err
	}
	return result.(*actors.NavState), nil
}

func (c *Client) ToggleMobileNav() (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.ToggleMobileNavMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.NavState), nil
}

func (c *Client) NavState() (*actors.NavState, error) {
	result, err := c.ask(c.Engine.GetNavigationActor(), &actors.GetNavStateMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.NavState), nil
}

// --- Feeds, posts and comments ---

func (c *Client) Feed(kind actors.FeedKind, sort models.SortMode) ([]models.Post, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.GetFeedMsg{Feed: kind, Sort: sort})
	if err != nil {
		return nil, err
	}
	return result.([]models.Post), nil
}

func (c *Client) Search(query, communityName string) ([]models.Post, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.SearchPostsMsg{
		Query:         query,
		CommunityName: communityName,
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Post), nil
}

func (c *Client) CommunityPosts(name string) ([]models.Post, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.GetCommunityPostsMsg{Name: name})
	if err != nil {
		return nil, err
	}
	return result.([]models.Post), nil
}

func (c *Client) Post(postID uuid.UUID) (models.Post, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.GetPostMsg{PostID: postID})
	if err != nil {
		return models.Post{}, err
	}
	return result.(models.Post), nil
}

func (c *Client) VotePost(postID uuid.UUID, direction models.VoteDirection) (*actors.VoteResult, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.VotePostMsg{
		PostID:    postID,
		Direction: direction,
	})
	if err != nil {
		return nil, err
	}
	return result.(*actors.VoteResult), nil
}

func (c *Client) VoteComment(postID, commentID uuid.UUID, direction models.VoteDirection) (*actors.VoteResult, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.VoteCommentMsg{
		PostID:    postID,
		CommentID: commentID,
		Direction: direction,
	})
	if err != nil {
		return nil, err
	}
	return result.(*actors.VoteResult), nil
}

func (c *Client) Comments(postID uuid.UUID) ([]models.Comment, error) {
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.GetCommentsMsg{PostID: postID})
	if err != nil {
		return nil, err
	}
	return result.([]models.Comment), nil
}

func (c *Client) AddComment(postID uuid.UUID, content string) (models.Comment, error) {
	session, err := c.requireSession("post comment")
	if err != nil {
		return models.Comment{}, err
	}
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.AddCommentMsg{
		PostID:  postID,
		Author:  session.DisplayName,
		Content: content,
	})
	if err != nil {
		return models.Comment{}, err
	}
	return result.(models.Comment), nil
}

func (c *Client) CreatePost(draft forms.PostDraft) (models.Post, error) {
	session, err := c.requireSession("create post")
	if err != nil {
		return models.Post{}, err
	}
	if err := draft.Validate(); err != nil {
		return models.Post{}, err
	}
	result, err := c.ask(c.Engine.GetFeedActor(), &actors.CreatePostMsg{
		Title:       draft.Title,
		Summary:     draft.Summary,
		Content:     draft.Content,
		CommunityID: draft.CommunityID,
		Author:      session.DisplayName,
	})
	if err != nil {
		return models.Post{}, err
	}
	return result.(models.Post), nil
}

// --- App directory ---

func (c *Client) Apps(filter actors.AppFilter) ([]models.OpcApp, error) {
	result, err := c.ask(c.Engine.GetDirectoryActor(), &actors.ListAppsMsg{Filter: filter})
	if err != nil {
		return nil, err
	}
	return result.([]models.OpcApp), nil
}

func (c *Client) SubmitApp(draft forms.AppDraft) (models.OpcApp, error) {
	session, err := c.requireSession("submit app")
	if err != nil {
		return models.OpcApp{}, err
	}
	if err := draft.Validate(); err != nil {
		return models.OpcApp{}, err
	}
	result, err := c.ask(c.Engine.GetDirectoryActor(), &actors.SubmitAppMsg{
		Name:        draft.Name,
		URL:         draft.NormalizedURL(),
		Description: draft.Description,
		Author:      session.DisplayName,
	})
	if err != nil {
		return models.OpcApp{}, err
	}
	return result.(models.OpcApp), nil
}

func (c *Client) UpdateApp(appID uuid.UUID, name, url, description string) (models.OpcApp, error) {
	session, err := c.requireSession("edit app")
	if err != nil {
		return models.OpcApp{}, err
	}
	result, err := c.ask(c.Engine.GetDirectoryActor(), &actors.UpdateAppMsg{
		AppID:       appID,
		Requester:   session.DisplayName,
		Name:        name,
		URL:         url,
		Description: description,
	})
	if err != nil {
		return models.OpcApp{}, err
	}
	return result.(models.OpcApp), nil
}

func (c *Client) DeleteApp(appID uuid.UUID) error {
	session, err := c.requireSession("delete app")
	if err != nil {
		return err
	}
	_, err = c.ask(c.Engine.GetDirectoryActor(), &actors.DeleteAppMsg{
		AppID:     appID,
		Requester: session.DisplayName,
	})
	return err
}

// --- Assistant ---

func (c *Client) StartChat() (*actors.TranscriptState, error) {
	result, err := c.ask(c.Engine.GetAssistantActor(), &actors.StartChatMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.TranscriptState), nil
}

func (c *Client) AskAssistant(query string) (*actors.TranscriptState, error) {
	result, err := c.ask(c.Engine.GetAssistantActor(), &actors.AskAssistantMsg{Query: query})
	if err != nil {
		return nil, err
	}
	return result.(*actors.TranscriptState), nil
}

func (c *Client) Transcript() (*actors.TranscriptState, error) {
	result, err := c.ask(c.Engine.GetAssistantActor(), &actors.GetTranscriptMsg{})
	if err != nil {
		return nil, err
	}
	return result.(*actors.TranscriptState), nil
}

// SummarizePost is a synchronous single-turn call; the fallback
// strings from the assistant make it infallible.
func (c *Client) SummarizePost(post models.Post) string {
	ctx, cancel := context.WithTimeout(context.Background(), c.aiTimeout)
	defer cancel()
	return c.Assistant.Summarize(ctx, post.Title, post.Content)
}

func (c *Client) PolishDraft(text string) string {
	ctx, cancel := context.WithTimeout(context.Background(), c.aiTimeout)
	defer cancel()
	return c.Assistant.Polish(ctx, text)
}

// --- Introspection ---

// Communities reads straight from the store; the list is immutable.
func (c *Client) Communities() []models.Community {
	return c.Store.Communities()
}

// Stats reports operation latency summaries and the request counters.
func (c *Client) Stats() (map[string]utils.OperationStats, uint64, uint64) {
	return c.Metrics.Snapshot()
}

// Shutdown stops the actor system.
func (c *Client) Shutdown() {
	c.System.Shutdown()
}
