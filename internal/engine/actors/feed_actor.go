package actors

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"broad-forum/internal/models"
	"broad-forum/internal/store"
	"broad-forum/internal/utils"
)

// FeedKind selects which seed feed to render.
type FeedKind string

const (
	FeedHome    FeedKind = "home"
	FeedPopular FeedKind = "popular"
)

// Message types for feed operations
type (
	GetFeedMsg struct {
		Feed FeedKind
		Sort models.SortMode
	}

	SearchPostsMsg struct {
		Query         string
		CommunityName string // empty searches everywhere
	}

	GetCommunityPostsMsg struct {
		Name string
	}

	GetPostMsg struct {
		PostID uuid.UUID
	}

	VotePostMsg struct {
		PostID    uuid.UUID
		Direction models.VoteDirection
	}

	VoteCommentMsg struct {
		PostID    uuid.UUID
		CommentID uuid.UUID
		Direction models.VoteDirection
	}

	GetCommentsMsg struct {
		PostID uuid.UUID
	}

	AddCommentMsg struct {
		PostID  uuid.UUID
		Author  string
		Content string
	}

	CreatePostMsg struct {
		Title       string
		Summary     string
		Content     string
		CommunityID uuid.UUID
		Author      string
	}

	// NeedsAICommentMsg asks whether a generated comment should be
	// requested for the post. Responds true exactly once per post.
	NeedsAICommentMsg struct {
		PostID uuid.UUID
	}

	// AddGeneratedCommentMsg delivers the assistant's comment. Sent
	// fire-and-forget, never responded to.
	AddGeneratedCommentMsg struct {
		PostID  uuid.UUID
		Content string
	}
)

// VoteResult carries the adjusted count and the viewer's new direction
type VoteResult struct {
	Count     int
	Direction models.VoteDirection
}

// AIAuthor names the assistant on generated comments.
const AIAuthor = "BroadAI"

type voteOverlay struct {
	direction models.VoteDirection
	delta     int
}

// FeedActor renders feeds from the read-only store plus session-local
// state: created posts, added comments, and per-entity vote overlays.
// Seed objects are never mutated; votes are deltas applied on the way
// out, so clearing a vote always lands back on the seed count.
type FeedActor struct {
	store   *store.Store
	metrics *utils.MetricsCollector

	localPosts   []models.Post
	postVotes    map[uuid.UUID]voteOverlay
	commentVotes map[uuid.UUID]voteOverlay
	userComments map[uuid.UUID][]models.Comment
	aiComments   map[uuid.UUID]*models.Comment
	aiRequested  map[uuid.UUID]bool
}

func NewFeedActor(st *store.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &FeedActor{
		store:        st,
		metrics:      metrics,
		postVotes:    make(map[uuid.UUID]voteOverlay),
		commentVotes: make(map[uuid.UUID]voteOverlay),
		userComments: make(map[uuid.UUID][]models.Comment),
		aiComments:   make(map[uuid.UUID]*models.Comment),
		aiRequested:  make(map[uuid.UUID]bool),
	}
}

func (a *FeedActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("FeedActor started")

	case *GetFeedMsg:
		a.handleGetFeed(context, msg)

	case *SearchPostsMsg:
		a.handleSearch(context, msg)

	case *GetCommunityPostsMsg:
		a.handleCommunityPosts(context, msg)

	case *GetPostMsg:
		a.handleGetPost(context, msg)

	case *VotePostMsg:
		a.handleVotePost(context, msg)

	case *VoteCommentMsg:
		a.handleVoteComment(context, msg)

	case *GetCommentsMsg:
		a.handleGetComments(context, msg)

	case *AddCommentMsg:
		a.handleAddComment(context, msg)

	case *CreatePostMsg:
		a.handleCreatePost(context, msg)

	case *NeedsAICommentMsg:
		if a.aiRequested[msg.PostID] {
			context.Respond(false)
			return
		}
		a.aiRequested[msg.PostID] = true
		context.Respond(true)

	case *AddGeneratedCommentMsg:
		a.handleAddGeneratedComment(msg)
	}
}

// overlayPost applies the session's vote delta and comment additions
// to a copy of the post.
func (a *FeedActor) overlayPost(p models.Post) models.Post {
	if ov, ok := a.postVotes[p.ID]; ok {
		p.Upvotes += ov.delta
	}
	p.CommentCount += len(a.userComments[p.ID])
	if a.aiComments[p.ID] != nil {
		p.CommentCount++
	}
	return p
}

func (a *FeedActor) allPosts() []models.Post {
	posts := a.store.AllPosts()
	posts = append(posts, a.localPosts...)
	for i := range posts {
		posts[i] = a.overlayPost(posts[i])
	}
	return posts
}

func sortPosts(posts []models.Post, mode models.SortMode) {
	switch mode {
	case models.SortNew:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	case models.SortHot:
		sort.SliceStable(posts, func(i, j int) bool {
			hoursI := time.Since(posts[i].CreatedAt).Hours()
			hoursJ := time.Since(posts[j].CreatedAt).Hours()
			scoreI := float64(posts[i].Upvotes) / (hoursI + 2.0)
			scoreJ := float64(posts[j].Upvotes) / (hoursJ + 2.0)
			return scoreI > scoreJ
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Upvotes > posts[j].Upvotes
		})
	}
}

func (a *FeedActor) handleGetFeed(context actor.Context, msg *GetFeedMsg) {
	startTime := time.Now()

	var posts []models.Post
	switch msg.Feed {
	case FeedPopular:
		posts = a.store.PopularPosts()
	default:
		posts = a.store.HomePosts()
		posts = append(posts, a.localPosts...)
	}
	for i := range posts {
		posts[i] = a.overlayPost(posts[i])
	}
	sortPosts(posts, msg.Sort)

	a.metrics.AddOperationLatency("get_feed", time.Since(startTime))
	context.Respond(posts)
}

func (a *FeedActor) handleSearch(context actor.Context, msg *SearchPostsMsg) {
	query := strings.ToLower(strings.TrimSpace(msg.Query))
	var matches []models.Post
	for _, p := range a.allPosts() {
		if msg.CommunityName != "" && p.CommunityName != msg.CommunityName {
			continue
		}
		if query == "" ||
			strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Content), query) {
			matches = append(matches, p)
		}
	}
	context.Respond(matches)
}

func (a *FeedActor) handleCommunityPosts(context actor.Context, msg *GetCommunityPostsMsg) {
	var posts []models.Post
	for _, p := range a.allPosts() {
		if p.CommunityName == msg.Name {
			posts = append(posts, p)
		}
	}
	context.Respond(posts)
}

func (a *FeedActor) findPost(id uuid.UUID) (models.Post, bool) {
	for _, p := range a.store.AllPosts() {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range a.localPosts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (a *FeedActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	p, ok := a.findPost(msg.PostID)
	if !ok {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "post not found", nil))
		return
	}
	context.Respond(a.overlayPost(p))
}

func (a *FeedActor) handleVotePost(context actor.Context, msg *VotePostMsg) {
	startTime := time.Now()

	p, ok := a.findPost(msg.PostID)
	if !ok {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "post not found", nil))
		return
	}

	ov := a.postVotes[msg.PostID]
	base := p.Upvotes + ov.delta
	count, direction := models.ApplyVote(base, ov.direction, msg.Direction)
	a.postVotes[msg.PostID] = voteOverlay{
		direction: direction,
		delta:     count - p.Upvotes,
	}

	a.metrics.AddOperationLatency("vote_post", time.Since(startTime))
	context.Respond(&VoteResult{Count: count, Direction: direction})
}

func (a *FeedActor) handleVoteComment(context actor.Context, msg *VoteCommentMsg) {
	var target *models.Comment
	for _, c := range a.commentsFor(msg.PostID) {
		if c.ID == msg.CommentID {
			comment := c
			target = &comment
			break
		}
	}
	if target == nil {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "comment not found", nil))
		return
	}

	ov := a.commentVotes[msg.CommentID]
	base := target.Upvotes
	count, direction := models.ApplyVote(base, ov.direction, msg.Direction)
	a.commentVotes[msg.CommentID] = voteOverlay{
		direction: direction,
		delta:     count - (base - ov.delta),
	}

	context.Respond(&VoteResult{Count: count, Direction: direction})
}

// commentsFor builds the rendered comment list: user additions first
// (newest prepended), then the AI comment, then the seeds. Vote
// overlays are applied to copies.
func (a *FeedActor) commentsFor(postID uuid.UUID) []models.Comment {
	var out []models.Comment
	out = append(out, a.userComments[postID]...)
	if ai := a.aiComments[postID]; ai != nil {
		out = append(out, *ai)
	}
	out = append(out, a.store.CommentsFor(postID)...)
	for i := range out {
		if ov, ok := a.commentVotes[out[i].ID]; ok {
			out[i].Upvotes += ov.delta
		}
	}
	return out
}

func (a *FeedActor) handleGetComments(context actor.Context, msg *GetCommentsMsg) {
	context.Respond(a.commentsFor(msg.PostID))
}

func (a *FeedActor) handleAddComment(context actor.Context, msg *AddCommentMsg) {
	startTime := time.Now()

	if _, ok := a.findPost(msg.PostID); !ok {
		context.Respond(utils.NewAppError(utils.ErrNotFound, "post not found", nil))
		return
	}
	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewValidationError("comment text is required"))
		return
	}

	comment := models.Comment{
		ID:      uuid.New(),
		PostID:  msg.PostID,
		Author:  msg.Author,
		Content: msg.Content,
		Upvotes: 0,
		TimeAgo: "just now",
	}
	// Newest on top.
	a.userComments[msg.PostID] = append([]models.Comment{comment}, a.userComments[msg.PostID]...)

	a.metrics.AddOperationLatency("add_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *FeedActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()

	community, exists := a.store.CommunityByID(msg.CommunityID)
	if !exists {
		context.Respond(utils.NewAppError(utils.ErrCommunityNotFound, "Community not found", nil))
		return
	}

	content := msg.Content
	if msg.Summary != "" {
		content = msg.Summary + "\n\n" + content
	}

	post := models.Post{
		ID:            uuid.New(),
		CommunityName: community.Name,
		CommunityIcon: community.IconURL,
		Author:        msg.Author,
		Title:         msg.Title,
		Content:       content,
		Upvotes:       1,
		TimeAgo:       "just now",
		CreatedAt:     time.Now(),
	}
	a.localPosts = append(a.localPosts, post)

	a.metrics.AddOperationLatency("create_post", time.Since(startTime))
	log.Printf("FeedActor: created post %s in %s", post.ID, community.Name)
	context.Respond(post)
}

func (a *FeedActor) handleAddGeneratedComment(msg *AddGeneratedCommentMsg) {
	if a.aiComments[msg.PostID] != nil {
		return
	}
	if _, ok := a.findPost(msg.PostID); !ok {
		return
	}
	a.aiComments[msg.PostID] = &models.Comment{
		ID:      uuid.New(),
		PostID:  msg.PostID,
		Author:  AIAuthor,
		Content: msg.Content,
		Upvotes: 0,
		TimeAgo: "just now",
	}
	log.Printf("FeedActor: stored generated comment for post %s", msg.PostID)
}
