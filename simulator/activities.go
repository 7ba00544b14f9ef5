package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"broad-forum/internal/engine/actors"
	"broad-forum/internal/forms"
	"broad-forum/internal/models"
)

var sortModes = []models.SortMode{models.SortBest, models.SortHot, models.SortNew}

var feedKinds = []actors.FeedKind{actors.FeedHome, actors.FeedPopular}

func (s *Simulator) tick(ctx context.Context, frequency float64, action func()) {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if rand.Float64() < frequency {
				action()
			}
		}
	}
}

// randomPost pulls a fresh feed and picks a post from it, the way a
// scrolling user would.
func (s *Simulator) randomPost() (models.Post, error) {
	feed := feedKinds[rand.Intn(len(feedKinds))]
	posts, err := s.client.Feed(feed, sortModes[rand.Intn(len(sortModes))])
	if err != nil {
		return models.Post{}, err
	}
	if len(posts) == 0 {
		return models.Post{}, fmt.Errorf("empty feed")
	}
	return posts[rand.Intn(len(posts))], nil
}

func (s *Simulator) simulateBrowsing(ctx context.Context) {
	views := []actors.View{
		actors.HomeView{},
		actors.PopularView{},
		actors.CommunitiesView{},
		actors.AppStoreView{},
	}

	s.tick(ctx, s.config.BrowseFrequency, func() {
		start := time.Now()
		var err error
		switch rand.Intn(3) {
		case 0:
			_, err = s.client.Navigate(views[rand.Intn(len(views))])
		case 1:
			var post models.Post
			if post, err = s.randomPost(); err == nil {
				_, err = s.client.OpenPost(post)
			}
		default:
			communities := s.client.Communities()
			_, err = s.client.OpenCommunity(communities[rand.Intn(len(communities))])
		}
		s.record(start, err)
		if err == nil {
			s.stats.mu.Lock()
			s.stats.TotalBrowses++
			s.stats.mu.Unlock()
		}
	})
}

func (s *Simulator) simulateVotes(ctx context.Context) {
	directions := []models.VoteDirection{models.VoteUp, models.VoteUp, models.VoteDown}

	s.tick(ctx, s.config.VoteFrequency, func() {
		post, err := s.randomPost()
		if err != nil {
			return
		}

		start := time.Now()
		result, err := s.client.VotePost(post.ID, directions[rand.Intn(len(directions))])
		s.record(start, err)
		if err != nil {
			log.Printf("Simulator: vote failed: %v", err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalVotes++
		s.stats.mu.Unlock()
		log.Printf("Simulator: voted %s on %q (count now %d)", result.Direction, post.Title, result.Count)
	})
}

func (s *Simulator) simulateComments(ctx context.Context) {
	s.tick(ctx, s.config.CommentFrequency, func() {
		post, err := s.randomPost()
		if err != nil {
			return
		}

		start := time.Now()
		_, err = s.client.AddComment(post.ID, fmt.Sprintf("Simulated reply at %s", time.Now().Format(time.RFC3339)))
		s.record(start, err)
		if err != nil {
			log.Printf("Simulator: comment failed: %v", err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalComments++
		s.stats.mu.Unlock()
	})
}

func (s *Simulator) simulatePosts(ctx context.Context) {
	s.tick(ctx, s.config.PostFrequency, func() {
		communities := s.client.Communities()
		community := communities[rand.Intn(len(communities))]

		start := time.Now()
		post, err := s.client.CreatePost(forms.PostDraft{
			Title:       fmt.Sprintf("Field report %d", time.Now().Unix()),
			Summary:     "Automated session activity.",
			Content:     fmt.Sprintf("Generated at %s for %s.", time.Now().Format(time.RFC3339), community.Name),
			CommunityID: community.ID,
		})
		s.record(start, err)
		if err != nil {
			log.Printf("Simulator: create post failed: %v", err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalPosts++
		s.stats.mu.Unlock()
		log.Printf("Simulator: created post %q in %s", post.Title, post.CommunityName)
	})
}

func (s *Simulator) simulateMembership(ctx context.Context) {
	s.tick(ctx, s.config.JoinFrequency, func() {
		communities := s.client.Communities()
		community := communities[rand.Intn(len(communities))]

		start := time.Now()
		result, err := s.client.ToggleJoin(community.ID)
		s.record(start, err)
		if err != nil {
			log.Printf("Simulator: join toggle failed: %v", err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalJoins++
		s.stats.mu.Unlock()
		log.Printf("Simulator: %s now joined=%v", community.Name, result.Joined)
	})
}

func (s *Simulator) simulateChat(ctx context.Context) {
	questions := []string{
		"Summarize the latest energy discussions.",
		"What is BROADFORUM?",
		"Which community should I join for IoT topics?",
	}

	s.tick(ctx, s.config.ChatFrequency, func() {
		start := time.Now()
		if _, err := s.client.Navigate(actors.ChatView{}); err != nil {
			s.record(start, err)
			return
		}
		_, err := s.client.AskAssistant(questions[rand.Intn(len(questions))])
		s.record(start, err)
		if err != nil {
			log.Printf("Simulator: chat failed: %v", err)
			return
		}
		s.stats.mu.Lock()
		s.stats.TotalChats++
		s.stats.mu.Unlock()
	})
}
