package store

import (
	"time"

	"github.com/google/uuid"

	"broad-forum/internal/models"
)

// Store holds the read-only seed content the client boots with. Every
// accessor returns copies so callers can overlay local state without
// touching the seeds. The store is never written after construction,
// so it is safe to read from any goroutine.
type Store struct {
	communities  []models.Community
	homePosts    []models.Post
	popularPosts []models.Post
	comments     map[uuid.UUID][]models.Comment
	apps         []models.OpcApp
	profile      models.Profile
}

func NewStore() *Store {
	now := time.Now()
	s := &Store{
		communities:  seedCommunities(),
		homePosts:    seedHomePosts(now),
		popularPosts: seedPopularPosts(now),
		comments:     make(map[uuid.UUID][]models.Comment),
		apps:         seedApps(now),
		profile:      seedProfile(),
	}
	for _, p := range s.AllPosts() {
		s.comments[p.ID] = seedComments(p.ID)
	}
	return s
}

func (s *Store) Communities() []models.Community {
	out := make([]models.Community, len(s.communities))
	copy(out, s.communities)
	return out
}

// CommunityByName resolves the name reference a post carries.
func (s *Store) CommunityByName(name string) (models.Community, bool) {
	for _, c := range s.communities {
		if c.Name == name {
			return c, true
		}
	}
	return models.Community{}, false
}

func (s *Store) CommunityByID(id uuid.UUID) (models.Community, bool) {
	for _, c := range s.communities {
		if c.ID == id {
			return c, true
		}
	}
	return models.Community{}, false
}

func (s *Store) HomePosts() []models.Post {
	out := make([]models.Post, len(s.homePosts))
	copy(out, s.homePosts)
	return out
}

func (s *Store) PopularPosts() []models.Post {
	out := make([]models.Post, len(s.popularPosts))
	copy(out, s.popularPosts)
	return out
}

// AllPosts merges the home and popular feeds, dropping duplicates by ID
// while preserving first-seen order.
func (s *Store) AllPosts() []models.Post {
	seen := make(map[uuid.UUID]bool, len(s.homePosts)+len(s.popularPosts))
	out := make([]models.Post, 0, len(s.homePosts)+len(s.popularPosts))
	for _, p := range s.homePosts {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	for _, p := range s.popularPosts {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) PostsByCommunity(name string) []models.Post {
	var out []models.Post
	for _, p := range s.AllPosts() {
		if p.CommunityName == name {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) CommentsFor(postID uuid.UUID) []models.Comment {
	seeded := s.comments[postID]
	out := make([]models.Comment, len(seeded))
	copy(out, seeded)
	return out
}

func (s *Store) Apps() []models.OpcApp {
	out := make([]models.OpcApp, len(s.apps))
	copy(out, s.apps)
	return out
}

func (s *Store) DefaultProfile() models.Profile {
	return s.profile
}
