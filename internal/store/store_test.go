package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedShape(t *testing.T) {
	s := NewStore()

	assert.Len(t, s.Communities(), 10)
	assert.Len(t, s.HomePosts(), 3)
	assert.Len(t, s.PopularPosts(), 2)
	assert.Len(t, s.Apps(), 5)
	assert.Equal(t, "User_99", s.DefaultProfile().DisplayName)
}

func TestAllPostsDeduplicates(t *testing.T) {
	s := NewStore()
	all := s.AllPosts()
	assert.Len(t, all, 5)

	seen := make(map[string]bool)
	for _, p := range all {
		assert.False(t, seen[p.ID.String()], "duplicate post %s", p.ID)
		seen[p.ID.String()] = true
	}
	// Home posts come first in the merged order.
	assert.Equal(t, s.HomePosts()[0].ID, all[0].ID)
}

func TestCommunityByName(t *testing.T) {
	s := NewStore()

	c, ok := s.CommunityByName("Energy")
	assert.True(t, ok)
	assert.Equal(t, "Energy", c.Name)

	_, ok = s.CommunityByName("Nonexistent")
	assert.False(t, ok)
}

func TestPostsByCommunityMatchesNameReference(t *testing.T) {
	s := NewStore()
	posts := s.PostsByCommunity("OPC")
	assert.Len(t, posts, 1)
	assert.Equal(t, "DevOps_Master", posts[0].Author)

	assert.Empty(t, s.PostsByCommunity("HotelOps"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewStore()

	posts := s.HomePosts()
	original := posts[0].Upvotes
	posts[0].Upvotes = -1
	assert.Equal(t, original, s.HomePosts()[0].Upvotes)

	comments := s.CommentsFor(posts[0].ID)
	assert.Len(t, comments, 3)
	comments[0].Content = "mutated"
	assert.NotEqual(t, "mutated", s.CommentsFor(posts[0].ID)[0].Content)
}
