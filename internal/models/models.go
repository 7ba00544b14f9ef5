package models

import (
	"time"

	"github.com/google/uuid"
)

// Community is a topic-scoped group that posts belong to.
type Community struct {
	ID          uuid.UUID
	Name        string
	Description string
	MemberLabel string // display string such as "1.2m members"
	IconURL     string
}

// Post belongs to a community by name. The icon is denormalized so a
// feed row can render without a community lookup.
type Post struct {
	ID            uuid.UUID
	CommunityName string
	CommunityIcon string
	Author        string
	Title         string
	Content       string
	ImageURL      string
	Upvotes       int
	CommentCount  int
	TimeAgo       string
	CreatedAt     time.Time
}

type Comment struct {
	ID      uuid.UUID
	PostID  uuid.UUID
	Author  string
	Content string
	Upvotes int
	TimeAgo string
}

// AppType distinguishes first-party listings from community submissions.
type AppType string

const (
	AppTypeOfficial  AppType = "official"
	AppTypeCommunity AppType = "community"
)

// OpcApp is an entry in the on-platform app directory.
type OpcApp struct {
	ID          uuid.UUID
	Name        string
	Type        AppType
	URL         string
	Description string
	Author      string
	Stars       int
	CreatedAt   time.Time
}

// Profile is the signed-in user's editable identity.
type Profile struct {
	DisplayName string
	Avatar      string
	Bio         string
	Email       string
}

// ChatRole identifies who produced a chat transcript entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole
	Content string
	SentAt  time.Time
}
