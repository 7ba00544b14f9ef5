package models

// SortMode orders a feed.
type SortMode string

const (
	SortBest SortMode = "best"
	SortHot  SortMode = "hot"
	SortNew  SortMode = "new"
)

// DefaultSort is what every fresh view starts with.
const DefaultSort = SortBest
