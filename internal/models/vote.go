package models

// VoteDirection is the viewer's current vote on a post.
type VoteDirection string

const (
	VoteNone VoteDirection = "none"
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ApplyVote toggles a vote and returns the adjusted count plus the new
// direction. Pressing the active direction again clears it; pressing the
// opposite direction removes the old vote and applies the new one in a
// single step.
func ApplyVote(count int, current, requested VoteDirection) (int, VoteDirection) {
	if requested == VoteNone || requested == current {
		// Toggle off.
		switch current {
		case VoteUp:
			return count - 1, VoteNone
		case VoteDown:
			return count + 1, VoteNone
		default:
			return count, VoteNone
		}
	}

	delta := 0
	switch current {
	case VoteUp:
		delta-- // undo the existing upvote
	case VoteDown:
		delta++ // undo the existing downvote
	}
	switch requested {
	case VoteUp:
		delta++
	case VoteDown:
		delta--
	}
	return count + delta, requested
}
