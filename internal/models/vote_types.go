package models

// VoteDirection represents the direction of a vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
	VoteNone VoteDirection = "none" // No active vote by the viewer
)

// ParseVoteDirection maps a wire value (which may be empty for a
// null user_vote) to a VoteDirection, defaulting to VoteNone.
func ParseVoteDirection(s string) VoteDirection {
	switch VoteDirection(s) {
	case VoteUp:
		return VoteUp
	case VoteDown:
		return VoteDown
	default:
		return VoteNone
	}
}

// VoteCounts holds the up/down tallies for a post or comment.
// Both counters stay non-negative, including during optimistic updates.
type VoteCounts struct {
	Up   int
	Down int
}
