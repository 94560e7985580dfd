package models

import (
	"time"
)

// Comment is a comment nested under a post in the client-side store.
// TempID keys the comment within its parent post's Comments map for the
// comment's entire lifetime; CommentID is the permanent identifier,
// empty until confirmed.
type Comment struct {
	CommentID string
	TempID    string
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Votes     VoteCounts
	UserVote  VoteDirection
	UI        CommentUIState
}

func (c *Comment) Confirmed() bool {
	return c.CommentID != ""
}
