package models

import (
	"time"
)

// Post is a feed post as tracked by the client-side store.
//
// TempID is the client-generated identifier assigned before any network
// round-trip; it is the store's primary key for the post's entire
// lifetime. PostID is the server-assigned permanent identifier, empty
// until the server confirms creation, and never changes after that.
type Post struct {
	PostID    string
	TempID    string
	Author    string
	AuthorID  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Votes     VoteCounts
	UserVote  VoteDirection
	Comments  map[string]*Comment // Keyed by Comment.TempID
	UI        PostUIState
}

// Confirmed reports whether the server has assigned a permanent ID.
func (p *Post) Confirmed() bool {
	return p.PostID != ""
}
