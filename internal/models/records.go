package models

import (
	"time"
)

// PostRecord and CommentRecord are the wire shapes the social-media API
// serves. The feed endpoint returns PostRecords with nested comments;
// the create endpoints echo a single record back, including the temp_id
// the client sent so commits can be keyed without content matching.
type PostRecord struct {
	PostID    string          `json:"post_id"`
	TempID    string          `json:"temp_id,omitempty"`
	Author    string          `json:"author"`
	AuthorID  string          `json:"author_id,omitempty"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Upvotes   int             `json:"up_votes"`
	Downvotes int             `json:"down_votes"`
	UserVote  string          `json:"user_vote"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Comments  []CommentRecord `json:"comments"`
}

type CommentRecord struct {
	CommentID string    `json:"comment_id"`
	TempID    string    `json:"temp_id,omitempty"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"up_votes"`
	Downvotes int       `json:"down_votes"`
	UserVote  string    `json:"user_vote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key returns the store key for a feed record: the stored temp_id when
// the server kept one, otherwise the permanent identifier.
func (r PostRecord) Key() string {
	if r.TempID != "" {
		return r.TempID
	}
	return r.PostID
}

func (r CommentRecord) Key() string {
	if r.TempID != "" {
		return r.TempID
	}
	return r.CommentID
}
