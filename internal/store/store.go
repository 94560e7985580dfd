package store

import (
	"sort"

	"gator-feed/internal/models"
)

// Store is the normalized client-side state root: every post keyed by
// its TempID, plus root-level UI state for the add-post and delete
// modals. Stores are immutable between transitions; Apply returns a new
// value sharing every untouched branch with its input, so a snapshot
// handed out at any point stays valid forever.
type Store struct {
	Posts map[string]*models.Post
	UI    RootUIState
}

// RootUIState holds UI state that is not scoped to a single entity.
type RootUIState struct {
	AddPostModal AddPostModal
	DeleteModal  DeleteModal
}

type AddPostModal struct {
	IsOpen bool
	Form   PostForm
}

type DeleteModal struct {
	IsOpen bool
}

// PostForm is the add-post creation form.
type PostForm struct {
	Title        string
	Content      string
	IsSubmitting bool
	Errors       map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Posts: make(map[string]*models.Post)}
}

// Post looks up a post by its temp ID.
func (s *Store) Post(tempID string) (*models.Post, bool) {
	p, ok := s.Posts[tempID]
	return p, ok
}

// Comment looks up a comment by post and comment temp IDs.
func (s *Store) Comment(postTempID, commentTempID string) (*models.Comment, bool) {
	p, ok := s.Posts[postTempID]
	if !ok {
		return nil, false
	}
	c, ok := p.Comments[commentTempID]
	return c, ok
}

// SortedPosts returns the posts in display order, newest first.
func (s *Store) SortedPosts() []*models.Post {
	posts := make([]*models.Post, 0, len(s.Posts))
	for _, p := range s.Posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].TempID < posts[j].TempID
	})
	return posts
}

// SortedComments returns a post's comments in display order, newest first.
func SortedComments(p *models.Post) []*models.Comment {
	comments := make([]*models.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].TempID < comments[j].TempID
	})
	return comments
}
