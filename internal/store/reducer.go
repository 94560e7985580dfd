package store

import (
	"time"

	"gator-feed/internal/models"
)

// Apply is the state transition function: (store, action) -> store.
//
// Apply never mutates its input. Each transition copies only the path
// from the root to the mutated leaf and shares everything else, so the
// presentation layer can compare branches by pointer to skip unchanged
// subtrees. Any action whose target temp ID is not in the store returns
// the input unchanged; a commit or fail can legitimately arrive after
// its entity was removed by an overlapping sequence.
func Apply(s *Store, action Action) *Store {
	switch msg := action.(type) {
	case InitializeFeedMsg:
		return initializeFeed(s, msg)

	case StartVoteMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsVoting = true
		})

	case CommitVoteMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.Votes = msg.Votes
			p.UserVote = msg.UserVote
			p.UI.IsVoting = false
			p.UI.Errors = clearError(p.UI.Errors, models.ErrSlotVote)
		})

	case FailVoteMsg:
		// Optimistic counts are kept; only the error is surfaced.
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsVoting = false
			p.UI.Errors = setError(p.UI.Errors, models.ErrSlotVote, msg.Error)
		})

	case StartCommentVoteMsg:
		return updateComment(s, msg.PostTempID, msg.CommentTempID, func(c *models.Comment) {
			c.UI.IsVoting = true
		})

	case CommitCommentVoteMsg:
		return updateComment(s, msg.PostTempID, msg.CommentTempID, func(c *models.Comment) {
			c.Votes = msg.Votes
			c.UserVote = msg.UserVote
			c.UI.IsPending = false
			c.UI.IsVoting = false
			c.UI.Errors = clearError(c.UI.Errors, models.ErrSlotVote)
		})

	case FailCommentVoteMsg:
		return updateComment(s, msg.PostTempID, msg.CommentTempID, func(c *models.Comment) {
			c.UI.IsPending = false
			c.UI.IsVoting = false
			c.UI.Errors = setError(c.UI.Errors, models.ErrSlotVote, msg.Error)
		})

	case ToggleCommentsMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.CommentsExpanded = !p.UI.CommentsExpanded
		})

	case StartCommentMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsAddingComment = true
		})

	case CancelCommentMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsAddingComment = false
			p.UI.DraftComment = ""
			p.UI.Errors = clearError(p.UI.Errors, models.ErrSlotComment)
		})

	case UpdateCommentDraftMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.DraftComment = msg.Text
		})

	case AddCommentOptimisticMsg:
		now := time.Now()
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.Comments = cloneComments(p.Comments)
			p.Comments[msg.TempID] = &models.Comment{
				TempID:    msg.TempID,
				Author:    msg.Author,
				Content:   msg.Content,
				CreatedAt: now,
				UpdatedAt: now,
				UserVote:  models.VoteNone,
				UI:        models.CommentUIState{IsPending: true},
			}
			p.UI.IsCommenting = true
			p.UI.IsAddingComment = false
			p.UI.DraftComment = ""
		})

	case CommitCommentMsg:
		if _, ok := s.Comment(msg.PostTempID, msg.TempID); !ok {
			return s
		}
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.Comments = cloneComments(p.Comments)
			p.Comments[msg.TempID] = commentFromRecord(msg.TempID, msg.Comment)
			p.UI.IsCommenting = false
			p.UI.Errors = clearError(p.UI.Errors, models.ErrSlotComment)
		})

	case FailCommentMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.Comments = cloneComments(p.Comments)
			delete(p.Comments, msg.TempID)
			p.UI.IsCommenting = false
			p.UI.IsAddingComment = true
			p.UI.DraftComment = msg.OriginalText
			p.UI.Errors = setError(p.UI.Errors, models.ErrSlotComment, msg.Error)
		})

	case OpenAddPostModalMsg:
		next := *s
		next.UI.AddPostModal = AddPostModal{IsOpen: true}
		return &next

	case CloseAddPostModalMsg:
		next := *s
		next.UI.AddPostModal = AddPostModal{}
		return &next

	case UpdatePostFormMsg:
		next := *s
		form := next.UI.AddPostModal.Form
		switch msg.Field {
		case "title":
			form.Title = msg.Value
		case "content":
			form.Content = msg.Value
		default:
			return s
		}
		form.Errors = clearError(form.Errors, msg.Field)
		next.UI.AddPostModal.Form = form
		return &next

	case AddPostOptimisticMsg:
		now := time.Now()
		next := *s
		next.Posts = clonePosts(s.Posts)
		next.Posts[msg.TempID] = &models.Post{
			TempID:    msg.TempID,
			Author:    msg.Author,
			AuthorID:  msg.AuthorID,
			Title:     msg.Title,
			Content:   msg.Content,
			CreatedAt: now,
			UpdatedAt: now,
			UserVote:  models.VoteNone,
			Comments:  make(map[string]*models.Comment),
			UI:        models.PostUIState{IsPending: true},
		}
		next.UI.AddPostModal.Form.IsSubmitting = true
		return &next

	case CommitPostMsg:
		p, ok := s.Posts[msg.TempID]
		if !ok {
			return s
		}
		next := *s
		next.Posts = clonePosts(s.Posts)
		next.Posts[msg.TempID] = postFromRecord(msg.TempID, msg.Post, p.Comments)
		next.UI.AddPostModal = AddPostModal{}
		return &next

	case FailPostMsg:
		if _, ok := s.Posts[msg.TempID]; !ok {
			return s
		}
		next := *s
		next.Posts = clonePosts(s.Posts)
		delete(next.Posts, msg.TempID)
		form := next.UI.AddPostModal.Form
		form.IsSubmitting = false
		form.Errors = setError(form.Errors, "submit", msg.Error)
		next.UI.AddPostModal.Form = form
		return &next

	case OpenDeleteModalMsg:
		next := *s
		next.UI.DeleteModal.IsOpen = true
		return &next

	case CloseDeleteModalMsg:
		next := *s
		next.UI.DeleteModal.IsOpen = false
		return &next

	case DeletePostOptimisticMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsPending = true
		})

	case CommitDeletePostMsg:
		if _, ok := s.Posts[msg.PostTempID]; !ok {
			return s
		}
		next := *s
		next.Posts = clonePosts(s.Posts)
		delete(next.Posts, msg.PostTempID)
		next.UI.DeleteModal.IsOpen = false
		return &next

	case FailDeletePostMsg:
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.UI.IsPending = false
			p.UI.Errors = setError(p.UI.Errors, models.ErrSlotDelete, msg.Error)
		})

	case DeleteCommentOptimisticMsg:
		return updateComment(s, msg.PostTempID, msg.CommentTempID, func(c *models.Comment) {
			c.UI.IsPending = true
		})

	case CommitDeleteCommentMsg:
		if _, ok := s.Comment(msg.PostTempID, msg.CommentTempID); !ok {
			return s
		}
		return updatePost(s, msg.PostTempID, func(p *models.Post) {
			p.Comments = cloneComments(p.Comments)
			delete(p.Comments, msg.CommentTempID)
		})

	case FailDeleteCommentMsg:
		return updateComment(s, msg.PostTempID, msg.CommentTempID, func(c *models.Comment) {
			c.UI.IsPending = false
			c.UI.Errors = setError(c.UI.Errors, models.ErrSlotDelete, msg.Error)
		})

	default:
		return s
	}
}

// initializeFeed replaces the posts map wholesale with normalized server
// records. UI state starts at defaults for every entity.
func initializeFeed(s *Store, msg InitializeFeedMsg) *Store {
	posts := make(map[string]*models.Post, len(msg.Posts))
	for _, rec := range msg.Posts {
		key := rec.Key()
		if key == "" {
			continue
		}
		comments := make(map[string]*models.Comment, len(rec.Comments))
		for _, cr := range rec.Comments {
			ck := cr.Key()
			if ck == "" {
				continue
			}
			comments[ck] = commentFromRecord(ck, cr)
		}
		posts[key] = postFromRecord(key, rec, comments)
	}
	next := *s
	next.Posts = posts
	return &next
}

func postFromRecord(tempID string, rec models.PostRecord, comments map[string]*models.Comment) *models.Post {
	return &models.Post{
		PostID:    rec.PostID,
		TempID:    tempID,
		Author:    rec.Author,
		AuthorID:  rec.AuthorID,
		Title:     rec.Title,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Votes:     models.VoteCounts{Up: rec.Upvotes, Down: rec.Downvotes},
		UserVote:  models.ParseVoteDirection(rec.UserVote),
		Comments:  comments,
		UI:        models.PostUIState{},
	}
}

func commentFromRecord(tempID string, rec models.CommentRecord) *models.Comment {
	return &models.Comment{
		CommentID: rec.CommentID,
		TempID:    tempID,
		Author:    rec.Author,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		Votes:     models.VoteCounts{Up: rec.Upvotes, Down: rec.Downvotes},
		UserVote:  models.ParseVoteDirection(rec.UserVote),
		UI:        models.CommentUIState{},
	}
}

// updatePost copies the root-to-post path, lets fn mutate the fresh post
// copy, and returns the new store. Missing post means no-op.
func updatePost(s *Store, tempID string, fn func(*models.Post)) *Store {
	prev, ok := s.Posts[tempID]
	if !ok {
		return s
	}
	post := *prev
	fn(&post)
	next := *s
	next.Posts = clonePosts(s.Posts)
	next.Posts[tempID] = &post
	return &next
}

// updateComment copies the root-to-comment path. Missing post or comment
// means no-op.
func updateComment(s *Store, postTempID, commentTempID string, fn func(*models.Comment)) *Store {
	prevPost, ok := s.Posts[postTempID]
	if !ok {
		return s
	}
	prevComment, ok := prevPost.Comments[commentTempID]
	if !ok {
		return s
	}
	comment := *prevComment
	fn(&comment)
	post := *prevPost
	post.Comments = cloneComments(prevPost.Comments)
	post.Comments[commentTempID] = &comment
	next := *s
	next.Posts = clonePosts(s.Posts)
	next.Posts[postTempID] = &post
	return &next
}

func clonePosts(m map[string]*models.Post) map[string]*models.Post {
	out := make(map[string]*models.Post, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneComments(m map[string]*models.Comment) map[string]*models.Comment {
	out := make(map[string]*models.Comment, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// setError writes a slot into a fresh copy of the error map; the shared
// prior map is never touched.
func setError(m map[string]string, slot, msg string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[slot] = msg
	return out
}

// clearError removes a slot, copying only when the slot is present.
func clearError(m map[string]string, slot string) map[string]string {
	if _, ok := m[slot]; !ok {
		return m
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != slot {
			out[k] = v
		}
	}
	return out
}
