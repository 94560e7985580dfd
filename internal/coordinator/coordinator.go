package coordinator

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"gator-feed/internal/client"
	"gator-feed/internal/engine"
	"gator-feed/internal/models"
	"gator-feed/internal/store"
	"gator-feed/internal/utils"
)

// Coordinator translates user gestures into the start -> remote ->
// commit/fail action sequences of the optimistic-update protocol. It is
// the single owner of the speculative vote-count arithmetic; the reducer
// stores whatever counts the coordinator computed.
//
// Expected remote failures never escape as returned errors: they become
// Fail* dispatches carrying a message scoped to the affected entity. The
// returned error is reserved for conditions the presentation layer has
// to handle itself, such as targeting an entity that is missing or not
// yet server-confirmed.
type Coordinator struct {
	engine  *engine.Engine
	api     client.API
	metrics *utils.MetricsCollector

	// Viewer identity used to author optimistic entities.
	author   string
	authorID string
}

func NewCoordinator(eng *engine.Engine, api client.API, metrics *utils.MetricsCollector, author, authorID string) *Coordinator {
	return &Coordinator{
		engine:   eng,
		api:      api,
		metrics:  metrics,
		author:   author,
		authorID: authorID,
	}
}

// LoadFeed fetches the feed and replaces the store's posts with the
// normalized result. A load failure has no entity to scope an error to,
// so it is returned to the caller instead of dispatched.
func (c *Coordinator) LoadFeed(ctx context.Context, opts client.FeedOptions) error {
	startTime := time.Now()
	c.metrics.IncrementRequests()

	records, err := c.api.FetchFeed(ctx, opts)
	c.metrics.AddOperationLatency("load_feed", time.Since(startTime))
	if err != nil {
		c.metrics.IncrementErrors()
		return err
	}

	c.engine.Dispatch(store.InitializeFeedMsg{Posts: records})
	return nil
}

// VotePost runs the vote-toggle protocol for a post. The raw clicked
// direction goes on the wire; the toggled result goes in the commit.
func (c *Coordinator) VotePost(ctx context.Context, postTempID string, dir models.VoteDirection) error {
	post, err := c.engine.Post(postTempID)
	if err != nil {
		return err
	}
	if !post.Confirmed() {
		return utils.NewNotConfirmedError("post", postTempID)
	}

	votes, userVote := toggleVote(post.Votes, post.UserVote, dir)

	c.engine.Dispatch(store.StartVoteMsg{PostTempID: postTempID})

	if err := c.remoteCall(ctx, "vote_post", func() error {
		return c.api.VotePost(ctx, post.PostID, dir)
	}); err != nil {
		log.Printf("Coordinator: vote on post %s failed: %v", postTempID, err)
		c.engine.Dispatch(store.FailVoteMsg{PostTempID: postTempID, Error: err.Error()})
		return nil
	}

	c.engine.Dispatch(store.CommitVoteMsg{
		PostTempID: postTempID,
		Votes:      votes,
		UserVote:   userVote,
	})
	return nil
}

// VoteComment runs the same toggle protocol against a comment.
func (c *Coordinator) VoteComment(ctx context.Context, postTempID, commentTempID string, dir models.VoteDirection) error {
	comment, err := c.engine.Comment(postTempID, commentTempID)
	if err != nil {
		return err
	}
	if !comment.Confirmed() {
		return utils.NewNotConfirmedError("comment", commentTempID)
	}

	votes, userVote := toggleVote(comment.Votes, comment.UserVote, dir)

	c.engine.Dispatch(store.StartCommentVoteMsg{
		PostTempID:    postTempID,
		CommentTempID: commentTempID,
	})

	if err := c.remoteCall(ctx, "vote_comment", func() error {
		return c.api.VoteComment(ctx, comment.CommentID, dir)
	}); err != nil {
		log.Printf("Coordinator: vote on comment %s failed: %v", commentTempID, err)
		c.engine.Dispatch(store.FailCommentVoteMsg{
			PostTempID:    postTempID,
			CommentTempID: commentTempID,
			Error:         err.Error(),
		})
		return nil
	}

	c.engine.Dispatch(store.CommitCommentVoteMsg{
		PostTempID:    postTempID,
		CommentTempID: commentTempID,
		Votes:         votes,
		UserVote:      userVote,
	})
	return nil
}

// AddComment creates a comment optimistically. The temp ID is generated
// client-side before any network call and stays the comment's store key
// for its whole lifetime; the server echoes it back so the commit lands
// on the same key. Exactly one create call is issued per generated temp
// ID. On failure the optimistic entry is removed and the composer
// reopens with the original text so the user can retry without retyping.
func (c *Coordinator) AddComment(ctx context.Context, postTempID, content string) error {
	post, err := c.engine.Post(postTempID)
	if err != nil {
		return err
	}
	if !post.Confirmed() {
		return utils.NewNotConfirmedError("post", postTempID)
	}

	tempID := uuid.NewString()

	c.engine.Dispatch(store.AddCommentOptimisticMsg{
		PostTempID: postTempID,
		TempID:     tempID,
		Author:     c.author,
		Content:    content,
	})

	var record *models.CommentRecord
	if err := c.remoteCall(ctx, "create_comment", func() error {
		var callErr error
		record, callErr = c.api.CreateComment(ctx, post.AuthorID, post.PostID, content, tempID)
		return callErr
	}); err != nil {
		log.Printf("Coordinator: comment create on post %s failed: %v", postTempID, err)
		c.engine.Dispatch(store.FailCommentMsg{
			PostTempID:   postTempID,
			TempID:       tempID,
			Error:        err.Error(),
			OriginalText: content,
		})
		return nil
	}

	c.engine.Dispatch(store.CommitCommentMsg{
		PostTempID: postTempID,
		TempID:     tempID,
		Comment:    *record,
	})
	return nil
}

// AddPost is the comment-add protocol at the store root.
func (c *Coordinator) AddPost(ctx context.Context, title, content string) error {
	tempID := uuid.NewString()

	c.engine.Dispatch(store.AddPostOptimisticMsg{
		TempID:   tempID,
		Author:   c.author,
		AuthorID: c.authorID,
		Title:    title,
		Content:  content,
	})

	var record *models.PostRecord
	if err := c.remoteCall(ctx, "create_post", func() error {
		var callErr error
		record, callErr = c.api.CreatePost(ctx, c.authorID, title, content, tempID)
		return callErr
	}); err != nil {
		log.Printf("Coordinator: post create failed: %v", err)
		c.engine.Dispatch(store.FailPostMsg{TempID: tempID, Error: err.Error()})
		return nil
	}

	c.engine.Dispatch(store.CommitPostMsg{TempID: tempID, Post: *record})
	return nil
}

// DeletePost marks the post pending, issues the delete, and removes the
// post on success or restores it with a delete error on failure. A 2xx
// response whose body reports an error counts as failure.
func (c *Coordinator) DeletePost(ctx context.Context, postTempID string) error {
	post, err := c.engine.Post(postTempID)
	if err != nil {
		return err
	}
	if !post.Confirmed() {
		return utils.NewNotConfirmedError("post", postTempID)
	}

	c.engine.Dispatch(store.DeletePostOptimisticMsg{PostTempID: postTempID})

	if err := c.remoteCall(ctx, "delete_post", func() error {
		return c.api.DeletePost(ctx, post.PostID)
	}); err != nil {
		log.Printf("Coordinator: delete of post %s failed: %v", postTempID, err)
		c.engine.Dispatch(store.FailDeletePostMsg{PostTempID: postTempID, Error: err.Error()})
		return nil
	}

	c.engine.Dispatch(store.CommitDeletePostMsg{PostTempID: postTempID})
	return nil
}

func (c *Coordinator) DeleteComment(ctx context.Context, postTempID, commentTempID string) error {
	comment, err := c.engine.Comment(postTempID, commentTempID)
	if err != nil {
		return err
	}
	if !comment.Confirmed() {
		return utils.NewNotConfirmedError("comment", commentTempID)
	}

	c.engine.Dispatch(store.DeleteCommentOptimisticMsg{
		PostTempID:    postTempID,
		CommentTempID: commentTempID,
	})

	if err := c.remoteCall(ctx, "delete_comment", func() error {
		return c.api.DeleteComment(ctx, comment.CommentID)
	}); err != nil {
		log.Printf("Coordinator: delete of comment %s failed: %v", commentTempID, err)
		c.engine.Dispatch(store.FailDeleteCommentMsg{
			PostTempID:    postTempID,
			CommentTempID: commentTempID,
			Error:         err.Error(),
		})
		return nil
	}

	c.engine.Dispatch(store.CommitDeleteCommentMsg{
		PostTempID:    postTempID,
		CommentTempID: commentTempID,
	})
	return nil
}

// Synchronous UI transitions. These have no remote leg; they are plain
// ordered dispatches.

func (c *Coordinator) ToggleComments(postTempID string) {
	c.engine.Dispatch(store.ToggleCommentsMsg{PostTempID: postTempID})
}

func (c *Coordinator) StartComment(postTempID string) {
	c.engine.Dispatch(store.StartCommentMsg{PostTempID: postTempID})
}

func (c *Coordinator) CancelComment(postTempID string) {
	c.engine.Dispatch(store.CancelCommentMsg{PostTempID: postTempID})
}

func (c *Coordinator) UpdateCommentDraft(postTempID, text string) {
	c.engine.Dispatch(store.UpdateCommentDraftMsg{PostTempID: postTempID, Text: text})
}

func (c *Coordinator) OpenAddPostModal() {
	c.engine.Dispatch(store.OpenAddPostModalMsg{})
}

func (c *Coordinator) CloseAddPostModal() {
	c.engine.Dispatch(store.CloseAddPostModalMsg{})
}

func (c *Coordinator) UpdatePostForm(field, value string) {
	c.engine.Dispatch(store.UpdatePostFormMsg{Field: field, Value: value})
}

func (c *Coordinator) OpenDeleteModal() {
	c.engine.Dispatch(store.OpenDeleteModalMsg{})
}

func (c *Coordinator) CloseDeleteModal() {
	c.engine.Dispatch(store.CloseDeleteModalMsg{})
}

// remoteCall runs one remote leg with request/error accounting.
func (c *Coordinator) remoteCall(ctx context.Context, operation string, fn func() error) error {
	startTime := time.Now()
	c.metrics.IncrementRequests()

	err := fn()
	c.metrics.AddOperationLatency(operation, time.Since(startTime))
	if err != nil {
		c.metrics.IncrementErrors()
	}
	return err
}

// toggleVote computes the speculative counts for a click in direction
// dir given the viewer's current vote. Clicking the active direction
// removes the vote; clicking the other direction moves it in a single
// step. Counters never go below zero.
func toggleVote(counts models.VoteCounts, current, dir models.VoteDirection) (models.VoteCounts, models.VoteDirection) {
	newVote := dir
	if current == dir {
		newVote = models.VoteNone
	}

	switch current {
	case models.VoteUp:
		if counts.Up > 0 {
			counts.Up--
		}
	case models.VoteDown:
		if counts.Down > 0 {
			counts.Down--
		}
	}

	switch newVote {
	case models.VoteUp:
		counts.Up++
	case models.VoteDown:
		counts.Down++
	}

	return counts, newVote
}
