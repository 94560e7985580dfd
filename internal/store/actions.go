package store

import (
	"gator-feed/internal/models"
)

// Action is a state-transition request. The vocabulary is a closed set:
// only the types in this file implement it, and the reducer in Apply is
// the only consumer.
type Action interface {
	isAction()
}

// Feed initialization.
type InitializeFeedMsg struct {
	Posts []models.PostRecord
}

// Post voting.
type (
	StartVoteMsg struct {
		PostTempID string
	}

	CommitVoteMsg struct {
		PostTempID string
		Votes      models.VoteCounts
		UserVote   models.VoteDirection
	}

	FailVoteMsg struct {
		PostTempID string
		Error      string
	}
)

// Comment voting.
type (
	StartCommentVoteMsg struct {
		PostTempID    string
		CommentTempID string
	}

	CommitCommentVoteMsg struct {
		PostTempID    string
		CommentTempID string
		Votes         models.VoteCounts
		UserVote      models.VoteDirection
	}

	FailCommentVoteMsg struct {
		PostTempID    string
		CommentTempID string
		Error         string
	}
)

// Comment composer and optimistic comment creation.
type (
	ToggleCommentsMsg struct {
		PostTempID string
	}

	StartCommentMsg struct {
		PostTempID string
	}

	CancelCommentMsg struct {
		PostTempID string
	}

	UpdateCommentDraftMsg struct {
		PostTempID string
		Text       string
	}

	AddCommentOptimisticMsg struct {
		PostTempID string
		TempID     string
		Author     string
		Content    string
	}

	CommitCommentMsg struct {
		PostTempID string
		TempID     string
		Comment    models.CommentRecord
	}

	FailCommentMsg struct {
		PostTempID   string
		TempID       string
		Error        string
		OriginalText string
	}
)

// Add-post modal and optimistic post creation.
type (
	OpenAddPostModalMsg struct{}

	CloseAddPostModalMsg struct{}

	UpdatePostFormMsg struct {
		Field string // "title" or "content"
		Value string
	}

	AddPostOptimisticMsg struct {
		TempID   string
		Author   string
		AuthorID string
		Title    string
		Content  string
	}

	CommitPostMsg struct {
		TempID string
		Post   models.PostRecord
	}

	FailPostMsg struct {
		TempID string
		Error  string
	}
)

// Deletion.
type (
	OpenDeleteModalMsg struct{}

	CloseDeleteModalMsg struct{}

	DeletePostOptimisticMsg struct {
		PostTempID string
	}

	CommitDeletePostMsg struct {
		PostTempID string
	}

	FailDeletePostMsg struct {
		PostTempID string
		Error      string
	}

	DeleteCommentOptimisticMsg struct {
		PostTempID    string
		CommentTempID string
	}

	CommitDeleteCommentMsg struct {
		PostTempID    string
		CommentTempID string
	}

	FailDeleteCommentMsg struct {
		PostTempID    string
		CommentTempID string
		Error         string
	}
)

func (InitializeFeedMsg) isAction() {}
func (StartVoteMsg) isAction() {}
func (CommitVoteMsg) isAction() {}
func (FailVoteMsg) isAction() {}
func (StartCommentVoteMsg) isAction() {}
func (CommitCommentVoteMsg) isAction() {}
func (FailCommentVoteMsg) isAction() {}
func (ToggleCommentsMsg) isAction() {}
func (StartCommentMsg) isAction() {}
func (CancelCommentMsg) isAction() {}
func (UpdateCommentDraftMsg) isAction() {}
func (AddCommentOptimisticMsg) isAction() {}
func (CommitCommentMsg) isAction() {}
func (FailCommentMsg) isAction() {}
func (OpenAddPostModalMsg) isAction() {}
func (CloseAddPostModalMsg) isAction() {}
func (UpdatePostFormMsg) isAction() {}
func (AddPostOptimisticMsg) isAction() {}
func (CommitPostMsg) isAction() {}
func (FailPostMsg) isAction() {}
func (OpenDeleteModalMsg) isAction() {}
func (CloseDeleteModalMsg) isAction() {}
func (DeletePostOptimisticMsg) isAction() {}
func (CommitDeletePostMsg) isAction() {}
func (FailDeletePostMsg) isAction() {}
func (DeleteCommentOptimisticMsg) isAction() {}
func (CommitDeleteCommentMsg) isAction() {}
func (FailDeleteCommentMsg) isAction() {}
