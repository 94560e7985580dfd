package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gator-feed/internal/models"
)

func feedFixture() InitializeFeedMsg {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return InitializeFeedMsg{
		Posts: []models.PostRecord{
			{
				PostID:    "p1",
				Author:    "gator",
				AuthorID:  "u1",
				Title:     "First post",
				Content:   "hello swamp",
				Upvotes:   3,
				Downvotes: 1,
				CreatedAt: created,
				UpdatedAt: created,
				Comments: []models.CommentRecord{
					{
						CommentID: "c1",
						Author:    "heron",
						Content:   "nice post",
						CreatedAt: created.Add(time.Minute),
						UpdatedAt: created.Add(time.Minute),
					},
				},
			},
			{
				PostID:    "p2",
				Author:    "heron",
				AuthorID:  "u2",
				Title:     "Second post",
				Content:   "more swamp",
				Upvotes:   0,
				Downvotes: 0,
				UserVote:  "up",
				CreatedAt: created.Add(time.Hour),
				UpdatedAt: created.Add(time.Hour),
			},
		},
	}
}

func freshStore(t *testing.T) *Store {
	t.Helper()
	return Apply(NewStore(), feedFixture())
}

func TestInitializeFeedNormalization(t *testing.T) {
	s := freshStore(t)

	assert.Len(t, s.Posts, 2)

	p1 := s.Posts["p1"]
	assert.NotNil(t, p1)
	assert.Equal(t, "p1", p1.PostID)
	assert.Equal(t, "p1", p1.TempID)
	assert.Equal(t, models.VoteCounts{Up: 3, Down: 1}, p1.Votes)
	assert.Equal(t, models.VoteNone, p1.UserVote)
	assert.False(t, p1.UI.IsVoting)
	assert.False(t, p1.UI.IsPending)
	assert.False(t, p1.UI.CommentsExpanded)

	c1 := p1.Comments["c1"]
	assert.NotNil(t, c1)
	assert.Equal(t, "c1", c1.CommentID)
	assert.Equal(t, "c1", c1.TempID)
	assert.False(t, c1.UI.IsPending)

	// user_vote comes through on p2
	assert.Equal(t, models.VoteUp, s.Posts["p2"].UserVote)
}

func TestInitializeFeedReplacesExistingPosts(t *testing.T) {
	s := freshStore(t)
	s = Apply(s, InitializeFeedMsg{Posts: []models.PostRecord{{PostID: "p9", Author: "x"}}})

	assert.Len(t, s.Posts, 1)
	assert.Contains(t, s.Posts, "p9")
}

func TestVoteLifecycle(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, StartVoteMsg{PostTempID: "p1"})
	assert.True(t, s.Posts["p1"].UI.IsVoting)

	s = Apply(s, CommitVoteMsg{
		PostTempID: "p1",
		Votes:      models.VoteCounts{Up: 4, Down: 1},
		UserVote:   models.VoteUp,
	})
	p1 := s.Posts["p1"]
	assert.False(t, p1.UI.IsVoting)
	assert.Equal(t, models.VoteCounts{Up: 4, Down: 1}, p1.Votes)
	assert.Equal(t, models.VoteUp, p1.UserVote)
	assert.Empty(t, p1.UI.Error(models.ErrSlotVote))
}

func TestVoteFailureKeepsCountsAndSurfacesError(t *testing.T) {
	s := freshStore(t)
	before := s.Posts["p1"].Votes

	s = Apply(s, StartVoteMsg{PostTempID: "p1"})
	s = Apply(s, FailVoteMsg{PostTempID: "p1", Error: "network error"})

	p1 := s.Posts["p1"]
	assert.False(t, p1.UI.IsVoting)
	assert.Equal(t, before, p1.Votes)
	assert.Equal(t, "network error", p1.UI.Error(models.ErrSlotVote))

	// A later successful vote clears the error slot.
	s = Apply(s, CommitVoteMsg{PostTempID: "p1", Votes: before, UserVote: models.VoteNone})
	assert.Empty(t, s.Posts["p1"].UI.Error(models.ErrSlotVote))
}

func TestCommentVoteLifecycle(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, StartCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1"})
	assert.True(t, s.Posts["p1"].Comments["c1"].UI.IsVoting)

	s = Apply(s, CommitCommentVoteMsg{
		PostTempID:    "p1",
		CommentTempID: "c1",
		Votes:         models.VoteCounts{Up: 1},
		UserVote:      models.VoteUp,
	})
	c1 := s.Posts["p1"].Comments["c1"]
	assert.False(t, c1.UI.IsVoting)
	assert.Equal(t, models.VoteCounts{Up: 1}, c1.Votes)
	assert.Equal(t, models.VoteUp, c1.UserVote)

	s = Apply(s, StartCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1"})
	s = Apply(s, FailCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1", Error: "timeout"})
	c1 = s.Posts["p1"].Comments["c1"]
	assert.False(t, c1.UI.IsVoting)
	assert.Equal(t, "timeout", c1.UI.Error(models.ErrSlotVote))
}

func TestMissingTargetIsNoOp(t *testing.T) {
	s := freshStore(t)

	actions := []Action{
		StartVoteMsg{PostTempID: "nonexistent-post"},
		CommitVoteMsg{PostTempID: "nonexistent-post", Votes: models.VoteCounts{Up: 9}},
		FailVoteMsg{PostTempID: "nonexistent-post", Error: "x"},
		StartCommentVoteMsg{PostTempID: "p1", CommentTempID: "no-such-comment"},
		CommitCommentVoteMsg{PostTempID: "nonexistent-post", CommentTempID: "c1"},
		CommitCommentMsg{PostTempID: "p1", TempID: "no-such-comment"},
		CommitDeleteCommentMsg{PostTempID: "p1", CommentTempID: "no-such-comment"},
		ToggleCommentsMsg{PostTempID: "nonexistent-post"},
		CommitPostMsg{TempID: "nonexistent-post"},
		FailPostMsg{TempID: "nonexistent-post", Error: "x"},
		DeletePostOptimisticMsg{PostTempID: "nonexistent-post"},
		CommitDeletePostMsg{PostTempID: "nonexistent-post"},
		FailDeleteCommentMsg{PostTempID: "p1", CommentTempID: "no-such-comment", Error: "x"},
	}
	for _, action := range actions {
		next := Apply(s, action)
		assert.Same(t, s, next, "expected no-op for %T", action)
	}
}

func TestCommentIdentityStability(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, AddCommentOptimisticMsg{
		PostTempID: "p1",
		TempID:     "tmp-1",
		Author:     "gator",
		Content:    "speculative",
	})
	pending := s.Posts["p1"].Comments["tmp-1"]
	assert.NotNil(t, pending)
	assert.True(t, pending.UI.IsPending)
	assert.Empty(t, pending.CommentID)
	assert.True(t, s.Posts["p1"].UI.IsCommenting)

	s = Apply(s, CommitCommentMsg{
		PostTempID: "p1",
		TempID:     "tmp-1",
		Comment: models.CommentRecord{
			CommentID: "c-42",
			TempID:    "tmp-1",
			Author:    "gator",
			Content:   "speculative",
		},
	})

	p1 := s.Posts["p1"]
	assert.Len(t, p1.Comments, 2) // c1 from the feed plus tmp-1
	confirmed := p1.Comments["tmp-1"]
	assert.NotNil(t, confirmed)
	assert.Equal(t, "c-42", confirmed.CommentID)
	assert.Equal(t, "tmp-1", confirmed.TempID)
	assert.False(t, confirmed.UI.IsPending)
	assert.False(t, p1.UI.IsCommenting)
}

func TestFailedCommentCreationCleanup(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, AddCommentOptimisticMsg{
		PostTempID: "p1",
		TempID:     "tmp-2",
		Author:     "gator",
		Content:    "hello",
	})
	s = Apply(s, FailCommentMsg{
		PostTempID:   "p1",
		TempID:       "tmp-2",
		Error:        "network",
		OriginalText: "hello",
	})

	p1 := s.Posts["p1"]
	assert.NotContains(t, p1.Comments, "tmp-2")
	assert.Equal(t, "hello", p1.UI.DraftComment)
	assert.True(t, p1.UI.IsAddingComment)
	assert.False(t, p1.UI.IsCommenting)
	assert.Equal(t, "network", p1.UI.Error(models.ErrSlotComment))
}

func TestComposerTransitions(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, StartCommentMsg{PostTempID: "p1"})
	assert.True(t, s.Posts["p1"].UI.IsAddingComment)

	s = Apply(s, UpdateCommentDraftMsg{PostTempID: "p1", Text: "draft text"})
	assert.Equal(t, "draft text", s.Posts["p1"].UI.DraftComment)

	s = Apply(s, FailCommentMsg{PostTempID: "p1", TempID: "x", Error: "boom", OriginalText: "draft text"})
	s = Apply(s, CancelCommentMsg{PostTempID: "p1"})
	p1 := s.Posts["p1"]
	assert.False(t, p1.UI.IsAddingComment)
	assert.Empty(t, p1.UI.DraftComment)
	assert.Empty(t, p1.UI.Error(models.ErrSlotComment))
}

func TestToggleCommentsExpanded(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, ToggleCommentsMsg{PostTempID: "p1"})
	assert.True(t, s.Posts["p1"].UI.CommentsExpanded)
	s = Apply(s, ToggleCommentsMsg{PostTempID: "p1"})
	assert.False(t, s.Posts["p1"].UI.CommentsExpanded)
}

func TestAddPostModalAndForm(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, OpenAddPostModalMsg{})
	assert.True(t, s.UI.AddPostModal.IsOpen)

	s = Apply(s, UpdatePostFormMsg{Field: "title", Value: "A title"})
	s = Apply(s, UpdatePostFormMsg{Field: "content", Value: "Some content"})
	assert.Equal(t, "A title", s.UI.AddPostModal.Form.Title)
	assert.Equal(t, "Some content", s.UI.AddPostModal.Form.Content)

	// Unknown field is ignored.
	next := Apply(s, UpdatePostFormMsg{Field: "bogus", Value: "x"})
	assert.Same(t, s, next)

	s = Apply(s, CloseAddPostModalMsg{})
	assert.False(t, s.UI.AddPostModal.IsOpen)
	assert.Empty(t, s.UI.AddPostModal.Form.Title)
}

func TestPostCreationLifecycle(t *testing.T) {
	s := freshStore(t)
	s = Apply(s, OpenAddPostModalMsg{})

	s = Apply(s, AddPostOptimisticMsg{
		TempID:   "tmp-post",
		Author:   "gator",
		AuthorID: "u1",
		Title:    "New post",
		Content:  "body",
	})
	pending := s.Posts["tmp-post"]
	assert.NotNil(t, pending)
	assert.True(t, pending.UI.IsPending)
	assert.Empty(t, pending.PostID)
	assert.True(t, s.UI.AddPostModal.Form.IsSubmitting)

	s = Apply(s, CommitPostMsg{
		TempID: "tmp-post",
		Post: models.PostRecord{
			PostID:   "p-99",
			TempID:   "tmp-post",
			Author:   "gator",
			AuthorID: "u1",
			Title:    "New post",
			Content:  "body",
		},
	})
	confirmed := s.Posts["tmp-post"]
	assert.Equal(t, "p-99", confirmed.PostID)
	assert.Equal(t, "tmp-post", confirmed.TempID)
	assert.False(t, confirmed.UI.IsPending)
	assert.False(t, s.UI.AddPostModal.IsOpen)
	assert.False(t, s.UI.AddPostModal.Form.IsSubmitting)
}

func TestFailedPostCreationCleanup(t *testing.T) {
	s := freshStore(t)
	s = Apply(s, OpenAddPostModalMsg{})
	s = Apply(s, AddPostOptimisticMsg{TempID: "tmp-post", Author: "gator", AuthorID: "u1", Title: "t", Content: "c"})

	s = Apply(s, FailPostMsg{TempID: "tmp-post", Error: "server rejected"})

	assert.NotContains(t, s.Posts, "tmp-post")
	assert.False(t, s.UI.AddPostModal.Form.IsSubmitting)
	assert.Equal(t, "server rejected", s.UI.AddPostModal.Form.Errors["submit"])
	// Modal stays open so the user can resubmit.
	assert.True(t, s.UI.AddPostModal.IsOpen)
}

func TestDeletePostLifecycle(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, DeletePostOptimisticMsg{PostTempID: "p1"})
	assert.True(t, s.Posts["p1"].UI.IsPending)

	failed := Apply(s, FailDeletePostMsg{PostTempID: "p1", Error: "forbidden"})
	assert.False(t, failed.Posts["p1"].UI.IsPending)
	assert.Equal(t, "forbidden", failed.Posts["p1"].UI.Error(models.ErrSlotDelete))

	s = Apply(s, OpenDeleteModalMsg{})
	s = Apply(s, CommitDeletePostMsg{PostTempID: "p1"})
	assert.NotContains(t, s.Posts, "p1")
	assert.False(t, s.UI.DeleteModal.IsOpen)
}

func TestDeleteCommentLifecycle(t *testing.T) {
	s := freshStore(t)

	s = Apply(s, DeleteCommentOptimisticMsg{PostTempID: "p1", CommentTempID: "c1"})
	assert.True(t, s.Posts["p1"].Comments["c1"].UI.IsPending)

	failed := Apply(s, FailDeleteCommentMsg{PostTempID: "p1", CommentTempID: "c1", Error: "forbidden"})
	assert.False(t, failed.Posts["p1"].Comments["c1"].UI.IsPending)
	assert.Equal(t, "forbidden", failed.Posts["p1"].Comments["c1"].UI.Error(models.ErrSlotDelete))

	s = Apply(s, CommitDeleteCommentMsg{PostTempID: "p1", CommentTempID: "c1"})
	assert.NotContains(t, s.Posts["p1"].Comments, "c1")
}

// Every Commit*/Fail* resets its in-flight flag; no settle leaves a
// flag stuck true.
func TestFlagResetOnSettlement(t *testing.T) {
	type sequence struct {
		name    string
		start   Action
		settles []Action
		flag    func(*Store) bool
	}

	sequences := []sequence{
		{
			name:  "post vote",
			start: StartVoteMsg{PostTempID: "p1"},
			settles: []Action{
				CommitVoteMsg{PostTempID: "p1", Votes: models.VoteCounts{Up: 4, Down: 1}, UserVote: models.VoteUp},
				FailVoteMsg{PostTempID: "p1", Error: "e"},
			},
			flag: func(s *Store) bool { return s.Posts["p1"].UI.IsVoting },
		},
		{
			name:  "comment vote",
			start: StartCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1"},
			settles: []Action{
				CommitCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1", Votes: models.VoteCounts{Up: 1}, UserVote: models.VoteUp},
				FailCommentVoteMsg{PostTempID: "p1", CommentTempID: "c1", Error: "e"},
			},
			flag: func(s *Store) bool { return s.Posts["p1"].Comments["c1"].UI.IsVoting },
		},
		{
			name:  "comment create",
			start: AddCommentOptimisticMsg{PostTempID: "p1", TempID: "tmp-1", Author: "a", Content: "c"},
			settles: []Action{
				CommitCommentMsg{PostTempID: "p1", TempID: "tmp-1", Comment: models.CommentRecord{CommentID: "c-1", TempID: "tmp-1"}},
				FailCommentMsg{PostTempID: "p1", TempID: "tmp-1", Error: "e", OriginalText: "c"},
			},
			flag: func(s *Store) bool { return s.Posts["p1"].UI.IsCommenting },
		},
		{
			name:  "post create",
			start: AddPostOptimisticMsg{TempID: "tmp-p", Author: "a", AuthorID: "u", Title: "t", Content: "c"},
			settles: []Action{
				CommitPostMsg{TempID: "tmp-p", Post: models.PostRecord{PostID: "p-9", TempID: "tmp-p"}},
				FailPostMsg{TempID: "tmp-p", Error: "e"},
			},
			flag: func(s *Store) bool { return s.UI.AddPostModal.Form.IsSubmitting },
		},
	}

	for _, seq := range sequences {
		for _, settle := range seq.settles {
			s := freshStore(t)
			s = Apply(s, seq.start)
			assert.True(t, seq.flag(s), "%s: start should set flag", seq.name)
			s = Apply(s, settle)
			assert.False(t, seq.flag(s), "%s: %T should reset flag", seq.name, settle)
		}
	}
}

// Transitions replace only the path to the mutated leaf; untouched
// branches come through as the same pointers, and the input store is
// never modified.
func TestStructuralSharingAndImmutability(t *testing.T) {
	s := freshStore(t)
	p1Before := s.Posts["p1"]
	p2Before := s.Posts["p2"]
	c1Before := s.Posts["p1"].Comments["c1"]

	next := Apply(s, StartVoteMsg{PostTempID: "p1"})

	assert.NotSame(t, s, next)
	assert.NotSame(t, p1Before, next.Posts["p1"])
	assert.Same(t, p2Before, next.Posts["p2"])
	assert.Same(t, c1Before, next.Posts["p1"].Comments["c1"])

	// Input store is untouched.
	assert.False(t, s.Posts["p1"].UI.IsVoting)
	assert.True(t, next.Posts["p1"].UI.IsVoting)

	// Error-map writes do not leak into shared prior state.
	failed := Apply(next, FailVoteMsg{PostTempID: "p1", Error: "e"})
	assert.Empty(t, next.Posts["p1"].UI.Error(models.ErrSlotVote))
	assert.Equal(t, "e", failed.Posts["p1"].UI.Error(models.ErrSlotVote))
}

func TestSortedPostsNewestFirst(t *testing.T) {
	s := freshStore(t)
	posts := s.SortedPosts()

	assert.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].TempID)
	assert.Equal(t, "p1", posts[1].TempID)
}
