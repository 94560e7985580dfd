package models

// Error slot names used in entity UI state. Each slot scopes a failure
// message to the control it belongs to.
const (
	ErrSlotVote    = "vote"
	ErrSlotComment = "comment"
	ErrSlotDelete  = "delete"
)

// PostUIState carries the transient presentation fields for a post.
// None of these fields are domain data; they exist so the presentation
// layer can render pending/voting/commenting status per entity.
type PostUIState struct {
	IsPending        bool // Optimistic creation not yet confirmed
	IsVoting         bool // Vote call in flight
	IsCommenting     bool // Comment-create call in flight
	IsAddingComment  bool // Comment composer open
	CommentsExpanded bool
	DraftComment     string
	Errors           map[string]string
}

// CommentUIState carries the transient presentation fields for a comment.
type CommentUIState struct {
	IsPending bool
	IsVoting  bool
	Errors    map[string]string
}

// Error returns the message in the named slot, or "" when the slot is
// clear. A nil map reads as all slots clear.
func (ui PostUIState) Error(slot string) string {
	return ui.Errors[slot]
}

func (ui CommentUIState) Error(slot string) string {
	return ui.Errors[slot]
}
