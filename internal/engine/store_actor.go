package engine

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"gator-feed/internal/store"
	"gator-feed/internal/utils"
)

// Message types for store queries. Actions themselves are dispatched as
// store.Action values straight into the mailbox.
type (
	GetSnapshotMsg struct{}

	GetPostMsg struct {
		TempID string
	}

	GetCommentMsg struct {
		PostTempID    string
		CommentTempID string
	}
)

// StoreActor owns the current store value and is its only writer. The
// mailbox serializes transitions: each action is applied to completion
// before the next message is processed, which is what makes per-entity
// start-before-settle ordering hold without locks.
type StoreActor struct {
	current *store.Store
	metrics *utils.MetricsCollector
}

func NewStoreActor(metrics *utils.MetricsCollector) actor.Actor {
	return &StoreActor{
		current: store.NewStore(),
		metrics: metrics,
	}
}

func (a *StoreActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("StoreActor started with PID: %v", context.Self())

	case *actor.Stopping:
		log.Printf("StoreActor stopping")

	case *actor.Stopped:
		log.Printf("StoreActor stopped")

	case *actor.Restarting:
		log.Printf("StoreActor restarting")

	case store.Action:
		a.handleAction(context, msg)

	case *GetSnapshotMsg:
		context.Respond(a.current)

	case *GetPostMsg:
		if post, exists := a.current.Post(msg.TempID); exists {
			context.Respond(post)
		} else {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "post not found: "+msg.TempID, nil))
		}

	case *GetCommentMsg:
		if comment, exists := a.current.Comment(msg.PostTempID, msg.CommentTempID); exists {
			context.Respond(comment)
		} else {
			context.Respond(utils.NewAppError(utils.ErrNotFound, "comment not found: "+msg.CommentTempID, nil))
		}

	default:
		log.Printf("StoreActor: Unknown message type: %T", msg)
	}
}

func (a *StoreActor) handleAction(context actor.Context, action store.Action) {
	startTime := time.Now()

	a.current = store.Apply(a.current, action)

	a.metrics.AddOperationLatency(actionName(action), time.Since(startTime))

	// RequestFuture senders get the fresh snapshot back; plain Send has
	// no sender and the transition is fire-and-forget.
	if context.Sender() != nil {
		context.Respond(a.current)
	}
}

func actionName(action store.Action) string {
	name := fmt.Sprintf("%T", action)
	name = strings.TrimPrefix(name, "store.")
	return strings.TrimSuffix(name, "Msg")
}
