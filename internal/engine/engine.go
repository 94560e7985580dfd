package engine

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"gator-feed/internal/models"
	"gator-feed/internal/store"
	"gator-feed/internal/utils"
)

const queryTimeout = 5 * time.Second

// Engine wires the store actor into an actor system and gives the rest
// of the client a typed handle on it.
type Engine struct {
	system   *actor.ActorSystem
	context  *actor.RootContext
	storePID *actor.PID
	metrics  *utils.MetricsCollector
}

func NewEngine(system *actor.ActorSystem, metrics *utils.MetricsCollector) *Engine {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewStoreActor(metrics)
	})
	storePID := system.Root.Spawn(props)

	return &Engine{
		system:   system,
		context:  system.Root,
		storePID: storePID,
		metrics:  metrics,
	}
}

func (e *Engine) StorePID() *actor.PID {
	return e.storePID
}

// Dispatch queues an action for application. Dispatches from one caller
// are applied in the order they were sent.
func (e *Engine) Dispatch(action store.Action) {
	e.context.Send(e.storePID, action)
}

// DispatchWait applies an action and returns the resulting snapshot.
func (e *Engine) DispatchWait(action store.Action) (*store.Store, error) {
	future := e.context.RequestFuture(e.storePID, action, queryTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDispatchTimeout, "store did not answer dispatch", err)
	}
	return result.(*store.Store), nil
}

// Snapshot returns the current store value. Snapshots are immutable and
// safe to keep across later dispatches.
func (e *Engine) Snapshot() (*store.Store, error) {
	future := e.context.RequestFuture(e.storePID, &GetSnapshotMsg{}, queryTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDispatchTimeout, "store did not answer snapshot request", err)
	}
	return result.(*store.Store), nil
}

// Post fetches the current state of one post by temp ID.
func (e *Engine) Post(tempID string) (*models.Post, error) {
	future := e.context.RequestFuture(e.storePID, &GetPostMsg{TempID: tempID}, queryTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDispatchTimeout, "store did not answer post lookup", err)
	}
	switch v := result.(type) {
	case *models.Post:
		return v, nil
	case *utils.AppError:
		return nil, v
	default:
		return nil, utils.NewAppError(utils.ErrNotFound, "unexpected post lookup result", nil)
	}
}

// Comment fetches the current state of one comment.
func (e *Engine) Comment(postTempID, commentTempID string) (*models.Comment, error) {
	future := e.context.RequestFuture(e.storePID, &GetCommentMsg{
		PostTempID:    postTempID,
		CommentTempID: commentTempID,
	}, queryTimeout)
	result, err := future.Result()
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDispatchTimeout, "store did not answer comment lookup", err)
	}
	switch v := result.(type) {
	case *models.Comment:
		return v, nil
	case *utils.AppError:
		return nil, v
	default:
		return nil, utils.NewAppError(utils.ErrNotFound, "unexpected comment lookup result", nil)
	}
}
