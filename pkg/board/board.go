// Package board mediates user intents into task store operations:
// validation, the optimistic drag-and-drop protocol, and the
// archive/reopen/delete/comment flows. Everything beyond viewing is
// gated on cookie consent, a simulated access-control flag.
package board

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/td0m/taskboard/pkg/notify"
	"github.com/td0m/taskboard/pkg/session"
	"github.com/td0m/taskboard/pkg/simulate"
	"github.com/td0m/taskboard/pkg/task"
)

// Toast messages, shown verbatim by the notification surface.
const (
	msgEmptyTitle     = "Title cannot be empty!"
	msgMissingDueDate = "Please select a due date!"
	msgPastDueDate    = "Due date cannot be in the past!"
	msgInvalidDate    = "Invalid date format. Please use DD.MM.YYYY, DDMMYYYY, DD/MM/YYYY, or DD-MM-YYYY."
	msgSaveFailed     = "Failed to save task."
	msgTaskCreated    = "Task created successfully!"
	msgTaskUpdated    = "Task updated successfully!"
	msgMoveFailed     = "Failed to move task. Reverted changes."
	msgTaskArchived   = "Task archived!"
	msgTaskReopened   = "Task reopened to 'Backlog'!"
	msgTaskDeleted    = "Task deleted!"
	msgEmptyComment   = "Comment cannot be empty!"
	msgCommentAdded   = "Comment added!"
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrMissingDueDate  = errors.New("missing due date")
	ErrPastDueDate     = errors.New("due date cannot be in the past")
	ErrConsentRequired = errors.New("cookie consent required")
	ErrNotDone         = errors.New("only done tasks can be archived")
	ErrNotArchived     = errors.New("only archived tasks can be reopened")
)

// Delays are the simulated request latencies the controller awaits.
type Delays struct {
	Load simulate.Delayer
	Save simulate.Delayer
	Move simulate.Delayer
}

// Controller orchestrates one board.
type Controller struct {
	mu sync.Mutex

	store   *task.Store
	session *session.Store
	delays  Delays
	notify  notify.Notifier
	log     *zap.SugaredLogger

	loaded     bool
	form       Form
	confirm    Confirm
	commentFor task.ID
}

func New(store *task.Store, sess *session.Store, delays Delays, notifier notify.Notifier, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{
		store:   store,
		session: sess,
		delays:  delays,
		notify:  notifier,
		log:     log,
	}
}

// Load reads the persisted collection after the simulated request
// latency. It runs once, before the first mutation.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.loaded {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.delays.Load.Delay(ctx); err != nil {
		return err
	}
	if err := c.store.Load(); err != nil {
		return err
	}
	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
	return nil
}

func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Move applies a drag-and-drop status change optimistically: the
// in-memory collection changes before the simulated round-trip
// completes, and is restored from a snapshot if the round-trip fails.
func (c *Controller) Move(ctx context.Context, id task.ID, status task.Status) error {
	if !c.session.CookieAccepted() {
		return ErrConsentRequired
	}
	// drop targets are the three columns; archived is entered only via
	// the explicit archive action
	if !status.Valid() || status == task.Archived {
		return nil
	}
	if _, ok := c.store.Get(id); !ok {
		return nil
	}

	snapshot := c.store.Snapshot()
	if err := c.store.SetStatus(id, status); err != nil {
		return err
	}

	if err := c.delays.Move.Delay(ctx); err != nil {
		c.log.Warnw("move failed, reverting", "task", id, "error", err)
		if restoreErr := c.store.Restore(snapshot); restoreErr != nil {
			return restoreErr
		}
		c.notify.Error(msgMoveFailed)
		return err
	}
	return nil
}

// Gated reports whether mutating actions are currently disabled.
func (c *Controller) Gated() bool {
	return !c.session.CookieAccepted()
}

func (c *Controller) Task(id task.ID) (task.Task, bool) {
	return c.store.Get(id)
}

// Column returns the tasks shown in one column, in append order.
func (c *Controller) Column(status task.Status) []task.Task {
	return c.store.ByStatus(status)
}

// Archived returns the archive list, ascending by due date.
func (c *Controller) Archived() []task.Task {
	return c.store.Archived()
}
