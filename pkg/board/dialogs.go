package board

import (
	"errors"

	"github.com/td0m/taskboard/pkg/task"
)

type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmArchive
	ConfirmReopen
	ConfirmDelete
)

// Confirm is the two-state dialog: an action stays pending until the
// user confirms or cancels it.
type Confirm struct {
	Action ConfirmAction
	TaskID task.ID
}

// RequestArchive starts the archive confirmation. Archiving is offered
// only for tasks that are Done.
func (c *Controller) RequestArchive(id task.ID) error {
	if c.Gated() {
		return ErrConsentRequired
	}
	t, ok := c.store.Get(id)
	if !ok {
		return nil
	}
	if t.Status != task.Done {
		return ErrNotDone
	}
	c.setConfirm(Confirm{Action: ConfirmArchive, TaskID: id})
	return nil
}

// RequestReopen starts the reopen confirmation, offered only from the
// archive list.
func (c *Controller) RequestReopen(id task.ID) error {
	if c.Gated() {
		return ErrConsentRequired
	}
	t, ok := c.store.Get(id)
	if !ok {
		return nil
	}
	if t.Status != task.Archived {
		return ErrNotArchived
	}
	c.setConfirm(Confirm{Action: ConfirmReopen, TaskID: id})
	return nil
}

func (c *Controller) RequestDelete(id task.ID) error {
	if c.Gated() {
		return ErrConsentRequired
	}
	if _, ok := c.store.Get(id); !ok {
		return nil
	}
	c.setConfirm(Confirm{Action: ConfirmDelete, TaskID: id})
	return nil
}

// CancelConfirm dismisses the pending dialog, leaving state untouched.
func (c *Controller) CancelConfirm() {
	c.setConfirm(Confirm{})
}

func (c *Controller) Pending() Confirm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirm
}

// ConfirmPending executes whichever action the dialog was opened for.
func (c *Controller) ConfirmPending() error {
	c.mu.Lock()
	pending := c.confirm
	c.confirm = Confirm{}
	c.mu.Unlock()

	switch pending.Action {
	case ConfirmArchive:
		if err := c.store.SetStatus(pending.TaskID, task.Archived); err != nil {
			return err
		}
		c.notify.Success(msgTaskArchived)
	case ConfirmReopen:
		// reopening always lands in Backlog
		if err := c.store.SetStatus(pending.TaskID, task.Backlog); err != nil {
			return err
		}
		c.notify.Success(msgTaskReopened)
	case ConfirmDelete:
		if err := c.store.Remove(pending.TaskID); err != nil {
			return err
		}
		c.notify.Success(msgTaskDeleted)
	}
	return nil
}

func (c *Controller) setConfirm(confirm Confirm) {
	c.mu.Lock()
	c.confirm = confirm
	c.mu.Unlock()
}

// OpenComment opens the comment modal for a task.
func (c *Controller) OpenComment(id task.ID) error {
	if c.Gated() {
		return ErrConsentRequired
	}
	if _, ok := c.store.Get(id); !ok {
		return nil
	}
	c.mu.Lock()
	c.commentFor = id
	c.mu.Unlock()
	return nil
}

func (c *Controller) CancelComment() {
	c.mu.Lock()
	c.commentFor = 0
	c.mu.Unlock()
}

// CommentOpen reports which task the comment modal targets, if open.
func (c *Controller) CommentOpen() (task.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commentFor, c.commentFor != 0
}

// AddComment appends the collected text. Empty or whitespace-only text
// is rejected and the modal stays open for correction.
func (c *Controller) AddComment(text string) error {
	c.mu.Lock()
	id := c.commentFor
	c.mu.Unlock()
	if id == 0 {
		return nil
	}
	if err := c.store.AppendComment(id, text); err != nil {
		if errors.Is(err, task.ErrEmptyComment) {
			c.notify.Error(msgEmptyComment)
		}
		return err
	}
	c.notify.Success(msgCommentAdded)
	c.CancelComment()
	return nil
}
