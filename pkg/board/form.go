package board

import (
	"context"
	"strings"

	"github.com/td0m/taskboard/pkg/task"
	"github.com/td0m/taskboard/pkg/task/date"
)

type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

// Form is the create/edit modal state. DueInput is the raw text the
// user typed; DueDate is the canonical value it parsed to. Only the
// canonical value is ever persisted.
type Form struct {
	Mode        FormMode
	TaskID      task.ID
	Title       string
	Description string
	Status      task.Status
	DueDate     date.Date
	DueInput    string
	Saving      bool
}

// OpenCreate opens the form with defaults: status Backlog, empty fields.
func (c *Controller) OpenCreate() error {
	if c.Gated() {
		return ErrConsentRequired
	}
	c.mu.Lock()
	c.form = Form{Mode: FormCreate, Status: task.Backlog}
	c.mu.Unlock()
	return nil
}

// OpenEdit opens the form pre-filled from an existing task.
func (c *Controller) OpenEdit(id task.ID) error {
	if c.Gated() {
		return ErrConsentRequired
	}
	t, ok := c.store.Get(id)
	if !ok {
		return nil
	}
	c.mu.Lock()
	c.form = Form{
		Mode:        FormEdit,
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		DueInput:    t.DueDate.DisplayString(),
	}
	c.mu.Unlock()
	return nil
}

// CancelForm discards form state without touching the store.
func (c *Controller) CancelForm() {
	c.mu.Lock()
	if !c.form.Saving {
		c.form = Form{}
	}
	c.mu.Unlock()
}

func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// editable reports whether the form currently accepts input.
// Fields lock while consent is missing or a save is in flight.
func (c *Controller) editable() bool {
	return c.form.Mode != FormClosed && !c.form.Saving && c.session.CookieAccepted()
}

func (c *Controller) SetTitle(s string) {
	c.mu.Lock()
	if c.editable() {
		c.form.Title = s
	}
	c.mu.Unlock()
}

func (c *Controller) SetDescription(s string) {
	c.mu.Lock()
	if c.editable() {
		c.form.Description = s
	}
	c.mu.Unlock()
}

// SetStatus changes the form's status selection. Archived is not
// selectable during create/edit.
func (c *Controller) SetStatus(s task.Status) {
	c.mu.Lock()
	if c.editable() && s.Valid() && s != task.Archived {
		c.form.Status = s
	}
	c.mu.Unlock()
}

func (c *Controller) SetDueInput(s string) {
	c.mu.Lock()
	if c.editable() {
		c.form.DueInput = s
	}
	c.mu.Unlock()
}

// CommitDueInput parses the raw date text into the canonical form.
// On no match the pending date is cleared and a validation toast is
// emitted (unless the field was left blank).
func (c *Controller) CommitDueInput() error {
	c.mu.Lock()
	if !c.editable() {
		c.mu.Unlock()
		return nil
	}
	raw := c.form.DueInput
	parsed, err := date.ParseInput(raw)
	if err != nil {
		c.form.DueDate = date.Date{}
		c.mu.Unlock()
		if strings.TrimSpace(raw) != "" {
			c.notify.Error(msgInvalidDate)
			return err
		}
		return nil
	}
	c.form.DueDate = parsed
	c.form.DueInput = parsed.DisplayString()
	c.mu.Unlock()
	return nil
}

// SubmitForm validates, awaits the simulated save latency, then
// commits. Validation failures leave the form open; a save already in
// flight makes this a no-op, which prevents duplicate submission.
func (c *Controller) SubmitForm(ctx context.Context) error {
	c.mu.Lock()
	if !c.editable() {
		c.mu.Unlock()
		return nil
	}
	f := c.form
	var invalid error
	switch {
	case strings.TrimSpace(f.Title) == "":
		invalid = ErrEmptyTitle
		c.notify.Error(msgEmptyTitle)
	case f.DueDate.IsZero():
		invalid = ErrMissingDueDate
		c.notify.Error(msgMissingDueDate)
	case f.DueDate.Before(date.Today()):
		invalid = ErrPastDueDate
		c.notify.Error(msgPastDueDate)
	}
	if invalid != nil {
		c.mu.Unlock()
		return invalid
	}
	c.form.Saving = true
	c.mu.Unlock()

	if err := c.delays.Save.Delay(ctx); err != nil {
		c.mu.Lock()
		c.form.Saving = false
		c.mu.Unlock()
		c.notify.Error(msgSaveFailed)
		return err
	}

	fields := task.Fields{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		DueDate:     f.DueDate,
	}
	var err error
	if f.Mode == FormEdit {
		err = c.store.Update(f.TaskID, fields)
	} else {
		_, err = c.store.Add(fields)
	}
	c.mu.Lock()
	c.form = Form{}
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if f.Mode == FormEdit {
		c.notify.Success(msgTaskUpdated)
	} else {
		c.notify.Success(msgTaskCreated)
	}
	return nil
}
