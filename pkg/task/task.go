package task

import (
	"encoding/json"
	"fmt"

	"github.com/td0m/taskboard/pkg/task/date"
)

// ID is a creation-time Unix-millisecond timestamp, unique within a board.
type ID int64

// Status is the closed set of board columns a task can be in.
type Status int

const (
	Backlog Status = iota
	InProgress
	Done
	Archived
)

// Columns are the statuses rendered as board columns. Archived tasks
// live in the archive list instead and are never selectable on the form.
var Columns = []Status{Backlog, InProgress, Done}

var statusNames = map[Status]string{
	Backlog:    "Backlog",
	InProgress: "In Progress",
	Done:       "Done",
	Archived:   "Archived",
}

func (s Status) String() string {
	return statusNames[s]
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus maps a stored literal back onto the enumeration.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(bs []byte) error {
	var name string
	if err := json.Unmarshal(bs, &name); err != nil {
		return err
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type Task struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	DueDate     date.Date `json:"dueDate"`
	Comments    []string  `json:"comments"`
}

// DaysUntilDue is used by the legend colouring and the archive list.
func (t Task) DaysUntilDue() int {
	return t.DueDate.DaysUntil(date.Today())
}

// clone copies the task including its comment slice, so snapshots don't
// alias live state.
func (t Task) clone() Task {
	out := t
	out.Comments = make([]string, len(t.Comments))
	copy(out.Comments, t.Comments)
	return out
}
