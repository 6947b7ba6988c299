package task

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/td0m/taskboard/pkg/task/date"
)

var (
	ErrEmptyComment = errors.New("comment cannot be empty")
)

// Persistor mirrors the in-memory collection to durable storage.
type Persistor interface {
	Save([]Task) error
	Load() ([]Task, error)
}

// Fields are the mutable fields set by the create/edit form.
type Fields struct {
	Title       string
	Description string
	Status      Status
	DueDate     date.Date
}

// Store owns the ordered task collection of one board.
// Every mutation persists the full collection afterwards; a persistence
// error is returned but never rolls back the in-memory state.
type Store struct {
	mu      sync.Mutex
	tasks   []Task
	persist Persistor
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewStore(persist Persistor, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{
		persist: persist,
		log:     log,
		now:     time.Now,
	}
}

// Load reads the persisted collection. Absent or malformed data loads
// as an empty collection; malformed data is logged for diagnostics only.
func (s *Store) Load() error {
	tasks, err := s.persist.Load()
	if err != nil {
		s.log.Warnw("stored tasks unreadable, starting empty", "error", err)
		tasks = nil
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Add constructs a new task from the given fields, appends it and
// persists. The created task is returned.
func (s *Store) Add(f Fields) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Task{
		ID:          s.nextID(),
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		DueDate:     f.DueDate,
		Comments:    []string{},
	}
	s.tasks = append(s.tasks, t)
	return t.clone(), s.save()
}

// Update replaces the mutable fields of the matching task.
// A missing id is a no-op.
func (s *Store) Update(id ID, f Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	t := s.tasks[i]
	t.Title = f.Title
	t.Description = f.Description
	t.Status = f.Status
	t.DueDate = f.DueDate
	s.tasks[i] = t
	return s.save()
}

// Remove deletes the matching task. A missing id is a no-op.
func (s *Store) Remove(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

// SetStatus is the specialised update used by drag-and-drop and the
// archive/reopen actions. A missing id is a no-op.
func (s *Store) SetStatus(id ID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Status = status
	return s.save()
}

// AppendComment appends text to the task's comment sequence.
// Empty or whitespace-only text is rejected.
func (s *Store) AppendComment(id ID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Comments = append(s.tasks[i].Comments, text)
	return s.save()
}

func (s *Store) Get(id ID) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].clone(), true
}

// All returns the collection in append order.
func (s *Store) All() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// ByStatus returns the tasks of one column, in append order.
func (s *Store) ByStatus(status Status) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t.clone())
		}
	}
	return out
}

// Archived returns archived tasks sorted ascending by due date,
// regardless of archival order.
func (s *Store) Archived() []Task {
	out := s.ByStatus(Archived)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Snapshot deep-copies the collection for the optimistic-update
// protocol: snapshot, tentative-apply, confirm or Restore.
func (s *Store) Snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// Restore replaces the collection with a previously taken snapshot and
// persists it.
func (s *Store) Restore(snapshot []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneAll(snapshot)
	return s.save()
}

func (s *Store) index(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the creation timestamp, bumping on the rare
// collision within the same millisecond.
func (s *Store) nextID() ID {
	id := ID(s.now().UnixMilli())
	for s.index(id) >= 0 {
		id++
	}
	return id
}

func (s *Store) save() error {
	if err := s.persist.Save(cloneAll(s.tasks)); err != nil {
		s.log.Errorw("persisting tasks failed", "error", err)
		return err
	}
	return nil
}

func cloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}
