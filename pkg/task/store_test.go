package task

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/taskboard/pkg/task/date"
)

type memPersist struct {
	saved   []Task
	loaded  []Task
	loadErr error
	saveErr error
}

func (m *memPersist) Save(ts []Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = ts
	return nil
}

func (m *memPersist) Load() ([]Task, error) {
	return m.loaded, m.loadErr
}

func newTestStore() (*Store, *memPersist) {
	mem := &memPersist{}
	s := NewStore(mem, nil)
	// deterministic, strictly increasing ids
	var tick int64
	s.now = func() time.Time {
		tick++
		return time.UnixMilli(tick)
	}
	return s, mem
}

func TestStore_Add(t *testing.T) {
	is := is.New(t)

	s, mem := newTestStore()
	created, err := s.Add(Fields{Title: "Write spec", Status: Backlog, DueDate: date.Today().AddDays(1)})
	is.NoErr(err)
	is.Equal(s.Len(), 1)
	is.Equal(created.Status, Backlog)
	is.Equal(created.Comments, []string{})

	// append order, not sorted
	second, err := s.Add(Fields{Title: "Another", Status: Done, DueDate: date.Today()})
	is.NoErr(err)
	all := s.All()
	is.Equal([]ID{all[0].ID, all[1].ID}, []ID{created.ID, second.ID})
	is.True(created.ID != second.ID)

	// every mutation mirrors the full collection to storage
	is.True(reflect.DeepEqual(mem.saved, s.All()))
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore()
	created, _ := s.Add(Fields{Title: "before", Status: Backlog, DueDate: date.Today()})

	t.Run("replaces mutable fields", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.Update(created.ID, Fields{Title: "after", Description: "d", Status: Done, DueDate: date.Today().AddDays(2)}))
		got, ok := s.Get(created.ID)
		is.True(ok)
		is.Equal(got.Title, "after")
		is.Equal(got.Status, Done)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		is := is.New(t)
		before := s.All()
		is.NoErr(s.Update(999999, Fields{Title: "ghost"}))
		is.True(reflect.DeepEqual(s.All(), before))
	})
}

func TestStore_Remove(t *testing.T) {
	is := is.New(t)

	s, mem := newTestStore()
	a, _ := s.Add(Fields{Title: "a", DueDate: date.Today()})
	b, _ := s.Add(Fields{Title: "b", DueDate: date.Today()})

	is.NoErr(s.Remove(a.ID))
	is.Equal(s.Len(), 1)
	_, ok := s.Get(a.ID)
	is.True(!ok)
	_, ok = s.Get(b.ID)
	is.True(ok)
	is.True(reflect.DeepEqual(mem.saved, s.All()))

	// missing id is a no-op
	is.NoErr(s.Remove(a.ID))
	is.Equal(s.Len(), 1)
}

func TestStore_AppendComment(t *testing.T) {
	s, _ := newTestStore()
	created, _ := s.Add(Fields{Title: "a", DueDate: date.Today()})

	t.Run("appends in insertion order", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(s.AppendComment(created.ID, "first"))
		is.NoErr(s.AppendComment(created.ID, "second"))
		got, _ := s.Get(created.ID)
		is.Equal(got.Comments, []string{"first", "second"})
	})

	t.Run("rejects whitespace-only text", func(t *testing.T) {
		is := is.New(t)
		is.Equal(s.AppendComment(created.ID, "   "), ErrEmptyComment)
		is.Equal(s.AppendComment(created.ID, ""), ErrEmptyComment)
		got, _ := s.Get(created.ID)
		is.Equal(len(got.Comments), 2)
	})
}

func TestStore_Archived(t *testing.T) {
	is := is.New(t)

	s, _ := newTestStore()
	later, _ := s.Add(Fields{Title: "later", Status: Done, DueDate: date.New(2030, time.March, 1)})
	sooner, _ := s.Add(Fields{Title: "sooner", Status: Done, DueDate: date.New(2030, time.January, 1)})

	// archive the later-due task first: order must still be by due date
	is.NoErr(s.SetStatus(later.ID, Archived))
	is.NoErr(s.SetStatus(sooner.ID, Archived))

	archived := s.Archived()
	is.Equal(len(archived), 2)
	is.Equal(archived[0].ID, sooner.ID)
	is.Equal(archived[1].ID, later.ID)
}

func TestStore_SnapshotRestore(t *testing.T) {
	is := is.New(t)

	s, mem := newTestStore()
	a, _ := s.Add(Fields{Title: "a", Status: Backlog, DueDate: date.Today()})
	s.AppendComment(a.ID, "note")

	snapshot := s.Snapshot()
	is.NoErr(s.SetStatus(a.ID, Done))
	s.AppendComment(a.ID, "more")

	is.NoErr(s.Restore(snapshot))
	is.True(reflect.DeepEqual(s.All(), snapshot))
	is.True(reflect.DeepEqual(mem.saved, snapshot))

	// the snapshot does not alias live state
	got, _ := s.Get(a.ID)
	is.Equal(got.Status, Backlog)
	is.Equal(got.Comments, []string{"note"})
}

func TestStore_Load(t *testing.T) {
	t.Run("malformed data loads as empty", func(t *testing.T) {
		is := is.New(t)
		mem := &memPersist{loadErr: errors.New("unexpected end of JSON input")}
		s := NewStore(mem, nil)
		is.NoErr(s.Load())
		is.Equal(s.Len(), 0)
	})

	t.Run("loads persisted collection", func(t *testing.T) {
		is := is.New(t)
		mem := &memPersist{loaded: []Task{{ID: 1, Title: "a", Status: Done, DueDate: date.Today(), Comments: []string{}}}}
		s := NewStore(mem, nil)
		is.NoErr(s.Load())
		is.Equal(s.Len(), 1)
		got, ok := s.Get(1)
		is.True(ok)
		is.Equal(got.Title, "a")
	})
}

func TestStatus_JSON(t *testing.T) {
	is := is.New(t)

	bs, err := json.Marshal([]Status{Backlog, InProgress, Done, Archived})
	is.NoErr(err)
	is.Equal(string(bs), `["Backlog","In Progress","Done","Archived"]`)

	var out Status
	is.NoErr(json.Unmarshal([]byte(`"In Progress"`), &out))
	is.Equal(out, InProgress)
	is.True(json.Unmarshal([]byte(`"Doing"`), &out) != nil)
}
