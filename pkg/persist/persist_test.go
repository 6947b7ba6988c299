package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/td0m/taskboard/pkg/task"
	"github.com/td0m/taskboard/pkg/task/date"
)

func TestBoard_SaveLoad(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	board := NewBoard(dir, "challenge5-kanban")

	tasks := []task.Task{
		{ID: 1735689600000, Title: "Write spec", Description: "", Status: task.Backlog, DueDate: date.New(2030, time.January, 2), Comments: []string{}},
		{ID: 1735689600001, Title: "Ship it", Description: "eventually", Status: task.Done, DueDate: date.New(2030, time.February, 2), Comments: []string{"lgtm"}},
	}
	is.NoErr(board.Save(tasks))

	loaded, err := board.Load()
	is.NoErr(err)
	is.True(reflect.DeepEqual(loaded, tasks))
}

func TestBoard_LoadMissing(t *testing.T) {
	is := is.New(t)

	board := NewBoard(t.TempDir(), "empty")
	loaded, err := board.Load()
	is.NoErr(err)
	is.Equal(len(loaded), 0)
}

func TestBoard_LoadMalformed(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0600))

	board := NewBoard(dir, "bad")
	_, err := board.Load()
	is.True(err != nil)
}

func TestKV(t *testing.T) {
	is := is.New(t)

	kv := NewKV(t.TempDir())

	_, ok := kv.Get("isLoggedIn")
	is.True(!ok)

	is.NoErr(kv.Set("isLoggedIn", "true"))
	v, ok := kv.Get("isLoggedIn")
	is.True(ok)
	is.Equal(v, "true")

	is.NoErr(kv.Remove("isLoggedIn"))
	_, ok = kv.Get("isLoggedIn")
	is.True(!ok)

	// removing an absent key is fine
	is.NoErr(kv.Remove("isLoggedIn"))
}
