package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/td0m/taskboard/pkg/task"
)

// Board stores one board's task collection as a JSON array,
// one file per board key.
type Board struct {
	dir string
	key string
}

func NewBoard(dir, key string) *Board {
	return &Board{dir: dir, key: key}
}

func (b Board) path() string {
	return filepath.Join(b.dir, b.key+".json")
}

// Save mirrors the full collection to disk.
func (b Board) Save(tasks []task.Task) error {
	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(b.path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// Load reads the stored collection. A missing file yields an empty
// collection with no error; unreadable or undecodable data is reported
// so the caller can log it and start empty.
func (b Board) Load() ([]task.Task, error) {
	bs, err := os.ReadFile(b.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []task.Task
	if err := json.Unmarshal(bs, &tasks); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", b.path(), err)
	}
	return tasks, nil
}
