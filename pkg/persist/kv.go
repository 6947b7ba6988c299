package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// KV is the string key/value storage backing the session flags,
// one small file per key.
type KV struct {
	dir string
}

func NewKV(dir string) *KV {
	return &KV{dir: dir}
}

func (kv KV) path(key string) string {
	return filepath.Join(kv.dir, key)
}

func (kv KV) Get(key string) (string, bool) {
	bs, err := os.ReadFile(kv.path(key))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(bs)), true
}

func (kv KV) Set(key, value string) error {
	if err := os.MkdirAll(kv.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(kv.path(key), []byte(value), 0600)
}

func (kv KV) Remove(key string) error {
	err := os.Remove(kv.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
