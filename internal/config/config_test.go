package config

import (
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
)

// chdir moves the test into an empty dir so a developer's own
// config.yaml or .env cannot leak into the assertions.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	is := is.New(t)

	chdir(t, t.TempDir())

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Board.Key, "challenge5-kanban")
	is.Equal(cfg.Auth.Username, "test")
	is.Equal(cfg.Delays.MoveMin, 100*time.Millisecond)
	is.Equal(cfg.Delays.MoveMax, 400*time.Millisecond)
	is.Equal(cfg.Logger.Level, "info")
	is.True(cfg.DataDir != "")
}

func TestLoad_EnvOverride(t *testing.T) {
	is := is.New(t)

	chdir(t, t.TempDir())
	t.Setenv("TASKBOARD_BOARD_KEY", "challenge4-kanban")
	t.Setenv("TASKBOARD_DELAYS_MOVE_MAX", "50ms")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Board.Key, "challenge4-kanban")
	is.Equal(cfg.Delays.MoveMax, 50*time.Millisecond)
}
