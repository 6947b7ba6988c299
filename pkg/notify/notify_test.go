package notify

import (
	"testing"

	"github.com/matryer/is"
)

func TestHub_FanOut(t *testing.T) {
	is := is.New(t)

	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Success("Task created successfully!")
	hub.Error("Failed to move task. Reverted changes.")

	got := <-a
	is.Equal(got.Kind, Success)
	is.Equal(got.Message, "Task created successfully!")
	is.True(got.ID != "")

	got = <-a
	is.Equal(got.Kind, Error)

	// both subscribers see both notifications
	is.Equal((<-b).Message, "Task created successfully!")
	is.Equal((<-b).Message, "Failed to move task. Reverted changes.")
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	is := is.New(t)

	hub := NewHub()
	ch := hub.Subscribe()
	for i := 0; i < cap(ch)+10; i++ {
		hub.Success("x")
	}
	// publisher never blocked; the buffer holds what fit
	is.Equal(len(ch), cap(ch))
}

func TestHub_Unsubscribe(t *testing.T) {
	is := is.New(t)

	hub := NewHub()
	ch := hub.Subscribe()
	hub.Unsubscribe(ch)
	_, open := <-ch
	is.True(!open)

	// publishing after unsubscribe must not panic
	hub.Success("y")
}
