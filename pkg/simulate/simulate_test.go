package simulate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestRandom_WithinBounds(t *testing.T) {
	is := is.New(t)

	r := NewRandom(time.Millisecond, 5*time.Millisecond)
	for i := 0; i < 100; i++ {
		d := r.duration()
		is.True(d >= r.Min)
		is.True(d <= r.Max)
	}
}

func TestRandom_SwappedBounds(t *testing.T) {
	is := is.New(t)

	r := NewRandom(5*time.Millisecond, time.Millisecond)
	is.Equal(r.Min, time.Millisecond)
	is.Equal(r.Max, 5*time.Millisecond)
}

func TestRandom_Delay(t *testing.T) {
	is := is.New(t)

	start := time.Now()
	is.NoErr(NewRandom(time.Millisecond, 2*time.Millisecond).Delay(context.Background()))
	is.True(time.Since(start) >= time.Millisecond)
}

func TestRandom_ContextCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRandom(time.Minute, time.Minute).Delay(ctx)
	is.Equal(err, context.Canceled)
}

func TestFuncAdapters(t *testing.T) {
	is := is.New(t)

	is.NoErr(None().Delay(context.Background()))

	boom := errors.New("boom")
	is.Equal(Fail(boom).Delay(context.Background()), boom)
}
