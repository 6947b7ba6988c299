// Package simulate stands in for network latency: every "request" in
// the app awaits a Delayer before committing.
package simulate

import (
	"context"
	"math/rand"
	"time"
)

// Delayer is a pending operation that resolves after some time.
// Injecting a failing Delayer drives the rollback paths in tests.
type Delayer interface {
	Delay(ctx context.Context) error
}

// Func adapts a plain function to a Delayer.
type Func func(ctx context.Context) error

func (f Func) Delay(ctx context.Context) error {
	return f(ctx)
}

// None resolves immediately. Used in tests and for instant variants.
func None() Delayer {
	return Func(func(context.Context) error { return nil })
}

// Fail resolves immediately with the given error.
func Fail(err error) Delayer {
	return Func(func(context.Context) error { return err })
}

// Random resolves after a uniformly random duration within [Min, Max].
type Random struct {
	Min time.Duration
	Max time.Duration
}

func NewRandom(min, max time.Duration) Random {
	if max < min {
		min, max = max, min
	}
	return Random{Min: min, Max: max}
}

func (r Random) Delay(ctx context.Context) error {
	timer := time.NewTimer(r.duration())
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r Random) duration() time.Duration {
	span := int64(r.Max - r.Min)
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(rand.Int63n(span+1))
}
