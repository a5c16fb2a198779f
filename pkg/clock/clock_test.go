package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_TicksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, 5*time.Millisecond, func() { ticks.Add(1) })
	}()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_FirstTickImmediate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan time.Time, 1)
	start := time.Now()
	go Run(ctx, time.Hour, func() {
		select {
		case first <- time.Now():
		default:
		}
	})

	select {
	case at := <-first:
		assert.Less(t, at.Sub(start), time.Second)
	case <-time.After(time.Second):
		t.Fatal("no immediate tick")
	}
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, time.Millisecond, func() { called = true })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTimed_StopsAfterDuration(t *testing.T) {
	var ticks atomic.Int32
	var stopped atomic.Bool

	err := Timed(context.Background(), 5*time.Millisecond, 50*time.Millisecond,
		func() {
			assert.False(t, stopped.Load(), "tick after stop")
			ticks.Add(1)
		},
		func() { stopped.Store(true) },
	)

	assert.NoError(t, err)
	assert.True(t, stopped.Load())
	assert.GreaterOrEqual(t, ticks.Load(), int32(2))
}

func TestTimed_CancelledStillStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var stopped atomic.Bool

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Timed(ctx, time.Millisecond, time.Hour, func() {}, func() { stopped.Store(true) })
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, stopped.Load())
}
