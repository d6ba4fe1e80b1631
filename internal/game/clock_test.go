package game

import (
	"context"
	"testing"
	"time"
)

func TestRunLoop_StopsWhenFnReturnsFalse(t *testing.T) {
	ticks := 0
	err := RunLoop(context.Background(), 1000, func() bool {
		ticks++
		return ticks < 5
	})
	if err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if ticks != 5 {
		t.Errorf("ran %d ticks, want 5", ticks)
	}
}

func TestRunLoop_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := RunLoop(ctx, 1000, func() bool {
		ticks++
		return true
	})
	if err != context.Canceled {
		t.Fatalf("RunLoop error = %v, want context.Canceled", err)
	}
	if ticks == 0 {
		t.Error("loop never ticked before cancellation")
	}
}

func TestRunLoop_RejectsBadTPS(t *testing.T) {
	if err := RunLoop(context.Background(), 0, func() bool { return false }); err == nil {
		t.Error("expected error for tps 0")
	}
}
