package game

import (
	"context"
	"fmt"
	"time"
)

// RunLoop drives fn at tps logical ticks per second until the context is
// cancelled or fn returns false. The cadence is fixed and independent of
// any display refresh; ticks that run long simply delay the next one —
// there is no catch-up burst, because no tick is allowed to block.
func RunLoop(ctx context.Context, tps int, fn func() bool) error {
	if tps < 1 {
		return fmt.Errorf("game: RunLoop requires tps >= 1, got %d", tps)
	}
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !fn() {
				return nil
			}
		}
	}
}
