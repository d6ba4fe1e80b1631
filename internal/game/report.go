package game

import (
	"fmt"
	"strings"
)

// RunReport aggregates the interesting numbers from one simulated level
// run, derived from the world's SimLog. Test scenarios and the headless
// report tool both consume it.
type RunReport struct {
	Ticks   int
	Outcome Outcome

	FirstDetectionTick int // tick of the first patrol → chase transition, or -1
	Detections         int // patrol → chase transitions
	Calmdowns          int // chase → patrol transitions
	Teleports          int // stuck-recovery relocations
	OrbsCollected      int
	OrbsTotal          int
	PowerUpsCollected  int
	Caught             bool
}

// Report builds a RunReport from the world's current log and state.
func (w *World) Report() RunReport {
	r := RunReport{
		Ticks:              w.tick,
		Outcome:            w.Outcome(),
		FirstDetectionTick: -1,
		OrbsTotal:          len(w.Orbs),
		Caught:             w.caught,
	}
	for _, e := range w.simLog.Filter("state", "change") {
		switch {
		case strings.HasSuffix(e.Value, "→ chase"):
			r.Detections++
			if r.FirstDetectionTick < 0 {
				r.FirstDetectionTick = e.Tick
			}
		case strings.HasSuffix(e.Value, "→ patrol"):
			r.Calmdowns++
		}
	}
	r.Teleports = w.simLog.CountCategory("spawn", "teleport")
	r.PowerUpsCollected = w.simLog.CountCategory("event", "powerup")
	for _, o := range w.Orbs {
		if o.Collected {
			r.OrbsCollected++
		}
	}
	return r
}

// Format renders the report as an aligned block for terminal output.
func (r RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "outcome=%s ticks=%d\n", r.Outcome, r.Ticks)
	if r.FirstDetectionTick >= 0 {
		fmt.Fprintf(&sb, "first detection: T=%d\n", r.FirstDetectionTick)
	} else {
		sb.WriteString("first detection: never\n")
	}
	fmt.Fprintf(&sb, "detections=%d calmdowns=%d teleports=%d\n", r.Detections, r.Calmdowns, r.Teleports)
	fmt.Fprintf(&sb, "orbs=%d/%d powerups=%d caught=%v\n", r.OrbsCollected, r.OrbsTotal, r.PowerUpsCollected, r.Caught)
	return sb.String()
}
