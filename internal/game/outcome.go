package game

// Outcome summarises how a level run ended, if it has.
type Outcome int

const (
	OutcomeOngoing  Outcome = iota // still playable
	OutcomeComplete                // all orbs collected
	OutcomeCaught                  // a guardian reached the player
	OutcomeTimeout                 // the countdown expired
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeComplete:
		return "complete"
	case OutcomeCaught:
		return "caught"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Outcome evaluates the world's terminal state. Completion wins ties:
// collecting the last orb on the tick the timer expires still completes
// the level.
func (w *World) Outcome() Outcome {
	switch {
	case w.levelComplete:
		return OutcomeComplete
	case w.caught:
		return OutcomeCaught
	case w.timeExpired:
		return OutcomeTimeout
	default:
		return OutcomeOngoing
	}
}
