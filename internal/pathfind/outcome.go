package pathfind

// Outcome is how a single search ended.
type Outcome int

const (
	// Succeeded means the goal was reached.
	Succeeded Outcome = iota
	// Unreachable means the start or goal cell is not walkable.
	Unreachable
	// NoPath means the open set ran dry before reaching the goal.
	NoPath
	// IterationLimit means the search gave up after max iterations.
	IterationLimit
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Unreachable:
		return "unreachable"
	case NoPath:
		return "no_path"
	case IterationLimit:
		return "iteration_limit"
	default:
		return "unknown"
	}
}
