package remote

import "regexp"

// LatchState is the state of a reclassification latch.
type LatchState int

const (
	// Classifying is the initial state: stderr lines are treated as
	// diagnostics unless they match the benign pattern.
	Classifying LatchState = iota
	// PassthroughAll is the terminal state: every further stderr line is
	// treated as misrouted stdout for the remainder of the run.
	PassthroughAll
)

// advance is the latch transition function. The only legal transition is
// Classifying to PassthroughAll, taken when a line matches; PassthroughAll
// never reverts.
func advance(state LatchState, matched bool) LatchState {
	if state == Classifying && matched {
		return PassthroughAll
	}
	return state
}

// Latch decides, line by line and with memory of prior lines, whether a
// stderr line should be rerouted to stdout handling. Once a line matches
// the configured benign pattern the latch flips and stays flipped: the
// matching line and everything after it is rerouted.
type Latch struct {
	pattern *regexp.Regexp
	state   LatchState
}

// NewLatch returns a latch in the Classifying state keyed on pattern.
func NewLatch(pattern *regexp.Regexp) *Latch {
	return &Latch{pattern: pattern, state: Classifying}
}

// Reroute reports whether line should be handled as stdout. It observes the
// line and may flip the latch as a side effect.
func (l *Latch) Reroute(line string) bool {
	l.state = advance(l.state, l.pattern.MatchString(line))
	return l.state == PassthroughAll
}

// State returns the current latch state.
func (l *Latch) State() LatchState {
	return l.state
}
