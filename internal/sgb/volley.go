package sgb

import (
	"fmt"
	"strings"
)

const (
	// ArrowsPerDummy is the number of arrows each dummy redirects onto its neighbourhood.
	ArrowsPerDummy = 4
	// MaxAttempts bounds the search for an empty cell; the last sample is kept regardless.
	MaxAttempts = 5
)

// Rand is the random source used by the placement rule. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type EdgePolicy int

const (
	// EdgeClamp pulls off-grid candidates back onto the nearest border cell.
	EdgeClamp EdgePolicy = iota
	// EdgeStrict refuses dummies whose neighbourhood leaves the grid.
	EdgeStrict
)

func (e EdgePolicy) String() string {
	switch e {
	case EdgeClamp:
		return "clamp"
	case EdgeStrict:
		return "strict"
	}
	return fmt.Sprintf("EdgePolicy(%d)", int(e))
}

func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return EdgeClamp, nil
	case "strict":
		return EdgeStrict, nil
	}
	return EdgeClamp, fmt.Errorf("unknown edge policy %q", s)
}

// CheckDummy validates a dummy position under the edge policy.
func CheckDummy(p Pos, edge EdgePolicy) error {
	if !InBounds(p) {
		return &InvalidPositionError{Pos: p, Reason: "outside grid"}
	}
	if edge == EdgeStrict && (p.Row < 1 || p.Row > GridSize-2 || p.Col < 1 || p.Col > GridSize-2) {
		return &InvalidPositionError{Pos: p, Reason: "neighbourhood leaves grid"}
	}
	return nil
}

func shift(rng Rand) int { return rng.Intn(3) - 1 }

// Volley fires one dummy: the dummy cell takes a hit, then each of the four
// arrows lands somewhere in the 3x3 block around it, preferring empty cells.
func Volley(grid *Grid, dummy Pos, rng Rand, edge EdgePolicy) error {
	return volley(grid, dummy, rng, edge, nil)
}

func volley(grid *Grid, dummy Pos, rng Rand, edge EdgePolicy, emit func(Event)) error {
	if err := CheckDummy(dummy, edge); err != nil {
		return err
	}
	grid.inc(dummy)
	if emit != nil {
		emit(Event{Type: EventSelfHit, Dummy: dummy, Cell: dummy})
	}

	for arrow := 0; arrow < ArrowsPerDummy; arrow++ {
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			dy := shift(rng)
			dx := shift(rng)
			cell := dummy.Add(Pos{dy, dx})
			if edge == EdgeClamp {
				cell = Pos{clamp(cell.Row), clamp(cell.Col)}
			}
			if grid.At(cell) == 0 || attempt == MaxAttempts-1 {
				grid.inc(cell)
				if emit != nil {
					emit(Event{Type: EventArrow, Dummy: dummy, Cell: cell, Arrow: arrow + 1, Attempt: attempt + 1})
				}
				break
			}
		}
	}
	return nil
}
