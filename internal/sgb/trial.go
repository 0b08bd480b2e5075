package sgb

// Trial owns the grid of one simulated pull. Every caster layered onto the
// trial with Cast shares the grid; start a new trial for a clean battlefield.
type Trial struct {
	grid  *Grid
	rng   Rand
	edge  EdgePolicy
	emit  func(Event)
	casts int
}

type TrialOption func(*Trial)

func WithEdgePolicy(e EdgePolicy) TrialOption { return func(t *Trial) { t.edge = e } }

// WithRecorder receives every placement made during the trial.
func WithRecorder(emit func(Event)) TrialOption { return func(t *Trial) { t.emit = emit } }

func NewTrial(rng Rand, opts ...TrialOption) *Trial {
	t := &Trial{grid: NewGrid(), rng: rng}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Cast fires every dummy in order. The dummy list is checked up front so a
// bad layout leaves the grid unchanged.
func (t *Trial) Cast(dummies []Pos) error {
	for _, d := range dummies {
		if err := CheckDummy(d, t.edge); err != nil {
			return err
		}
	}
	caster := t.casts
	var emit func(Event)
	if t.emit != nil {
		t.emit(Event{Type: EventCast, Caster: caster})
		emit = func(ev Event) {
			ev.Caster = caster
			t.emit(ev)
		}
	}
	for _, d := range dummies {
		if err := volley(t.grid, d, t.rng, t.edge, emit); err != nil {
			return err
		}
	}
	t.casts++
	return nil
}

func (t *Trial) Casts() int { return t.casts }

// Grid returns a copy of the current grid.
func (t *Trial) Grid() *Grid {
	g := *t.grid
	return &g
}

func (t *Trial) Score(dummies []Pos, fp Footprint) float64 { return Score(dummies, fp, t.grid) }

// RunTrial fires dummies onto grid, allocating a fresh grid when grid is nil.
// Passing the returned grid back in layers another caster on top.
func RunTrial(dummies []Pos, grid *Grid, rng Rand, edge EdgePolicy) (*Grid, error) {
	if grid == nil {
		grid = NewGrid()
	}
	t := &Trial{grid: grid, rng: rng, edge: edge}
	if err := t.Cast(dummies); err != nil {
		return grid, err
	}
	return grid, nil
}
