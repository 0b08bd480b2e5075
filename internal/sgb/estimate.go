package sgb

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sgbsim/internal/util"
)

const (
	DefaultPlayers     = 1
	DefaultSimulations = 2000
)

type Params struct {
	Dummies     []Pos
	Target      Footprint
	Players     int
	Simulations int
	Workers     int
	Seed        int64
	Edge        EdgePolicy
}

type Result struct {
	Mean    float64 `json:"mean"`
	StdErr  float64 `json:"std_err"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Trials  int     `json:"trials"`
	Players int     `json:"players"`
}

func (p Params) withDefaults() Params {
	if p.Target.Size == 0 {
		p.Target.Size = DefaultTargetSize
	}
	if p.Players == 0 {
		p.Players = DefaultPlayers
	}
	if p.Simulations == 0 {
		p.Simulations = DefaultSimulations
	}
	if p.Workers == 0 {
		p.Workers = 1
	}
	return p
}

func (p Params) validate() error {
	if len(p.Dummies) == 0 {
		return fmt.Errorf("%w: no dummies", ErrInvalidParams)
	}
	if p.Players < 1 {
		return fmt.Errorf("%w: players %d", ErrInvalidParams, p.Players)
	}
	if p.Simulations < 1 {
		return fmt.Errorf("%w: simulations %d", ErrInvalidParams, p.Simulations)
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidParams, p.Workers)
	}
	for _, d := range p.Dummies {
		if err := CheckDummy(d, p.Edge); err != nil {
			return err
		}
	}
	return p.Target.Validate()
}

// RunOnce plays one trial: every player casts onto the same grid, and the
// footprint score is shared out per player.
func RunOnce(rng Rand, p Params) (float64, error) {
	t := NewTrial(rng, WithEdgePolicy(p.Edge))
	for i := 0; i < p.Players; i++ {
		if err := t.Cast(p.Dummies); err != nil {
			return 0, err
		}
	}
	return t.Score(p.Dummies, p.Target) / float64(p.Players), nil
}

func runTrials(ctx context.Context, rng Rand, p Params, n int) (Tally, error) {
	var tally Tally
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return tally, err
		}
		s, err := RunOnce(rng, p)
		if err != nil {
			return tally, err
		}
		tally.Add(s)
	}
	return tally, nil
}

func resultOf(t Tally, p Params) Result {
	return Result{
		Mean: t.Mean(), StdErr: t.StdErr(), Min: t.Min, Max: t.Max,
		Trials: t.N, Players: p.Players,
	}
}

// EstimateWith runs every trial serially on rng. Workers and Seed are ignored.
func EstimateWith(rng Rand, p Params) (Result, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	t, err := runTrials(context.Background(), rng, p, p.Simulations)
	if err != nil {
		return Result{}, err
	}
	return resultOf(t, p), nil
}

// Estimate averages the footprint score over p.Simulations independent
// trials. Trials are split across p.Workers goroutines, each with its own
// random source derived from p.Seed.
func Estimate(ctx context.Context, p Params) (Result, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	workers := min(p.Workers, p.Simulations)
	per := p.Simulations / workers
	rem := p.Simulations % workers
	slog.Debug("estimate", "dummies", len(p.Dummies), "players", p.Players,
		"simulations", p.Simulations, "workers", workers, "seed", p.Seed)

	tallies := make([]Tally, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w < rem {
			n++
		}
		g.Go(func() error {
			rng := util.New(p.Seed + int64(w)*7919)
			t, err := runTrials(gctx, rng, p, n)
			if err != nil {
				return err
			}
			tallies[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Tally
	for _, t := range tallies {
		total.Merge(t)
	}
	return resultOf(total, p), nil
}
