package sgb

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgbsim/internal/util"
)

var p2Dummies = []Pos{{3, 3}, {5, 3}, {3, 5}, {5, 5}, {4, 4}, {4, 4}}

func TestEstimateWith_MockedSingleTrial(t *testing.T) {
	res, err := EstimateWith(stay(), Params{
		Dummies:     []Pos{{4, 4}},
		Target:      Footprint{SW: Pos{4, 4}, Size: 1},
		Players:     1,
		Simulations: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Mean)
	assert.Equal(t, 1, res.Trials)
	assert.Equal(t, 0.0, res.StdErr)
}

func TestEstimateWith_DividesByPlayers(t *testing.T) {
	// two casters stack ten hits on (4,4): (1 + 0.5*9) / 2
	res, err := EstimateWith(stay(), Params{
		Dummies:     []Pos{{4, 4}},
		Target:      Footprint{SW: Pos{4, 4}, Size: 1},
		Players:     2,
		Simulations: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.75, res.Mean)
	assert.Equal(t, 2.75, res.Min)
	assert.Equal(t, 2.75, res.Max)
	assert.Equal(t, 2, res.Players)
}

func TestEstimate_Defaults(t *testing.T) {
	res, err := Estimate(context.Background(), Params{Dummies: p2Dummies, Target: Footprint{SW: Pos{4, 4}}, Seed: 11})
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulations, res.Trials)
	assert.Equal(t, DefaultPlayers, res.Players)
	// the footprint covers the north-east quarter of the layout, about ten arrows
	assert.Greater(t, res.Mean, 7.0)
	assert.Less(t, res.Mean, 14.0)
}

func TestEstimate_MatchesSerialWithOneWorker(t *testing.T) {
	p := Params{Dummies: p2Dummies, Target: Footprint{SW: Pos{4, 4}, Size: 3}, Players: 6, Simulations: 300, Seed: 99}

	par, err := Estimate(context.Background(), p)
	require.NoError(t, err)
	ser, err := EstimateWith(util.New(99), p)
	require.NoError(t, err)

	assert.Equal(t, ser, par)
}

func TestEstimate_ParallelDeterministic(t *testing.T) {
	p := Params{Dummies: p2Dummies, Target: Footprint{SW: Pos{4, 4}, Size: 3}, Players: 6, Simulations: 1001, Workers: 4, Seed: 5}

	a, err := Estimate(context.Background(), p)
	require.NoError(t, err)
	b, err := Estimate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 1001, a.Trials)
	assert.LessOrEqual(t, a.Min, a.Mean)
	assert.GreaterOrEqual(t, a.Max, a.Mean)
}

func TestEstimate_Validation(t *testing.T) {
	base := func() Params {
		return Params{Dummies: []Pos{{4, 4}}, Target: Footprint{SW: Pos{4, 4}, Size: 3}}
	}
	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"no dummies", func(p *Params) { p.Dummies = nil }, ErrInvalidParams},
		{"negative players", func(p *Params) { p.Players = -1 }, ErrInvalidParams},
		{"negative simulations", func(p *Params) { p.Simulations = -5 }, ErrInvalidParams},
		{"negative workers", func(p *Params) { p.Workers = -2 }, ErrInvalidParams},
		{"dummy off grid", func(p *Params) { p.Dummies = []Pos{{4, 4}, {-1, 2}} }, ErrInvalidPosition},
		{"strict border dummy", func(p *Params) { p.Edge = EdgeStrict; p.Dummies = []Pos{{8, 4}} }, ErrInvalidPosition},
		{"footprint off grid", func(p *Params) { p.Target.SW = Pos{1, 1} }, ErrInvalidFootprint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			_, err := Estimate(context.Background(), p)
			assert.ErrorIs(t, err, tt.want)
			_, err = EstimateWith(stay(), p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEstimate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Estimate(ctx, Params{Dummies: p2Dummies, Target: Footprint{SW: Pos{4, 4}}, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEstimate_Convergence(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical check")
	}
	spread := func(n int) float64 {
		var means Tally
		for seed := int64(1); seed <= 6; seed++ {
			res, err := Estimate(context.Background(), Params{
				Dummies: p2Dummies, Target: Footprint{SW: Pos{4, 4}, Size: 3},
				Players: 2, Simulations: n, Workers: 4, Seed: seed * 1000,
			})
			require.NoError(t, err)
			means.Add(res.Mean)
		}
		return math.Sqrt(means.Variance())
	}
	small, large := spread(200), spread(20000)
	assert.Less(t, large, small)
}

func TestTally_MergeMatchesSequential(t *testing.T) {
	xs := []float64{3, 7.5, 1, 12, 4.25, 9, 2, 6.5}
	var all Tally
	for _, x := range xs {
		all.Add(x)
	}
	var a, b, empty Tally
	for _, x := range xs[:3] {
		a.Add(x)
	}
	for _, x := range xs[3:] {
		b.Add(x)
	}
	a.Merge(b)
	a.Merge(empty)

	assert.Equal(t, all.N, a.N)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-12)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
	assert.Equal(t, 1.0, a.Min)
	assert.Equal(t, 12.0, a.Max)

	empty.Merge(all)
	assert.Equal(t, all, empty)
}
