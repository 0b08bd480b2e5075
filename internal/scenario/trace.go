package scenario

import (
	"fmt"

	"sgbsim/internal/sgb"
)

type Trace struct {
	Params sgb.Params  `json:"-"`
	Events []sgb.Event `json:"events"`
	Grid   *sgb.Grid   `json:"grid"`
	Score  float64     `json:"score"`
}

// RunTrace plays a single recorded trial of p.
func RunTrace(rng sgb.Rand, p sgb.Params) (*Trace, error) {
	if p.Players == 0 {
		p.Players = sgb.DefaultPlayers
	}
	if p.Players < 1 {
		return nil, fmt.Errorf("%w: players %d", sgb.ErrInvalidParams, p.Players)
	}
	if p.Target.Size == 0 {
		p.Target.Size = sgb.DefaultTargetSize
	}
	if err := p.Target.Validate(); err != nil {
		return nil, err
	}
	tr := &Trace{Params: p}
	t := sgb.NewTrial(rng, sgb.WithEdgePolicy(p.Edge), sgb.WithRecorder(func(ev sgb.Event) {
		tr.Events = append(tr.Events, ev)
	}))
	for i := 0; i < p.Players; i++ {
		if err := t.Cast(p.Dummies); err != nil {
			return nil, err
		}
	}
	tr.Grid = t.Grid()
	tr.Score = t.Score(p.Dummies, p.Target) / float64(p.Players)
	return tr, nil
}
