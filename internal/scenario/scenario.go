package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"sgbsim/internal/config"
	"sgbsim/internal/sgb"
	"sgbsim/internal/util"
)

// Options override catalog values when set.
type Options struct {
	Players     int
	Simulations int
	Workers     int
	Seed        int64
	Edge        sgb.EdgePolicy
}

type Report struct {
	Name    string        `json:"name"`
	Dummies []sgb.Pos     `json:"dummies"`
	Target  sgb.Footprint `json:"target"`
	Result  sgb.Result    `json:"result"`
}

func toPos(c [2]int) sgb.Pos { return sgb.Pos{Row: c[0], Col: c[1]} }

// Params turns a resolved scenario into estimator input.
func Params(s config.Scenario, o Options) sgb.Params {
	p := sgb.Params{
		Target:      sgb.Footprint{SW: toPos(s.Target), Size: s.Size},
		Players:     s.Players,
		Simulations: s.Simulations,
		Workers:     o.Workers,
		Seed:        o.Seed,
		Edge:        o.Edge,
	}
	for _, d := range s.Dummies {
		p.Dummies = append(p.Dummies, toPos(d))
	}
	if o.Players > 0 {
		p.Players = o.Players
	}
	if o.Simulations > 0 {
		p.Simulations = o.Simulations
	}
	return p
}

// Run estimates every scenario in order. Each scenario draws from its own
// seed so that reordering the catalog does not change a fixed-seed result.
func Run(ctx context.Context, cat *config.Catalog, scenarios []config.Scenario, o Options) ([]Report, error) {
	reports := make([]Report, 0, len(scenarios))
	for _, s := range scenarios {
		s = cat.Resolved(s)
		p := Params(s, o)
		p.Seed = seedFor(o.Seed, s.Name)
		slog.Debug("scenario start", "name", s.Name, "players", p.Players, "simulations", p.Simulations)
		res, err := sgb.Estimate(ctx, p)
		if err != nil {
			return reports, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		slog.Debug("scenario done", "name", s.Name, "mean", res.Mean, "std_err", res.StdErr)
		reports = append(reports, Report{Name: s.Name, Dummies: p.Dummies, Target: p.Target, Result: res})
	}
	return reports, nil
}

func seedFor(base int64, name string) int64 {
	if base == 0 {
		return util.Seed(0)
	}
	h := int64(17)
	for _, r := range name {
		h = h*31 + int64(r)
	}
	return base + h
}

// WriteText prints each layout followed by its average, one block per scenario.
func WriteText(w io.Writer, reports []Report) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "%s\n%s avg. arrows: %s\n", sgb.Render(r.Dummies), r.Name, FormatArrows(r.Result.Mean)); err != nil {
			return err
		}
	}
	return nil
}

// FormatArrows rounds to two decimals and prints the shortest form, keeping
// one decimal place for whole numbers (12.5, 13.27, 9.0).
func FormatArrows(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
