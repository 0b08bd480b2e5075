package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"sgbsim/internal/config"
	"sgbsim/internal/scenario"
	"sgbsim/internal/sgb"
	"sgbsim/internal/util"
)

const SettingsPath = "config/sgbsim.yaml"

type flags struct {
	catalog, only, dummies, target string
	edge, format                   string
	size, players, n, workers      int
	seed                           int64
	trace                          bool
}

func main() {
	var f flags
	flag.StringVar(&f.catalog, "scenarios", "", "scenario catalog yaml (default: built-in battery)")
	flag.StringVar(&f.only, "only", "", "run a single scenario by name")
	flag.StringVar(&f.dummies, "dummies", "", `ad-hoc dummy layout "r,c;r,c;..."`)
	flag.StringVar(&f.target, "target", "", `ad-hoc npc south-west cell "r,c"`)
	flag.IntVar(&f.size, "size", sgb.DefaultTargetSize, "ad-hoc npc size")
	flag.IntVar(&f.players, "players", 0, "casters per trial (0 = catalog value)")
	flag.IntVar(&f.n, "n", 0, "number of simulations (0 = catalog value)")
	flag.IntVar(&f.workers, "workers", 0, "parallel workers (0 = settings value)")
	flag.Int64Var(&f.seed, "seed", 0, "seed (0 = settings value, then clock)")
	flag.StringVar(&f.edge, "edge", "", "edge policy: clamp|strict (default: settings value)")
	flag.StringVar(&f.format, "format", "text", "output format: text|json")
	flag.BoolVar(&f.trace, "trace", false, "print the placement log of one trial as json")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, f); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	path := SettingsPath
	if p := os.Getenv("SGBSIM_CONFIG"); p != "" {
		path = p
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(settings.LogLevel),
	})).With("run_id", runID))

	opts, err := options(f, settings)
	if err != nil {
		return err
	}

	cat, scenarios, err := selectScenarios(f, settings)
	if err != nil {
		return err
	}
	slog.Info("sgbsim starting", "scenarios", len(scenarios), "workers", opts.Workers, "edge", opts.Edge, "seed", opts.Seed)

	if f.trace {
		s := cat.Resolved(scenarios[0])
		p := scenario.Params(s, opts)
		tr, err := scenario.RunTrace(util.New(util.Seed(opts.Seed)), p)
		if err != nil {
			return fmt.Errorf("trace %q: %w", s.Name, err)
		}
		fmt.Println(string(scenario.MarshalPretty(tr)))
		return nil
	}

	reports, err := scenario.Run(ctx, cat, scenarios, opts)
	if err != nil {
		return err
	}

	switch f.format {
	case "json":
		fmt.Println(string(scenario.MarshalPretty(map[string]any{
			"run_id":  runID,
			"reports": reports,
		})))
	default:
		if err := scenario.WriteText(os.Stdout, reports); err != nil {
			return err
		}
	}
	slog.Info("sgbsim finished", "scenarios", len(reports))
	return nil
}

func options(f flags, s config.Settings) (scenario.Options, error) {
	o := scenario.Options{
		Players:     f.players,
		Simulations: f.n,
		Workers:     s.Workers,
		Seed:        s.Seed,
	}
	if f.workers > 0 {
		o.Workers = f.workers
	}
	if f.seed != 0 {
		o.Seed = f.seed
	}
	edge := s.Edge
	if f.edge != "" {
		edge = f.edge
	}
	e, err := sgb.ParseEdgePolicy(edge)
	if err != nil {
		return o, err
	}
	o.Edge = e
	if f.format != "text" && f.format != "json" {
		return o, fmt.Errorf("unknown format %q", f.format)
	}
	return o, nil
}

// selectScenarios resolves what to run: an ad-hoc layout, one named
// scenario, or the whole catalog.
func selectScenarios(f flags, s config.Settings) (*config.Catalog, []config.Scenario, error) {
	var (
		cat *config.Catalog
		err error
	)
	catalogPath := s.Scenarios
	if f.catalog != "" {
		catalogPath = f.catalog
	}
	if catalogPath == "" {
		cat, err = config.DefaultCatalog()
	} else {
		cat, err = config.LoadCatalog(catalogPath)
	}
	if err != nil {
		return nil, nil, err
	}

	if f.dummies != "" {
		dummies, err := scenario.ParseLayout(f.dummies)
		if err != nil {
			return nil, nil, err
		}
		sw, err := scenario.ParsePos(f.target)
		if err != nil {
			return nil, nil, fmt.Errorf("-target: %w", err)
		}
		adhoc := config.Scenario{
			Name:        "ad-hoc",
			Target:      [2]int{sw.Row, sw.Col},
			Size:        f.size,
			Players:     sgb.DefaultPlayers,
			Simulations: sgb.DefaultSimulations,
		}
		for _, d := range dummies {
			adhoc.Dummies = append(adhoc.Dummies, [2]int{d.Row, d.Col})
		}
		return cat, []config.Scenario{adhoc}, nil
	}

	if f.only != "" {
		sc, ok := cat.Find(f.only)
		if !ok {
			return nil, nil, fmt.Errorf("unknown scenario %q", f.only)
		}
		return cat, []config.Scenario{sc}, nil
	}
	if len(cat.Scenarios) == 0 {
		return nil, nil, fmt.Errorf("catalog has no scenarios")
	}
	return cat, cat.Scenarios, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
