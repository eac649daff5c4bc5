package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funprob/internal/config"
	"github.com/funvibe/funprob/internal/infer"
	"github.com/funvibe/funprob/internal/rng"
	"github.com/funvibe/funprob/internal/store"
)

const usage = `funprob - probabilistic programs with swappable interpreters

Usage:
  funprob run       -model NAME [-config FILE] [-seed N] [-samples N] [-store FILE]
  funprob enumerate -model NAME [-config FILE]
  funprob runs      [-store FILE]

Sampled models:   beta-bernoulli, two-normals
Discrete models:  unequal-coins, dice
`

// Entry runs the funprob command line and returns the process exit code.
func Entry(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "run":
		err = cmdRun(args[1:], stdout)
	case "enumerate":
		err = cmdEnumerate(args[1:], stdout)
	case "runs":
		err = cmdRuns(args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "funprob: %v\n", err)
		return 1
	}
	return 0
}

// parseRunFlags merges defaults, the optional YAML config and flags, in
// that order of precedence (flags win).
func parseRunFlags(name string, args []string) (RunConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "YAML run config")
	model := fs.String("model", "", "model name")
	seed := fs.Uint64("seed", 0, "random seed")
	samples := fs.Int("samples", 0, "sample count")
	storePath := fs.String("store", "", "SQLite store for results")
	if err := fs.Parse(args); err != nil {
		return RunConfig{}, err
	}

	cfg := DefaultRunConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadRunConfig(*configPath)
		if err != nil {
			return RunConfig{}, err
		}
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *samples != 0 {
		cfg.Samples = *samples
	}
	if *storePath != "" {
		cfg.Store = *storePath
	}
	if cfg.Model == "" {
		return RunConfig{}, fmt.Errorf("no model selected; pass -model or a config file")
	}
	return cfg, nil
}

func cmdRun(args []string, stdout io.Writer) error {
	cfg, err := parseRunFlags("run", args)
	if err != nil {
		return err
	}
	d, err := buildSampled(cfg)
	if err != nil {
		return err
	}

	res, err := infer.ImportanceSample(d, rng.New(cfg.Seed), cfg.Samples)
	if err != nil {
		return err
	}
	mean, err := res.Mean()
	if err != nil {
		return err
	}
	variance, err := res.Variance()
	if err != nil {
		return err
	}

	p := newPrinter(stdout)
	p.headline("model %s  seed %d  samples %d", cfg.Model, cfg.Seed, cfg.Samples)
	p.row("posterior mean", "%.6f", mean)
	p.row("posterior variance", "%.6f", variance)
	p.row("log evidence", "%.6f", res.LogEvidence())

	if cfg.Store != "" {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		run, err := st.SaveRun(cfg.Model, cfg.Seed, res)
		if err != nil {
			return err
		}
		p.row("stored run", "%s", run.ID)
	}
	return nil
}

func cmdEnumerate(args []string, stdout io.Writer) error {
	cfg, err := parseRunFlags("enumerate", args)
	if err != nil {
		return err
	}
	table, evidence, err := buildEnumerated(cfg)
	if err != nil {
		return err
	}

	p := newPrinter(stdout)
	p.headline("model %s  (exact enumeration)", cfg.Model)
	for _, row := range table {
		p.row(row.Outcome, "%.6f", row.Prob)
	}
	p.row("evidence", "%.6f", evidence)
	return nil
}

func cmdRuns(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	storePath := fs.String("store", config.DefaultStoreFile, "SQLite store to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.Open(*storePath)
	if err != nil {
		return err
	}
	defer st.Close()
	runs, err := st.Runs()
	if err != nil {
		return err
	}

	p := newPrinter(stdout)
	p.headline("%d stored runs", len(runs))
	for _, r := range runs {
		p.row(r.ID, "%s seed=%d n=%d mean=%.6f", r.Model, r.Seed, r.Samples, r.Mean)
	}
	return nil
}

// colorEnabled reports whether w is an interactive terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
