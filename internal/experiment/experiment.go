// Package experiment runs learners over curricula as repeated, independently
// seeded trials and reduces their scores.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"wordlearn/internal/learner"
	"wordlearn/internal/lexicon"
	"wordlearn/internal/logging"
	"wordlearn/internal/rng"
)

// ErrInvalidConfig is returned when a run cannot be started.
var ErrInvalidConfig = errors.New("experiment: invalid config")

// Config describes one batch of trials for a single learner.
type Config struct {
	Name       string
	Spec       learner.Spec
	Curriculum lexicon.Curriculum
	Gold       lexicon.GoldStandard
	Trials     int
	Seed       uint64
	Parallel   int  // worker limit; <1 means runtime.NumCPU()
	Shuffle    bool // each trial learns from its own shuffled copy
	// Split labels the data set when an experiment has held-out data:
	// SplitTrain or SplitTest. Empty otherwise.
	Split      string
}

const (
	SplitTrain = "train"
	SplitTest  = "test"
)

func (c Config) validate() error {
	var errs []error
	if c.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be >= 1, got %d", c.Trials))
	}
	if err := c.Spec.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Curriculum.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) workers() int {
	if c.Parallel < 1 {
		return runtime.NumCPU()
	}
	return c.Parallel
}

// TrialResult is the score of one fresh learner.
type TrialResult struct {
	Index   int             `json:"index"`
	Metrics lexicon.Metrics `json:"metrics"`
	Words   int             `json:"words"` // words with a retained hypothesis
}

// Result is a completed batch.
type Result struct {
	Name     string        `json:"name"`
	Spec     learner.Spec  `json:"spec"`
	Seed     uint64        `json:"seed"`
	Shuffled bool          `json:"shuffled"`
	Split    string        `json:"split,omitempty"`
	Trials   []TrialResult `json:"trials"`
	Summary  Summary       `json:"summary"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Run executes cfg.Trials trials concurrently. Trial i draws from
// rng.New(cfg.Seed, i), so results are reproducible and independent of
// scheduling. A deterministic learner on an unshuffled curriculum always
// scores the same and is run once.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	spec, _ := cfg.Spec.Normalize()
	trials := cfg.Trials
	if !spec.Stochastic() && !cfg.Shuffle {
		trials = 1
	}

	logger := logging.New("experiment")
	logger.Info("run started", "name", cfg.Name, "split", cfg.Split, "learner", spec.String(),
		"trials", trials, "workers", cfg.workers(), "shuffle", cfg.Shuffle)

	start := time.Now()
	results, err := runTrials(ctx, spec, cfg, trials)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Name:     cfg.Name,
		Spec:     spec,
		Seed:     cfg.Seed,
		Shuffled: cfg.Shuffle,
		Split:    cfg.Split,
		Trials:   results,
		Summary:  Summarize(results),
		Started:  start,
		Elapsed:  time.Since(start),
	}
	logger.Info("run finished", "name", cfg.Name, "learner", spec.Kind,
		"f1_mean", res.Summary.F1.Mean, "elapsed", res.Elapsed)
	return res, nil
}

func runTrials(ctx context.Context, spec learner.Spec, cfg Config, trials int) ([]TrialResult, error) {
	logger := logging.New("experiment")
	results := make([]TrialResult, trials)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i := 0; i < trials; i++ {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r, err := runTrial(spec, cfg, i)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			results[i] = r
			logger.Debug("trial done", "learner", spec.Kind, "trial", i, "f1", r.Metrics.F1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runTrial builds a fresh learner with its own random stream.
func runTrial(spec learner.Spec, cfg Config, index int) (TrialResult, error) {
	src := rng.New(cfg.Seed, uint64(index))
	curr := cfg.Curriculum
	if cfg.Shuffle {
		curr = curr.Shuffled(src)
	}
	l, err := spec.Build(src)
	if err != nil {
		return TrialResult{}, err
	}
	if err := l.Observe(curr); err != nil {
		return TrialResult{}, err
	}
	return TrialResult{
		Index:   index,
		Metrics: l.Evaluate(cfg.Gold),
		Words:   l.Lexicon().Len(),
	}, nil
}
