package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"wordlearn/internal/learner"
	"wordlearn/internal/learner/pursuit"
	"wordlearn/internal/learner/xsit"
	"wordlearn/internal/lexicon"
	"wordlearn/internal/logging"
)

// Grid is an ordered list of candidate configurations. Order decides ties.
type Grid []learner.Spec

var optimizeSmoothings = []float64{0.1, 0.01, 0.001, 0.0001}

// thresholds returns from, from+0.01, ... below 1, rounded to hundredths.
func thresholds(from float64) []float64 {
	var out []float64
	for k := int(math.Round(from * 100)); k < 100; k++ {
		out = append(out, float64(k)/100)
	}
	return out
}

// PursuitGrid spans gamma x lambda x tau for the pursuit kind given
// (KindPursuit or KindPursuitSampling), tau from 0.50 to 0.99.
func PursuitGrid(kind learner.Kind) Grid {
	var g Grid
	for _, gamma := range []float64{0.01, 0.02, 0.05, 0.1} {
		for _, lambda := range optimizeSmoothings {
			for _, tau := range thresholds(0.5) {
				p := pursuit.Params{LearningRate: gamma, Smoothing: lambda, Threshold: tau}
				g = append(g, learner.Spec{Kind: kind, Pursuit: &p})
			}
		}
	}
	return g
}

// XSitGrid spans beta x lambda x tau for the cross-situational learner,
// tau from 0.00 to 0.99.
func XSitGrid() Grid {
	var g Grid
	for _, beta := range []float64{10, 100, 1000} {
		for _, lambda := range optimizeSmoothings {
			for _, tau := range thresholds(0) {
				p := xsit.Params{Smoothing: lambda, Beta: beta, Threshold: tau}
				g = append(g, learner.Spec{Kind: learner.KindXSit, XSit: &p})
			}
		}
	}
	return g
}

// GridFor returns the standard grid for kind.
func GridFor(kind learner.Kind) (Grid, error) {
	switch kind {
	case learner.KindXSit:
		return XSitGrid(), nil
	case learner.KindPursuit, learner.KindPursuitSampling:
		return PursuitGrid(kind), nil
	}
	return nil, fmt.Errorf("%w: no parameter grid for %q", ErrInvalidConfig, kind)
}

// OptimizeConfig describes a grid search.
type OptimizeConfig struct {
	Grid       Grid
	Curriculum lexicon.Curriculum
	Gold       lexicon.GoldStandard
	Trials     int // per stochastic candidate
	Seed       uint64
	Parallel   int
}

// Candidate is one scored grid point.
type Candidate struct {
	Spec    learner.Spec `json:"spec"`
	Summary Summary      `json:"summary"`
}

// OptimizeResult holds every candidate in grid order and the winner.
type OptimizeResult struct {
	Best       Candidate     `json:"best"`
	Candidates []Candidate   `json:"candidates"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Optimize scores every grid candidate by mean F1 and keeps the first
// strictly best one. Every candidate's trial i uses the same seed stream i.
func Optimize(ctx context.Context, cfg OptimizeConfig) (*OptimizeResult, error) {
	if len(cfg.Grid) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidConfig)
	}
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("%w: trials must be >= 1, got %d", ErrInvalidConfig, cfg.Trials)
	}
	if err := cfg.Curriculum.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	specs := make([]learner.Spec, len(cfg.Grid))
	var errs []error
	for i, s := range cfg.Grid {
		n, err := s.Normalize()
		if err == nil {
			err = n.Validate()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("candidate %d: %w", i, err))
		}
		specs[i] = n
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	logger := logging.New("optimize")
	logger.Info("grid search started", "candidates", len(specs), "trials", cfg.Trials)
	start := time.Now()

	run := Config{Curriculum: cfg.Curriculum, Gold: cfg.Gold, Seed: cfg.Seed, Parallel: cfg.Parallel}
	trials := make([][]TrialResult, len(specs))
	for i, s := range specs {
		n := cfg.Trials
		if !s.Stochastic() {
			n = 1
		}
		trials[i] = make([]TrialResult, n)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(run.workers())
	for ci, s := range specs {
		for ti := range trials[ci] {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				r, err := runTrial(s, run, ti)
				if err != nil {
					return fmt.Errorf("candidate %s trial %d: %w", s, ti, err)
				}
				trials[ci][ti] = r
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &OptimizeResult{Candidates: make([]Candidate, len(specs))}
	best := -1
	for i, s := range specs {
		res.Candidates[i] = Candidate{Spec: s, Summary: Summarize(trials[i])}
		if best < 0 || res.Candidates[i].Summary.F1.Mean > res.Candidates[best].Summary.F1.Mean {
			best = i
		}
	}
	res.Best = res.Candidates[best]
	res.Elapsed = time.Since(start)
	logger.Info("grid search finished", "best", res.Best.Spec.String(),
		"f1_mean", res.Best.Summary.F1.Mean, "elapsed", res.Elapsed)
	return res, nil
}

// sortCandidates orders by mean F1, highest first, keeping grid order
// among equals.
func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Summary.F1.Mean > c[j].Summary.F1.Mean
	})
}
