package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordlearn/internal/experiment"
	"wordlearn/internal/format"
	"wordlearn/internal/learner"
)

var optimizeFlags struct {
	data    dataFlags
	learner string
	top     int
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Grid-search learner parameters by mean F1",
	Long: `Optimize scores every point of the learner's parameter grid on the
training curriculum, keeps the best by mean F1, then reports that
configuration's scores on the training set and, when a held-out set is
given (--test-corpus, or --test-curriculum and --test-gold), on the test set.
The test set never takes part in the search.

Grids:
  pursuit, pursuit-sampling  gamma x lambda x tau in [0.50, 0.99]
  xsit                       beta x lambda x tau in [0.00, 0.99]`,
	RunE: runOptimize,
}

func init() {
	optimizeFlags.data.register(optimizeCmd, 10)
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeFlags.learner, "learner", string(learner.KindPursuit), "Learner to tune (pursuit, pursuit-sampling, xsit)")
	f.IntVar(&optimizeFlags.top, "top", 10, "Candidates to list (0 = all)")
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	file, err := optimizeFlags.data.load(cmd)
	if err != nil {
		return err
	}
	grid, err := experiment.GridFor(learner.Kind(optimizeFlags.learner))
	if err != nil {
		return err
	}
	curr, gold, err := file.Data()
	if err != nil {
		return err
	}
	testCurr, testGold, hasTest, err := file.TestData()
	if err != nil {
		return err
	}
	res, err := experiment.Optimize(cmd.Context(), experiment.OptimizeConfig{
		Grid:       grid,
		Curriculum: curr,
		Gold:       gold,
		Trials:     file.Trials,
		Seed:       file.Seed,
		Parallel:   file.Parallel,
	})
	if err != nil {
		return err
	}

	cfgs := []experiment.Config{file.Experiment(res.Best.Spec, curr, gold)}
	if hasTest {
		cfgs = append(cfgs, file.TestExperiment(res.Best.Spec, testCurr, testGold))
	}
	var best []*experiment.Result
	for _, cfg := range cfgs {
		r, err := experiment.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		best = append(best, r)
	}

	out := cmd.OutOrStdout()
	if optimizeFlags.data.format == "json" {
		s, err := experiment.RenderJSON(struct {
			Search *experiment.OptimizeResult `json:"search"`
			Best   []*experiment.Result       `json:"best"`
		}{res, best})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, s)
		return err
	}
	m, err := format.ParseMode(optimizeFlags.data.format)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, experiment.RenderOptimize(m, res, optimizeFlags.top))
	fmt.Fprintf(out, "\nBest: %s\n", res.Best.Spec)
	fmt.Fprintln(out, experiment.RenderSummaries(m, best))
	return nil
}
