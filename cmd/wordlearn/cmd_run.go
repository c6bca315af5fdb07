package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordlearn/internal/experiment"
	"wordlearn/internal/format"
	"wordlearn/internal/learner"
)

var runFlags struct {
	data     dataFlags
	learner  string
	db       string
	perTrial bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a learner over a curriculum and score it",
	Long: `Run trains fresh learners for the requested number of trials and reports
mean and standard deviation of precision, recall and F1.

Without --learner, the learners listed in --config are run. With a
held-out set (--test-corpus, or --test-curriculum and --test-gold) each
learner is also trained afresh on the test curriculum and scored against
the test gold.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	runFlags.data.register(runCmd, 100)
	f.StringVar(&runFlags.learner, "learner", string(learner.KindPursuit), "Learner (pbv, pursuit, pursuit-sampling, xsit)")
	f.StringVar(&runFlags.db, "db", "", "Store results in this SQLite DB (empty = do not store)")
	f.BoolVar(&runFlags.perTrial, "per-trial", false, "Also print each trial's scores")
}

func runRun(cmd *cobra.Command, _ []string) error {
	file, err := runFlags.data.load(cmd)
	if err != nil {
		return err
	}
	specs := file.Learners
	if cmd.Flags().Changed("learner") || runFlags.data.config == "" {
		s, err := parseLearner(runFlags.learner)
		if err != nil {
			return err
		}
		specs = []learner.Spec{s}
	}
	curr, gold, err := file.Data()
	if err != nil {
		return err
	}
	testCurr, testGold, hasTest, err := file.TestData()
	if err != nil {
		return err
	}

	var results []*experiment.Result
	for _, s := range specs {
		cfgs := []experiment.Config{file.Experiment(s, curr, gold)}
		if hasTest {
			cfgs = append(cfgs, file.TestExperiment(s, testCurr, testGold))
		}
		for _, cfg := range cfgs {
			res, err := experiment.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	out := cmd.OutOrStdout()
	if err := writeResults(out, runFlags.data.format, results); err != nil {
		return err
	}
	if runFlags.perTrial && runFlags.data.format != "json" {
		m, _ := format.ParseMode(runFlags.data.format)
		for _, res := range results {
			fmt.Fprintln(out, experiment.RenderTrials(m, res))
		}
	}
	return saveResults(cmd.ErrOrStderr(), runFlags.db, results)
}
