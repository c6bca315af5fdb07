package main

import (
	"github.com/spf13/cobra"

	"wordlearn/internal/experiment"
)

var compareFlags struct {
	data dataFlags
	db   string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare learners on the same curriculum",
	Long: `Compare runs every learner (the default set, or those listed in --config)
on the curriculum as given. With --shuffle, each learner is run again on
shuffled curricula to show how sensitive it is to observation order.
A held-out set is compared the same way after the training set.`,
	RunE: runCompare,
}

func init() {
	compareFlags.data.register(compareCmd, 100)
	compareCmd.Flags().StringVar(&compareFlags.db, "db", "", "Store results in this SQLite DB (empty = do not store)")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	file, err := compareFlags.data.load(cmd)
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
	bases := []experiment.Config{file.Experiment(file.Learners[0], curr, gold)}
	if hasTest {
		bases = append(bases, file.TestExperiment(file.Learners[0], testCurr, testGold))
	}
	var results []*experiment.Result
	for _, base := range bases {
		base.Shuffle = false
		res, err := experiment.Compare(cmd.Context(), base, file.Learners, file.Shuffle)
		if err != nil {
			return err
		}
		results = append(results, res...)
	}
	if err := writeResults(cmd.OutOrStdout(), compareFlags.data.format, results); err != nil {
		return err
	}
	return saveResults(cmd.ErrOrStderr(), compareFlags.db, results)
}
