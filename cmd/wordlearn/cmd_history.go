package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordlearn/internal/display"
	"wordlearn/internal/format"
	"wordlearn/internal/store"
)

var historyFlags struct {
	db     string
	run    string
	limit  int
	format string
}

// nameWidth caps the Name column; run names come from config files.
const nameWidth = 24

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored runs, or the trials of one run",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.db, "db", store.DefaultDBPath, "Store DB path")
	f.StringVar(&historyFlags.run, "run", "", "Show the trials of this run ID")
	f.IntVar(&historyFlags.limit, "limit", 20, "Most recent runs to list (0 = all)")
	f.StringVar(&historyFlags.format, "format", "ascii", "Output format (ascii, markdown, csv)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	m, err := format.ParseMode(historyFlags.format)
	if err != nil {
		return err
	}
	st, err := store.OpenExisting(historyFlags.db)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if historyFlags.run != "" {
		return printTrials(cmd, st, m, historyFlags.run)
	}
	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if historyFlags.limit > 0 && len(runs) > historyFlags.limit {
		runs = runs[:historyFlags.limit]
	}
	t := format.NewTable(m)
	t.Header("ID", "Started", "Name", "Learner", "Order", "Trials", "F1")
	for _, r := range runs {
		t.Row(r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), format.Truncate(r.Name, nameWidth), r.Spec.String(),
			display.Order(r.Shuffled), r.Trials, format.MeanStd(r.Summary.F1.Mean, r.Summary.F1.Std))
	}
	t.Align(format.AlignRight, 6, 7)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}

func printTrials(cmd *cobra.Command, st store.Store, m format.Mode, id string) error {
	run, err := st.GetRun(id)
	if err != nil {
		return err
	}
	trials, err := st.ListTrials(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %s, %s on %s, seed %d\n",
		run.ID, display.Learner(string(run.Spec.Kind)), run.Spec, run.Name, run.Seed)
	t := format.NewTable(m)
	t.Header("Trial", "Words", "Precision", "Recall", "F1")
	for _, tr := range trials {
		t.Row(tr.Index, tr.Words, format.Score(tr.Metrics.Precision),
			format.Score(tr.Metrics.Recall), format.Score(tr.Metrics.F1))
	}
	t.Align(format.AlignRight, 1, 2, 3, 4, 5)
	_, err = fmt.Fprintln(out, t.String())
	return err
}
