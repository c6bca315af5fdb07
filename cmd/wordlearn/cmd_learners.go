package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordlearn/internal/display"
	"wordlearn/internal/format"
	"wordlearn/internal/learner"
)

var learnersFlags struct {
	format string
}

var learnersCmd = &cobra.Command{
	Use:   "learners",
	Short: "List the learners and their default parameters",
	RunE:  runLearners,
}

func init() {
	learnersCmd.Flags().StringVar(&learnersFlags.format, "format", "ascii", "Output format (ascii, markdown, csv)")
}

type paramRow struct {
	key   string
	value any
}

func defaultParams(kind learner.Kind) []paramRow {
	n, err := learner.Spec{Kind: kind}.Normalize()
	if err != nil {
		return nil
	}
	switch {
	case n.XSit != nil:
		p := n.XSit
		return []paramRow{{"smoothing", p.Smoothing}, {"beta", p.Beta}, {"threshold", p.Threshold}}
	case n.Pursuit != nil:
		p := n.Pursuit
		return []paramRow{{"learning_rate", p.LearningRate}, {"smoothing", p.Smoothing},
			{"threshold", p.Threshold}, {"policy", p.Policy}}
	default:
		p := n.PBV
		return []paramRow{{"alpha", p.Alpha}, {"alpha_naught", p.AlphaNaught}}
	}
}

func runLearners(cmd *cobra.Command, _ []string) error {
	m, err := format.ParseMode(learnersFlags.format)
	if err != nil {
		return err
	}
	t := format.NewTable(m)
	t.Header("Learner", "Parameter", "Key", "Default")
	for _, k := range learner.Kinds() {
		for i, p := range defaultParams(k) {
			name := ""
			if i == 0 {
				name = display.LearnerWithCode(string(k))
			}
			t.Row(name, display.Param(p.key), p.key, fmt.Sprint(p.value))
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}
