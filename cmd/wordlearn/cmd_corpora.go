package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordlearn/internal/curriculum"
	"wordlearn/internal/format"
)

var corporaFlags struct {
	format string
}

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "List the embedded corpora",
	RunE:  runCorpora,
}

func init() {
	corporaCmd.Flags().StringVar(&corporaFlags.format, "format", "ascii", "Output format (ascii, markdown, csv)")
}

func runCorpora(cmd *cobra.Command, _ []string) error {
	m, err := format.ParseMode(corporaFlags.format)
	if err != nil {
		return err
	}
	t := format.NewTable(m)
	t.Header("Corpus", "Observations", "Words", "Gold pairs")
	for _, name := range curriculum.List() {
		c, err := curriculum.Load(name)
		if err != nil {
			return err
		}
		t.Row(c.Name, len(c.Curriculum), c.Curriculum.Vocabulary(), len(c.Gold))
	}
	t.Align(format.AlignRight, 2, 3, 4)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}
