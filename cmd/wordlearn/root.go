// wordlearn runs word-learning models over child-directed curricula and
// scores the lexicons they acquire.
//
// Usage:
//
//	wordlearn run --learner=pursuit --corpus=nursery --trials=100
//	wordlearn compare --corpus=toy --shuffle
//	wordlearn optimize --learner=xsit --corpus=nursery
//	wordlearn corpora
//	wordlearn learners
//	wordlearn history --db=.wordlearn/results.db
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordlearn/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "wordlearn",
	Short: "Simulate early word learning over child-directed curricula",
	Long: `Wordlearn feeds (utterance, scene) observations to cross-situational,
pursuit and propose-but-verify learners and scores the learned lexicon
against a gold standard by precision, recall and F1.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return logging.Setup(rootFlags.logLevel, rootFlags.logFormat, cmd.ErrOrStderr())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", logging.FormatText, "Log format (text, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(corporaCmd)
	rootCmd.AddCommand(learnersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
