package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"wordlearn/internal/config"
	"wordlearn/internal/experiment"
	"wordlearn/internal/format"
	"wordlearn/internal/learner"
	"wordlearn/internal/store"
)

// dataFlags select the experiment input; shared by run, compare, optimize.
type dataFlags struct {
	config         string
	corpus         string
	curriculum     string
	gold           string
	testCorpus     string
	testCurriculum string
	testGold       string
	trials         int
	seed           uint64
	parallel       int
	shuffle        bool
	format         string
}

func (d *dataFlags) register(cmd *cobra.Command, trials int) {
	f := cmd.Flags()
	f.StringVar(&d.config, "config", "", "Experiment file (YAML or JSON)")
	f.StringVar(&d.corpus, "corpus", "", "Embedded corpus name (see 'wordlearn corpora')")
	f.StringVar(&d.curriculum, "curriculum", "", "Curriculum file path")
	f.StringVar(&d.gold, "gold", "", "Gold lexicon file path")
	f.StringVar(&d.testCorpus, "test-corpus", "", "Held-out embedded corpus, scored after training on it afresh")
	f.StringVar(&d.testCurriculum, "test-curriculum", "", "Held-out curriculum file path")
	f.StringVar(&d.testGold, "test-gold", "", "Gold lexicon for the held-out curriculum")
	f.IntVar(&d.trials, "trials", trials, "Trials per stochastic learner")
	f.Uint64Var(&d.seed, "seed", 0, "Base random seed")
	f.IntVar(&d.parallel, "parallel", 0, "Parallel trial workers (0 = number of CPUs)")
	f.BoolVar(&d.shuffle, "shuffle", false, "Learn from an independently shuffled curriculum in each trial")
	f.StringVar(&d.format, "format", "ascii", "Output format (ascii, markdown, csv, json)")
}

// load reads --config if given, then lets explicitly set flags override it.
func (d *dataFlags) load(cmd *cobra.Command) (*config.File, error) {
	f := &config.File{}
	if d.config != "" {
		var err error
		if f, err = config.LoadFromPath(d.config); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("corpus") {
		f.Corpus, f.Curriculum, f.Gold = d.corpus, "", ""
	}
	if flags.Changed("curriculum") || flags.Changed("gold") {
		f.Corpus, f.Curriculum, f.Gold = "", d.curriculum, d.gold
	}
	if flags.Changed("test-corpus") {
		f.TestCorpus, f.TestCurriculum, f.TestGold = d.testCorpus, "", ""
	}
	if flags.Changed("test-curriculum") || flags.Changed("test-gold") {
		f.TestCorpus, f.TestCurriculum, f.TestGold = "", d.testCurriculum, d.testGold
	}
	if flags.Changed("trials") || f.Trials == 0 {
		f.Trials = d.trials
	}
	if flags.Changed("seed") {
		f.Seed = d.seed
	}
	if flags.Changed("parallel") {
		f.Parallel = d.parallel
	}
	if flags.Changed("shuffle") {
		f.Shuffle = d.shuffle
	}
	f.Defaults()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment: %w", err)
	}
	return f, nil
}

// parseLearner resolves --learner into a spec with default parameters.
func parseLearner(name string) (learner.Spec, error) {
	s := learner.Spec{Kind: learner.Kind(name)}
	if err := s.Validate(); err != nil {
		return learner.Spec{}, err
	}
	return s, nil
}

// writeResults prints results as a table, or JSON when mode is "json".
func writeResults(w io.Writer, mode string, results []*experiment.Result) error {
	if mode == "json" {
		out, err := experiment.RenderJSON(results)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}
	m, err := format.ParseMode(mode)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, experiment.RenderSummaries(m, results))
	return err
}

// saveResults stores results when dbPath is set and reports the run IDs.
func saveResults(w io.Writer, dbPath string, results []*experiment.Result) error {
	if dbPath == "" {
		return nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	for _, res := range results {
		run, trials := store.FromResult(res)
		id, err := st.SaveRun(run, trials)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Fprintf(w, "Saved run %s (%s)\n", id, res.Spec.Kind)
	}
	return nil
}
