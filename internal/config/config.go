// Package config loads experiment files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"wordlearn/internal/curriculum"
	"wordlearn/internal/experiment"
	"wordlearn/internal/learner"
	"wordlearn/internal/lexicon"
)

// DefaultCorpus is used when neither a corpus nor curriculum files are named.
const DefaultCorpus = "nursery"

// File is an experiment description. Either Corpus or Curriculum (with
// Gold) selects the data; TestCorpus or TestCurriculum (with TestGold)
// optionally selects a held-out set scored after training afresh on it.
type File struct {
	Name           string         `json:"name,omitempty" yaml:"name,omitempty"`
	Corpus         string         `json:"corpus,omitempty" yaml:"corpus,omitempty"`
	Curriculum     string         `json:"curriculum,omitempty" yaml:"curriculum,omitempty"`           // path
	Gold           string         `json:"gold,omitempty" yaml:"gold,omitempty"`                       // path
	TestCorpus     string         `json:"test_corpus,omitempty" yaml:"test_corpus,omitempty"`
	TestCurriculum string         `json:"test_curriculum,omitempty" yaml:"test_curriculum,omitempty"` // path
	TestGold       string         `json:"test_gold,omitempty" yaml:"test_gold,omitempty"`             // path
	Trials         int            `json:"trials,omitempty" yaml:"trials,omitempty"`
	Seed           uint64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	Parallel       int            `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Shuffle        bool           `json:"shuffle,omitempty" yaml:"shuffle,omitempty"`
	Learners       []learner.Spec `json:"learners,omitempty" yaml:"learners,omitempty"`

	// dir resolves relative curriculum and gold paths.
	dir string
}

// LoadFromPath reads an experiment file (YAML or JSON). Relative data
// paths inside it are taken relative to the file.
func LoadFromPath(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Load parses an experiment from bytes. ext hints the format; when empty,
// content starting with '{' is JSON and anything else YAML.
func Load(data []byte, ext string) (*File, error) {
	isJSON := false
	switch strings.ToLower(ext) {
	case ".json":
		isJSON = true
	case ".yaml", ".yml":
	default:
		isJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}
	var f File
	if isJSON {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return &f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &f, nil
}

// Defaults fills zero values in place.
func (f *File) Defaults() {
	if f.Corpus == "" && f.Curriculum == "" {
		f.Corpus = DefaultCorpus
	}
	if f.Name == "" {
		f.Name = f.Corpus
		if f.Name == "" {
			f.Name = strings.TrimSuffix(filepath.Base(f.Curriculum), filepath.Ext(f.Curriculum))
		}
	}
	if f.Trials == 0 {
		f.Trials = 1
	}
	if f.Parallel == 0 {
		f.Parallel = runtime.NumCPU()
	}
	if len(f.Learners) == 0 {
		f.Learners = learner.DefaultSpecs()
	}
}

// Validate reports every problem found, joined.
func (f *File) Validate() error {
	var errs []error
	switch {
	case f.Corpus != "" && f.Curriculum != "":
		errs = append(errs, errors.New("corpus and curriculum are mutually exclusive"))
	case f.Curriculum != "" && f.Gold == "":
		errs = append(errs, errors.New("curriculum requires a gold file"))
	case f.Curriculum == "" && f.Gold != "":
		errs = append(errs, errors.New("gold requires a curriculum file"))
	}
	switch {
	case f.TestCorpus != "" && f.TestCurriculum != "":
		errs = append(errs, errors.New("test_corpus and test_curriculum are mutually exclusive"))
	case f.TestCurriculum != "" && f.TestGold == "":
		errs = append(errs, errors.New("test_curriculum requires a test_gold file"))
	case f.TestCurriculum == "" && f.TestGold != "":
		errs = append(errs, errors.New("test_gold requires a test_curriculum file"))
	}
	if f.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be >= 1, got %d", f.Trials))
	}
	if f.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel must be >= 0, got %d", f.Parallel))
	}
	for i, s := range f.Learners {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("learners[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Data loads the curriculum and gold lexicon the file points at.
func (f *File) Data() (lexicon.Curriculum, lexicon.GoldStandard, error) {
	return f.load(f.Corpus, f.Curriculum, f.Gold)
}

// HasTest reports whether a held-out set is configured.
func (f *File) HasTest() bool { return f.TestCorpus != "" || f.TestCurriculum != "" }

// TestData loads the held-out curriculum and its gold lexicon. Without a
// held-out set it returns nil data and ok false.
func (f *File) TestData() (c lexicon.Curriculum, g lexicon.GoldStandard, ok bool, err error) {
	if !f.HasTest() {
		return nil, nil, false, nil
	}
	c, g, err = f.load(f.TestCorpus, f.TestCurriculum, f.TestGold)
	if err != nil {
		return nil, nil, false, fmt.Errorf("test data: %w", err)
	}
	return c, g, true, nil
}

func (f *File) load(corpus, curr, gold string) (lexicon.Curriculum, lexicon.GoldStandard, error) {
	if corpus != "" {
		c, err := curriculum.Load(corpus)
		if err != nil {
			return nil, nil, err
		}
		return c.Curriculum, c.Gold, nil
	}
	c, err := curriculum.LoadFile(f.resolve(curr))
	if err != nil {
		return nil, nil, err
	}
	g, err := curriculum.LoadGoldFile(f.resolve(gold))
	if err != nil {
		return nil, nil, err
	}
	return c, g, nil
}

// Experiment returns the run configuration for one learner of f. When f
// has a held-out set the run is labelled as the training split.
func (f *File) Experiment(spec learner.Spec, c lexicon.Curriculum, g lexicon.GoldStandard) experiment.Config {
	split := ""
	if f.HasTest() {
		split = experiment.SplitTrain
	}
	return experiment.Config{
		Name:       f.Name,
		Spec:       spec,
		Curriculum: c,
		Gold:       g,
		Trials:     f.Trials,
		Seed:       f.Seed,
		Parallel:   f.Parallel,
		Shuffle:    f.Shuffle,
		Split:      split,
	}
}

// TestExperiment is Experiment for the held-out set: same seed and trials,
// scored against the test gold.
func (f *File) TestExperiment(spec learner.Spec, c lexicon.Curriculum, g lexicon.GoldStandard) experiment.Config {
	cfg := f.Experiment(spec, c, g)
	cfg.Split = experiment.SplitTest
	return cfg
}

func (f *File) resolve(p string) string {
	if f.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.dir, p)
}
