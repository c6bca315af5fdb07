package curriculum

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"wordlearn/internal/lexicon"
)

//go:embed corpora/*.txt corpora/*.gold
var corpusFS embed.FS

// ErrCorpusNotFound is returned by Load for an unknown corpus name.
var ErrCorpusNotFound = errors.New("curriculum: corpus not found")

// Corpus is a named curriculum with its gold lexicon.
type Corpus struct {
	Name       string
	Curriculum lexicon.Curriculum
	Gold       lexicon.GoldStandard
}

// Load reads an embedded corpus by name.
func Load(name string) (*Corpus, error) {
	txt, err := corpusFS.ReadFile("corpora/" + name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrCorpusNotFound, name, strings.Join(List(), ", "))
	}
	gold, err := corpusFS.ReadFile("corpora/" + name + ".gold")
	if err != nil {
		return nil, fmt.Errorf("corpus %q has no gold file: %w", name, err)
	}
	c, err := Parse(bytes.NewReader(txt))
	if err != nil {
		return nil, fmt.Errorf("parse corpus %q: %w", name, err)
	}
	g, err := ParseGold(bytes.NewReader(gold))
	if err != nil {
		return nil, fmt.Errorf("parse corpus %q gold: %w", name, err)
	}
	return &Corpus{Name: name, Curriculum: c, Gold: g}, nil
}

// List returns the names of all embedded corpora, sorted.
func List() []string {
	entries, _ := corpusFS.ReadDir("corpora")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
		}
	}
	sort.Strings(names)
	return names
}
