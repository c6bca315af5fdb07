package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"wordlearn/internal/rng"
)

// ErrInvalidObservation is returned when an observation cannot be learned
// from, e.g. its scene offers no candidate meaning.
var ErrInvalidObservation = errors.New("lexicon: invalid observation")

// Observation pairs an utterance with the meanings present in its scene.
type Observation struct {
	Utterance []string `json:"utterance" yaml:"utterance"`
	Scene     []string `json:"scene" yaml:"scene"`
}

// NewObservation splits utterance on whitespace and de-duplicates scene,
// keeping the first occurrence of each meaning.
func NewObservation(utterance string, scene []string) Observation {
	return Observation{
		Utterance: strings.Fields(utterance),
		Scene:     uniq(scene),
	}
}

// Validate rejects observations with an empty scene.
func (o Observation) Validate() error {
	if len(o.Scene) == 0 {
		return fmt.Errorf("%w: empty scene for utterance %q", ErrInvalidObservation, strings.Join(o.Utterance, " "))
	}
	return nil
}

// InScene reports whether meaning is one of the scene's candidates.
func (o Observation) InScene(meaning string) bool {
	for _, m := range o.Scene {
		if m == meaning {
			return true
		}
	}
	return false
}

// Curriculum is an ordered stream of observations. Order matters: every
// learner is incremental.
type Curriculum []Observation

// Validate checks every observation and reports the first bad index.
func (c Curriculum) Validate() error {
	for i, o := range c {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
	}
	return nil
}

// Shuffled returns a shuffled copy; c itself is not modified.
func (c Curriculum) Shuffled(src rng.Source) Curriculum {
	out := make(Curriculum, len(c))
	copy(out, c)
	rng.Shuffle(src, len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Vocabulary returns the number of distinct word types in c.
func (c Curriculum) Vocabulary() int {
	seen := make(map[string]struct{})
	for _, o := range c {
		for _, w := range o.Utterance {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

func uniq(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
