// Package pbv implements the Propose-but-Verify learner: each word holds a
// single hypothesis that is kept while it keeps being confirmed and is
// re-proposed from the scene otherwise.
package pbv

import (
	"errors"
	"fmt"

	"wordlearn/internal/lexicon"
	"wordlearn/internal/rng"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("pbv: invalid params")

// Params configures the retention probabilities. With both at 1 the learner
// keeps a hypothesis exactly as long as it is present in the scene.
type Params struct {
	Alpha       float64 `json:"alpha" yaml:"alpha"`               // verified words
	AlphaNaught float64 `json:"alpha_naught" yaml:"alpha_naught"` // unverified words
}

func DefaultParams() Params {
	return Params{Alpha: 1, AlphaNaught: 1}
}

func (p Params) Validate() error {
	var errs []error
	if p.Alpha <= 0 || p.Alpha > 1 {
		errs = append(errs, fmt.Errorf("alpha must be in (0,1], got %v", p.Alpha))
	}
	if p.AlphaNaught <= 0 || p.AlphaNaught > 1 {
		errs = append(errs, fmt.Errorf("alpha_naught must be in (0,1], got %v", p.AlphaNaught))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Learner is a Propose-but-Verify learner.
type Learner struct {
	params   Params
	src      rng.Source
	table    lexicon.SingleTable
	verified map[string]bool
}

func New(p Params, src rng.Source) (*Learner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}
	return &Learner{
		params:   p,
		src:      src,
		table:    lexicon.SingleTable{},
		verified: make(map[string]bool),
	}, nil
}

func (l *Learner) Name() string { return "pbv" }

func (l *Learner) Params() Params { return l.params }

// Observe learns from c in order. An invalid observation anywhere in c is
// rejected before any state changes.
func (l *Learner) Observe(c lexicon.Curriculum) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, o := range c {
		for _, w := range o.Utterance {
			l.learn(w, o)
		}
	}
	return nil
}

func (l *Learner) learn(word string, o lexicon.Observation) {
	h, ok := l.table.Get(word)
	if !ok {
		l.propose(word, o.Scene)
		return
	}
	alpha := l.params.AlphaNaught
	if l.verified[word] {
		alpha = l.params.Alpha
	}
	remembered := rng.Bernoulli(l.src, alpha)
	if remembered && o.InScene(h) {
		l.verified[word] = true
		return
	}
	l.propose(word, o.Scene)
}

// propose replaces word's hypothesis with a random scene meaning and
// clears its verified mark.
func (l *Learner) propose(word string, scene []string) {
	l.table.Set(word, rng.Choose(l.src, scene))
	delete(l.verified, word)
}

func (l *Learner) Evaluate(gold lexicon.GoldStandard) lexicon.Metrics {
	return lexicon.Evaluate(l.table, gold)
}

func (l *Learner) Lexicon() lexicon.Lexicon { return l.table }

// Table returns a copy of the word -> meaning table.
func (l *Learner) Table() lexicon.SingleTable { return l.table.Clone() }

// Verified reports whether word's current hypothesis has been confirmed.
func (l *Learner) Verified(word string) bool { return l.verified[word] }
