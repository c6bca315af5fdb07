// Package pursuit implements the Pursuit learner: one leading hypothesis per
// word, chosen under mutual exclusivity and adjusted by a reward/punish
// rule. Two update policies are supported; PolicySampling adjusts every
// hypothesis a word holds instead of only the leader.
package pursuit

import (
	"errors"
	"fmt"

	"wordlearn/internal/lexicon"
	"wordlearn/internal/rng"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("pursuit: invalid params")

// Policy selects the update rule for already-hypothesized words.
type Policy string

const (
	PolicySingle   Policy = "single"
	PolicySampling Policy = "sampling"
)

// Params configures the learner.
type Params struct {
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"` // gamma
	Smoothing    float64 `json:"smoothing" yaml:"smoothing"`         // lambda
	Threshold    float64 `json:"threshold" yaml:"threshold"`         // tau
	Policy       Policy  `json:"policy" yaml:"policy"`
}

// DefaultParams returns gamma=0.02, lambda=0.001, tau=0.79, single policy.
func DefaultParams() Params {
	return Params{LearningRate: 0.02, Smoothing: 0.001, Threshold: 0.79, Policy: PolicySingle}
}

func (p Params) Validate() error {
	var errs []error
	if p.LearningRate <= 0 || p.LearningRate >= 1 {
		errs = append(errs, fmt.Errorf("learning_rate must be in (0,1), got %v", p.LearningRate))
	}
	if p.Smoothing <= 0 {
		errs = append(errs, fmt.Errorf("smoothing must be > 0, got %v", p.Smoothing))
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold must be in [0,1], got %v", p.Threshold))
	}
	switch p.Policy {
	case PolicySingle, PolicySampling:
	default:
		errs = append(errs, fmt.Errorf("unknown policy %q (available: %s, %s)", p.Policy, PolicySingle, PolicySampling))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Learner is a Pursuit learner. All randomness comes from the injected source.
type Learner struct {
	params Params
	src    rng.Source
	table  lexicon.Table
	index  *MaxStrengthIndex
	seen   map[string]struct{} // meanings ever hypothesized, for N
}

// New returns an empty learner drawing from src.
func New(p Params, src rng.Source) (*Learner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParams)
	}
	return &Learner{
		params: p,
		src:    src,
		table:  lexicon.Table{},
		index:  NewMaxStrengthIndex(),
		seen:   make(map[string]struct{}),
	}, nil
}

func (l *Learner) Name() string {
	if l.params.Policy == PolicySampling {
		return "pursuit-sampling"
	}
	return "pursuit"
}

func (l *Learner) Params() Params { return l.params }

// Observe learns from c in order, then keeps only hypotheses whose P(m|w)
// clears the threshold. An invalid observation anywhere in c is rejected
// before any state changes.
func (l *Learner) Observe(c lexicon.Curriculum) error {
	if err := c.Validate(); err != nil {
		return err
	}
	for _, o := range c {
		l.observe(o)
	}
	l.Finalize()
	return nil
}

func (l *Learner) observe(o lexicon.Observation) {
	scene := make(map[string]bool, len(o.Scene))
	for _, m := range o.Scene {
		scene[m] = true
	}
	for _, w := range o.Utterance {
		if _, ok := l.table[w]; !ok {
			l.initialize(w, o.Scene)
			continue
		}
		switch l.params.Policy {
		case PolicySampling:
			l.updateAll(w, o.Scene, scene)
		default:
			l.updateLeader(w, o.Scene, scene)
		}
	}
}

// initialize picks the least-claimed meaning in the scene (mutual
// exclusivity); ties are drawn uniformly, in scene order.
func (l *Learner) initialize(word string, scene []string) {
	var minimizers []string
	var lowest float64
	for _, m := range scene {
		v := l.index.Get(m)
		switch {
		case len(minimizers) == 0 || v < lowest:
			lowest = v
			minimizers = []string{m}
		case v == lowest:
			minimizers = append(minimizers, m)
		}
	}
	chosen := rng.Choose(l.src, minimizers)
	l.set(word, chosen, l.params.LearningRate)
}

// updateLeader rewards or punishes only the strongest hypothesis. On a miss
// a random scene meaning is rewarded, or introduced at gamma.
func (l *Learner) updateLeader(word string, scene []string, inScene map[string]bool) {
	leader, v, _ := l.table.Max(word)
	if inScene[leader] {
		l.set(word, leader, l.reward(v))
		return
	}
	l.set(word, leader, l.punish(v))

	next := rng.Choose(l.src, scene)
	if cur, ok := l.table.Get(word, next); ok {
		l.set(word, next, l.reward(cur))
		return
	}
	l.set(word, next, l.params.LearningRate)
}

// updateAll adjusts every hypothesis in decreasing strength order. If none
// was in the scene a fresh random meaning is added at gamma.
func (l *Learner) updateAll(word string, scene []string, inScene map[string]bool) {
	hit := false
	for _, m := range l.table.Ranked(word) {
		v, _ := l.table.Get(word, m)
		if inScene[m] {
			hit = true
			l.set(word, m, l.reward(v))
		} else {
			l.set(word, m, l.punish(v))
		}
	}
	if !hit {
		l.set(word, rng.Choose(l.src, scene), l.params.LearningRate)
	}
}

func (l *Learner) reward(a float64) float64 { return a + l.params.LearningRate*(1-a) }

func (l *Learner) punish(a float64) float64 { return a * (1 - l.params.LearningRate) }

func (l *Learner) set(word, meaning string, v float64) {
	l.table.Set(word, meaning, v)
	l.index.Refresh(l.table, word, meaning)
	l.seen[meaning] = struct{}{}
}

// Probability returns P(m|w) = (A[w][m] + lambda) / (sum_m' A[w][m'] + N*lambda)
// where N is the number of meanings ever hypothesized.
func (l *Learner) Probability(word, meaning string) float64 {
	a, _ := l.table.Get(word, meaning)
	return (a + l.params.Smoothing) / (l.table.Sum(word) + float64(len(l.seen))*l.params.Smoothing)
}

// Finalize keeps the hypotheses that clear the threshold, with their raw
// strengths, and rebuilds the index from the survivors so later
// observations see only what is still held. Re-applying it to a stable
// table keeps the same pairs.
func (l *Learner) Finalize() {
	out := lexicon.Table{}
	for _, w := range l.table.Words() {
		for _, m := range l.table.Meanings(w) {
			if l.Probability(w, m) >= l.params.Threshold {
				a, _ := l.table.Get(w, m)
				out.Set(w, m, a)
			}
		}
	}
	l.table = out
	l.index = IndexOf(out)
}

func (l *Learner) Evaluate(gold lexicon.GoldStandard) lexicon.Metrics {
	return lexicon.Evaluate(l.table, gold)
}

func (l *Learner) Lexicon() lexicon.Lexicon { return l.table }

// Table returns a copy of the association table.
func (l *Learner) Table() lexicon.Table { return l.table.Clone() }

// Index exposes the max-strength index for inspection.
func (l *Learner) Index() *MaxStrengthIndex { return l.index }
