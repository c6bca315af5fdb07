package pursuit

import "wordlearn/internal/lexicon"

// MaxStrengthIndex tracks, per meaning, the strongest association any word
// holds for it. holders lets a refresh visit only the words that have
// hypothesized the meaning instead of the whole table.
type MaxStrengthIndex struct {
	max     map[string]float64
	holders map[string]map[string]struct{}
}

func NewMaxStrengthIndex() *MaxStrengthIndex {
	return &MaxStrengthIndex{
		max:     make(map[string]float64),
		holders: make(map[string]map[string]struct{}),
	}
}

// IndexOf builds an index over every pair in t.
func IndexOf(t lexicon.Table) *MaxStrengthIndex {
	x := NewMaxStrengthIndex()
	for _, w := range t.Words() {
		for _, m := range t.Meanings(w) {
			x.Refresh(t, w, m)
		}
	}
	return x
}

// Get returns the current maximum for meaning, 0 if no word holds it.
func (x *MaxStrengthIndex) Get(meaning string) float64 {
	return x.max[meaning]
}

// Len is the number of distinct meanings some word currently holds.
func (x *MaxStrengthIndex) Len() int { return len(x.max) }

// Refresh records that word holds meaning and recomputes the meaning's
// maximum from its holders in t.
func (x *MaxStrengthIndex) Refresh(t lexicon.Table, word, meaning string) {
	h, ok := x.holders[meaning]
	if !ok {
		h = make(map[string]struct{})
		x.holders[meaning] = h
	}
	h[word] = struct{}{}

	var best float64
	found := false
	for w := range h {
		v, ok := t.Get(w, meaning)
		if !ok {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	if found {
		x.max[meaning] = best
	}
}

// Snapshot returns a copy of the meaning -> maximum map.
func (x *MaxStrengthIndex) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(x.max))
	for m, v := range x.max {
		out[m] = v
	}
	return out
}
