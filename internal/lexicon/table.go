package lexicon

import "sort"

// Lexicon is the read-only view Evaluate scores.
type Lexicon interface {
	// Has reports whether meaning is a retained hypothesis for word.
	Has(word, meaning string) bool
	// Len is the number of words with at least one retained hypothesis.
	Len() int
}

// Table maps word -> meaning -> association strength.
type Table map[string]map[string]float64

// Ensure creates an empty entry for word if it has none.
func (t Table) Ensure(word string) map[string]float64 {
	row, ok := t[word]
	if !ok {
		row = make(map[string]float64)
		t[word] = row
	}
	return row
}

// Get returns A[word][meaning] and whether the pair exists.
func (t Table) Get(word, meaning string) (float64, bool) {
	v, ok := t[word][meaning]
	return v, ok
}

func (t Table) Set(word, meaning string, v float64) {
	t.Ensure(word)[meaning] = v
}

// Add increments A[word][meaning] by delta, starting from 0.
func (t Table) Add(word, meaning string, delta float64) float64 {
	row := t.Ensure(word)
	row[meaning] += delta
	return row[meaning]
}

func (t Table) Has(word, meaning string) bool {
	_, ok := t[word][meaning]
	return ok
}

func (t Table) Len() int {
	n := 0
	for _, row := range t {
		if len(row) > 0 {
			n++
		}
	}
	return n
}

// Words returns all words with an entry, sorted.
func (t Table) Words() []string {
	words := make([]string, 0, len(t))
	for w := range t {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Meanings returns word's meanings, sorted by name.
func (t Table) Meanings(word string) []string {
	row := t[word]
	out := make([]string, 0, len(row))
	for m := range row {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Ranked returns word's meanings by decreasing strength; equal strengths
// are ordered by meaning name so the ranking never depends on map order.
func (t Table) Ranked(word string) []string {
	row := t[word]
	out := t.Meanings(word)
	sort.SliceStable(out, func(i, j int) bool {
		return row[out[i]] > row[out[j]]
	})
	return out
}

// Max returns word's strongest meaning (ties: smallest name).
func (t Table) Max(word string) (string, float64, bool) {
	ranked := t.Ranked(word)
	if len(ranked) == 0 {
		return "", 0, false
	}
	return ranked[0], t[word][ranked[0]], true
}

// Sum returns the total strength held by word.
func (t Table) Sum(word string) float64 {
	var s float64
	for _, m := range t.Meanings(word) {
		s += t[word][m]
	}
	return s
}

func (t Table) Clone() Table {
	out := make(Table, len(t))
	for w, row := range t {
		r := make(map[string]float64, len(row))
		for m, v := range row {
			r[m] = v
		}
		out[w] = r
	}
	return out
}

// SingleTable maps each word to exactly one meaning.
type SingleTable map[string]string

func (t SingleTable) Has(word, meaning string) bool {
	m, ok := t[word]
	return ok && m == meaning
}

func (t SingleTable) Len() int { return len(t) }

func (t SingleTable) Get(word string) (string, bool) {
	m, ok := t[word]
	return m, ok
}

func (t SingleTable) Set(word, meaning string) { t[word] = meaning }

func (t SingleTable) Clone() SingleTable {
	out := make(SingleTable, len(t))
	for w, m := range t {
		out[w] = m
	}
	return out
}
