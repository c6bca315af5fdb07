// Package curriculum reads curricula and gold lexicons from their text
// formats and serves the corpora embedded in the binary.
//
// A curriculum file repeats a three-line block:
//
//	utterance words
//	scene meanings, whitespace separated
//	(blank)
//
// A gold file has one "word meaning" pair per line.
package curriculum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"wordlearn/internal/lexicon"
)

// Parse reads a curriculum. The final separator line may be omitted and
// trailing blank lines are ignored.
func Parse(r io.Reader) (lexicon.Curriculum, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var c lexicon.Curriculum
	for i := 0; i < len(lines); i += 3 {
		if blank(lines[i:]) {
			break
		}
		if i+1 >= len(lines) {
			return nil, fmt.Errorf("line %d: utterance without scene line", i+1)
		}
		scene := strings.Fields(lines[i+1])
		if len(scene) == 0 {
			return nil, fmt.Errorf("line %d: %w: empty scene", i+2, lexicon.ErrInvalidObservation)
		}
		if i+2 < len(lines) && strings.TrimSpace(lines[i+2]) != "" {
			return nil, fmt.Errorf("line %d: expected blank separator, got %q", i+3, lines[i+2])
		}
		c = append(c, lexicon.NewObservation(lines[i], scene))
	}
	return c, nil
}

// ParseGold reads a gold lexicon, skipping blank lines and dropping
// duplicate pairs.
func ParseGold(r io.Reader) (lexicon.GoldStandard, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	var pairs []lexicon.Pair
	for i, line := range lines {
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 2:
			pairs = append(pairs, lexicon.Pair{Word: fields[0], Meaning: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: want \"word meaning\", got %q", i+1, line)
		}
	}
	return lexicon.NewGoldStandard(pairs...), nil
}

// LoadFile parses the curriculum at path.
func LoadFile(path string) (lexicon.Curriculum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse curriculum %s: %w", path, err)
	}
	return c, nil
}

// LoadGoldFile parses the gold lexicon at path.
func LoadGoldFile(path string) (lexicon.GoldStandard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gold: %w", err)
	}
	defer f.Close()
	g, err := ParseGold(f)
	if err != nil {
		return nil, fmt.Errorf("parse gold %s: %w", path, err)
	}
	return g, nil
}

func blank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return lines, nil
}
