package layout

import (
	"fmt"
	"strings"
)

// Wrap splits text into lines no wider than width using a greedy,
// left-to-right word fill. A candidate line whose width equals width is
// kept. A word wider than width occupies a line on its own; when it is the
// first word the result starts with an empty line.
func Wrap(m Measurer, text string, font Font, size, width float64) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var (
		lines   []string
		current []string
	)
	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		w, err := m.StringWidth(candidate, font, size)
		if err != nil {
			return nil, fmt.Errorf("layout: measure %q: %w", candidate, err)
		}
		if w <= width {
			current = append(current, word)
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines, nil
}
