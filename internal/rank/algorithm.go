// Package rank scores link graph nodes with PageRank or HITS.
package rank

import (
	"errors"
	"fmt"
)

type Algorithm string

const (
	HITS     Algorithm = "HITS"
	PageRank Algorithm = "PageRank"
)

// Algorithms lists the selectable algorithms in display order.
var Algorithms = []Algorithm{HITS, PageRank}

var (
	ErrUnknownAlgorithm = errors.New("unknown ranking algorithm")
	ErrNotConverged     = errors.New("ranking did not converge")
)

func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) String() string { return string(a) }
