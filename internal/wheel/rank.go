package wheel

import (
	"errors"
	"sort"
)

// ErrNoCompatibleWheel is returned when no candidate parses as a wheel the
// local environment can install.
var ErrNoCompatibleWheel = errors.New("no compatible wheel for this environment")

// ranked pairs a parsed descriptor with its original candidate position so
// index ordering survives as the tie-break between equal ranks.
type ranked struct {
	desc  *Descriptor
	index int
	rank  int
}

// SelectBest picks the best installable wheel from a list of candidate
// filenames and returns its index into the input slice. Non-wheel
// filenames and unparseable names are dropped before ranking; descriptors
// satisfying none of the environment's triples are kept out of the winner
// search. Pure computation, no I/O.
func SelectBest(env *Environment, filenames []string) (int, error) {
	var candidates []ranked
	for i, name := range filenames {
		d, err := ParseFilename(name)
		if err != nil {
			continue
		}
		candidates = append(candidates, ranked{desc: d, index: i, rank: env.Rank(d)})
	}

	// Stable sort so candidates with equal rank keep the order the index
	// reported them in.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})

	for _, c := range candidates {
		if c.rank >= 0 {
			return c.index, nil
		}
	}
	return -1, ErrNoCompatibleWheel
}
