package combine

import (
	"iter"

	"github.com/dkoosis/cpfgen/pkg/segment"
)

// Sets holds the value lists of the four segments, in candidate order.
type Sets [segment.Count][]string

// Size returns the number of tuples in the Cartesian product.
func (s Sets) Size() int64 {
	n := int64(1)
	for _, values := range s {
		n *= int64(len(values))
	}
	return n
}

// Sizes returns the length of each value list.
func (s Sets) Sizes() [segment.Count]int {
	var out [segment.Count]int
	for i, values := range s {
		out[i] = len(values)
	}
	return out
}

// Candidates yields the concatenation of every tuple in the product.
// Segment 1 varies slowest and segment 4 fastest. Breaking out of the range
// loop abandons all remaining tuples.
func Candidates(sets Sets) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, a := range sets[0] {
			for _, b := range sets[1] {
				for _, c := range sets[2] {
					prefix := a + b + c
					for _, d := range sets[3] {
						if !yield(prefix + d) {
							return
						}
					}
				}
			}
		}
	}
}
