// Package segment enumerates the four independent pieces of a CPF candidate.
//
// Segments 1 to 3 are three-digit blocks whose bounds callers may narrow to
// sample or shard the search space. Segment 4 always spans 00..99: it holds
// raw candidate suffixes that the checksum step verifies later.
package segment

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
)

// Count is the number of segments composing a candidate.
const Count = 4

const (
	blockWidth  = 3
	suffixWidth = 2
	blockMax    = 999
	suffixMax   = 99
)

var (
	// ErrIndex reports a segment index outside 1..4.
	ErrIndex = errors.New("segment: index must be between 1 and 4")
	// ErrBounds reports a range that is inverted or does not fit the width.
	ErrBounds = errors.New("segment: bounds out of range")
)

// Bounds is an inclusive [Low, High] range.
type Bounds struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// Full returns the widest bounds for a three-digit block.
func Full() Bounds { return Bounds{Low: 0, High: blockMax} }

// Segment is an immutable, zero-padded ordinal range.
type Segment struct {
	index int
	low   int
	high  int
	width int
}

// New returns segment index restricted to [low, high].
// Segment 4 ignores the supplied bounds and always spans 00..99.
func New(index, low, high int) (Segment, error) {
	switch {
	case index == Count:
		return Segment{index: index, low: 0, high: suffixMax, width: suffixWidth}, nil
	case index < 1 || index > Count:
		return Segment{}, fmt.Errorf("%w: got %d", ErrIndex, index)
	}
	if low < 0 || high > blockMax || low > high {
		return Segment{}, fmt.Errorf("%w: segment %d [%d, %d]", ErrBounds, index, low, high)
	}
	return Segment{index: index, low: low, high: high, width: blockWidth}, nil
}

// Default returns segment index over its full range.
func Default(index int) (Segment, error) {
	return New(index, 0, blockMax)
}

// Index returns the 1-based position of the segment.
func (s Segment) Index() int { return s.index }

// Bounds returns the inclusive range the segment enumerates.
func (s Segment) Bounds() Bounds { return Bounds{Low: s.low, High: s.high} }

// Width returns the zero-padded width of each value.
func (s Segment) Width() int { return s.width }

// Len returns the number of values the segment produces.
func (s Segment) Len() int { return s.high - s.low + 1 }

// Label names the segment in artifact headers and manifests.
func (s Segment) Label() string { return Label(s.index) }

// Label returns the header label for segment index.
func Label(index int) string { return "segment_" + strconv.Itoa(index) }

// Values yields every value of the segment in ascending order.
// The sequence may be ranged over any number of times.
func (s Segment) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		buf := make([]byte, s.width)
		for v := s.low; v <= s.high; v++ {
			if !yield(pad(buf, v)) {
				return
			}
		}
	}
}

// Slice materializes Values. Segments hold at most 1000 values.
func (s Segment) Slice() []string {
	out := make([]string, 0, s.Len())
	for v := range s.Values() {
		out = append(out, v)
	}
	return out
}

// Enumerate is shorthand for New(index, low, high).Values().
func Enumerate(index, low, high int) (iter.Seq[string], error) {
	s, err := New(index, low, high)
	if err != nil {
		return nil, err
	}
	return s.Values(), nil
}

func pad(buf []byte, v int) string {
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf)
}
