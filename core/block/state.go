// core/block/state.go
package block

import (
	"errors"
	"strconv"

	"fizzpipe-core/packed"
)

// MaxDigits is the widest decimal number a packed line can hold
// alongside its trailing newline.
const MaxDigits = 15

// ErrTooWide reports a line number that no longer fits the packed
// representation. There is no wider fallback; callers must stop.
var ErrTooWide = errors.New("block: line number exceeds the 15-digit packed capacity")

// carryFix is the universal per-position rollover correction: the delta
// turning "ones digit ran past '9' into ':'" into "digit reset to '0',
// digit to its left bumped". It works byte-shifted at any position
// because ':' is the byte immediately after '9'.
var carryFix = packed.Sub(packed.Pack("20").Val, packed.Pack("1:").Val)

// State advances the decimal text of consecutive line numbers without
// per-line division or allocation. The packed line is the fast path for
// producing bytes; the digit counters are the ground truth for when an
// ASCII digit must roll over.
//
// Invariant: the first width bytes of line always spell the digits that
// the counters hold (counters are ones-first, text is highest-first).
type State struct {
	line  packed.Line
	width int         // decimal digits in line; line.N == width+1
	plus  packed.Word // adds one to the ones digit's ASCII byte

	carry [MaxDigits]packed.Word // rollover fix per digit position
	count [MaxDigits]uint8       // current digits, ones place first

	// OnGrow, when set, is called with the new digit count each time the
	// numbers cross a power of ten. Diagnostics only.
	OnGrow func(digits int)
}

// NewStateAt positions a fresh State at start, which must open a
// 15-aligned block (start ≡ 1 mod 15); anything else is a caller bug.
// Returns ErrTooWide when start itself is beyond the packed capacity.
func NewStateAt(start uint64) (*State, error) {
	if start%15 != 1 {
		panic("block: start not congruent to 1 mod 15")
	}
	text := strconv.FormatUint(start, 10)
	w := len(text)
	if w > MaxDigits {
		return nil, ErrTooWide
	}
	s := &State{
		line:  packed.Pack(text + "\n"),
		width: w,
		plus:  packed.Word{Lo: 1}.ShlBytes(w - 1),
	}
	for j := 0; j < w; j++ {
		s.count[j] = text[w-1-j] - '0'
	}
	for j := 0; j <= w-2; j++ {
		s.carry[j] = carryFix.ShlBytes(w - 2 - j)
	}
	return s, nil
}

// next is the cheap advance: bump the ones digit's ASCII byte and its
// counter. Only valid where the advance provably cannot cross a
// multiple of ten; the emitter's step layout guarantees that.
func (s *State) next() {
	s.line = s.line.Add(s.plus)
	s.count[0]++
}

// carryStep advances one line with full rollover handling. Reports
// false when the digit width would have to grow past MaxDigits.
func (s *State) carryStep() bool {
	s.line = s.line.Add(s.plus)
	for d := 0; d < len(s.count); d++ {
		s.count[d]++
		if s.count[d] != 10 {
			return true
		}
		s.count[d] = 0
		if !s.carryAt(d) {
			return false
		}
	}
	return false
}

// carryAt repairs the rolled digit at position d. When the roll happens
// at the current leading digit the number grows by one digit first: the
// text gains a placeholder '0' in front, the per-line increment and the
// existing carry entries shift up one byte, and a fresh fix is installed
// for the new position. The unconditional add then both repairs the
// rolled digit and turns the placeholder into '1'.
func (s *State) carryAt(d int) bool {
	if d+1 == s.width {
		if s.width == MaxDigits {
			return false
		}
		s.line = s.line.Extend('0')
		s.width++
		s.plus = s.plus.ShlBytes(1)
		for j := d - 1; j >= 0; j-- {
			s.carry[j] = s.carry[j].ShlBytes(1)
		}
		s.carry[d] = carryFix
		if s.OnGrow != nil {
			s.OnGrow(s.width)
		}
	}
	s.line = s.line.Add(s.carry[d])
	return true
}
