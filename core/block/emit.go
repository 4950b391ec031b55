// core/block/emit.go
package block

import (
	"fizzpipe-core/packed"
	"fizzpipe-core/region"
)

var (
	lineFizz     = packed.Pack("Fizz\n")
	lineBuzz     = packed.Pack("Buzz\n")
	lineFizzBuzz = packed.Pack("FizzBuzz\n")
)

const numbersPerBlock = 8

var literalBytesPerBlock = 4*lineFizz.N + 2*lineBuzz.N + lineFizzBuzz.N

// EmitBlock writes the 15 lines of the block the state is positioned at
// and leaves the state at the start of the next block.
//
// The steps are unrolled; each appends either the current number or a
// literal, then advances. Literal steps advance the counters too — the
// next numeric line must come out right. Twelve advances use the cheap
// next; the three following the lines ≡ 4, 9 and 14 (mod 15) are the
// only ones that can enter a multiple of ten (the block phase alternates
// 1 and 6 mod 10), so only those pay for rollover detection. Digit width
// growth always lands on the ≡9 advance, since powers of ten are ≡ 10
// (mod 15).
func (s *State) EmitBlock(r *region.Region) error {
	r.Append(s.line) // ≡1 mod 15
	s.next()
	r.Append(s.line) // ≡2
	s.next()
	r.Append(lineFizz) // ≡3
	s.next()
	r.Append(s.line) // ≡4
	if !s.carryStep() {
		return ErrTooWide
	}
	r.Append(lineBuzz) // ≡5
	s.next()
	r.Append(lineFizz) // ≡6
	s.next()
	r.Append(s.line) // ≡7
	s.next()
	r.Append(s.line) // ≡8
	s.next()
	r.Append(lineFizz) // ≡9
	if !s.carryStep() {
		return ErrTooWide
	}
	r.Append(lineBuzz) // ≡10
	s.next()
	r.Append(s.line) // ≡11
	s.next()
	r.Append(lineFizz) // ≡12
	s.next()
	r.Append(s.line) // ≡13
	s.next()
	r.Append(s.line) // ≡14
	if !s.carryStep() {
		return ErrTooWide
	}
	r.Append(lineFizzBuzz) // ≡0
	s.next()
	return nil
}

// EmitChunk emits lines/15 consecutive blocks into r. The chunk length
// must be a positive multiple of 15 — that is validated once here, never
// per line — and the caller has sized lines against the region via
// ChunkLines.
func (s *State) EmitChunk(r *region.Region, lines int) error {
	if lines <= 0 || lines%15 != 0 {
		panic("block: chunk length must be a positive multiple of 15")
	}
	for n := 0; n < lines; n += 15 {
		if err := s.EmitBlock(r); err != nil {
			return err
		}
	}
	return nil
}

// ChunkLines returns the largest multiple of 15 lines starting at start
// whose text is guaranteed to fit usable bytes. Within a uniform digit
// width this is exact (every block then costs exactly blockMax bytes);
// across a width boundary it is conservative by at most one block.
func ChunkLines(start uint64, usable int) int {
	w := digits(start)
	for {
		blocks := usable / blockMax(w)
		if blocks == 0 {
			return 0
		}
		last := start + uint64(blocks)*15 - 1
		if w2 := digits(last); w2 > w {
			w = w2
			continue
		}
		return blocks * 15
	}
}

// blockMax is the worst-case byte cost of one 15-line block whose
// numbers are w digits wide.
func blockMax(w int) int {
	return numbersPerBlock*(w+1) + literalBytesPerBlock
}

func digits(n uint64) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}
