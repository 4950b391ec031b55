// core/packed/packed.go
package packed

import "math/bits"

// Word is a 128-bit unsigned integer, low half first. Adds wrap modulo
// 2^128, so negative deltas are carried as two's-complement patterns.
type Word struct {
	Lo, Hi uint64
}

// Add returns w+x with carry propagated across the halves.
func (w Word) Add(x Word) Word {
	lo, c := bits.Add64(w.Lo, x.Lo, 0)
	hi, _ := bits.Add64(w.Hi, x.Hi, c)
	return Word{Lo: lo, Hi: hi}
}

// Sub returns a-b, wrapping.
func Sub(a, b Word) Word {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)
	return Word{Lo: lo, Hi: hi}
}

// ShlBytes returns w shifted left by k whole bytes.
func (w Word) ShlBytes(k int) Word {
	if k <= 0 {
		return w
	}
	if k >= 16 {
		return Word{}
	}
	n := uint(8 * k)
	if n >= 64 {
		return Word{Lo: 0, Hi: w.Lo << (n - 64)}
	}
	return Word{Lo: w.Lo << n, Hi: w.Hi<<n | w.Lo>>(64-n)}
}

// Line is a short text held inside a Word: byte i of Val is character i,
// so a little-endian 16-byte store writes the text in order. N is the
// text length; stored bytes past N are zero and never written out.
type Line struct {
	Val Word
	N   int
}

// Pack loads text into a Line. It is a cold-path constructor (state
// setup and literal constants); the per-line path never re-packs.
// Texts longer than 16 bytes cannot be represented and panic.
func Pack(text string) Line {
	if len(text) > 16 {
		panic("packed: text longer than 16 bytes")
	}
	var w Word
	for i := 0; i < len(text) && i < 8; i++ {
		w.Lo |= uint64(text[i]) << (8 * uint(i))
	}
	for i := 8; i < len(text); i++ {
		w.Hi |= uint64(text[i]) << (8 * uint(i-8))
	}
	return Line{Val: w, N: len(text)}
}

// Add returns the line with delta added to its packed value. The length
// is unchanged; the caller guarantees the add cannot spill past byte N-1
// (digit rollover bookkeeping lives outside this type).
func (l Line) Add(delta Word) Line {
	return Line{Val: l.Val.Add(delta), N: l.N}
}

// Extend grows the line by one byte: the stored text slides up one
// position and ch becomes the new first byte. Used once per decimal
// width growth, where ch is the placeholder digit the pending carry
// then corrects.
func (l Line) Extend(ch byte) Line {
	w := l.Val.ShlBytes(1)
	w.Lo |= uint64(ch)
	return Line{Val: w, N: l.N + 1}
}

// String decodes the stored bytes. Diagnostic and test path only.
func (l Line) String() string {
	b := make([]byte, 0, l.N)
	for i := 0; i < l.N && i < 8; i++ {
		b = append(b, byte(l.Val.Lo>>(8*uint(i))))
	}
	for i := 8; i < l.N; i++ {
		b = append(b, byte(l.Val.Hi>>(8*uint(i-8))))
	}
	return string(b)
}
