// core/region/region.go
package region

import (
	"encoding/binary"

	"fizzpipe-core/packed"
)

// Slack is how many bytes of storage a Region keeps past its usable
// capacity. Append stores a full 16-byte word regardless of the line's
// length, so up to 15 bytes land past the logical end of the text.
const Slack = 16

// Region is a reusable output buffer: fixed storage plus a write cursor.
// It is allocated once and reset between fills; the storage is never
// cleared, stale bytes past the cursor are simply never read.
type Region struct {
	buf []byte
	n   int
}

// New returns a Region able to hold size bytes of text (plus Slack).
func New(size int) *Region {
	if size <= 0 {
		panic("region: non-positive size")
	}
	return &Region{buf: make([]byte, size+Slack)}
}

// Append stores the line's packed word at the cursor and advances by the
// line's length. The store is always 16 bytes wide; Slack absorbs the
// spill. Callers size their work to fit Usable, so there is no explicit
// capacity check here.
func (r *Region) Append(l packed.Line) {
	binary.LittleEndian.PutUint64(r.buf[r.n:], l.Val.Lo)
	binary.LittleEndian.PutUint64(r.buf[r.n+8:], l.Val.Hi)
	r.n += l.N
}

// Reset moves the cursor back to the start for reuse.
func (r *Region) Reset() { r.n = 0 }

// Len reports how many bytes of text have been appended.
func (r *Region) Len() int { return r.n }

// Usable reports the nominal text capacity (storage minus Slack).
func (r *Region) Usable() int { return len(r.buf) - Slack }

// Bytes returns the filled prefix. The slice aliases the Region's
// storage and is invalidated by the next Append or Reset.
func (r *Region) Bytes() []byte { return r.buf[:r.n] }
