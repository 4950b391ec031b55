// internal/splice/sink.go
package splice

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Sink is a pipe-backed drain for output regions. It is owned by the
// single goroutine that performs transfers; methods are not safe for
// concurrent use.
type Sink struct {
	fd    int       // pipe write end targeted by Transfer
	pipe  *os.File  // owned write end when a relay was interposed, else nil
	relay *exec.Cmd // relay child copying the pipe to the real destination
	size  int       // pipe buffer size in bytes, 0 if unknown
}

// Open resolves w to a pipe write end. A destination that is already a
// pipe is used directly; anything else gets a relay child interposed.
func Open(w io.Writer) (*Sink, error) { return open(w) }

// Transfer moves the whole of b into the pipe. The underlying syscall
// may accept fewer bytes than asked, so it is repeated on the remaining
// suffix until b is exhausted. Any syscall failure is fatal to the
// stream; the caller stops on it.
func (s *Sink) Transfer(b []byte) error {
	for off := 0; off < len(b); {
		n, err := vmsplice(s.fd, b[off:])
		if err != nil {
			return fmt.Errorf("splice: transfer: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("splice: transfer stalled with %d bytes left", len(b)-off)
		}
		off += n
	}
	return nil
}

// PipeSize reports the pipe's buffer capacity, if known.
func (s *Sink) PipeSize() int { return s.size }

// Close releases the write end (when owned) and reaps the relay child.
// The destination passed to Open is never closed here.
func (s *Sink) Close() error {
	if s.pipe != nil {
		if err := s.pipe.Close(); err != nil {
			return fmt.Errorf("splice: close pipe: %w", err)
		}
		s.pipe = nil
	}
	if s.relay != nil {
		err := s.relay.Wait()
		s.relay = nil
		if err != nil {
			return fmt.Errorf("splice: relay: %w", err)
		}
	}
	return nil
}
