// internal/splice/sink_linux.go
//go:build linux

package splice

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// preferredPipeSize is requested (best effort) for pipes the sink
// writes to. It must stay well below the region size: vmsplice hands
// the pipe references to region pages, and a worker refilling a region
// must not catch up with pages the pipe still holds.
const preferredPipeSize = 256 << 10

func open(w io.Writer) (*Sink, error) {
	if f, ok := w.(*os.File); ok && isPipe(f.Fd()) {
		fd := int(f.Fd())
		growPipe(fd)
		return &Sink{fd: fd, size: pipeSize(fd)}, nil
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("splice: create pipe: %w", err)
	}
	// cat inherits the read end; its stdout is the real destination
	// (an *os.File is passed straight through as a descriptor, any
	// other writer is bridged by the exec machinery).
	relay := exec.Command("cat")
	relay.Stdin = pr
	relay.Stdout = w
	relay.Stderr = os.Stderr
	if err := relay.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("splice: start relay: %w", err)
	}
	pr.Close()

	fd := int(pw.Fd())
	growPipe(fd)
	return &Sink{fd: fd, pipe: pw, relay: relay, size: pipeSize(fd)}, nil
}

// vmsplice maps b's pages into the pipe, retrying interrupted calls.
func vmsplice(fd int, b []byte) (int, error) {
	iov := []unix.Iovec{{Base: &b[0]}}
	iov[0].SetLen(len(b))
	for {
		n, err := unix.Vmsplice(fd, iov, 0)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}

func isPipe(fd uintptr) bool {
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFIFO
}

func growPipe(fd int) {
	// Unprivileged processes can be refused; the default size works too.
	_, _ = unix.FcntlInt(uintptr(fd), unix.F_SETPIPE_SZ, preferredPipeSize)
}

func pipeSize(fd int) int {
	n, err := unix.FcntlInt(uintptr(fd), unix.F_GETPIPE_SZ, 0)
	if err != nil {
		return 0
	}
	return n
}
