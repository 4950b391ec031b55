// internal/splice/sink_stub.go
//go:build !linux

package splice

import (
	"fmt"
	"io"
	"runtime"
	"syscall"
)

func open(io.Writer) (*Sink, error) {
	return nil, fmt.Errorf("splice: zero-copy pipe output needs linux, not %s: %w",
		runtime.GOOS, syscall.ENOTSUP)
}

func vmsplice(int, []byte) (int, error) {
	return 0, syscall.ENOTSUP
}
