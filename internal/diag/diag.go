// internal/diag/diag.go
package diag

import (
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"fizzpipe/internal/pipeline"
)

// New builds the stderr diagnostics logger. quiet raises the level so
// routine progress lines disappear while warnings still surface.
func New(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Summary logs one end-of-run line with totals and throughput.
func Summary(log *slog.Logger, s pipeline.Stats) {
	rate := "n/a"
	if secs := s.Elapsed.Seconds(); secs > 0 {
		rate = humanize.Bytes(uint64(float64(s.Bytes)/secs)) + "/s"
	}
	log.Info("run finished",
		slog.Uint64("lines", s.Lines),
		slog.String("bytes", humanize.Bytes(s.Bytes)),
		slog.String("rate", rate),
		slog.Duration("elapsed", s.Elapsed.Round(time.Millisecond)))
}
