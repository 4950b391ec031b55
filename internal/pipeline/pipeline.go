// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"fizzpipe-core/block"
	"fizzpipe-core/region"
)

// Sink drains a region's filled bytes. *splice.Sink is the production
// implementation; Transfer is called from the coordinator goroutine
// only, never concurrently.
type Sink interface {
	Transfer([]byte) error
}

// DefaultRegionSize keeps each worker's region several times larger
// than the pipe it drains into, so refilling a region cannot catch up
// with pages the pipe still references.
const (
	DefaultRegionSize = 1 << 20
	minRegionSize     = 512
)

// Config controls the generation pipeline.
type Config struct {
	Workers    int          // compute goroutines; <=0 means runtime.NumCPU()
	RegionSize int          // bytes of text per region; <=0 means DefaultRegionSize
	MaxLines   uint64       // advisory stop after this line number; 0 means unbounded
	Log        *slog.Logger // diagnostics; nil discards
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RegionSize <= 0 {
		c.RegionSize = DefaultRegionSize
	}
	if c.RegionSize < minRegionSize {
		c.RegionSize = minRegionSize
	}
	if c.Log == nil {
		c.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Stats summarizes a finished run.
type Stats struct {
	Lines   uint64
	Bytes   uint64
	Elapsed time.Duration
}

type chunk struct {
	start uint64 // first line number, ≡ 1 mod 15
	lines int    // multiple of 15, sized to the slot's region
}

// slot binds one worker goroutine to one region. The region is owned by
// exactly one side at a time: the worker between work and done, the
// coordinator otherwise. That alternation is the only synchronization.
type slot struct {
	reg  *region.Region
	work chan chunk
	done chan error
	cur  chunk
	live bool
}

// Run generates FizzBuzz lines from 1 until the advisory cutoff, a
// fatal error, or context cancellation. The cutoff and cancellation are
// honored between chunk assignments only: every in-flight chunk
// completes and is transferred whole, so output always ends at a chunk
// boundary past the requested line.
func Run(ctx context.Context, cfg Config, sink Sink) (Stats, error) {
	cfg = cfg.withDefaults()
	start := time.Now()
	log := cfg.Log

	onGrow := func(digits int) {
		log.Info("digit width grew",
			slog.Int("digits", digits),
			slog.Duration("elapsed", time.Since(start)))
	}

	slots := make([]*slot, cfg.Workers)
	for i := range slots {
		sl := &slot{
			reg:  region.New(cfg.RegionSize),
			work: make(chan chunk),
			done: make(chan error, 1),
		}
		slots[i] = sl
		go func() {
			for c := range sl.work {
				sl.done <- fill(sl.reg, c, onGrow)
			}
		}()
	}
	log.Debug("pipeline ready",
		slog.Int("workers", cfg.Workers),
		slog.Int("region_bytes", cfg.RegionSize))

	var (
		stats    Stats
		nextLine = uint64(1)
		firstErr error
		live     int
	)

	assign := func(sl *slot) bool {
		if firstErr != nil || ctx.Err() != nil {
			return false
		}
		if cfg.MaxLines > 0 && nextLine > cfg.MaxLines {
			return false
		}
		lines := block.ChunkLines(nextLine, sl.reg.Usable())
		if lines == 0 {
			panic("pipeline: region cannot hold a single block")
		}
		sl.cur = chunk{start: nextLine, lines: lines}
		nextLine += uint64(lines)
		sl.work <- sl.cur
		return true
	}

	for _, sl := range slots {
		if assign(sl) {
			sl.live = true
			live++
		} else {
			close(sl.work)
		}
	}

	for rr := 0; live > 0; rr = (rr + 1) % len(slots) {
		sl := slots[rr]
		if !sl.live {
			continue
		}
		err := <-sl.done
		switch {
		case err != nil:
			if firstErr == nil {
				// This slot held the earliest outstanding range, so its
				// valid prefix still flushes in order.
				if terr := sink.Transfer(sl.reg.Bytes()); terr == nil {
					stats.Bytes += uint64(sl.reg.Len())
				}
				firstErr = err
			}
		case firstErr == nil:
			if terr := sink.Transfer(sl.reg.Bytes()); terr != nil {
				firstErr = terr
			} else {
				stats.Bytes += uint64(sl.reg.Len())
				stats.Lines += uint64(sl.cur.lines)
			}
		}
		sl.reg.Reset()
		if !assign(sl) {
			close(sl.work)
			sl.live = false
			live--
		}
	}

	stats.Elapsed = time.Since(start)
	if firstErr != nil {
		return stats, firstErr
	}
	if done := cfg.MaxLines > 0 && nextLine > cfg.MaxLines; !done && ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

// fill computes one chunk into the slot's region. State setup is the
// only cold work per chunk; everything inside EmitChunk is the hot
// path.
func fill(r *region.Region, c chunk, onGrow func(int)) error {
	st, err := block.NewStateAt(c.start)
	if err != nil {
		return err
	}
	st.OnGrow = onGrow
	return st.EmitChunk(r, c.lines)
}
