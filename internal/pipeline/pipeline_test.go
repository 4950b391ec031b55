package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"fizzpipe-core/block"
	"fizzpipe-core/region"
)

// memSink collects transfers in memory. Only the coordinator goroutine
// touches it, like the real sink.
type memSink struct {
	buf       bytes.Buffer
	failAfter int // fail any transfer that would exceed this many bytes; <0 disables
	failErr   error
	calls     int
}

func newMemSink() *memSink { return &memSink{failAfter: -1} }

func (m *memSink) Transfer(b []byte) error {
	m.calls++
	if m.failAfter >= 0 && m.buf.Len()+len(b) > m.failAfter {
		return m.failErr
	}
	m.buf.Write(b)
	return nil
}

func refLines(from, to uint64) string {
	var b strings.Builder
	for n := from; n <= to; n++ {
		switch {
		case n%15 == 0:
			b.WriteString("FizzBuzz\n")
		case n%3 == 0:
			b.WriteString("Fizz\n")
		case n%5 == 0:
			b.WriteString("Buzz\n")
		default:
			b.WriteString(strconv.FormatUint(n, 10))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func TestRunMatchesReference(t *testing.T) {
	sink := newMemSink()
	stats, err := Run(context.Background(), Config{
		Workers:    4,
		RegionSize: 2048, // small regions force many chunks and rounds
		MaxLines:   5000,
	}, sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Lines < 5000 || stats.Lines%15 != 0 {
		t.Fatalf("stats.Lines = %d", stats.Lines)
	}
	if want := refLines(1, stats.Lines); sink.buf.String() != want {
		t.Fatalf("output diverges from reference (%d lines, %d bytes)", stats.Lines, sink.buf.Len())
	}
	if stats.Bytes != uint64(sink.buf.Len()) {
		t.Fatalf("stats.Bytes = %d, sink saw %d", stats.Bytes, sink.buf.Len())
	}
	if stats.Elapsed <= 0 {
		t.Fatal("stats.Elapsed not set")
	}
}

func TestCutoffCompletesInFlightChunk(t *testing.T) {
	// A 710-byte region holds exactly ten 3-digit-wide blocks, so every
	// chunk is 150 lines; a cutoff of 100 must still run through 150.
	if got := block.ChunkLines(1, 710); got != 150 {
		t.Fatalf("premise broken: ChunkLines(1, 710) = %d, want 150", got)
	}
	for _, workers := range []int{1, 3} {
		sink := newMemSink()
		stats, err := Run(context.Background(), Config{
			Workers:    workers,
			RegionSize: 710,
			MaxLines:   100,
		}, sink)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if stats.Lines != 150 {
			t.Fatalf("workers=%d: stats.Lines = %d, want 150", workers, stats.Lines)
		}
		if want := refLines(1, 150); sink.buf.String() != want {
			t.Fatalf("workers=%d: output mismatch", workers)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	run := func(workers int) string {
		sink := newMemSink()
		if _, err := Run(context.Background(), Config{
			Workers:    workers,
			RegionSize: 1024,
			MaxLines:   20_000,
		}, sink); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		return sink.buf.String()
	}
	serial := run(1)
	parallel := run(8)
	if serial != parallel {
		t.Fatal("parallel output differs from serial")
	}
}

func TestTransferErrorStopsRun(t *testing.T) {
	sinkErr := errors.New("downstream went away")
	sink := newMemSink()
	sink.failAfter = 4096
	sink.failErr = sinkErr
	_, err := Run(context.Background(), Config{
		Workers:    2,
		RegionSize: 1024,
		MaxLines:   0, // unbounded; only the sink failure stops it
	}, sink)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("err = %v, want the sink's", err)
	}
	// Whatever made it out must still be a clean prefix.
	if got := sink.buf.String(); len(got) > 0 {
		lines := uint64(strings.Count(got, "\n"))
		if lines%15 != 0 || got != refLines(1, lines) {
			t.Fatalf("partial output is not a clean chunk prefix (%d lines)", lines)
		}
	}
}

func TestCancelStopsBetweenChunks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := newMemSink()
	stats, err := Run(ctx, Config{Workers: 2, RegionSize: 1024}, sink)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if stats.Lines != 0 || sink.buf.Len() != 0 {
		t.Fatalf("canceled-before-start run still emitted %d lines", stats.Lines)
	}
}

func TestFillReportsCapacityExhaustion(t *testing.T) {
	r := region.New(2048)
	err := fill(r, chunk{start: 999_999_999_999_991, lines: 15}, nil)
	if !errors.Is(err, block.ErrTooWide) {
		t.Fatalf("err = %v, want block.ErrTooWide", err)
	}
	if err := fill(r, chunk{start: 1_000_000_000_000_006, lines: 15}, nil); !errors.Is(err, block.ErrTooWide) {
		t.Fatalf("oversized start: err = %v, want block.ErrTooWide", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.Workers <= 0 || c.RegionSize != DefaultRegionSize || c.Log == nil {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if got := (Config{RegionSize: 64}).withDefaults().RegionSize; got != minRegionSize {
		t.Fatalf("tiny region not clamped: %d", got)
	}
}
