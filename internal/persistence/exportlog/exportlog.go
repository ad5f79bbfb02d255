// Package exportlog mirrors a search's sink events to a compressed
// JSONL transcript on disk, for callers that want a durable record of
// a run without changing the core driver's Sink contract.
package exportlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"weatherseed/internal/protocol"
	"weatherseed/internal/search"
	"weatherseed/internal/weather"
)

// Writer appends one JSON line per event to a zstd-compressed file.
// It implements search.Sink so it can be composed into a
// search.MultiSink alongside a live transport sink.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
	legacy bool
}

var _ search.Sink = (*Writer)(nil)

// Open creates (or truncates) runID's export file under dir. legacy
// selects which seed-mixing mode Found events recompute their
// WeatherDetail with, matching the run's own request.
func Open(dir, runID string, legacy bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.jsonl.zst", runID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{
		f:      f,
		enc:    enc,
		w:      bufio.NewWriterSize(enc, 64*1024),
		legacy: legacy,
	}, nil
}

func (w *Writer) writeLine(v any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = w.w.Write(b)
	_, _ = w.w.Write([]byte{'\n'})
}

func (w *Writer) Start(total int64) {
	w.writeLine(protocol.NewStartEvent(total))
}

func (w *Writer) Progress(checked, total int64, percent, speed, elapsed float64) {
	w.writeLine(protocol.NewProgressEvent(checked, total, percent, speed, elapsed))
}

func (w *Writer) Found(seed int32) {
	o := weather.NewOracle()
	cal := o.Predict(seed, w.legacy)
	spring, summer, fall := weather.RainyDaysBySeason(cal)
	detail := &protocol.WeatherDetail{
		SpringRain:   spring,
		SummerRain:   summer,
		FallRain:     fall,
		GreenRainDay: o.GreenRainDay(seed, w.legacy),
	}
	w.writeLine(protocol.NewFoundEvent(seed, detail))
}

func (w *Writer) Complete(totalFound int, elapsed float64) {
	w.writeLine(protocol.NewCompleteEvent(totalFound, elapsed))
	_ = w.Close()
}

// Close flushes and closes the underlying file. Safe to call more
// than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	_ = w.w.Flush()
	err := w.enc.Close()
	cerr := w.f.Close()
	w.f = nil
	if err != nil {
		return err
	}
	return cerr
}
