package checkpoint

import (
	"time"

	"weatherseed/internal/search"
)

// Sink persists scan progress to a Store as a search.Sink, so the
// checked count of a run can be looked up by its request hash later.
// It never records matched seeds.
type Sink struct {
	store       *Store
	runID       string
	requestHash string
}

var _ search.Sink = (*Sink)(nil)

// NewSink wraps store for one run. Save failures are swallowed: a
// checkpoint row only reports progress, and the run in progress does
// not depend on it.
func NewSink(store *Store, runID, requestHash string) *Sink {
	return &Sink{store: store, runID: runID, requestHash: requestHash}
}

func (s *Sink) Start(int64) {}

func (s *Sink) Progress(checked, _ int64, _, _, _ float64) {
	// The driver shards the range across workers, so there is no single
	// "last" seed in scan order to record; CheckedCount is the portable
	// resumption signal instead, and LastCheckedSeed stays unset.
	_ = s.store.Save(Row{
		RunID:        s.runID,
		RequestHash:  s.requestHash,
		CheckedCount: checked,
		UpdatedAt:    time.Now(),
	})
}

func (s *Sink) Found(int32) {}

func (s *Sink) Complete(int, float64) {
	_ = s.store.Delete(s.runID)
}
