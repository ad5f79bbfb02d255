package search

// Sink receives the four event kinds a search emits. Implementations
// must be safe for concurrent calls: workers may call Found and
// Progress from different goroutines.
type Sink interface {
	// Start is emitted once, before any worker begins scanning.
	Start(total int64)
	// Progress is emitted periodically and once more after the final
	// seed is checked.
	Progress(checked, total int64, percent, speed, elapsedSeconds float64)
	// Found is emitted once per matched seed that is kept under the
	// output cap, as soon as a worker records it; matches found after
	// the cap is full are not emitted. Events from different workers may arrive out of
	// seed order; events from the same worker never do.
	Found(seed int32)
	// Complete is emitted once, after every worker has joined.
	Complete(totalFound int, elapsedSeconds float64)
}

// NopSink discards every event. Useful as an embeddable default for
// sinks that only care about a subset of events.
type NopSink struct{}

func (NopSink) Start(int64)                                      {}
func (NopSink) Progress(int64, int64, float64, float64, float64) {}
func (NopSink) Found(int32)                                      {}
func (NopSink) Complete(int, float64)                            {}

// MultiSink fans every event out to all of its members, in order,
// on the calling goroutine.
type MultiSink []Sink

func (m MultiSink) Start(total int64) {
	for _, s := range m {
		s.Start(total)
	}
}

func (m MultiSink) Progress(checked, total int64, percent, speed, elapsedSeconds float64) {
	for _, s := range m {
		s.Progress(checked, total, percent, speed, elapsedSeconds)
	}
}

func (m MultiSink) Found(seed int32) {
	for _, s := range m {
		s.Found(seed)
	}
}

func (m MultiSink) Complete(totalFound int, elapsedSeconds float64) {
	for _, s := range m {
		s.Complete(totalFound, elapsedSeconds)
	}
}
