// Package search shards a seed range across worker goroutines, runs
// each seed through the weather oracle and condition evaluator, and
// streams matches to a caller-supplied Sink under an output cap.
package search

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"weatherseed/internal/weather"
)

// MaxSeed is the highest seed the search range may contain (the full
// positive signed-32-bit range).
const MaxSeed = 2147483647

// Policy holds the configurable thresholds that pick a worker count
// and progress-report cadence for a given range size, per section
// 4.F. It is a plain value so internal/config can load it from YAML
// without this package depending on config.
type Policy struct {
	SmallRangeSeeds  int64 `yaml:"small_range_seeds"`
	MediumRangeSeeds int64 `yaml:"medium_range_seeds"`
	LargeRangeSeeds  int64 `yaml:"large_range_seeds"`

	MediumRangeWorkers int `yaml:"medium_range_workers"`
	LargeRangeWorkers  int `yaml:"large_range_workers"`
	HugeRangeWorkers   int `yaml:"huge_range_workers"`

	ProgressIntervalSmall int64 `yaml:"progress_interval_small"`
	ProgressIntervalLarge int64 `yaml:"progress_interval_large"`
}

// DefaultPolicy returns the thresholds stated in spec.md section 4.F.
func DefaultPolicy() Policy {
	return Policy{
		SmallRangeSeeds:       10_000,
		MediumRangeSeeds:      100_000,
		LargeRangeSeeds:       1_000_000,
		MediumRangeWorkers:    2,
		LargeRangeWorkers:     4,
		HugeRangeWorkers:      8,
		ProgressIntervalSmall: 1000,
		ProgressIntervalLarge: 5000,
	}
}

// Request describes one search. Conditions is an ordered conjunction;
// an empty slice matches every seed.
type Request struct {
	Start       int32
	End         int32
	Legacy      bool
	Conditions  []weather.Condition
	OutputLimit int

	// Workers overrides the worker-count policy when > 0. Zero selects
	// the policy automatically based on range size and runtime.NumCPU.
	Workers int

	// Policy overrides the default worker/progress thresholds when
	// non-nil. A caller threading internal/config's Search.Policy
	// through here is what makes configs/defaults.yaml actually
	// change search behavior instead of only documenting it.
	Policy *Policy

	// Logger receives operational events the sink contract doesn't
	// cover, such as a worker panic. Nil disables logging.
	Logger *log.Logger
}

// Validate checks the core's invariants: 0 <= Start <= End <= MaxSeed
// and OutputLimit >= 1. Unlike the external HTTP request contract,
// Start == End (a single-seed scan) is permitted here.
func (r Request) Validate() error {
	if r.Start < 0 {
		return fmt.Errorf("search: start seed %d is negative", r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("search: end seed %d is before start seed %d", r.End, r.Start)
	}
	if r.End > MaxSeed {
		return fmt.Errorf("search: end seed %d exceeds max seed %d", r.End, MaxSeed)
	}
	if r.OutputLimit < 1 {
		return fmt.Errorf("search: output limit %d must be >= 1", r.OutputLimit)
	}
	for i, c := range r.Conditions {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("search: condition %d: %w", i, err)
		}
	}
	return nil
}

// Summary reports the outcome of a completed search.
type Summary struct {
	Matches []int32
	Checked int64
	Elapsed time.Duration
}

// Check is the core's pure predicate: does gameSeed's simulated
// first-year weather calendar satisfy conditions under the given
// random mode. It allocates its own scratch oracle per call and is
// safe to call from any number of goroutines concurrently.
func Check(gameSeed int32, legacy bool, conditions []weather.Condition) bool {
	o := weather.NewOracle()
	cal := o.Predict(gameSeed, legacy)
	return weather.Matches(cal, conditions)
}

// workerCount applies policy: the worker count grows with range size,
// capped by available parallelism.
func workerCount(totalSeeds int64, explicit, numCPU int, policy Policy) int {
	if explicit > 0 {
		return explicit
	}
	var w int
	switch {
	case totalSeeds < policy.SmallRangeSeeds:
		w = 1
	case totalSeeds < policy.MediumRangeSeeds:
		w = min(policy.MediumRangeWorkers, numCPU/2)
	case totalSeeds < policy.LargeRangeSeeds:
		w = min(policy.LargeRangeWorkers, numCPU/2)
	default:
		w = min(policy.HugeRangeWorkers, numCPU)
	}
	if w < 1 {
		w = 1
	}
	return w
}

type span struct {
	start, end int32 // inclusive
}

// partition splits [start,end] into n contiguous, ascending,
// approximately equal sub-ranges; the last absorbs any remainder.
func partition(start, end int32, n int) []span {
	total := int64(end) - int64(start) + 1
	per := total / int64(n)
	if per < 1 {
		per = 1
	}

	spans := make([]span, 0, n)
	cur := int64(start)
	for i := 0; i < n; i++ {
		if cur > int64(end) {
			break
		}
		s := cur
		e := s + per - 1
		if i == n-1 || e > int64(end) {
			e = int64(end)
		}
		spans = append(spans, span{start: int32(s), end: int32(e)})
		cur = e + 1
	}
	return spans
}

// progressEvery picks the check-count interval between progress
// reports: small ranges report more often, so shorter searches also
// get mid-run updates. An interval below 1 is raised to 1.
func progressEvery(totalSeeds int64, policy Policy) int64 {
	every := policy.ProgressIntervalLarge
	if totalSeeds < policy.SmallRangeSeeds {
		every = policy.ProgressIntervalSmall
	}
	if every < 1 {
		every = 1
	}
	return every
}

// Run executes req against sink and returns once every worker has
// joined. Results are sorted ascending regardless of worker count or
// scheduling, per the ordering invariant in spec.
func Run(req Request, sink Sink) (Summary, error) {
	if err := req.Validate(); err != nil {
		return Summary{}, err
	}
	if sink == nil {
		sink = NopSink{}
	}

	policy := DefaultPolicy()
	if req.Policy != nil {
		policy = *req.Policy
	}

	start := time.Now()
	total := int64(req.End) - int64(req.Start) + 1

	sink.Start(total)

	numWorkers := workerCount(total, req.Workers, runtime.NumCPU(), policy)
	spans := partition(req.Start, req.End, numWorkers)
	interval := progressEvery(total, policy)

	var (
		resultsMu  sync.Mutex
		results    = make([]int32, 0, req.OutputLimit)
		checked    atomic.Int64
		lastReport atomic.Int64
		stop       atomic.Bool
		panics     = make(chan any, len(spans))
	)

	var wg sync.WaitGroup
	for _, sp := range spans {
		wg.Add(1)
		go func(sp span) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					stop.Store(true)
					if req.Logger != nil {
						req.Logger.Printf("search: worker panic recovered, aborting run: %v", p)
					}
					panics <- p
				}
			}()

			o := weather.NewOracle()
			for seed := sp.start; ; seed++ {
				if stop.Load() {
					return
				}

				cal := o.Predict(seed, req.Legacy)
				if weather.Matches(cal, req.Conditions) {
					resultsMu.Lock()
					if len(results) < req.OutputLimit {
						results = append(results, seed)
						count := len(results)
						resultsMu.Unlock()

						sink.Found(seed)

						if count >= req.OutputLimit {
							stop.Store(true)
							return
						}
					} else {
						resultsMu.Unlock()
						stop.Store(true)
						return
					}
				}

				n := checked.Add(1)
				if n%interval == 0 {
					prev := lastReport.Load()
					if n-prev >= interval && lastReport.CompareAndSwap(prev, n) {
						reportProgress(sink, n, total, start)
					}
				}

				if seed == sp.end {
					return
				}
			}
		}(sp)
	}

	wg.Wait()
	close(panics)
	if p, ok := <-panics; ok {
		panic(p)
	}

	finalChecked := checked.Load()
	reportProgress(sink, finalChecked, total, start)

	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })

	elapsed := time.Since(start)
	sink.Complete(len(results), elapsed.Seconds())

	return Summary{Matches: results, Checked: finalChecked, Elapsed: elapsed}, nil
}

func reportProgress(sink Sink, checked, total int64, start time.Time) {
	elapsed := time.Since(start).Seconds()
	var percent, speed float64
	if total > 0 {
		percent = float64(checked) / float64(total) * 100
	}
	if elapsed > 0 {
		speed = float64(checked) / elapsed
	}
	sink.Progress(checked, total, percent, speed, elapsed)
}
