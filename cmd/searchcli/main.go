// Command searchcli runs a weather seed search directly against the
// core driver and prints matches and a final summary to stdout,
// without the HTTP/WebSocket front end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"weatherseed/internal/config"
	"weatherseed/internal/persistence/exportlog"
	"weatherseed/internal/search"
	"weatherseed/internal/weather"
)

func main() {
	var (
		start      = flag.Int64("start", 0, "first seed, inclusive")
		end        = flag.Int64("end", 0, "last seed, inclusive")
		legacy     = flag.Bool("legacy", false, "use the legacy additive seed mixer instead of the hash-based one")
		limit      = flag.Int("limit", 20, "stop after this many matches")
		workers    = flag.Int("workers", 0, "override the automatic worker-count policy (0 = automatic)")
		conditions = flag.String("conditions", "[]", "JSON array of weather conditions, e.g. [{\"season\":\"Spring\",\"startDay\":1,\"endDay\":10,\"minRainDays\":5}]")
		exportDir  = flag.String("export", "", "if set, also write a compressed JSONL transcript of this run into this directory")
		configPath = flag.String("config", "./configs/defaults.yaml", "path to search config yaml")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[searchcli] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("config: %v; using defaults", err)
		cfg = config.Defaults()
	}

	var conds []weather.Condition
	if err := json.Unmarshal([]byte(*conditions), &conds); err != nil {
		logger.Fatalf("parse -conditions: %v", err)
	}

	req := search.Request{
		Start:       int32(*start),
		End:         int32(*end),
		Legacy:      *legacy,
		Conditions:  conds,
		OutputLimit: *limit,
		Workers:     *workers,
		Policy:      &cfg.Policy,
		Logger:      logger,
	}

	var sink search.Sink = &cliSink{interactive: isatty.IsTerminal(os.Stdout.Fd())}
	if *exportDir != "" {
		w, err := exportlog.Open(*exportDir, fmt.Sprintf("searchcli-%d", time.Now().UnixNano()), *legacy)
		if err != nil {
			logger.Fatalf("open export log: %v", err)
		}
		sink = search.MultiSink{sink, w}
	}

	summary, err := search.Run(req, sink)
	if err != nil {
		logger.Fatalf("search: %v", err)
	}

	fmt.Printf("\nchecked %s seeds in %s, found %d match(es):\n",
		humanize.Comma(summary.Checked), summary.Elapsed.Round(time.Millisecond), len(summary.Matches))
	for _, m := range summary.Matches {
		fmt.Println(m)
	}
}

// cliSink prints progress to stderr, using a carriage-return-updated
// line when stdout is a terminal and a plain append-only log line
// otherwise (e.g. when output is redirected to a file or CI log).
type cliSink struct {
	interactive bool
}

func (s *cliSink) Start(total int64) {
	fmt.Fprintf(os.Stderr, "searching %s seeds...\n", humanize.Comma(total))
}

func (s *cliSink) Progress(checked, total int64, percent, speed, elapsed float64) {
	line := fmt.Sprintf("%s/%s (%.1f%%) %s seeds/sec, %.1fs elapsed",
		humanize.Comma(checked), humanize.Comma(total), percent, humanize.Comma(int64(speed)), elapsed)
	if s.interactive {
		fmt.Fprintf(os.Stderr, "\r%s", line)
	} else {
		fmt.Fprintln(os.Stderr, line)
	}
}

func (s *cliSink) Found(seed int32) {
	if s.interactive {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "found seed %d\n", seed)
}

func (s *cliSink) Complete(totalFound int, elapsed float64) {
	if s.interactive {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "done: %d found in %.1fs\n", totalFound, elapsed)
}
