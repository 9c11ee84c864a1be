// Command repair fixes a malformed NCEI storm-events CSV export, rewriting
// multi-line records from the pre-2006 convention as uniform single-line
// rows with pipe-joined narratives.
//
// Usage:
//
//	repair <input.csv> <output.csv>
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/storm-export-repair/internal/config"
	"github.com/couchcryptid/storm-export-repair/internal/observability"
	"github.com/couchcryptid/storm-export-repair/internal/pipeline"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <input.csv> <output.csv>\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	repairer := pipeline.NewRepairer(cfg.NarrativeSeparator, logger, metrics)

	if _, err := repairer.Run(os.Args[1], os.Args[2]); err != nil {
		logger.Error("repair failed", "error", err)
		os.Exit(1)
	}
}
