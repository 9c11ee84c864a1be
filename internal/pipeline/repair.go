// Package pipeline orchestrates the repair run: read the export whole,
// recover record spans, parse each span, and write the uniform output file.
// The whole-file-in-memory model is deliberate — the export is a bounded
// multi-decade batch, and spans close strictly in forward order.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/storm-export-repair/internal/domain"
	"github.com/couchcryptid/storm-export-repair/internal/observability"
)

// Repairer runs the record-recovery engine over one export file.
type Repairer struct {
	separator string
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// Report summarizes one repair run.
type Report struct {
	TotalRecords   int
	FirstRowNumber string
	LastRowNumber  string
	Recovered      map[domain.ParseMethod]int
	Dropped        int
	Duration       time.Duration
	CompletedAt    time.Time
}

// NewRepairer creates a Repairer joining reconstructed narrative lines with
// the given separator token.
func NewRepairer(separator string, logger *slog.Logger, metrics *observability.Metrics) *Repairer {
	return &Repairer{
		separator: separator,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run repairs the export at inputPath and writes the uniform single-line
// CSV to outputPath. An unreadable input or an unusable header is fatal;
// unparsable records are dropped with a warning and processing continues.
func (r *Repairer) Run(inputPath, outputPath string) (Report, error) {
	start := clock.Now()

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return Report{}, fmt.Errorf("read input: %w", err)
	}

	header, lines := domain.SplitDocument(string(raw))
	schema, err := domain.NewSchema(header)
	if err != nil {
		return Report{}, fmt.Errorf("parse header: %w", err)
	}

	spans := domain.ScanSpans(lines)
	r.metrics.SpansScanned.Add(float64(len(spans)))

	records, report := r.parseSpans(spans, schema)

	if err := r.writeOutput(outputPath, schema, records); err != nil {
		return Report{}, err
	}

	report.Duration = clock.Since(start)
	report.CompletedAt = clock.Now()
	r.metrics.RepairDuration.Observe(report.Duration.Seconds())

	r.logger.Info("repair complete",
		"input", inputPath,
		"output", outputPath,
		"records", report.TotalRecords,
		"first_row", report.FirstRowNumber,
		"last_row", report.LastRowNumber,
		"reconstructed", report.Recovered[domain.MethodReconstructed],
		"single_line", report.Recovered[domain.MethodSingleLine],
		"fallback", report.Recovered[domain.MethodFallback],
		"dropped", report.Dropped,
		"duration", report.Duration,
	)
	return report, nil
}

// parseSpans converts closed spans into records, dropping the unparsable
// ones. Drops are logged and counted, never fatal: the engine favors
// maximal recovery of well-formed data over strict rejection of the file.
func (r *Repairer) parseSpans(spans []domain.Span, schema domain.Schema) ([]domain.Record, Report) {
	report := Report{Recovered: make(map[domain.ParseMethod]int)}
	records := make([]domain.Record, 0, len(spans))

	for i, span := range spans {
		rec, method, err := domain.ParseSpan(span, schema, r.separator)
		if err != nil {
			r.logger.Warn("dropping unparsable record",
				"span", i+1,
				"lines", len(span.Lines),
				"method", string(method),
				"error", err,
			)
			r.metrics.RecordsDropped.WithLabelValues(string(method)).Inc()
			report.Dropped++
			continue
		}

		r.metrics.RecordsRecovered.WithLabelValues(string(method)).Inc()
		report.Recovered[method]++
		records = append(records, rec)
	}

	report.TotalRecords = len(records)
	if len(records) > 0 {
		rowCol := schema.RowNumber()
		report.FirstRowNumber = records[0][rowCol]
		report.LastRowNumber = records[len(records)-1][rowCol]
	}
	return records, report
}

func (r *Repairer) writeOutput(path string, schema domain.Schema, records []domain.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := domain.WriteRecords(f, schema, records); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
