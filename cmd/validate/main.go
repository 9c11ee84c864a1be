// Command validate performs integrity checks on a repaired storm-events
// export: header arity, row-sequence contiguity, newline-free narratives,
// and the fixed-point property (repairing a repaired file must reproduce it
// exactly).
//
// Usage:
//
//	go run ./cmd/validate -input data/storm_data_search_results.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/couchcryptid/storm-export-repair/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to a repaired export CSV")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath string) int {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read input: %v\n", err)
		return 1
	}

	headerLine, _ := domain.SplitDocument(string(content))
	schema, err := domain.NewSchema(headerLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse header: %v\n", err)
		return 1
	}

	rows, err := loadCSV(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	fmt.Println("=== Storm Export Integrity Validation ===")
	fmt.Println()

	phases := []*phase{
		validateArity(rows, schema),
		validateContiguity(rows, schema),
		validateNarratives(rows, schema),
		validateFixedPoint(string(content), schema),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d\n", len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return all[1:], nil
}

// ── Phase 1: Field arity ──

func validateArity(rows [][]string, schema domain.Schema) *phase {
	p := &phase{name: "Phase 1: Field Arity"}
	for i, row := range rows {
		if len(row) != schema.Len() {
			p.errorf("record %d: %d fields, header declares %d", i+1, len(row), schema.Len())
		}
	}
	return p
}

// ── Phase 2: Row-sequence contiguity ──
// The row numbers must form exactly 1..N in increasing order.

func validateContiguity(rows [][]string, schema domain.Schema) *phase {
	p := &phase{name: "Phase 2: Row-Sequence Contiguity"}
	rowIdx := schema.Len() - 1
	for i, row := range rows {
		if len(row) != schema.Len() {
			continue // reported in phase 1
		}
		n, err := strconv.Atoi(row[rowIdx])
		if err != nil {
			p.errorf("record %d: row number %q is not an integer", i+1, row[rowIdx])
			continue
		}
		if n != i+1 {
			p.errorf("record %d: row number %d, expected %d", i+1, n, i+1)
		}
	}
	return p
}

// ── Phase 3: Narrative hygiene ──
// Narrative fields must be newline-free and carry no marker artifacts.

func validateNarratives(rows [][]string, schema domain.Schema) *phase {
	p := &phase{name: "Phase 3: Narrative Hygiene"}
	narrIdx := []int{schema.Len() - 3, schema.Len() - 2}
	for i, row := range rows {
		if len(row) != schema.Len() {
			continue
		}
		for _, idx := range narrIdx {
			v := row[idx]
			if strings.ContainsAny(v, "\r\n") {
				p.errorf("record %d: %s contains a newline", i+1, schema.Fields()[idx])
			}
			if strings.HasPrefix(v, `"",`) {
				p.errorf("record %d: %s starts with a marker artifact", i+1, schema.Fields()[idx])
			}
		}
	}
	return p
}

// ── Phase 4: Fixed point ──
// Re-running the recovery engine on a repaired file must reproduce it.

func validateFixedPoint(content string, schema domain.Schema) *phase {
	p := &phase{name: "Phase 4: Fixed Point (re-repair)"}

	_, lines := domain.SplitDocument(content)
	var records []domain.Record
	for i, span := range domain.ScanSpans(lines) {
		rec, _, err := domain.ParseSpan(span, schema, domain.DefaultNarrativeSeparator)
		if err != nil {
			p.errorf("span %d: re-parse failed: %v", i+1, err)
			continue
		}
		records = append(records, rec)
	}

	var out strings.Builder
	if err := domain.WriteRecords(&out, schema, records); err != nil {
		p.errorf("re-serialize failed: %v", err)
		return p
	}

	if diff := cmp.Diff(content, out.String()); diff != "" {
		p.errorf("re-repair output differs (-input +rerun):\n%s", diff)
	}
	return p
}
