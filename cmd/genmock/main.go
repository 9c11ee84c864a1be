// Command genmock generates a synthetic storm-events export mixing the
// pre-2006 malformed multi-line convention with the modern single-line
// convention, plus the expected repaired output. It uses the actual domain
// package for the expected file so fixtures always match real engine
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out testdata/storm_export_raw.csv \
//	  -expected testdata/storm_export_repaired.csv \
//	  -records 200 -malformed 120
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/storm-export-repair/internal/domain"
)

var baseDate = time.Date(1996, time.January, 9, 0, 0, 0, 0, time.UTC)

// header mirrors the NCEI storm events search-results export columns, ending
// with the two narrative columns and the absolute row number.
const header = "EVENT_ID,CZ_NAME_STR,BEGIN_LOCATION,BEGIN_DATE,BEGIN_TIME,EVENT_TYPE,MAGNITUDE,DEATHS_DIRECT,INJURIES_DIRECT,STATE_ABBR,EVENT_NARRATIVE,EPISODE_NARRATIVE,ABSOLUTE_ROWNUMBER"

var eventTypes = []string{"Thunderstorm Wind", "Hail", "Tornado", "Flash Flood", "Winter Storm", "Heavy Snow"}

var counties = []string{"QUEENS CO.", "SUFFOLK CO.", "NASSAU CO.", "KINGS CO.", "BRONX CO.", "WESTCHESTER CO."}

var narrativeSentences = []string{
	"A strong cold front moved across the region during the afternoon hours.",
	"Numerous trees and power lines were downed by the storm.",
	"Hail up to one inch in diameter was reported by trained spotters.",
	"Rainfall totals of 2 to 4 inches caused widespread street flooding.",
	"Winds gusted to 60 mph at the airport observation site.",
	"Several roads were closed due to high water for up to 5 hours.",
	"Damage was estimated at 150000 dollars across the county.",
	"The storm produced a brief tornado touchdown near the fairgrounds in 1998.",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw (broken) export fixture")
	expected := flag.String("expected", "", "output path for the expected repaired fixture")
	records := flag.Int("records", 200, "total record count")
	malformed := flag.Int("malformed", 120, "leading records written in the malformed multi-line convention")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *expected == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -expected")
	}
	if *malformed > *records {
		return fmt.Errorf("-malformed (%d) exceeds -records (%d)", *malformed, *records)
	}

	rng := rand.New(rand.NewSource(*seed))
	raw := generateRaw(rng, *records, *malformed)

	if err := writeFile(*out, raw); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s (%d records, %d malformed)", *out, *records, *malformed)

	repaired, total, err := repairWithDomain(raw)
	if err != nil {
		return fmt.Errorf("repairing fixture: %w", err)
	}
	if total != *records {
		return fmt.Errorf("expected fixture recovered %d of %d records", total, *records)
	}

	if err := writeFile(*expected, repaired); err != nil {
		return fmt.Errorf("writing expected fixture: %w", err)
	}
	log.Printf("wrote expected fixture: %s (%d records)", *expected, total)
	return nil
}

// generateRaw builds the export content. The leading records use the old
// convention (structured prefix, `,"","` marker, unquoted narrative lines,
// `",<n>` terminator); the rest are well-formed single-line CSV.
func generateRaw(rng *rand.Rand, records, malformed int) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	for n := 1; n <= records; n++ {
		if n <= malformed {
			writeMalformedRecord(&b, rng, n)
		} else {
			writeModernRecord(&b, rng, n)
		}
	}
	return b.String()
}

func structuredPrefix(rng *rand.Rand, n int) string {
	date := baseDate.AddDate(0, 0, n*7)
	return strings.Join([]string{
		fmt.Sprintf("%d", 5583000+n),
		counties[rng.Intn(len(counties))],
		"",
		date.Format("01/02/2006"),
		fmt.Sprintf("%02d%02d", rng.Intn(24), rng.Intn(60)),
		eventTypes[rng.Intn(len(eventTypes))],
		fmt.Sprintf("%d", rng.Intn(75)),
		"0",
		fmt.Sprintf("%d", rng.Intn(3)),
		"NY",
	}, ",")
}

func narrative(rng *rand.Rand, sentences int) []string {
	lines := make([]string, 0, sentences)
	for i := 0; i < sentences; i++ {
		lines = append(lines, narrativeSentences[rng.Intn(len(narrativeSentences))])
	}
	return lines
}

func writeMalformedRecord(b *strings.Builder, rng *rand.Rand, n int) {
	lines := narrative(rng, 1+rng.Intn(3))

	// First line: prefix, empty EVENT_NARRATIVE marker, first narrative line.
	fmt.Fprintf(b, "%s,\"\",\"%s\n", structuredPrefix(rng, n), lines[0])
	for _, l := range lines[1:] {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "\",%d\n", n)
}

func writeModernRecord(b *strings.Builder, rng *rand.Rand, n int) {
	lines := narrative(rng, 1+rng.Intn(2))
	episode := strings.Join(lines, domain.DefaultNarrativeSeparator)
	event := ""
	if rng.Intn(2) == 0 {
		event = narrativeSentences[rng.Intn(len(narrativeSentences))]
	}
	fmt.Fprintf(b, "%s,\"%s\",\"%s\",%d\n", structuredPrefix(rng, n), event, episode, n)
}

// repairWithDomain runs the real recovery engine over the generated content.
func repairWithDomain(raw string) (string, int, error) {
	headerLine, lines := domain.SplitDocument(raw)
	schema, err := domain.NewSchema(headerLine)
	if err != nil {
		return "", 0, err
	}

	var records []domain.Record
	for _, span := range domain.ScanSpans(lines) {
		rec, _, err := domain.ParseSpan(span, schema, domain.DefaultNarrativeSeparator)
		if err != nil {
			return "", 0, err
		}
		records = append(records, rec)
	}

	var out strings.Builder
	if err := domain.WriteRecords(&out, schema, records); err != nil {
		return "", 0, err
	}
	return out.String(), len(records), nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}
