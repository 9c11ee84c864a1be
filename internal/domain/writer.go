package domain

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteRecords serializes records as uniform single-line CSV: the schema
// header first, then one line per record in schema column order, in the
// order given (span-close order, equivalently row-sequence order). Quoting
// follows the conventional rule — fields containing the delimiter, a quote,
// or a newline are quoted, interior quotes doubled.
func WriteRecords(w io.Writer, schema Schema, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(schema.Fields()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, schema.Len())
	for _, rec := range records {
		for i, name := range schema.Fields() {
			row[i] = rec[name]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
