package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// parseCSV reads a header row followed by data rows. Short rows are padded
// with empty cells; long rows are kept as-is so the pipeline can reject them.
func parseCSV(data []byte) (schema.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return schema.Table{}, ErrEmptyInput
	}
	if err != nil {
		return schema.Table{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	t := schema.Table{Columns: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.Table{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
