package utils

import (
	"encoding/csv"
	"io"
	"strings"
)

// ParseCSV reads every record, trimming cells and skipping blank lines.
// Records may have differing field counts.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(records))
	for _, rec := range records {
		blank := true
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
			if rec[i] != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, nil
}
