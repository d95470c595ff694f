// Package importer loads punch CSV files exported by door terminals or
// spreadsheets and records each row through the tracker.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
)

type Record struct {
	Row          int
	EmployeeCode string
	Kind         model.PunchKind
	Instant      time.Time
	Note         *string
}

// ParsePunchCSV reads employee_code,kind,timestamp[,note] rows. A header row
// is skipped. Timestamps without an offset are read in loc.
func ParsePunchCSV(r io.Reader, loc *time.Location) ([]Record, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, &core.ValidationError{Reason: fmt.Sprintf("Invalid CSV: %v", err)}
	}

	var records []Record
	for i, row := range rows {
		line := i + 1
		if i == 0 && strings.EqualFold(row[0], "employee_code") {
			continue
		}

		if len(row) < 3 {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("row %d: expected at least 3 columns, got %d", line, len(row))}
		}

		kind, err := model.ParsePunchKind(strings.ToLower(row[1]))
		if err != nil {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("row %d: invalid type %q", line, row[1])}
		}

		instant, err := utils.ParseISOTime(row[2], loc)
		if err != nil {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("row %d: invalid timestamp %q", line, row[2])}
		}

		record := Record{
			Row:          line,
			EmployeeCode: row[0],
			Kind:         kind,
			Instant:      instant.UTC(),
		}
		if len(row) > 3 && row[3] != "" {
			record.Note = utils.Ptr(row[3])
		}
		records = append(records, record)
	}

	return records, nil
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type Result struct {
	Imported int        `json:"imported"`
	Failed   []RowError `json:"failed"`
}

type Importer struct {
	tracker *core.Tracker
	logger  *slog.Logger
}

func New(tracker *core.Tracker, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{tracker: tracker, logger: logger}
}

// Import records rows oldest first. Unknown employees and rejected punches
// are reported per row; any other failure stops the import.
func (im *Importer) Import(ctx context.Context, records []Record) (*Result, error) {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Instant.Before(sorted[j].Instant) })

	result := &Result{Failed: []RowError{}}
	employees := map[string]*model.Employee{}

	for _, rec := range sorted {
		emp, ok := employees[rec.EmployeeCode]
		if !ok {
			found, err := im.tracker.FindEmployeeByCode(ctx, rec.EmployeeCode)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				return result, err
			}
			emp = found
			employees[rec.EmployeeCode] = emp
		}
		if emp == nil {
			result.Failed = append(result.Failed, RowError{Row: rec.Row, Error: fmt.Sprintf("employee %s not found", rec.EmployeeCode)})
			continue
		}

		_, err := im.tracker.RecordPunch(ctx, core.PunchRequest{
			EmployeeID: emp.ID,
			Kind:       rec.Kind,
			Instant:    utils.Ptr(rec.Instant),
			Note:       rec.Note,
		})
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, core.ErrNotFound), core.IsValidation(err), errors.Is(err, core.ErrConflict):
			result.Failed = append(result.Failed, RowError{Row: rec.Row, Error: err.Error()})
		default:
			return result, fmt.Errorf("row %d: %w", rec.Row, err)
		}
	}

	im.logger.Info("punch import finished", "imported", result.Imported, "failed", len(result.Failed))
	return result, nil
}

func (im *Importer) ImportFile(ctx context.Context, r io.Reader) (*Result, error) {
	records, err := ParsePunchCSV(r, im.tracker.TimeZone().Location())
	if err != nil {
		return nil, err
	}
	return im.Import(ctx, records)
}
