package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"axiapac.com/timetracker/infrastructure/filesystem"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	sheetName = "Timesheet"
)

var headers = []string{
	"Employee Name", "Employee ID", "Date", "First Punch In",
	"Last Punch Out", "Total Hours", "Break Duration (min)",
	"Working Hours", "Late Arrivals", "Early Departures", "Status",
}

// numeric columns are written as numbers in XLSX
var numericColumns = map[int]bool{5: true, 6: true, 7: true, 8: true, 9: true}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", &core.ValidationError{Reason: "Format must be csv or xlsx."}
}

type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (r *Reporter) Export(ctx context.Context, f Filter, format Format, includeCycles bool) (*Export, error) {
	sessions, err := r.sessions(ctx, f)
	if err != nil {
		return nil, err
	}

	table := r.Table(sessions, includeCycles)
	name := fmt.Sprintf("timesheet-%s-to-%s", f.StartDate.Format(utils.DateLayout), f.EndDate.Format(utils.DateLayout))

	switch format {
	case FormatXLSX:
		body, err := writeXLSX(table)
		if err != nil {
			return nil, err
		}
		return &Export{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	default:
		body, err := writeCSV(table)
		if err != nil {
			return nil, err
		}
		return &Export{Filename: name + ".csv", ContentType: "text/csv", Body: body}, nil
	}
}

// Table renders sessions with a header row. Times are shown in the business
// time zone.
func (r *Reporter) Table(sessions []model.WorkSession, includeCycles bool) [][]string {
	head := append([]string{}, headers...)
	if includeCycles {
		head = append(head, "Punch Cycles")
	}
	rows := [][]string{head}

	loc := r.tz.Location()
	for _, s := range sessions {
		var name, code string
		if s.Employee != nil {
			name, code = s.Employee.Name, s.Employee.Code
		}
		row := []string{
			name,
			code,
			s.Date.Format(utils.DateLayout),
			utils.FormatTimeIn(s.PunchIn, loc, "15:04:05"),
			utils.FormatTimeIn(s.PunchOut, loc, "15:04:05"),
			s.TotalHours.StringFixed(2),
			s.BreakDuration.StringFixed(0),
			s.WorkingHours.StringFixed(2),
			utils.FormatBoolean(s.IsLateIn, "1", "0"),
			utils.FormatBoolean(s.IsEarlyOut, "1", "0"),
			s.Status.Label(),
		}
		if includeCycles {
			row = append(row, r.cycleText(s.PunchCycles))
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Reporter) cycleText(cycles []model.PunchCycle) string {
	loc := r.tz.Location()
	texts := make([]string, 0, len(cycles))
	for i, c := range cycles {
		var b strings.Builder
		fmt.Fprintf(&b, "Cycle %d: %s", i+1, c.PunchIn.In(loc).Format("15:04"))
		if c.PunchOut != nil {
			b.WriteString(" - " + c.PunchOut.In(loc).Format("15:04"))
		} else {
			b.WriteString(" - In Progress")
		}
		if c.IsLateIn {
			b.WriteString(" (Late)")
		}
		if c.IsEarlyOut {
			b.WriteString(" (Early)")
		}
		texts = append(texts, b.String())
	}
	return strings.Join(texts, "; ")
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cell
			if i > 0 && numericColumns[j] {
				if n, err := strconv.ParseFloat(cell, 64); err == nil {
					values[j] = n
				}
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, axis, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// Publish uploads an export under exports/ and returns its key.
func Publish(ctx context.Context, files filesystem.Files, bucket string, e *Export) (string, error) {
	key := "exports/" + e.Filename
	if err := files.WriteFile(ctx, bucket, key, e.Body, e.ContentType); err != nil {
		return "", err
	}
	return key, nil
}
