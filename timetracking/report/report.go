// Package report aggregates stored work sessions into summaries and exports.
// It only reads; sessions are produced by the tracker.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/model"
	"axiapac.com/timetracker/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Reporter struct {
	db *gorm.DB
	tz *core.TimeZone
}

func New(db *gorm.DB, tz *core.TimeZone) *Reporter {
	return &Reporter{db: db, tz: tz}
}

// Filter selects sessions by local business date, both ends inclusive.
type Filter struct {
	StartDate  time.Time
	EndDate    time.Time
	EmployeeID *string
}

func (f Filter) validate() error {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return &core.ValidationError{Reason: "start_date and end_date are required"}
	}
	if f.StartDate.After(f.EndDate) {
		return &core.ValidationError{Reason: "Start date cannot be after end date."}
	}
	return nil
}

func (r *Reporter) sessions(ctx context.Context, f Filter) ([]model.WorkSession, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("PunchCycles", func(db *gorm.DB) *gorm.DB { return db.Order("punch_in ASC") }).
		Where("date >= ? AND date <= ?", utils.DateOf(f.StartDate), utils.DateOf(f.EndDate))
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}

	var sessions []model.WorkSession
	if err := q.Order("date ASC, punch_in ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch work sessions: %w", err)
	}
	return sessions, nil
}

type Overview struct {
	TotalSessions      int             `json:"totalSessions"`
	TotalWorkingHours  decimal.Decimal `json:"totalWorkingHours"`
	TotalBreakMinutes  decimal.Decimal `json:"totalBreakTime"`
	LateArrivals       int             `json:"lateArrivals"`
	EarlyDepartures    int             `json:"earlyDepartures"`
	AverageHoursPerDay decimal.Decimal `json:"averageHoursPerDay"`
	TotalPunchCycles   int             `json:"totalPunchCycles"`
}

func (r *Reporter) Overview(ctx context.Context, f Filter) (*Overview, error) {
	sessions, err := r.sessions(ctx, f)
	if err != nil {
		return nil, err
	}

	o := Overview{
		TotalSessions:      len(sessions),
		TotalWorkingHours:  decimal.Zero,
		TotalBreakMinutes:  decimal.Zero,
		AverageHoursPerDay: decimal.Zero,
	}
	for _, s := range sessions {
		o.TotalWorkingHours = o.TotalWorkingHours.Add(s.WorkingHours)
		o.TotalBreakMinutes = o.TotalBreakMinutes.Add(s.BreakDuration)
		o.TotalPunchCycles += len(s.PunchCycles)
		if s.IsLateIn {
			o.LateArrivals++
		}
		if s.IsEarlyOut {
			o.EarlyDepartures++
		}
	}
	if o.TotalSessions > 0 {
		o.AverageHoursPerDay = o.TotalWorkingHours.Div(decimal.NewFromInt(int64(o.TotalSessions))).Round(2)
	}
	return &o, nil
}

type EmployeeStats struct {
	EmployeeID     string          `json:"employeeId"`
	EmployeeCode   string          `json:"employeeCode"`
	EmployeeName   string          `json:"employeeName"`
	Department     string          `json:"department"`
	Sessions       int             `json:"sessions"`
	TotalHours     decimal.Decimal `json:"totalHours"`
	AverageHours   decimal.Decimal `json:"averageHours"`
	LateCount      int             `json:"lateCount"`
	EarlyCount     int             `json:"earlyCount"`
	PunchCycles    int             `json:"punchCycles"`
	AttendanceRate decimal.Decimal `json:"attendanceRate"`
}

// Employees summarises each employee with at least one session in range,
// ordered by name. Attendance rate is the share of sessions with neither a
// late arrival nor an early departure counted against it.
func (r *Reporter) Employees(ctx context.Context, f Filter) ([]EmployeeStats, error) {
	sessions, err := r.sessions(ctx, f)
	if err != nil {
		return nil, err
	}

	byEmployee := utils.GroupBy(sessions, func(s model.WorkSession) string { return s.EmployeeID })
	stats := make([]EmployeeStats, 0, len(byEmployee))
	for employeeID, group := range byEmployee {
		st := EmployeeStats{
			EmployeeID:     employeeID,
			Sessions:       len(group),
			TotalHours:     decimal.Zero,
			AverageHours:   decimal.Zero,
			AttendanceRate: decimal.Zero,
		}
		if emp := group[0].Employee; emp != nil {
			st.EmployeeCode = emp.Code
			st.EmployeeName = emp.Name
			st.Department = emp.Department
		}
		for _, s := range group {
			st.TotalHours = st.TotalHours.Add(s.WorkingHours)
			st.PunchCycles += len(s.PunchCycles)
			if s.IsLateIn {
				st.LateCount++
			}
			if s.IsEarlyOut {
				st.EarlyCount++
			}
		}
		n := decimal.NewFromInt(int64(st.Sessions))
		st.AverageHours = st.TotalHours.Div(n).Round(2)
		st.AttendanceRate = decimal.NewFromInt(int64(st.Sessions - st.LateCount - st.EarlyCount)).
			Div(n).Mul(decimal.NewFromInt(100)).Round(2)
		stats = append(stats, st)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].EmployeeName != stats[j].EmployeeName {
			return stats[i].EmployeeName < stats[j].EmployeeName
		}
		return stats[i].EmployeeID < stats[j].EmployeeID
	})
	return stats, nil
}

type DailyStats struct {
	Date     string          `json:"date"`
	Hours    decimal.Decimal `json:"hours"`
	Sessions int             `json:"sessions"`
	Cycles   int             `json:"cycles"`
}

func (r *Reporter) Daily(ctx context.Context, f Filter) ([]DailyStats, error) {
	sessions, err := r.sessions(ctx, f)
	if err != nil {
		return nil, err
	}

	var days []DailyStats
	index := map[string]int{}
	for _, s := range sessions {
		key := s.Date.Format(utils.DateLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DailyStats{Date: key, Hours: decimal.Zero})
		}
		days[i].Hours = days[i].Hours.Add(s.WorkingHours)
		days[i].Sessions++
		days[i].Cycles += len(s.PunchCycles)
	}
	// sessions arrive date ascending, so days already are
	return days, nil
}
