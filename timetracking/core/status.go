package core

import (
	"axiapac.com/timetracker/timetracking/model"
)

type WorkState string

const (
	StateNotStarted WorkState = "not_started"
	StateWorking    WorkState = "working"
	StateOnBreak    WorkState = "on_break"
	StateFinished   WorkState = "finished"
)

type AllowedActions struct {
	CanPunchIn    bool `json:"canPunchIn"`
	CanPunchOut   bool `json:"canPunchOut"`
	CanStartBreak bool `json:"canStartBreak"`
	CanEndBreak   bool `json:"canEndBreak"`
}

type WorkStatus struct {
	EmployeeID string            `json:"employeeId"`
	State      WorkState         `json:"status"`
	Actions    AllowedActions    `json:"actions"`
	LastEvent  *model.PunchEvent `json:"lastAction"`
}

// ResolveStatus projects today's events onto the state an employee is in and
// the actions open to them. Nothing is stored.
func ResolveStatus(employeeID string, events []model.PunchEvent) WorkStatus {
	status := WorkStatus{EmployeeID: employeeID}
	if len(events) == 0 {
		status.State = StateNotStarted
		status.Actions = AllowedActions{CanPunchIn: true}
		return status
	}

	s := partition(events)
	all := make([]model.PunchEvent, len(events))
	copy(all, events)
	sortEvents(all)
	last := all[len(all)-1]
	status.LastEvent = &last

	punchedIn := len(s.ins) > len(s.outs)
	onBreak := len(s.starts) > len(s.ends)

	switch {
	case !punchedIn && len(s.outs) > 0:
		status.State = StateFinished
		status.Actions = AllowedActions{CanPunchIn: true}
	case !punchedIn:
		status.State = StateNotStarted
		status.Actions = AllowedActions{CanPunchIn: true}
	case onBreak:
		status.State = StateOnBreak
		status.Actions = AllowedActions{CanEndBreak: true}
	default:
		status.State = StateWorking
		status.Actions = AllowedActions{CanPunchOut: true, CanStartBreak: true}
	}
	return status
}
