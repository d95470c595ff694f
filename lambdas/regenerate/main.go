package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/infrastructure/communication"
	"axiapac.com/timetracker/timetracking/app"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/utils"
	"github.com/aws/aws-lambda-go/lambda"
)

// RegenerateEvent selects the days to rebuild. Empty dates mean yesterday in
// the business time zone.
type RegenerateEvent struct {
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	EmployeeID *string `json:"employeeId"`
}

type RegenerateResult struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Sessions  int    `json:"sessions"`
}

// Options resolves the event against today's local date.
func (e RegenerateEvent) Options(today time.Time) (core.RegenerateOptions, error) {
	yesterday := today.AddDate(0, 0, -1)
	opts := core.RegenerateOptions{StartDate: yesterday, EndDate: yesterday, EmployeeID: e.EmployeeID}

	if e.StartDate != "" {
		start, err := utils.ParseDate(e.StartDate)
		if err != nil {
			return opts, err
		}
		opts.StartDate, opts.EndDate = start, start
	}
	if e.EndDate != "" {
		end, err := utils.ParseDate(e.EndDate)
		if err != nil {
			return opts, err
		}
		opts.EndDate = end
	}
	return opts, nil
}

func Regenerate(ctx context.Context, tracker *core.Tracker, notifier communication.Notifier, logger *slog.Logger, event RegenerateEvent) (*RegenerateResult, error) {
	opts, err := event.Options(tracker.TimeZone().LocalDate(tracker.Now()))
	if err != nil {
		return nil, err
	}

	result := &RegenerateResult{
		StartDate: opts.StartDate.Format(utils.DateLayout),
		EndDate:   opts.EndDate.Format(utils.DateLayout),
	}
	sessions, err := tracker.RegenerateSessions(ctx, opts)
	if err != nil {
		logger.Error("session regeneration failed", "start", result.StartDate, "end", result.EndDate, "error", err)
		if nerr := notifier.Error(fmt.Sprintf(":x: Session regeneration %s to %s failed: %v", result.StartDate, result.EndDate, err)); nerr != nil {
			logger.Warn("slack notify failed", "error", nerr)
		}
		return nil, err
	}
	result.Sessions = len(sessions)

	if err := notifier.Info(fmt.Sprintf("Regenerated %d work sessions for %s to %s", result.Sessions, result.StartDate, result.EndDate)); err != nil {
		logger.Warn("slack notify failed", "error", err)
	}
	return result, nil
}

func HandleRequest(ctx context.Context, event RegenerateEvent) (*RegenerateResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(ctx, cfg, "timetracker-regenerate")
	if err != nil {
		return nil, err
	}
	defer a.Close(ctx)

	return Regenerate(ctx, a.Tracker, a.Notifier, a.Logger, event)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	var event RegenerateEvent
	if len(os.Args) > 1 {
		if err := json.Unmarshal([]byte(os.Args[1]), &event); err != nil {
			log.Fatalf("invalid event: %v", err)
		}
	}
	result, err := HandleRequest(context.Background(), event)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", *result)
}
