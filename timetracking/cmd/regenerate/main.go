package main

import (
	"context"
	"fmt"
	"os"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/timetracking/app"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/utils"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var start, end, employee string
	flagSet := pflag.NewFlagSet("regenerate", pflag.ContinueOnError)
	flagSet.StringVar(&start, "start", "", "first local date, yyyy-MM-dd (required)")
	flagSet.StringVar(&end, "end", "", "last local date, yyyy-MM-dd (defaults to --start)")
	flagSet.StringVar(&employee, "employee", "", "limit to one employee id")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if end == "" {
		end = start
	}

	startDate, err := utils.ParseDate(start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	opts := core.RegenerateOptions{StartDate: startDate, EndDate: endDate}
	if employee != "" {
		opts.EmployeeID = &employee
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.Open(ctx, cfg, "timetracker-regenerate")
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	sessions, err := a.Tracker.RegenerateSessions(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("regenerated %d sessions from %s to %s\n", len(sessions), start, end)
	return nil
}
