package main

import (
	"context"
	"fmt"
	"os"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/timetracking/app"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/model"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var seed bool
	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.BoolVar(&seed, "seed", true, "activate a 09:00-17:00 configuration when none is active")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.Open(ctx, cfg, "timetracker-migrate")
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	if err := a.DM.Exec(ctx, core.AutoMigrate); err != nil {
		return err
	}
	a.Logger.Info("schema migrated")

	if !seed {
		return nil
	}
	active, err := a.Tracker.ActiveConfiguration(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}
	created, err := a.Tracker.CreateBusinessHours(ctx, model.BusinessHours{
		StartTime:     "09:00",
		EndTime:       "17:00",
		BreakDuration: model.DefaultBreakDuration,
		LateThreshold: model.DefaultLateThreshold,
	}, true)
	if err != nil {
		return err
	}
	a.Logger.Info("default business hours activated", "id", created.ID)
	return nil
}
