package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/timetracking/app"
	"axiapac.com/timetracker/timetracking/report"
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
	var start, end, employee, format, outDir string
	var cycles, upload bool

	flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flagSet.StringVar(&start, "start", "", "first local date, yyyy-MM-dd (required)")
	flagSet.StringVar(&end, "end", "", "last local date, yyyy-MM-dd (required)")
	flagSet.StringVar(&employee, "employee", "", "limit to one employee id")
	flagSet.StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	flagSet.BoolVar(&cycles, "cycles", false, "include the punch cycle column")
	flagSet.StringVarP(&outDir, "out", "o", ".", "directory to write the file to")
	flagSet.BoolVar(&upload, "upload", false, "upload to EXPORT_BUCKET instead of writing locally")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	startDate, err := utils.ParseDate(start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	filter := report.Filter{StartDate: startDate, EndDate: endDate}
	if employee != "" {
		filter.EmployeeID = &employee
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if upload && cfg.ExportBucket == "" {
		return fmt.Errorf("--upload needs EXPORT_BUCKET")
	}
	a, err := app.Open(ctx, cfg, "timetracker-export")
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	export, err := a.Reporter.Export(ctx, filter, f, cycles)
	if err != nil {
		return err
	}

	if upload {
		key, err := report.Publish(ctx, a.Files, cfg.ExportBucket, export)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded s3://%s/%s\n", cfg.ExportBucket, key)
		return nil
	}

	path := filepath.Join(outDir, export.Filename)
	if err := os.WriteFile(path, export.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
