package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/lambdas/clockin/helper"
	"axiapac.com/timetracker/timetracking/app"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

const maxReportedFailures = 20

// HandleRequest imports punch CSVs dropped into the import bucket.
func HandleRequest(ctx context.Context, event events.S3Event) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.Open(ctx, cfg, "timetracker-clockin")
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	summary := helper.ImportObjects(ctx, a.Files, a.Importer, event.Records)
	message := summary.Message(maxReportedFailures)
	a.Logger.Info("clock-in import finished", "objects", len(summary.Objects))

	if summary.HasErrors() {
		if err := a.Notifier.Error(":warning: Punch import\n" + message); err != nil {
			a.Logger.Warn("slack notify failed", "error", err)
		}
		return nil
	}
	if err := a.Notifier.Info("Punch import\n" + message); err != nil {
		a.Logger.Warn("slack notify failed", "error", err)
	}
	return nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	// local run: timetracker-clockin <bucket> <key>
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: clockin <bucket> <key>")
		os.Exit(2)
	}
	event := events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: os.Args[1]},
			Object: events.S3Object{Key: os.Args[2]},
		},
	}}}
	if err := HandleRequest(context.Background(), event); err != nil {
		log.Fatal(err)
	}
}
