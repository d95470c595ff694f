// Package app wires configuration into the services shared by the API
// server, the command line tools and the lambdas.
package app

import (
	"context"
	"fmt"
	"log/slog"

	dbcore "axiapac.com/timetracker/core"
	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/infrastructure/communication"
	"axiapac.com/timetracker/infrastructure/filesystem"
	"axiapac.com/timetracker/infrastructure/telemetry"
	"axiapac.com/timetracker/security"
	"axiapac.com/timetracker/timetracking/core"
	"axiapac.com/timetracker/timetracking/importer"
	"axiapac.com/timetracker/timetracking/report"
	"axiapac.com/timetracker/timetracking/web/common"
)

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	DM       *dbcore.DatabaseManager
	Tracker  *core.Tracker
	Reporter *report.Reporter
	Importer *importer.Importer
	Files    filesystem.Files
	Notifier communication.Notifier

	shutdownTelemetry func(context.Context) error
}

// Open connects to the database and builds every service. Callers must
// Close the result.
func Open(ctx context.Context, cfg config.Config, serviceName string) (*App, error) {
	logger := cfg.Logger()

	tz, err := core.LoadTimeZone(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	shutdown := telemetry.Setup(telemetry.Options{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		Logger:      logger,
	})

	dsn, err := cfg.ResolveDSN(ctx)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	dm, err := dbcore.New(cfg.DBDriver, dsn, cfg.DBMaxConnections, dbcore.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	var files filesystem.Files
	if cfg.ExportBucket != "" || cfg.ImportBucket != "" {
		s3files, err := filesystem.NewS3(ctx)
		if err != nil {
			_ = dm.Close()
			_ = shutdown(ctx)
			return nil, err
		}
		files = s3files
	} else {
		files = filesystem.NewMemory()
	}

	tracker := core.NewTracker(dm.DB, core.Options{
		TimeZone:    tz,
		Logger:      logger,
		LockTimeout: cfg.LockTimeout,
	})

	return &App{
		Config:   cfg,
		Logger:   logger,
		DM:       dm,
		Tracker:  tracker,
		Reporter: report.New(dm.DB, tz),
		Importer: importer.New(tracker, logger),
		Files:    files,
		Notifier: communication.ConnectSlack(cfg.SlackToken, communication.SlackOption{
			InfoChannelID:  cfg.SlackInfo,
			ErrorChannelID: cfg.SlackError,
		}, logger),
		shutdownTelemetry: shutdown,
	}, nil
}

// Handler returns the shared state for the HTTP endpoints.
func (a *App) Handler() *common.Handler {
	return &common.Handler{
		Tracker:      a.Tracker,
		Reporter:     a.Reporter,
		Importer:     a.Importer,
		Files:        a.Files,
		ExportBucket: a.Config.ExportBucket,
		Logger:       a.Logger,
	}
}

// SigningKey decodes the base64 JWT signing secret.
func (a *App) SigningKey() ([]byte, error) {
	if a.Config.SigningSecret == "" {
		return nil, fmt.Errorf("SIGNING_SECRET is not set")
	}
	return security.DecodeSecret(a.Config.SigningSecret)
}

func (a *App) Close(ctx context.Context) error {
	if err := a.shutdownTelemetry(ctx); err != nil {
		a.Logger.Warn("telemetry shutdown", "error", err)
	}
	return a.DM.Close()
}
