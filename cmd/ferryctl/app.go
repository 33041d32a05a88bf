package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/commands"
	"github.com/goliatone/go-ferry-admin/pkg/activity"
	"github.com/goliatone/go-ferry-admin/pkg/config"
	"github.com/goliatone/go-ferry-admin/pkg/ferryapi"
	"github.com/goliatone/go-ferry-admin/pkg/logging"
)

// mockBusiness names the business served by --mock.
const mockBusiness = "Gaviota"

type app struct {
	cfg       config.Config
	logger    *slog.Logger
	store     sales.SessionStore
	session   sales.SessionSource
	client    ferryapi.Client
	telemetry sales.Telemetry
	out       io.Writer
	now       func() time.Time
}

func newApp(root cli, out io.Writer) (*app, error) {
	cfg, err := config.Load(root.Config, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if root.LogLevel != "" {
		cfg.Logging.Level = root.LogLevel
	}
	if root.LogFormat != "" {
		cfg.Logging.Format = root.LogFormat
	}
	if root.BaseURL != "" {
		cfg.API.BaseURL = root.BaseURL
	}
	logger, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, out: out, now: time.Now}
	if root.Mock {
		data := ferryapi.DemoData(mockBusiness, a.now())
		a.client = ferryapi.NewMockClient(data)
		store := sales.NewMemorySessionStore(sales.Session{
			Business: mockBusiness,
			Token:    "mock-token",
			Email:    "owner@example.com",
			Name:     "Demo",
			Role:     "owner",
		})
		a.store, a.session = store, store
	} else {
		store := sales.NewFileSessionStore(cfg.Session.Path)
		client, err := ferryapi.NewHTTPClient(ferryapi.HTTPConfig{
			BaseURL: cfg.API.BaseURL,
			Session: store,
			Timeout: cfg.API.Timeout,
		})
		if err != nil {
			return nil, err
		}
		a.client, a.store, a.session = client, store, store
	}

	emitter := activity.NewEmitter(activity.Hooks{activityLogger(logger)}, cfg.Activity)
	a.telemetry = sales.TelemetryFanout{
		sales.NewSlogTelemetry(logger),
		activity.SalesTelemetry{
			Emitter: emitter,
			OnError: func(err error) { logger.Warn("activity emit failed", "error", err) },
		},
	}
	return a, nil
}

func activityLogger(logger *slog.Logger) activity.Hook {
	return activity.HookFunc(func(ctx context.Context, evt activity.Event) error {
		logger.InfoContext(ctx, "activity",
			"verb", evt.Verb,
			"object_type", evt.ObjectType,
			"object_id", evt.ObjectID,
			"actor_id", evt.ActorID,
			"channel", evt.Channel,
		)
		return nil
	})
}

// grid builds a grid bound to the app session and backend.
func (a *app) grid() (*sales.Grid, error) {
	mode, err := sales.ParseSortMode(a.cfg.Grid.SortMode)
	if err != nil {
		return nil, err
	}
	return sales.NewGrid(sales.GridOptions{
		Backend:   a.client,
		Session:   a.session,
		PageSize:  a.cfg.Grid.PageSize,
		SortMode:  mode,
		Validator: sales.NewJSONSchemaValidator(),
		Telemetry: a.telemetry,
		Locale:    a.cfg.Grid.Locale,
		Now:       a.now,
	}), nil
}

// actor identifies the CLI user on commands.
func (a *app) actor() commands.Actor {
	session := a.session.Current()
	return commands.Actor{ActorID: session.Email, UserID: session.Email, TenantID: session.Business}
}

// notice converts err into the localized message shown to the user while
// keeping the original error for errors.Is.
func (a *app) notice(op sales.Operation, err error) error {
	if err == nil {
		return nil
	}
	a.logger.Debug("operation failed", "op", op, "error", err)
	return &noticeError{msg: sales.Notice(context.Background(), nil, op, a.cfg.Grid.Locale, err), err: err}
}

type noticeError struct {
	msg string
	err error
}

func (e *noticeError) Error() string { return "ferryctl: " + e.msg }

func (e *noticeError) Unwrap() error { return e.err }
