package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-ferry-admin/components/sales/gorouter"
	"github.com/goliatone/go-ferry-admin/pkg/activity"
	"github.com/goliatone/go-ferry-admin/pkg/goadmin"
	salespkg "github.com/goliatone/go-ferry-admin/pkg/sales"
)

type serveCmd struct {
	Addr     string `help:"Listen address (defaults to server.addr)."`
	BasePath string `name:"base-path" help:"Mount point for the sales routes (defaults to server.base_path)."`
}

func (c *serveCmd) Run(a *app) error {
	addr := firstNonEmpty(c.Addr, a.cfg.Server.Addr)
	base := firstNonEmpty(c.BasePath, a.cfg.Server.BasePath)

	module, err := a.module()
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := module.Grid.Refresh(ctx); err != nil {
		a.logger.Warn("initial sales load failed", "error", err)
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: module.Controller,
		API:        module.API,
		Broadcast:  module.Broadcast,
		BasePath:   base,
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	admin, err := goadmin.New(goadmin.Config{
		EnableSales:    true,
		Role:           a.session.Current().Role,
		MenuBuilder:    menuLogger{logger: a.logger},
		Module:         module,
		ActivityHooks:  activity.Hooks{activityLogger(a.logger)},
		ActivityConfig: a.cfg.Activity,
	})
	if err != nil {
		return err
	}
	if err := admin.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap menu: %w", err)
	}

	a.logger.Info("sales admin ready", "addr", addr, "page", base+"/sales", "ws", base+"/sales/ws")
	return server.Serve(addr)
}

// module builds the sales module from the app configuration.
func (a *app) module() (*salespkg.Module, error) {
	return salespkg.New(salespkg.Options{
		Client:     a.client,
		Session:    a.session,
		PageSize:   a.cfg.Grid.PageSize,
		SortMode:   a.cfg.Grid.SortMode,
		Locale:     a.cfg.Grid.Locale,
		Telemetry:  a.telemetry,
		ChartType:  a.cfg.Chart.Type,
		ChartTheme: a.cfg.Chart.Theme,
		ChartHost:  a.cfg.Chart.AssetsHost,
		ChartTTL:   a.cfg.Chart.CacheTTL,
		Now:        a.now,
	})
}

type menuLogger struct {
	logger *slog.Logger
}

func (m menuLogger) EnsureMenuItem(ctx context.Context, menu string, item goadmin.MenuItem) error {
	m.logger.DebugContext(ctx, "menu item", "menu", menu, "label", item.Label, "route", item.Route)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
