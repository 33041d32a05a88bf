package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/queries"
)

type reportCmd struct {
	Time string `required:"" enum:"7,15" help:"Departure (7 or 15)."`
	Date string `required:"" help:"Departure day (YYYY-MM-DD)."`
	Dir  string `type:"path" default:"." help:"Directory the file is written to."`
}

func (cmd *reportCmd) Run(a *app) error {
	file, err := queries.NewReportQuery(a.client, a.session).Query(context.Background(), queries.ReportInput{Time: cmd.Time, Date: cmd.Date})
	if err != nil {
		return a.notice(sales.OpDownload, err)
	}
	return a.writeFile(cmd.Dir, file)
}

type downloadCmd struct {
	Format string `default:"xlsx" enum:"xlsx,csv" help:"Export format."`
	Dir    string `type:"path" default:"." help:"Directory the file is written to."`
}

func (cmd *downloadCmd) Run(a *app) error {
	file, err := queries.NewDownloadQuery(a.client, a.session).Query(context.Background(), queries.DownloadInput{Format: cmd.Format})
	if err != nil {
		return a.notice(sales.OpDownload, err)
	}
	return a.writeFile(cmd.Dir, file)
}

func (a *app) writeFile(dir string, file sales.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ferryctl: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, filepath.Base(file.Name))
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("ferryctl: write %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "✓ %s: %s (%d bytes)\n", sales.SuccessNotice(sales.OpDownload, a.cfg.Grid.Locale), path, len(file.Data))
	return nil
}

type summaryCmd struct {
	Window string `default:"30d" enum:"7d,15d,30d" help:"Days to summarize."`
	Chart  string `type:"path" help:"Write the daily chart HTML to this file."`
}

func (cmd *summaryCmd) Run(a *app) error {
	var options []sales.ChartOption
	options = append(options, sales.WithChartType(a.cfg.Chart.Type), sales.WithChartTheme(a.cfg.Chart.Theme))
	if a.cfg.Chart.AssetsHost != "" {
		options = append(options, sales.WithChartAssetsHost(a.cfg.Chart.AssetsHost))
	}
	var renderer *sales.ChartRenderer
	if cmd.Chart != "" {
		renderer = sales.NewChartRenderer(options...)
	}
	dashboard := sales.NewDashboard(sales.DashboardOptions{
		Fetcher:  a.client,
		Session:  a.session,
		Renderer: renderer,
		Now:      a.now,
	})
	out, err := queries.NewSummaryQuery(dashboard).Query(context.Background(), queries.SummaryInput{Window: sales.Window(cmd.Window)})
	if err != nil {
		return a.notice(sales.OpLoad, err)
	}

	fmt.Fprintln(a.out, renderSummary(out, isTTY(a.out)))
	if cmd.Chart != "" {
		if err := os.WriteFile(cmd.Chart, []byte(out.ChartHTML), 0o644); err != nil {
			return fmt.Errorf("ferryctl: write chart: %w", err)
		}
		fmt.Fprintf(a.out, "✓ Chart written to %s\n", cmd.Chart)
	}
	return nil
}
