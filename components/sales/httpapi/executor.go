package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/commands"
	"github.com/goliatone/go-ferry-admin/components/sales/queries"
)

// Executor is the transport-neutral surface shared by the net/http handlers
// and the go-router routes.
type Executor interface {
	Load(ctx context.Context, input commands.LoadSalesInput) error
	Filter(ctx context.Context, input commands.SetFilterInput) error
	Sort(ctx context.Context, input commands.SortInput) error
	Select(ctx context.Context, input commands.SelectRowsInput) error
	Page(ctx context.Context, input commands.ChangePageInput) error
	Delete(ctx context.Context, input commands.DeleteSalesInput) error
	Update(ctx context.Context, input commands.SaveSaleInput) error
	Create(ctx context.Context, input commands.SaveSaleInput) error
	View(ctx context.Context) (sales.GridView, error)
	Summary(ctx context.Context, input queries.SummaryInput) (sales.DashboardSummary, error)
	Report(ctx context.Context, input queries.ReportInput) (sales.File, error)
	Download(ctx context.Context, input queries.DownloadInput) (sales.File, error)
}

// ErrNotConfigured is returned for operations whose command was not wired.
var ErrNotConfigured = errors.New("httpapi: operation not configured")

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	LoadCmd   gocommand.Commander[commands.LoadSalesInput]
	FilterCmd gocommand.Commander[commands.SetFilterInput]
	SortCmd   gocommand.Commander[commands.SortInput]
	SelectCmd gocommand.Commander[commands.SelectRowsInput]
	PageCmd   gocommand.Commander[commands.ChangePageInput]
	DeleteCmd gocommand.Commander[commands.DeleteSalesInput]
	UpdateCmd gocommand.Commander[commands.SaveSaleInput]
	CreateCmd gocommand.Commander[commands.SaveSaleInput]
	ViewQ     gocommand.Querier[queries.GridViewInput, sales.GridView]
	SummaryQ  gocommand.Querier[queries.SummaryInput, sales.DashboardSummary]
	ReportQ   gocommand.Querier[queries.ReportInput, sales.File]
	DownloadQ gocommand.Querier[queries.DownloadInput, sales.File]
}

var _ Executor = (*CommandExecutor)(nil)

// ExecutorOptions lists the services behind the default executor.
type ExecutorOptions struct {
	Grid      *sales.Grid
	Dashboard *sales.Dashboard
	Reports   sales.ReportBackend
	Session   sales.SessionSource
	Telemetry commands.Telemetry
}

// NewCommandExecutor wires every command and query around the grid. Summary
// and export queries are only wired when their services are present.
func NewCommandExecutor(opts ExecutorOptions) (*CommandExecutor, error) {
	if opts.Grid == nil {
		return nil, errors.New("httpapi: grid is required")
	}
	grid := opts.Grid
	exec := &CommandExecutor{
		LoadCmd:   commands.NewLoadSalesCommand(grid, opts.Telemetry),
		FilterCmd: commands.NewSetFilterCommand(grid),
		SortCmd:   commands.NewSortCommand(grid),
		SelectCmd: commands.NewSelectRowsCommand(grid),
		PageCmd:   commands.NewChangePageCommand(grid),
		DeleteCmd: commands.NewDeleteSalesCommand(grid, opts.Telemetry),
		UpdateCmd: commands.NewUpdateSaleCommand(grid, opts.Telemetry),
		CreateCmd: commands.NewCreateSaleCommand(grid, opts.Telemetry),
		ViewQ:     queries.NewGridViewQuery(grid),
	}
	if opts.Dashboard != nil {
		exec.SummaryQ = queries.NewSummaryQuery(opts.Dashboard)
	}
	if opts.Reports != nil && opts.Session != nil {
		exec.ReportQ = queries.NewReportQuery(opts.Reports, opts.Session)
		exec.DownloadQ = queries.NewDownloadQuery(opts.Reports, opts.Session)
	}
	return exec, nil
}

func (e *CommandExecutor) Load(ctx context.Context, input commands.LoadSalesInput) error {
	return execute(ctx, e.LoadCmd, input)
}

func (e *CommandExecutor) Filter(ctx context.Context, input commands.SetFilterInput) error {
	return execute(ctx, e.FilterCmd, input)
}

func (e *CommandExecutor) Sort(ctx context.Context, input commands.SortInput) error {
	return execute(ctx, e.SortCmd, input)
}

func (e *CommandExecutor) Select(ctx context.Context, input commands.SelectRowsInput) error {
	return execute(ctx, e.SelectCmd, input)
}

func (e *CommandExecutor) Page(ctx context.Context, input commands.ChangePageInput) error {
	return execute(ctx, e.PageCmd, input)
}

func (e *CommandExecutor) Delete(ctx context.Context, input commands.DeleteSalesInput) error {
	return execute(ctx, e.DeleteCmd, input)
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.SaveSaleInput) error {
	return execute(ctx, e.UpdateCmd, input)
}

func (e *CommandExecutor) Create(ctx context.Context, input commands.SaveSaleInput) error {
	return execute(ctx, e.CreateCmd, input)
}

func (e *CommandExecutor) View(ctx context.Context) (sales.GridView, error) {
	return query(ctx, e.ViewQ, queries.GridViewInput{})
}

func (e *CommandExecutor) Summary(ctx context.Context, input queries.SummaryInput) (sales.DashboardSummary, error) {
	return query(ctx, e.SummaryQ, input)
}

func (e *CommandExecutor) Report(ctx context.Context, input queries.ReportInput) (sales.File, error) {
	return query(ctx, e.ReportQ, input)
}

func (e *CommandExecutor) Download(ctx context.Context, input queries.DownloadInput) (sales.File, error) {
	return query(ctx, e.DownloadQ, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return ErrNotConfigured
	}
	return cmd.Execute(ctx, msg)
}

func query[In, Out any](ctx context.Context, q gocommand.Querier[In, Out], msg In) (Out, error) {
	if q == nil {
		var zero Out
		return zero, ErrNotConfigured
	}
	return q.Query(ctx, msg)
}
