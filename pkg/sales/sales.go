// Package sales assembles the sales grid, dashboard, controller and API into
// one module for hosts.
package sales

import (
	"errors"
	"time"

	core "github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/httpapi"
)

// Grid exposes the underlying components/sales.Grid type.
type Grid = core.Grid

// GridOptions re-export for convenience.
type GridOptions = core.GridOptions

// NewGrid proxies to the internal constructor.
func NewGrid(opts GridOptions) *Grid {
	return core.NewGrid(opts)
}

// Client is the backend surface the module needs.
type Client interface {
	core.Backend
	core.ReportBackend
}

// Options configures a Module.
type Options struct {
	Client     Client
	Session    core.SessionSource
	PageSize   int
	SortMode   string
	Locale     string
	Translator core.TranslationService
	Telemetry  core.Telemetry
	Renderer   core.Renderer
	ChartType  string
	ChartTheme string
	ChartHost  string
	ChartTTL   time.Duration
	Now        func() time.Time
}

// Module bundles every sales component sharing one grid.
type Module struct {
	Grid       *Grid
	Dashboard  *core.Dashboard
	Controller *core.Controller
	Broadcast  *core.BroadcastHook
	API        *httpapi.CommandExecutor
	Handlers   *httpapi.Handlers
}

// New wires the module. Without a renderer the embedded templates are used.
func New(opts Options) (*Module, error) {
	if opts.Client == nil {
		return nil, errors.New("sales: client is required")
	}
	if opts.Session == nil {
		return nil, errors.New("sales: session is required")
	}
	mode, err := core.ParseSortMode(opts.SortMode)
	if err != nil {
		return nil, err
	}
	renderer := opts.Renderer
	if renderer == nil {
		if renderer, err = core.NewTemplateRenderer(); err != nil {
			return nil, err
		}
	}

	broadcast := core.NewBroadcastHook()
	grid := core.NewGrid(core.GridOptions{
		Backend:     opts.Client,
		Session:     opts.Session,
		PageSize:    opts.PageSize,
		SortMode:    mode,
		Validator:   core.NewJSONSchemaValidator(),
		Telemetry:   opts.Telemetry,
		RefreshHook: broadcast,
		Translator:  opts.Translator,
		Locale:      opts.Locale,
		Now:         opts.Now,
	})

	chartOpts := []core.ChartOption{
		core.WithChartType(opts.ChartType),
		core.WithChartTheme(opts.ChartTheme),
		core.WithChartAssetsHost(opts.ChartHost),
	}
	if opts.ChartTTL > 0 {
		chartOpts = append(chartOpts, core.WithChartCache(core.NewChartCache(opts.ChartTTL)))
	}
	dashboard := core.NewDashboard(core.DashboardOptions{
		Fetcher:  opts.Client,
		Session:  opts.Session,
		Renderer: core.NewChartRenderer(chartOpts...),
		Now:      opts.Now,
	})

	api, err := httpapi.NewCommandExecutor(httpapi.ExecutorOptions{
		Grid:      grid,
		Dashboard: dashboard,
		Reports:   opts.Client,
		Session:   opts.Session,
		Telemetry: opts.Telemetry,
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		Grid:       grid,
		Dashboard:  dashboard,
		Controller: core.NewController(core.ControllerOptions{Grid: grid, Renderer: renderer}),
		Broadcast:  broadcast,
		API:        api,
		Handlers:   &httpapi.Handlers{API: api, Translator: opts.Translator, Locale: opts.Locale},
	}, nil
}
