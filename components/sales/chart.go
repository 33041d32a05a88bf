package sales

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// Series labels of the daily chart.
const (
	SeriesPaid   = "Pagados"
	SeriesUnpaid = "No pagados"
)

// ChartRenderer renders the daily paid/unpaid chart as embeddable HTML.
type ChartRenderer struct {
	chartType  string
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache; nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartOption {
	return func(r *ChartRenderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// WithChartAssetsHost loads the echarts JS from host.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartType picks "bar" (default) or "line".
func WithChartType(chartType string) ChartOption {
	return func(r *ChartRenderer) {
		if chartType != "" {
			r.chartType = strings.ToLower(chartType)
		}
	}
}

// NewChartRenderer builds a renderer with an in-memory cache.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{
		chartType: "bar",
		cache:     NewChartCache(defaultChartTTL),
		theme:     types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RenderDaily renders one paid and one unpaid series over the given days.
func (r *ChartRenderer) RenderDaily(title string, totals []DailyTotal) (string, error) {
	render := func() (string, error) {
		labels := make([]string, len(totals))
		for i, total := range totals {
			labels[i] = total.Date
		}
		switch r.chartType {
		case "bar":
			return r.renderBar(title, labels, totals)
		case "line":
			return r.renderLine(title, labels, totals)
		default:
			return "", fmt.Errorf("sales: unsupported chart type %q", r.chartType)
		}
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s", r.chartType, title, contentHash(totals))
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) renderBar(title string, labels []string, totals []DailyTotal) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions(title)...)
	bar.SetXAxis(labels)
	paid := make([]opts.BarData, len(totals))
	unpaid := make([]opts.BarData, len(totals))
	for i, total := range totals {
		paid[i] = opts.BarData{Name: total.Date, Value: total.Paid}
		unpaid[i] = opts.BarData{Name: total.Date, Value: total.Unpaid}
	}
	bar.AddSeries(SeriesPaid, paid, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	bar.AddSeries(SeriesUnpaid, unpaid, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	return renderChart(bar)
}

func (r *ChartRenderer) renderLine(title string, labels []string, totals []DailyTotal) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions(title)...)
	line.SetXAxis(labels)
	paid := make([]opts.LineData, len(totals))
	unpaid := make([]opts.LineData, len(totals))
	for i, total := range totals {
		paid[i] = opts.LineData{Name: total.Date, Value: total.Paid}
		unpaid[i] = opts.LineData{Name: total.Date, Value: total.Unpaid}
	}
	line.AddSeries(SeriesPaid, paid)
	line.AddSeries(SeriesUnpaid, unpaid)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
