package sales

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PaymentSummary totals sale prices by payment status.
type PaymentSummary struct {
	Paid        float64 `json:"paid"`
	Unpaid      float64 `json:"unpaid"`
	PaidCount   int     `json:"paid_count"`
	UnpaidCount int     `json:"unpaid_count"`
}

// Total is paid plus unpaid.
func (s PaymentSummary) Total() float64 { return s.Paid + s.Unpaid }

// Summarize totals rows by their Payed flag.
func Summarize(rows []Sale) PaymentSummary {
	var out PaymentSummary
	for _, row := range rows {
		if row.Payed {
			out.Paid += row.Price
			out.PaidCount++
			continue
		}
		out.Unpaid += row.Price
		out.UnpaidCount++
	}
	return out
}

// DailyTotal is the paid/unpaid amount of one calendar day.
type DailyTotal struct {
	Date   string  `json:"date"`
	Paid   float64 `json:"paid"`
	Unpaid float64 `json:"unpaid"`
}

// DailyTotals buckets rows per day for the `days` days ending on `end`,
// oldest first. Days without sales are zero; rows outside the window or
// without a date are ignored.
func DailyTotals(rows []Sale, days int, end time.Time) []DailyTotal {
	if days <= 0 {
		return nil
	}
	last := truncateDay(end)
	out := make([]DailyTotal, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := FormatDate(last.AddDate(0, 0, i-days+1))
		out[i] = DailyTotal{Date: date}
		index[date] = i
	}
	for _, row := range rows {
		i, ok := index[strings.TrimSpace(row.Date)]
		if !ok {
			continue
		}
		if row.Payed {
			out[i].Paid += row.Price
		} else {
			out[i].Unpaid += row.Price
		}
	}
	return out
}

// Window is a trailing dashboard range.
type Window string

const (
	Window7d  Window = "7d"
	Window15d Window = "15d"
	Window30d Window = "30d"
)

// Days returns the number of days covered by the window.
func (w Window) Days() (int, error) {
	switch w {
	case Window7d:
		return 7, nil
	case Window15d:
		return 15, nil
	case Window30d, "":
		return 30, nil
	default:
		return 0, fmt.Errorf("sales: unknown window %q", string(w))
	}
}

// Range returns the fetch bounds of the window ending at now.
func (w Window) Range(now time.Time) (time.Time, time.Time, error) {
	days, err := w.Days()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := truncateDay(now)
	return end.AddDate(0, 0, -days), end, nil
}

// DashboardSummary is the payload of the sales overview panel.
type DashboardSummary struct {
	Window    Window         `json:"window"`
	Summary   PaymentSummary `json:"summary"`
	Daily     []DailyTotal   `json:"daily"`
	ChartHTML string         `json:"chart_html,omitempty"`
}

// Dashboard builds the overview panel from its own fetch, independent of the grid.
type Dashboard struct {
	fetcher  SalesFetcher
	session  SessionSource
	renderer *ChartRenderer
	now      func() time.Time
}

// DashboardOptions configures a Dashboard.
type DashboardOptions struct {
	Fetcher  SalesFetcher
	Session  SessionSource
	Renderer *ChartRenderer
	Now      func() time.Time
}

// NewDashboard builds the overview service. A nil renderer skips the chart.
func NewDashboard(opts DashboardOptions) *Dashboard {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	session := opts.Session
	if session == nil {
		session = Session{}
	}
	return &Dashboard{fetcher: opts.Fetcher, session: session, renderer: opts.Renderer, now: now}
}

// Summary loads the window and aggregates it.
func (d *Dashboard) Summary(ctx context.Context, window Window) (DashboardSummary, error) {
	if window == "" {
		window = Window30d
	}
	days, err := window.Days()
	if err != nil {
		return DashboardSummary{}, err
	}
	session := d.session.Current()
	if err := session.Require(); err != nil {
		return DashboardSummary{}, err
	}
	if d.fetcher == nil {
		return DashboardSummary{}, fmt.Errorf("sales: dashboard requires a fetcher")
	}
	now := d.now()
	start, end, _ := window.Range(now)
	query, err := buildQuery(session.Business, start, end)
	if err != nil {
		return DashboardSummary{}, err
	}
	rows, err := d.fetcher.FetchSales(ctx, query)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("sales: dashboard %s: %w", window, err)
	}
	out := DashboardSummary{
		Window:  window,
		Summary: Summarize(rows),
		Daily:   DailyTotals(rows, days, now),
	}
	if d.renderer != nil {
		html, err := d.renderer.RenderDaily(fmt.Sprintf("Ventas últimos %d días", days), out.Daily)
		if err != nil {
			return DashboardSummary{}, err
		}
		out.ChartHTML = html
	}
	return out, nil
}
