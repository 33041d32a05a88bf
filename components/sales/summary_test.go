package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByPaymentStatus(t *testing.T) {
	rows := []Sale{
		{ID: 1, Price: 30, Payed: true},
		{ID: 2, Price: 45.5, Payed: true},
		{ID: 3, Price: 20, Payed: false},
	}
	summary := Summarize(rows)
	assert.Equal(t, 75.5, summary.Paid)
	assert.Equal(t, 20.0, summary.Unpaid)
	assert.Equal(t, 2, summary.PaidCount)
	assert.Equal(t, 1, summary.UnpaidCount)
	assert.Equal(t, 95.5, summary.Total())
	assert.Equal(t, PaymentSummary{}, Summarize(nil))
}

func TestDailyTotalsZeroFillsWindow(t *testing.T) {
	end := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	rows := []Sale{
		{Date: "2024-05-10", Price: 10, Payed: true},
		{Date: "2024-05-10", Price: 5, Payed: false},
		{Date: "2024-05-08", Price: 7, Payed: true},
		{Date: "2024-04-01", Price: 99, Payed: true},
		{Date: "", Price: 1, Payed: true},
	}
	totals := DailyTotals(rows, 3, end)
	require.Len(t, totals, 3)
	assert.Equal(t, DailyTotal{Date: "2024-05-08", Paid: 7}, totals[0])
	assert.Equal(t, DailyTotal{Date: "2024-05-09"}, totals[1])
	assert.Equal(t, DailyTotal{Date: "2024-05-10", Paid: 10, Unpaid: 5}, totals[2])
	assert.Nil(t, DailyTotals(rows, 0, end))
}

func TestWindowDays(t *testing.T) {
	cases := map[Window]int{Window7d: 7, Window15d: 15, Window30d: 30, "": 30}
	for window, want := range cases {
		got, err := window.Days()
		require.NoError(t, err)
		assert.Equal(t, want, got, string(window))
	}
	_, err := Window("90d").Days()
	assert.Error(t, err)
}

func TestDashboardSummaryFetchesWindow(t *testing.T) {
	backend := &stubBackend{rows: []Sale{
		{ID: 1, Date: "2024-05-10", Price: 30, Payed: true},
		{ID: 2, Date: "2024-05-04", Price: 12, Payed: false},
	}}
	dashboard := NewDashboard(DashboardOptions{
		Fetcher: backend,
		Session: testSession,
		Now:     func() time.Time { return gridNow },
	})

	out, err := dashboard.Summary(context.Background(), Window7d)
	require.NoError(t, err)
	require.Len(t, backend.queries, 1)
	assert.Equal(t, SalesQuery{Business: "Gaviota", StartDate: "2024-05-03", EndDate: "2024-05-10"}, backend.queries[0])
	assert.Equal(t, Window7d, out.Window)
	assert.Len(t, out.Daily, 7)
	assert.Equal(t, 30.0, out.Summary.Paid)
	assert.Equal(t, 12.0, out.Summary.Unpaid)
	assert.Empty(t, out.ChartHTML)
}

func TestDashboardSummaryRendersChart(t *testing.T) {
	backend := &stubBackend{rows: []Sale{{ID: 1, Date: "2024-05-10", Price: 30, Payed: true}}}
	dashboard := NewDashboard(DashboardOptions{
		Fetcher:  backend,
		Session:  testSession,
		Renderer: NewChartRenderer(),
		Now:      func() time.Time { return gridNow },
	})
	out, err := dashboard.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Window30d, out.Window)
	assert.Contains(t, out.ChartHTML, "echarts")
}

func TestDashboardSummaryErrors(t *testing.T) {
	dashboard := NewDashboard(DashboardOptions{Fetcher: &stubBackend{}})
	_, err := dashboard.Summary(context.Background(), Window7d)
	assert.ErrorIs(t, err, ErrMissingSession)

	failing := NewDashboard(DashboardOptions{Fetcher: &stubBackend{fetchErr: ErrTransport}, Session: testSession})
	_, err = failing.Summary(context.Background(), Window7d)
	assert.ErrorIs(t, err, ErrTransport)

	_, err = failing.Summary(context.Background(), Window("1y"))
	assert.Error(t, err)
}
