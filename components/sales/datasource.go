package sales

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DateLayout is the wire format of sale dates.
const DateLayout = time.DateOnly

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultRange is the window the grid opens with: five days either side of now.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	day := truncateDay(now)
	return day.AddDate(0, 0, -5), day.AddDate(0, 0, 5)
}

// DataSource owns the loaded rows and the state of the last load.
type DataSource struct {
	fetcher SalesFetcher

	mu      sync.RWMutex
	rows    []Sale
	err     error
	pending int
	issued  uint64
	query   SalesQuery
	hasLoad bool
}

// NewDataSource builds a data source backed by fetcher.
func NewDataSource(fetcher SalesFetcher) *DataSource {
	return &DataSource{fetcher: fetcher}
}

// Load fetches the sales of business between start and end (inclusive) and
// replaces the rows. On failure the previous rows are kept and the error is
// recorded. A response that arrives after a newer Load was issued is
// discarded and ErrStaleLoad is returned.
func (d *DataSource) Load(ctx context.Context, business string, start, end time.Time) error {
	query, err := buildQuery(business, start, end)
	if err != nil {
		d.Fail(err)
		return err
	}
	if d.fetcher == nil {
		return fmt.Errorf("sales: data source requires a fetcher")
	}

	d.mu.Lock()
	d.issued++
	seq := d.issued
	d.pending++
	d.query = query
	d.hasLoad = true
	d.mu.Unlock()

	rows, err := d.fetcher.FetchSales(ctx, query)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending--
	if seq != d.issued {
		return ErrStaleLoad
	}
	if err != nil {
		d.err = fmt.Errorf("sales: load %s..%s: %w", query.StartDate, query.EndDate, err)
		return d.err
	}
	d.rows = append([]Sale(nil), rows...)
	d.err = nil
	return nil
}

// Fail records err as the load error without touching the rows.
func (d *DataSource) Fail(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

// Reload repeats the last requested range.
func (d *DataSource) Reload(ctx context.Context) error {
	query, ok := d.LastQuery()
	if !ok {
		return ErrDateRangeRequired
	}
	start, _ := time.Parse(DateLayout, query.StartDate)
	end, _ := time.Parse(DateLayout, query.EndDate)
	return d.Load(ctx, query.Business, start, end)
}

// Rows returns a copy of the loaded rows.
func (d *DataSource) Rows() []Sale {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Sale(nil), d.rows...)
}

// Lookup finds a loaded row by id.
func (d *DataSource) Lookup(id int64) (Sale, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, row := range d.rows {
		if row.ID == id {
			return row, true
		}
	}
	return Sale{}, false
}

// Remove drops rows by id and returns how many were removed.
func (d *DataSource) Remove(ids []int64) int {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.rows[:0:0]
	for _, row := range d.rows {
		if _, ok := drop[row.ID]; ok {
			continue
		}
		kept = append(kept, row)
	}
	removed := len(d.rows) - len(kept)
	d.rows = kept
	return removed
}

// Loading reports whether a load is in flight.
func (d *DataSource) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pending > 0
}

// Err returns the error of the last load, if any.
func (d *DataSource) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

// LastQuery returns the most recently requested query.
func (d *DataSource) LastQuery() (SalesQuery, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.query, d.hasLoad
}

func buildQuery(business string, start, end time.Time) (SalesQuery, error) {
	business = strings.TrimSpace(business)
	if business == "" {
		return SalesQuery{}, ErrMissingSession
	}
	if start.IsZero() || end.IsZero() {
		return SalesQuery{}, ErrDateRangeRequired
	}
	if truncateDay(start).After(truncateDay(end)) {
		return SalesQuery{}, ErrInvalidDateRange
	}
	return SalesQuery{
		Business:  business,
		StartDate: FormatDate(start),
		EndDate:   FormatDate(end),
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
