package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// SummaryInput selects the dashboard window ("7d", "15d", "30d").
type SummaryInput struct {
	Window sales.Window `json:"window"`
}

type summaryService interface {
	Summary(ctx context.Context, window sales.Window) (sales.DashboardSummary, error)
}

// SummaryQuery resolves the paid/unpaid overview and chart.
type SummaryQuery struct {
	service summaryService
}

// NewSummaryQuery builds the query.
func NewSummaryQuery(service summaryService) *SummaryQuery {
	return &SummaryQuery{service: service}
}

var _ gocommand.Querier[SummaryInput, sales.DashboardSummary] = (*SummaryQuery)(nil)

// Query aggregates the requested window.
func (q *SummaryQuery) Query(ctx context.Context, input SummaryInput) (sales.DashboardSummary, error) {
	if q.service == nil {
		return sales.DashboardSummary{}, errors.New("summary query requires service")
	}
	return q.service.Summary(ctx, input.Window)
}
