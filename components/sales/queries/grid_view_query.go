package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// GridViewInput is empty; the view is derived from grid state.
type GridViewInput struct{}

type viewService interface {
	View(ctx context.Context) sales.GridView
}

// GridViewQuery returns the render-ready grid state.
type GridViewQuery struct {
	service viewService
}

// NewGridViewQuery builds the query.
func NewGridViewQuery(service viewService) *GridViewQuery {
	return &GridViewQuery{service: service}
}

var _ gocommand.Querier[GridViewInput, sales.GridView] = (*GridViewQuery)(nil)

// Query derives the current view.
func (q *GridViewQuery) Query(ctx context.Context, _ GridViewInput) (sales.GridView, error) {
	if q.service == nil {
		return sales.GridView{}, errors.New("grid view query requires service")
	}
	return q.service.View(ctx), nil
}
