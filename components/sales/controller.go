package sales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// DefaultPageTemplate is the embedded template used by the controller.
const DefaultPageTemplate = "sales_grid"

// Renderer describes the template renderer contract needed by the controller.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Grid     *Grid
	Renderer Renderer
	Template string
	Title    string
}

// Controller renders the sales grid page.
type Controller struct {
	grid     *Grid
	renderer Renderer
	template string
	title    string
}

// NewController builds a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = DefaultPageTemplate
	}
	title := opts.Title
	if title == "" {
		title = "Ventas"
	}
	return &Controller{grid: opts.Grid, renderer: opts.Renderer, template: template, title: title}
}

// ViewPayload returns the JSON view of the grid.
func (c *Controller) ViewPayload(ctx context.Context) (GridView, error) {
	if c.grid == nil {
		return GridView{}, errors.New("sales: controller requires a grid")
	}
	return c.grid.View(ctx), nil
}

// RenderPage renders the HTML page into out.
func (c *Controller) RenderPage(ctx context.Context, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("sales: controller requires a renderer")
	}
	data, err := c.PagePayload(ctx)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(c.template, data, out); err != nil {
		return fmt.Errorf("sales: render %s: %w", c.template, err)
	}
	return nil
}

// PagePayload flattens the grid view into template-friendly maps.
func (c *Controller) PagePayload(ctx context.Context) (map[string]any, error) {
	view, err := c.ViewPayload(ctx)
	if err != nil {
		return nil, err
	}
	dataColumns := c.grid.Columns().Data()

	headers := make([]map[string]any, 0, len(view.Columns))
	for _, col := range view.Columns {
		headers = append(headers, map[string]any{
			"key":       col.Key,
			"label":     col.Label,
			"sortable":  col.Sortable,
			"indicator": col.Indicator,
			"select":    col.Key == ColumnSelect,
			"actions":   col.Key == ColumnActions,
		})
	}

	rows := make([]map[string]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]string, len(dataColumns))
		for i, col := range dataColumns {
			cells[i] = col.Text(row)
		}
		rows = append(rows, map[string]any{
			"id":       strconv.FormatInt(row.ID, 10),
			"selected": view.RowSelected[row.ID],
			"cells":    cells,
		})
	}

	filterable := make([]map[string]any, 0)
	for _, col := range c.grid.Columns().Filterable() {
		filterable = append(filterable, map[string]any{
			"key":    col.Key,
			"label":  col.Label,
			"active": col.Key == view.Filter.Column,
		})
	}

	return map[string]any{
		"title":          c.title,
		"headers":        headers,
		"rows":           rows,
		"filter_columns": filterable,
		"filter_text":    view.Filter.Text,
		"page_number":    strconv.Itoa(view.PageIndex + 1),
		"page_count":     strconv.Itoa(max(view.PageCount, 1)),
		"can_previous":   view.CanPrevious,
		"can_next":       view.CanNext,
		"total":          strconv.Itoa(view.Total),
		"filtered":       strconv.Itoa(view.Filtered),
		"selected_count": strconv.Itoa(view.SelectedCount),
		"has_selection":  view.SelectedCount > 0,
		"header_state":   string(view.Header),
		"loading":        view.Loading,
		"error":          view.Error,
		"start_date":     view.Range.StartDate,
		"end_date":       view.Range.EndDate,
		"dialog_state":   string(view.Dialog.State),
		"dialog_error":   view.Dialog.Error,
	}, nil
}
