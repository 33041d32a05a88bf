package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// GridOptions configures a Grid.
type GridOptions struct {
	Backend     Backend
	Session     SessionSource
	Columns     Columns
	PageSize    int
	SortMode    SortMode
	Validator   InputValidator
	Telemetry   Telemetry
	RefreshHook RefreshHook
	Translator  TranslationService
	Locale      string
	Now         func() time.Time
}

// Grid owns the loaded rows and the view state (filter, sort, page,
// selection, dialog) of the sales table.
type Grid struct {
	columns    Columns
	session    SessionSource
	source     *DataSource
	selection  *Selection
	deleter    *BulkDeleter
	dialog     *EditDialog
	telemetry  Telemetry
	hook       RefreshHook
	translator TranslationService
	locale     string
	now        func() time.Time
	sortMode   SortMode

	mu     sync.Mutex
	filter FilterState
	sort   SortState
	pager  *Pager
}

// GridView is the derived, render-ready state of the grid.
type GridView struct {
	Columns       []ColumnView   `json:"columns"`
	Rows          []Sale         `json:"rows"`
	Filter        FilterState    `json:"filter"`
	Sort          SortState      `json:"sort"`
	PageIndex     int            `json:"page_index"`
	PageSize      int            `json:"page_size"`
	PageCount     int            `json:"page_count"`
	CanPrevious   bool           `json:"can_previous"`
	CanNext       bool           `json:"can_next"`
	Total         int            `json:"total"`
	Filtered      int            `json:"filtered"`
	Selected      []int64        `json:"selected"`
	SelectedCount int            `json:"selected_count"`
	Header        HeaderState    `json:"header"`
	Loading       bool           `json:"loading"`
	Error         string         `json:"error,omitempty"`
	Range         SalesQuery     `json:"range"`
	Dialog        DialogView     `json:"dialog"`
	RowSelected   map[int64]bool `json:"-"`
}

// ColumnView is a column header as rendered.
type ColumnView struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Sortable   bool   `json:"sortable"`
	Filterable bool   `json:"filterable"`
	Indicator  string `json:"indicator,omitempty"`
}

// NewGrid wires the grid components around backend.
func NewGrid(opts GridOptions) *Grid {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	session := opts.Session
	if session == nil {
		session = Session{}
	}
	hook := opts.RefreshHook
	if hook == nil {
		hook = noopRefreshHook{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	locale := opts.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	validator := opts.Validator
	if validator == nil {
		validator = NewJSONSchemaValidator()
	}

	g := &Grid{
		columns:    columns,
		session:    session,
		source:     NewDataSource(opts.Backend),
		selection:  NewSelection(),
		telemetry:  normalizeTelemetry(opts.Telemetry),
		hook:       hook,
		translator: opts.Translator,
		locale:     locale,
		now:        now,
		sortMode:   opts.SortMode,
		filter:     FilterState{Column: DefaultFilterColumn},
		pager:      NewPager(opts.PageSize),
	}
	if _, ok := columns.Lookup(DefaultFilterColumn); !ok {
		if filterable := columns.Filterable(); len(filterable) > 0 {
			g.filter.Column = filterable[0].Key
		}
	}
	g.deleter = NewBulkDeleter(opts.Backend, g.source, g.selection)
	g.dialog = NewEditDialog(EditDialogOptions{
		Writer:    opts.Backend,
		Validator: validator,
		Session:   session,
		Reload:    g.Refresh,
	})
	return g
}

// Columns returns the configured columns.
func (g *Grid) Columns() Columns { return g.columns }

// Load fetches the given range for the session business. The page index
// resets to the first page only when the load completes.
func (g *Grid) Load(ctx context.Context, start, end time.Time) error {
	session := g.session.Current()
	if err := session.Require(); err != nil {
		g.source.Fail(err)
		return err
	}
	err := g.source.Load(ctx, session.Business, start, end)
	if errors.Is(err, ErrStaleLoad) {
		return nil
	}
	if err != nil {
		g.telemetry.Record(ctx, "sales.grid.load_failed", map[string]any{
			"business": session.Business,
			"error":    err.Error(),
		})
		return err
	}
	rows := g.source.Rows()
	g.mu.Lock()
	g.pager.Reset()
	g.mu.Unlock()
	g.selection.Prune(rowIDs(rows))

	query, _ := g.source.LastQuery()
	g.telemetry.Record(ctx, "sales.grid.load", map[string]any{
		"business":   session.Business,
		"start_date": query.StartDate,
		"end_date":   query.EndDate,
		"rows":       len(rows),
	})
	g.publish(ctx, GridEvent{Type: EventLoaded, Business: session.Business, Count: len(rows)})
	return nil
}

// Refresh reloads the last requested range, or the default range when
// nothing was loaded yet.
func (g *Grid) Refresh(ctx context.Context) error {
	if query, ok := g.source.LastQuery(); ok {
		start, errStart := time.Parse(DateLayout, query.StartDate)
		end, errEnd := time.Parse(DateLayout, query.EndDate)
		if errStart == nil && errEnd == nil {
			return g.Load(ctx, start, end)
		}
	}
	start, end := DefaultRange(g.now())
	return g.Load(ctx, start, end)
}

// SetFilterColumn picks the filter column and clears the filter text.
func (g *Grid) SetFilterColumn(key string) error {
	col, ok := g.columns.Lookup(key)
	if !ok || !col.Filterable || col.Value == nil {
		return fmt.Errorf("%w: %q is not filterable", ErrUnknownColumn, key)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.filter.Column != col.Key {
		g.filter = FilterState{Column: col.Key}
	}
	return nil
}

// SetFilterText updates the filter text for the current column.
func (g *Grid) SetFilterText(text string) {
	g.mu.Lock()
	g.filter.Text = text
	g.mu.Unlock()
}

// ToggleSort cycles the direction of key, replacing any other sort column.
func (g *Grid) ToggleSort(key string) (SortState, error) {
	col, ok := g.columns.Lookup(key)
	if !ok || !col.Sortable || col.Value == nil {
		return SortState{}, fmt.Errorf("%w: %q is not sortable", ErrUnknownColumn, key)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	current := SortNone
	if g.sort.Column == col.Key {
		current = g.sort.Direction
	}
	next := g.sortMode.Next(current)
	if next == SortNone {
		g.sort = SortState{}
	} else {
		g.sort = SortState{Column: col.Key, Direction: next}
	}
	return g.sort, nil
}

// SetSort applies an explicit sort; SortNone clears it.
func (g *Grid) SetSort(key string, direction SortDirection) error {
	if direction == SortNone {
		g.mu.Lock()
		g.sort = SortState{}
		g.mu.Unlock()
		return nil
	}
	col, ok := g.columns.Lookup(key)
	if !ok || !col.Sortable || col.Value == nil {
		return fmt.Errorf("%w: %q is not sortable", ErrUnknownColumn, key)
	}
	if direction != SortAsc && direction != SortDesc {
		return fmt.Errorf("sales: unknown sort direction %q", direction)
	}
	g.mu.Lock()
	g.sort = SortState{Column: col.Key, Direction: direction}
	g.mu.Unlock()
	return nil
}

// ToggleRow flips the selection of one loaded row.
func (g *Grid) ToggleRow(ctx context.Context, id int64) (bool, error) {
	if _, ok := g.source.Lookup(id); !ok {
		return false, fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	selected := g.selection.ToggleRow(id)
	g.publish(ctx, GridEvent{Type: EventSelected, IDs: []int64{id}, Count: g.selection.Count()})
	return selected, nil
}

// ToggleAllOnPage applies select-all to the rows of the current page.
func (g *Grid) ToggleAllOnPage(ctx context.Context) {
	page := g.currentPage()
	g.selection.ToggleAll(rowIDs(page))
	g.publish(ctx, GridEvent{Type: EventSelected, Count: g.selection.Count()})
}

// ClearSelection drops every selected id.
func (g *Grid) ClearSelection() {
	g.selection.Clear()
}

// DeleteSelected removes the selected rows through the backend.
func (g *Grid) DeleteSelected(ctx context.Context) (int, error) {
	return g.DeleteIDs(ctx, g.selection.IDs())
}

// DeleteIDs removes the given rows through the backend.
func (g *Grid) DeleteIDs(ctx context.Context, ids []int64) (int, error) {
	removed, err := g.deleter.Delete(ctx, ids)
	if err != nil {
		if !errors.Is(err, ErrEmptySelection) {
			g.telemetry.Record(ctx, "sales.grid.delete_failed", map[string]any{
				"ids":   ids,
				"error": err.Error(),
			})
		}
		return 0, err
	}
	g.telemetry.Record(ctx, "sales.grid.delete", map[string]any{
		"ids":     ids,
		"removed": removed,
	})
	g.publish(ctx, GridEvent{Type: EventDeleted, Business: g.session.Current().Business, IDs: ids, Count: removed})
	return removed, nil
}

// NextPage advances one page when possible.
func (g *Grid) NextPage() bool {
	filtered := len(g.filteredSorted())
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pager.Clamp(filtered)
	return g.pager.Next(filtered)
}

// PreviousPage goes back one page when possible.
func (g *Grid) PreviousPage() bool {
	filtered := len(g.filteredSorted())
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pager.Clamp(filtered)
	return g.pager.Previous()
}

// OpenEdit opens the edit dialog for a loaded row.
func (g *Grid) OpenEdit(id int64) error {
	row, ok := g.source.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	return g.dialog.OpenEdit(row)
}

// OpenCreate opens the dialog in create mode.
func (g *Grid) OpenCreate() error {
	return g.dialog.OpenCreate()
}

// SubmitEdit submits the open dialog; success reloads the current range.
func (g *Grid) SubmitEdit(ctx context.Context, input SaleInput) error {
	err := g.dialog.Submit(ctx, input)
	if err != nil {
		return err
	}
	g.telemetry.Record(ctx, "sales.grid.save", map[string]any{"id": input.ID})
	g.publish(ctx, GridEvent{Type: EventSaved, Business: g.session.Current().Business, IDs: []int64{input.ID}, Count: 1})
	return nil
}

// CancelEdit closes the dialog.
func (g *Grid) CancelEdit() error {
	return g.dialog.Cancel()
}

// Rows returns every loaded row, unfiltered.
func (g *Grid) Rows() []Sale {
	return g.source.Rows()
}

// FilteredRows returns every row matching the filter, sorted, across pages.
func (g *Grid) FilteredRows() []Sale {
	return g.filteredSorted()
}

// View derives the render-ready state. Selected ids no longer present in the
// rows are pruned and the page index is clamped to the filtered row count.
func (g *Grid) View(ctx context.Context) GridView {
	rows := g.source.Rows()
	g.selection.Prune(rowIDs(rows))

	g.mu.Lock()
	filter, sortState := g.filter, g.sort
	visible := g.applyLocked(rows)
	g.pager.Clamp(len(visible))
	page := g.pager.Page(visible)
	view := GridView{
		Columns:     g.columnViews(sortState),
		Rows:        page,
		Filter:      filter,
		Sort:        sortState,
		PageIndex:   g.pager.Index(),
		PageSize:    g.pager.Size(),
		PageCount:   g.pager.PageCount(len(visible)),
		CanPrevious: g.pager.CanPrevious(),
		CanNext:     g.pager.CanNext(len(visible)),
		Total:       len(rows),
		Filtered:    len(visible),
	}
	g.mu.Unlock()

	pageIDs := rowIDs(page)
	view.Selected = g.selection.IDs()
	view.SelectedCount = len(view.Selected)
	view.Header = g.selection.HeaderState(pageIDs)
	view.RowSelected = make(map[int64]bool, len(pageIDs))
	for _, id := range pageIDs {
		view.RowSelected[id] = g.selection.IsSelected(id)
	}
	view.Loading = g.source.Loading()
	if err := g.source.Err(); err != nil {
		view.Error = Notice(ctx, g.translator, OpLoad, g.locale, err)
	}
	view.Range, _ = g.source.LastQuery()
	dialog, dialogErr := g.dialog.Snapshot()
	if dialogErr != nil {
		op := OpUpdate
		if dialog.Mode == "create" {
			op = OpCreate
		}
		dialog.Error = Notice(ctx, g.translator, op, g.locale, dialogErr)
	}
	view.Dialog = dialog
	return view
}

func (g *Grid) currentPage() []Sale {
	rows := g.source.Rows()
	g.mu.Lock()
	defer g.mu.Unlock()
	visible := g.applyLocked(rows)
	g.pager.Clamp(len(visible))
	return g.pager.Page(visible)
}

func (g *Grid) filteredSorted() []Sale {
	rows := g.source.Rows()
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applyLocked(rows)
}

func (g *Grid) applyLocked(rows []Sale) []Sale {
	if col, ok := g.columns.Lookup(g.filter.Column); ok {
		rows = ApplyFilter(rows, col, g.filter.Text)
	}
	if col, ok := g.columns.Lookup(g.sort.Column); ok {
		rows = ApplySort(rows, col, g.sort.Direction)
	}
	return rows
}

func (g *Grid) columnViews(sortState SortState) []ColumnView {
	out := make([]ColumnView, 0, len(g.columns))
	for _, col := range g.columns {
		view := ColumnView{
			Key:        col.Key,
			Label:      col.Label,
			Sortable:   col.Sortable && col.Value != nil,
			Filterable: col.Filterable && col.Value != nil,
		}
		if view.Sortable {
			direction := SortNone
			if sortState.Column == col.Key {
				direction = sortState.Direction
			}
			view.Indicator = direction.Indicator()
		}
		out = append(out, view)
	}
	return out
}

func (g *Grid) publish(ctx context.Context, event GridEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = g.now()
	}
	if err := g.hook.GridChanged(ctx, event); err != nil {
		g.telemetry.Record(ctx, "sales.grid.hook_failed", map[string]any{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

func rowIDs(rows []Sale) []int64 {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}
