package sales

import (
	"context"
	"fmt"
	"slices"
)

// BulkDeleter removes a batch of rows remotely and reconciles local state.
// The backend reports success or failure for the whole batch only.
type BulkDeleter struct {
	backend   SalesDeleter
	source    *DataSource
	selection *Selection
}

// NewBulkDeleter wires the coordinator to the rows and selection it reconciles.
func NewBulkDeleter(backend SalesDeleter, source *DataSource, selection *Selection) *BulkDeleter {
	return &BulkDeleter{backend: backend, source: source, selection: selection}
}

// Delete sends ids in a single request. On success the rows are removed
// locally and the selection is cleared; on failure nothing changes.
func (b *BulkDeleter) Delete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	if b.backend == nil {
		return 0, fmt.Errorf("sales: bulk delete requires a backend")
	}
	batch := slices.Clone(ids)
	slices.Sort(batch)
	batch = slices.Compact(batch)
	if err := b.backend.DeleteSales(ctx, batch); err != nil {
		return 0, fmt.Errorf("sales: delete %d rows: %w", len(batch), err)
	}
	removed := 0
	if b.source != nil {
		removed = b.source.Remove(batch)
	}
	if b.selection != nil {
		b.selection.Clear()
	}
	return removed, nil
}
