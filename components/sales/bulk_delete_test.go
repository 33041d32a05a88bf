package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedSource(t *testing.T, backend *stubBackend) *DataSource {
	t.Helper()
	source := NewDataSource(backend)
	require.NoError(t, source.Load(context.Background(), "Gaviota", day("2024-05-01"), day("2024-05-02")))
	return source
}

func TestBulkDeleterSendsOneBatch(t *testing.T) {
	backend := &stubBackend{rows: makeSales(5)}
	source := loadedSource(t, backend)
	sel := NewSelection()
	sel.ToggleAll([]int64{2, 4})

	removed, err := NewBulkDeleter(backend, source, sel).Delete(context.Background(), []int64{4, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, [][]int64{{2, 4}}, backend.deleted)
	assert.Equal(t, []int64{1, 3, 5}, ids(source.Rows()))
	assert.Zero(t, sel.Count())
}

func TestBulkDeleterEmptySelection(t *testing.T) {
	backend := &stubBackend{}
	_, err := NewBulkDeleter(backend, nil, nil).Delete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Empty(t, backend.deleted)
}

func TestBulkDeleterFailureLeavesStateUntouched(t *testing.T) {
	backend := &stubBackend{rows: makeSales(3)}
	source := loadedSource(t, backend)
	sel := NewSelection()
	sel.ToggleRow(1)
	backend.deleteErr = &RemoteError{Status: 500, Message: "boom"}

	_, err := NewBulkDeleter(backend, source, sel).Delete(context.Background(), []int64{1})
	require.Error(t, err)
	var remote *RemoteError
	assert.ErrorAs(t, err, &remote)
	assert.Len(t, source.Rows(), 3)
	assert.True(t, sel.IsSelected(1))
}
