package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() SaleInput {
	return SaleInput{
		Passengers: []PassengerInput{{Name: "Ana", Age: 30}},
		Price:      30,
		Route:      "Santa Cruz - Isabela",
		Time:       TimeMorning,
		Ferry:      "Gaviota I",
		Date:       "2024-05-01",
		Payed:      true,
	}
}

func TestEditDialogSubmitWhenClosed(t *testing.T) {
	dialog := NewEditDialog(EditDialogOptions{Writer: &stubBackend{}, Session: testSession})
	assert.ErrorIs(t, dialog.Submit(context.Background(), validInput()), ErrDialogClosed)
}

func TestEditDialogUpdateUsesOpenedRowID(t *testing.T) {
	backend := &stubBackend{}
	reloads := 0
	dialog := NewEditDialog(EditDialogOptions{
		Writer:    backend,
		Validator: NewJSONSchemaValidator(),
		Session:   testSession,
		Reload: func(context.Context) error {
			reloads++
			return nil
		},
	})
	require.NoError(t, dialog.OpenEdit(Sale{ID: 12, Name: "Ana"}))
	assert.Equal(t, DialogOpen, dialog.State())

	input := validInput()
	input.ID = 99
	require.NoError(t, dialog.Submit(context.Background(), input))

	require.Len(t, backend.updated, 1)
	sent := backend.updated[0]
	assert.Equal(t, int64(12), sent.ID)
	assert.Equal(t, "Gaviota", sent.Business)
	assert.Equal(t, "seller@example.com", sent.SellerEmail)
	assert.Equal(t, PaymentCash, sent.Payment)
	assert.Empty(t, backend.created)
	assert.Equal(t, DialogClosed, dialog.State())
	assert.Equal(t, 1, reloads)
}

func TestEditDialogCreateForcesCreditWhenUnpaid(t *testing.T) {
	backend := &stubBackend{}
	dialog := NewEditDialog(EditDialogOptions{Writer: backend, Session: testSession})
	require.NoError(t, dialog.OpenCreate())

	input := validInput()
	input.Payed = false
	input.Payment = PaymentCash
	require.NoError(t, dialog.Submit(context.Background(), input))

	require.Len(t, backend.created, 1)
	assert.Zero(t, backend.created[0].ID)
	assert.Equal(t, PaymentCredit, backend.created[0].Payment)
}

func TestEditDialogValidationKeepsDialogOpen(t *testing.T) {
	backend := &stubBackend{}
	dialog := NewEditDialog(EditDialogOptions{Writer: backend, Validator: NewJSONSchemaValidator(), Session: testSession})
	require.NoError(t, dialog.OpenCreate())

	input := validInput()
	input.Passengers = []PassengerInput{{Name: "  "}}
	err := dialog.Submit(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, DialogOpen, dialog.State())
	assert.Empty(t, backend.created)

	view, viewErr := dialog.Snapshot()
	assert.Equal(t, "create", view.Mode)
	assert.ErrorIs(t, viewErr, ErrInvalidInput)
}

func TestEditDialogBackendFailureReturnsToOpen(t *testing.T) {
	backend := &stubBackend{saveErr: ErrTransport}
	reloaded := false
	dialog := NewEditDialog(EditDialogOptions{
		Writer:  backend,
		Session: testSession,
		Reload:  func(context.Context) error { reloaded = true; return nil },
	})
	require.NoError(t, dialog.OpenEdit(Sale{ID: 3}))

	err := dialog.Submit(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, DialogOpen, dialog.State())
	assert.ErrorIs(t, dialog.Err(), ErrTransport)
	assert.False(t, reloaded)
}

func TestEditDialogRequiresSession(t *testing.T) {
	dialog := NewEditDialog(EditDialogOptions{Writer: &stubBackend{}})
	require.NoError(t, dialog.OpenCreate())
	assert.ErrorIs(t, dialog.Submit(context.Background(), validInput()), ErrMissingSession)
}

type blockingWriter struct {
	started chan struct{}
	release chan error
}

func (b *blockingWriter) CreateSale(context.Context, SaleInput) error {
	close(b.started)
	return <-b.release
}

func (b *blockingWriter) UpdateSale(ctx context.Context, input SaleInput) error {
	return b.CreateSale(ctx, input)
}

func TestEditDialogBusyWhileSubmitting(t *testing.T) {
	writer := &blockingWriter{started: make(chan struct{}), release: make(chan error)}
	dialog := NewEditDialog(EditDialogOptions{Writer: writer, Session: testSession})
	require.NoError(t, dialog.OpenCreate())

	done := make(chan error, 1)
	go func() { done <- dialog.Submit(context.Background(), validInput()) }()
	<-writer.started

	assert.Equal(t, DialogSubmitting, dialog.State())
	assert.ErrorIs(t, dialog.Cancel(), ErrDialogBusy)
	assert.ErrorIs(t, dialog.Submit(context.Background(), validInput()), ErrDialogBusy)

	writer.release <- nil
	require.NoError(t, <-done)
	assert.Equal(t, DialogClosed, dialog.State())
}

func TestEditDialogIgnoresStaleReload(t *testing.T) {
	dialog := NewEditDialog(EditDialogOptions{
		Writer:  &stubBackend{},
		Session: testSession,
		Reload:  func(context.Context) error { return ErrStaleLoad },
	})
	require.NoError(t, dialog.OpenCreate())
	assert.NoError(t, dialog.Submit(context.Background(), validInput()))

	failing := NewEditDialog(EditDialogOptions{
		Writer:  &stubBackend{},
		Session: testSession,
		Reload:  func(context.Context) error { return errors.New("offline") },
	})
	require.NoError(t, failing.OpenCreate())
	assert.Error(t, failing.Submit(context.Background(), validInput()))
	assert.Equal(t, DialogClosed, failing.State(), "the save itself succeeded")
}
