package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DialogState is the lifecycle of the create/edit dialog.
type DialogState string

const (
	DialogClosed     DialogState = "closed"
	DialogOpen       DialogState = "open"
	DialogSubmitting DialogState = "submitting"
)

// DialogView is a snapshot of the dialog for rendering.
type DialogView struct {
	State DialogState `json:"state"`
	Mode  string      `json:"mode,omitempty"`
	Input SaleInput   `json:"input"`
	Error string      `json:"error,omitempty"`
}

// EditDialog drives Closed -> Open -> Submitting -> Closed, falling back to
// Open with an error when the submission fails. A successful submission
// triggers the reload callback.
type EditDialog struct {
	writer    SaleWriter
	validator InputValidator
	session   SessionSource
	reload    func(context.Context) error

	mu    sync.Mutex
	state DialogState
	input SaleInput
	err   error
}

// EditDialogOptions configures an EditDialog.
type EditDialogOptions struct {
	Writer    SaleWriter
	Validator InputValidator
	Session   SessionSource
	Reload    func(context.Context) error
}

// NewEditDialog builds a closed dialog.
func NewEditDialog(opts EditDialogOptions) *EditDialog {
	validator := opts.Validator
	if validator == nil {
		validator = noopInputValidator{}
	}
	session := opts.Session
	if session == nil {
		session = Session{}
	}
	return &EditDialog{
		writer:    opts.Writer,
		validator: validator,
		session:   session,
		reload:    opts.Reload,
		state:     DialogClosed,
	}
}

// OpenEdit opens the dialog pre-filled from row.
func (d *EditDialog) OpenEdit(row Sale) error {
	return d.open(InputFromSale(row))
}

// OpenCreate opens an empty dialog with one blank passenger.
func (d *EditDialog) OpenCreate() error {
	return d.open(SaleInput{Passengers: []PassengerInput{{}}, Payed: true, Payment: PaymentCash})
}

func (d *EditDialog) open(input SaleInput) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogSubmitting {
		return ErrDialogBusy
	}
	d.state = DialogOpen
	d.input = input
	d.err = nil
	return nil
}

// Cancel closes the dialog unless a submission is in flight.
func (d *EditDialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == DialogSubmitting {
		return ErrDialogBusy
	}
	d.state = DialogClosed
	d.input = SaleInput{}
	d.err = nil
	return nil
}

// Submit validates and sends the form. The id of the row being edited always
// wins over the id in input.
func (d *EditDialog) Submit(ctx context.Context, input SaleInput) error {
	d.mu.Lock()
	switch d.state {
	case DialogClosed:
		d.mu.Unlock()
		return ErrDialogClosed
	case DialogSubmitting:
		d.mu.Unlock()
		return ErrDialogBusy
	}
	input.ID = d.input.ID
	session := d.session.Current()
	input.Business = session.Business
	input.SellerEmail = session.Email
	input = input.Normalize()
	d.input = input
	if err := session.Require(); err != nil {
		d.err = err
		d.mu.Unlock()
		return err
	}
	if err := d.validator.ValidateInput(input); err != nil {
		d.err = err
		d.mu.Unlock()
		return err
	}
	if d.writer == nil {
		d.mu.Unlock()
		return fmt.Errorf("sales: edit dialog requires a writer")
	}
	d.state = DialogSubmitting
	d.err = nil
	d.mu.Unlock()

	var err error
	if input.ID == 0 {
		err = d.writer.CreateSale(ctx, input)
	} else {
		err = d.writer.UpdateSale(ctx, input)
	}

	d.mu.Lock()
	if err != nil {
		d.state = DialogOpen
		d.err = fmt.Errorf("sales: save sale: %w", err)
		d.mu.Unlock()
		return d.err
	}
	d.state = DialogClosed
	d.input = SaleInput{}
	d.mu.Unlock()

	if d.reload != nil {
		if err := d.reload(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
			return fmt.Errorf("sales: reload after save: %w", err)
		}
	}
	return nil
}

// State returns the current state.
func (d *EditDialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err returns the error shown in the dialog, if any.
func (d *EditDialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Snapshot captures the dialog for rendering; err is localized by the caller.
func (d *EditDialog) Snapshot() (DialogView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	view := DialogView{State: d.state, Input: d.input}
	if d.state != DialogClosed {
		view.Mode = "create"
		if d.input.ID != 0 {
			view.Mode = "edit"
		}
	}
	return view, d.err
}
