package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// SaveSaleInput carries the sale form.
type SaveSaleInput struct {
	ID   int64           `json:"id"`
	Sale sales.SaleInput `json:"sale"`
	Actor
}

type saveService interface {
	OpenEdit(id int64) error
	OpenCreate() error
	SubmitEdit(ctx context.Context, input sales.SaleInput) error
}

// UpdateSaleCommand opens the edit dialog on a loaded row and submits it.
type UpdateSaleCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewUpdateSaleCommand creates the command.
func NewUpdateSaleCommand(service saveService, telemetry Telemetry) *UpdateSaleCommand {
	return &UpdateSaleCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveSaleInput] = (*UpdateSaleCommand)(nil)

// Execute updates the row keyed by msg.ID.
func (c *UpdateSaleCommand) Execute(ctx context.Context, msg SaveSaleInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.ID == 0 {
		return fmt.Errorf("%w: update requires a sale id", sales.ErrInvalidInput)
	}
	ctx = msg.Actor.withActivity(ctx)
	if err := c.service.OpenEdit(msg.ID); err != nil {
		return err
	}
	if err := c.service.SubmitEdit(ctx, msg.Sale); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "sales.command.update", map[string]any{"id": msg.ID})
	return nil
}

// CreateSaleCommand opens the dialog in create mode and submits it.
type CreateSaleCommand struct {
	service   saveService
	telemetry Telemetry
}

// NewCreateSaleCommand creates the command.
func NewCreateSaleCommand(service saveService, telemetry Telemetry) *CreateSaleCommand {
	return &CreateSaleCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveSaleInput] = (*CreateSaleCommand)(nil)

// Execute creates a sale; msg.ID is ignored.
func (c *CreateSaleCommand) Execute(ctx context.Context, msg SaveSaleInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	ctx = msg.Actor.withActivity(ctx)
	if err := c.service.OpenCreate(); err != nil {
		return err
	}
	if err := c.service.SubmitEdit(ctx, msg.Sale); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "sales.command.create", map[string]any{
		"passengers": len(msg.Sale.Passengers),
	})
	return nil
}
