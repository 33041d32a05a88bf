package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteSalesInput names the rows to delete; empty IDs deletes the selection.
type DeleteSalesInput struct {
	IDs []int64 `json:"ids"`
	Actor
}

type deleteService interface {
	DeleteSelected(ctx context.Context) (int, error)
	DeleteIDs(ctx context.Context, ids []int64) (int, error)
}

// DeleteSalesCommand wraps the grid bulk delete.
type DeleteSalesCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeleteSalesCommand builds a command instance.
func NewDeleteSalesCommand(service deleteService, telemetry Telemetry) *DeleteSalesCommand {
	return &DeleteSalesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteSalesInput] = (*DeleteSalesCommand)(nil)

// Execute removes the rows.
func (c *DeleteSalesCommand) Execute(ctx context.Context, msg DeleteSalesInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	ctx = msg.Actor.withActivity(ctx)
	var (
		removed int
		err     error
	)
	if len(msg.IDs) == 0 {
		removed, err = c.service.DeleteSelected(ctx)
	} else {
		removed, err = c.service.DeleteIDs(ctx, msg.IDs)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "sales.command.delete", map[string]any{
		"ids":     msg.IDs,
		"removed": removed,
	})
	return nil
}
