package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// LoadSalesInput asks for a date range; both dates empty reloads the last range.
type LoadSalesInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Actor
}

type loadService interface {
	Load(ctx context.Context, start, end time.Time) error
	Refresh(ctx context.Context) error
}

// LoadSalesCommand wraps Grid.Load.
type LoadSalesCommand struct {
	service   loadService
	telemetry Telemetry
}

// NewLoadSalesCommand creates the command.
func NewLoadSalesCommand(service loadService, telemetry Telemetry) *LoadSalesCommand {
	return &LoadSalesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoadSalesInput] = (*LoadSalesCommand)(nil)

// Execute parses the dates and loads the range.
func (c *LoadSalesCommand) Execute(ctx context.Context, msg LoadSalesInput) error {
	if c.service == nil {
		return errors.New("load command requires service")
	}
	ctx = msg.Actor.withActivity(ctx)
	startText, endText := strings.TrimSpace(msg.StartDate), strings.TrimSpace(msg.EndDate)
	if startText == "" && endText == "" {
		if err := c.service.Refresh(ctx); err != nil {
			return err
		}
		c.telemetry.Record(ctx, "sales.command.refresh", nil)
		return nil
	}
	if startText == "" || endText == "" {
		return sales.ErrDateRangeRequired
	}
	start, err := time.Parse(sales.DateLayout, startText)
	if err != nil {
		return fmt.Errorf("%w: start date %q", sales.ErrInvalidDateRange, startText)
	}
	end, err := time.Parse(sales.DateLayout, endText)
	if err != nil {
		return fmt.Errorf("%w: end date %q", sales.ErrInvalidDateRange, endText)
	}
	if err := c.service.Load(ctx, start, end); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "sales.command.load", map[string]any{
		"start_date": startText,
		"end_date":   endText,
	})
	return nil
}
