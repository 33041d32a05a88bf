package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/commands"
)

type salesCmd struct {
	List   listCmd   `cmd:"" default:"withargs" help:"List sales in a date range."`
	Delete deleteCmd `cmd:"" help:"Delete sales by id."`
	Create createCmd `cmd:"" help:"Record a new sale."`
	Edit   editCmd   `cmd:"" help:"Update an existing sale."`
}

// RangeFlags selects the loaded date range.
type RangeFlags struct {
	Start string `help:"First day (YYYY-MM-DD); defaults to five days ago."`
	End   string `help:"Last day (YYYY-MM-DD); defaults to five days ahead."`
}

func (r RangeFlags) load(ctx context.Context, a *app, grid *sales.Grid) error {
	input := commands.LoadSalesInput{StartDate: r.Start, EndDate: r.End, Actor: a.actor()}
	if err := commands.NewLoadSalesCommand(grid, a.telemetry).Execute(ctx, input); err != nil {
		return a.notice(sales.OpLoad, err)
	}
	return nil
}

type listCmd struct {
	RangeFlags `embed:""`

	FilterColumn string `name:"filter-column" default:"name" help:"Column the filter applies to."`
	Filter       string `help:"Case-sensitive substring filter."`
	Sort         string `help:"Column to sort by."`
	Desc         bool   `help:"Sort descending."`
	Page         int    `default:"1" help:"Page to show (1-based)."`
	All          bool   `help:"Show every filtered row instead of one page."`
	JSON         bool   `name:"json" help:"Print JSON instead of a table."`
}

func (cmd *listCmd) Run(a *app) error {
	ctx := context.Background()
	grid, err := a.grid()
	if err != nil {
		return err
	}
	if err := cmd.load(ctx, a, grid); err != nil {
		return err
	}
	if cmd.Filter != "" {
		filter := commands.SetFilterInput{Column: cmd.FilterColumn, Text: cmd.Filter}
		if err := commands.NewSetFilterCommand(grid).Execute(ctx, filter); err != nil {
			return err
		}
	}
	if cmd.Sort != "" {
		direction := sales.SortAsc
		if cmd.Desc {
			direction = sales.SortDesc
		}
		if err := commands.NewSortCommand(grid).Execute(ctx, commands.SortInput{Column: cmd.Sort, Direction: direction}); err != nil {
			return err
		}
	}
	pager := commands.NewChangePageCommand(grid)
	for i := 1; i < cmd.Page; i++ {
		if err := pager.Execute(ctx, commands.ChangePageInput{Direction: commands.PageNext}); err != nil {
			return err
		}
	}

	view := grid.View(ctx)
	rows := view.Rows
	if cmd.All {
		rows = grid.FilteredRows()
	}
	if cmd.JSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	fmt.Fprintln(a.out, renderSalesTable(grid.Columns().Data(), rows, isTTY(a.out)))
	if !cmd.All {
		fmt.Fprintf(a.out, "Página %d de %d · %d de %d ventas\n", view.PageIndex+1, max(view.PageCount, 1), view.Filtered, view.Total)
	}
	return nil
}

type deleteCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Sale ids to delete."`
}

func (cmd *deleteCmd) Run(a *app) error {
	ctx := context.Background()
	grid, err := a.grid()
	if err != nil {
		return err
	}
	input := commands.DeleteSalesInput{IDs: cmd.IDs, Actor: a.actor()}
	if err := commands.NewDeleteSalesCommand(grid, a.telemetry).Execute(ctx, input); err != nil {
		return a.notice(sales.OpDelete, err)
	}
	fmt.Fprintln(a.out, "✓ "+sales.SuccessNotice(sales.OpDelete, a.cfg.Grid.Locale))
	return nil
}

// SaleFlags are the editable sale fields.
type SaleFlags struct {
	Passenger    []string `short:"p" help:"Passenger as name[:age]; repeat for each passenger."`
	Price        string   `help:"Price per passenger."`
	Route        string   `help:"Route, e.g. \"Santa Cruz - Isabela\"."`
	Time         string   `help:"Departure (7 or 15)."`
	Ferry        string   `help:"Ferry name."`
	Intermediary string   `help:"Selling agency."`
	Date         string   `help:"Travel day (YYYY-MM-DD)."`
	Phone        string   `help:"Contact phone."`
	Mail         string   `help:"Contact email."`
	Status       string   `help:"Booking status."`
	Payed        string   `help:"Whether the sale is paid (si or no)."`
	Payment      string   `help:"Payment method (efectivo or credito)."`
}

// apply overlays the flags that were set onto input.
func (f SaleFlags) apply(input sales.SaleInput) (sales.SaleInput, error) {
	if len(f.Passenger) > 0 {
		passengers, err := parsePassengers(f.Passenger)
		if err != nil {
			return input, err
		}
		input.Passengers = passengers
	}
	if f.Price != "" {
		price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
		if err != nil {
			return input, fmt.Errorf("ferryctl: price %q must be a number", f.Price)
		}
		input.Price = price
	}
	switch strings.ToLower(strings.TrimSpace(f.Payed)) {
	case "":
	case "si", "sí", "yes", "true":
		input.Payed = true
	case "no", "false":
		input.Payed = false
	default:
		return input, fmt.Errorf("ferryctl: payed must be si or no, got %q", f.Payed)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&input.Route, f.Route)
	set(&input.Time, f.Time)
	set(&input.Ferry, f.Ferry)
	set(&input.Intermediary, f.Intermediary)
	set(&input.Date, f.Date)
	set(&input.Phone, f.Phone)
	set(&input.Mail, f.Mail)
	set(&input.Status, f.Status)
	set(&input.Payment, f.Payment)
	return input, nil
}

func parsePassengers(values []string) ([]sales.PassengerInput, error) {
	out := make([]sales.PassengerInput, 0, len(values))
	for _, value := range values {
		name, rawAge, hasAge := strings.Cut(value, ":")
		passenger := sales.PassengerInput{Name: strings.TrimSpace(name)}
		if hasAge {
			age, err := strconv.Atoi(strings.TrimSpace(rawAge))
			if err != nil {
				return nil, fmt.Errorf("ferryctl: passenger %q: age must be a number", value)
			}
			passenger.Age = age
		}
		out = append(out, passenger)
	}
	return out, nil
}

type createCmd struct {
	SaleFlags `embed:""`
}

func (cmd *createCmd) Run(a *app) error {
	ctx := context.Background()
	grid, err := a.grid()
	if err != nil {
		return err
	}
	input, err := cmd.apply(sales.SaleInput{Payed: true, Payment: sales.PaymentCash})
	if err != nil {
		return err
	}
	msg := commands.SaveSaleInput{Sale: input, Actor: a.actor()}
	if err := commands.NewCreateSaleCommand(grid, a.telemetry).Execute(ctx, msg); err != nil {
		return a.notice(sales.OpCreate, err)
	}
	fmt.Fprintln(a.out, "✓ "+sales.SuccessNotice(sales.OpCreate, a.cfg.Grid.Locale))
	return nil
}

type editCmd struct {
	RangeFlags `embed:""`
	SaleFlags  `embed:""`

	ID int64 `arg:"" help:"Sale id."`
}

func (cmd *editCmd) Run(a *app) error {
	ctx := context.Background()
	grid, err := a.grid()
	if err != nil {
		return err
	}
	if err := cmd.load(ctx, a, grid); err != nil {
		return err
	}
	var current *sales.Sale
	for _, row := range grid.Rows() {
		if row.ID == cmd.ID {
			current = &row
			break
		}
	}
	if current == nil {
		return a.notice(sales.OpUpdate, fmt.Errorf("%w: sale %d is not in the loaded range", sales.ErrRowNotFound, cmd.ID))
	}
	input, err := cmd.apply(sales.InputFromSale(*current))
	if err != nil {
		return err
	}
	msg := commands.SaveSaleInput{ID: cmd.ID, Sale: input, Actor: a.actor()}
	if err := commands.NewUpdateSaleCommand(grid, a.telemetry).Execute(ctx, msg); err != nil {
		return a.notice(sales.OpUpdate, err)
	}
	fmt.Fprintln(a.out, "✓ "+sales.SuccessNotice(sales.OpUpdate, a.cfg.Grid.Locale))
	return nil
}
