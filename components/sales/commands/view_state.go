package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// SetFilterInput selects the filter column and text. An empty column keeps
// the current one.
type SetFilterInput struct {
	Column string `json:"column"`
	Text   string `json:"text"`
}

type filterService interface {
	SetFilterColumn(key string) error
	SetFilterText(text string)
}

// SetFilterCommand updates the grid filter.
type SetFilterCommand struct {
	service filterService
}

// NewSetFilterCommand creates the command.
func NewSetFilterCommand(service filterService) *SetFilterCommand {
	return &SetFilterCommand{service: service}
}

var _ gocommand.Commander[SetFilterInput] = (*SetFilterCommand)(nil)

func (c *SetFilterCommand) Execute(_ context.Context, msg SetFilterInput) error {
	if c.service == nil {
		return errors.New("filter command requires service")
	}
	if column := strings.TrimSpace(msg.Column); column != "" {
		if err := c.service.SetFilterColumn(column); err != nil {
			return err
		}
	}
	c.service.SetFilterText(msg.Text)
	return nil
}

// SortInput toggles a column, or applies Direction when set.
type SortInput struct {
	Column    string              `json:"column"`
	Direction sales.SortDirection `json:"direction"`
}

type sortService interface {
	ToggleSort(key string) (sales.SortState, error)
	SetSort(key string, direction sales.SortDirection) error
}

// SortCommand updates the grid sort.
type SortCommand struct {
	service sortService
}

// NewSortCommand creates the command.
func NewSortCommand(service sortService) *SortCommand {
	return &SortCommand{service: service}
}

var _ gocommand.Commander[SortInput] = (*SortCommand)(nil)

func (c *SortCommand) Execute(_ context.Context, msg SortInput) error {
	if c.service == nil {
		return errors.New("sort command requires service")
	}
	if msg.Direction != "" {
		return c.service.SetSort(msg.Column, msg.Direction)
	}
	_, err := c.service.ToggleSort(msg.Column)
	return err
}

// SelectRowsInput toggles rows. All toggles the current page, Clear drops
// the whole selection.
type SelectRowsInput struct {
	IDs   []int64 `json:"ids"`
	All   bool    `json:"all"`
	Clear bool    `json:"clear"`
}

type selectService interface {
	ToggleRow(ctx context.Context, id int64) (bool, error)
	ToggleAllOnPage(ctx context.Context)
	ClearSelection()
}

// SelectRowsCommand updates the row selection.
type SelectRowsCommand struct {
	service selectService
}

// NewSelectRowsCommand creates the command.
func NewSelectRowsCommand(service selectService) *SelectRowsCommand {
	return &SelectRowsCommand{service: service}
}

var _ gocommand.Commander[SelectRowsInput] = (*SelectRowsCommand)(nil)

func (c *SelectRowsCommand) Execute(ctx context.Context, msg SelectRowsInput) error {
	if c.service == nil {
		return errors.New("select command requires service")
	}
	switch {
	case msg.Clear:
		c.service.ClearSelection()
	case msg.All:
		c.service.ToggleAllOnPage(ctx)
	default:
		if len(msg.IDs) == 0 {
			return sales.ErrEmptySelection
		}
		for _, id := range msg.IDs {
			if _, err := c.service.ToggleRow(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Page directions.
const (
	PageNext     = "next"
	PagePrevious = "previous"
)

// ChangePageInput moves one page forward or back.
type ChangePageInput struct {
	Direction string `json:"direction"`
}

type pageService interface {
	NextPage() bool
	PreviousPage() bool
}

// ChangePageCommand moves the pager. Out-of-range moves are no-ops.
type ChangePageCommand struct {
	service pageService
}

// NewChangePageCommand creates the command.
func NewChangePageCommand(service pageService) *ChangePageCommand {
	return &ChangePageCommand{service: service}
}

var _ gocommand.Commander[ChangePageInput] = (*ChangePageCommand)(nil)

func (c *ChangePageCommand) Execute(_ context.Context, msg ChangePageInput) error {
	if c.service == nil {
		return errors.New("page command requires service")
	}
	switch strings.ToLower(strings.TrimSpace(msg.Direction)) {
	case PageNext:
		c.service.NextPage()
	case PagePrevious, "prev":
		c.service.PreviousPage()
	default:
		return fmt.Errorf("page command: unknown direction %q", msg.Direction)
	}
	return nil
}
