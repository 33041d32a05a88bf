package goadmin

import (
	"context"
	"errors"
	"slices"
	"strings"

	activitypkg "github.com/goliatone/go-ferry-admin/pkg/activity"
	salespkg "github.com/goliatone/go-ferry-admin/pkg/sales"
)

// Roles understood by the navigation.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Menu codes seeded by Bootstrap.
const (
	MenuMain = "admin.main"
	MenuUser = "admin.user"
)

// MenuBuilder ensures sales entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures navigation link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
	Roles    []string
}

// Visible reports whether role may see the item.
func (m MenuItem) Visible(role string) bool {
	return slices.Contains(m.Roles, strings.ToLower(strings.TrimSpace(role)))
}

var mainMenu = []MenuItem{
	{Label: "Panel Principal", Route: "/panel-principal", Icon: "home", Position: 10, Roles: []string{RoleOwner}},
	{Label: "Ventas", Route: "/ventas", Icon: "ticket", Position: 20, Roles: []string{RoleOwner}},
	{Label: "Reportes", Route: "/reportes", Icon: "file", Position: 30, Roles: []string{RoleOwner}},
	{Label: "Otros", Route: "/otros", Icon: "more", Position: 40, Roles: []string{RoleOwner}},
}

var userMenu = []MenuItem{
	{Label: "Cuenta", Route: "/cuenta", Icon: "user", Position: 10, Roles: []string{RoleOwner, RoleAdmin}},
	{Label: "Pagos", Route: "/pagos", Icon: "credit-card", Position: 20, Roles: []string{RoleOwner, RoleAdmin}},
}

// MenuForRole returns the main and user menu items visible to role.
func MenuForRole(role string) (main []MenuItem, user []MenuItem) {
	for _, item := range mainMenu {
		if item.Visible(role) {
			main = append(main, item)
		}
	}
	for _, item := range userMenu {
		if item.Visible(role) {
			user = append(user, item)
		}
	}
	return main, user
}

// Config wires the sales module and feature flags into an admin shell.
type Config struct {
	EnableSales    bool
	Role           string
	MenuBuilder    MenuBuilder
	Module         *salespkg.Module
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg     Config
	emitter *activitypkg.Emitter
}

// New creates an Admin helper that can seed sales menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableSales && cfg.Module == nil {
		return nil, errors.New("goadmin: sales module is required when enabled")
	}
	if cfg.Role == "" {
		cfg.Role = RoleOwner
	}
	return &Admin{
		cfg:     cfg,
		emitter: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Sales exposes the configured module when enabled.
func (a *Admin) Sales() *salespkg.Module {
	if !a.cfg.EnableSales {
		return nil
	}
	return a.cfg.Module
}

// Activity returns the emitter built from the configured hooks.
func (a *Admin) Activity() *activitypkg.Emitter {
	return a.emitter
}

// Bootstrap seeds the menu entries visible to the configured role.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableSales || a.cfg.MenuBuilder == nil {
		return nil
	}
	main, user := MenuForRole(a.cfg.Role)
	for _, item := range main {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, MenuMain, item); err != nil {
			return err
		}
	}
	for _, item := range user {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, MenuUser, item); err != nil {
			return err
		}
	}
	return nil
}
