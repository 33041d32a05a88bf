package goadmin_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/pkg/activity"
	"github.com/goliatone/go-ferry-admin/pkg/ferryapi"
	"github.com/goliatone/go-ferry-admin/pkg/goadmin"
	salespkg "github.com/goliatone/go-ferry-admin/pkg/sales"
)

type stubMenuBuilder struct {
	calls map[string][]string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, code string, item goadmin.MenuItem) error {
	if s.calls == nil {
		s.calls = map[string][]string{}
	}
	s.calls[code] = append(s.calls[code], item.Label)
	return s.err
}

func newModule(t *testing.T) *salespkg.Module {
	t.Helper()
	module, err := salespkg.New(salespkg.Options{
		Client:  ferryapi.NewMockClient(ferryapi.MockData{}),
		Session: core.Session{Business: "Gaviota", Token: "tok"},
	})
	if err != nil {
		t.Fatalf("sales.New returned error: %v", err)
	}
	return module
}

func TestAdminBootstrapSeedsOwnerMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableSales: true,
		Module:      newModule(t),
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if got := len(builder.calls[goadmin.MenuMain]); got != 4 {
		t.Fatalf("expected 4 main items, got %d", got)
	}
	if got := len(builder.calls[goadmin.MenuUser]); got != 2 {
		t.Fatalf("expected 2 user items, got %d", got)
	}
	if admin.Sales() == nil {
		t.Fatalf("expected sales module")
	}
}

func TestAdminBootstrapStopsOnError(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu store down")}
	admin, _ := goadmin.New(goadmin.Config{EnableSales: true, Module: newModule(t), MenuBuilder: builder})
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected bootstrap error")
	}
	if len(builder.calls[goadmin.MenuMain]) != 1 {
		t.Fatalf("expected bootstrap to stop at the first failure")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableSales: false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.calls) != 0 {
		t.Fatalf("expected no calls, got %v", builder.calls)
	}
	if admin.Sales() != nil {
		t.Fatalf("expected nil module when disabled")
	}
}

func TestNewRequiresModuleWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableSales: true}); err == nil {
		t.Fatalf("expected error without module")
	}
}

func TestMenuForRole(t *testing.T) {
	main, user := goadmin.MenuForRole("admin")
	if len(main) != 0 {
		t.Fatalf("admin should not see main menu items, got %v", main)
	}
	if len(user) != 2 || user[0].Label != "Cuenta" || user[1].Label != "Pagos" {
		t.Fatalf("unexpected admin user menu %v", user)
	}

	main, _ = goadmin.MenuForRole(" Owner ")
	labels := []string{}
	for _, item := range main {
		labels = append(labels, item.Label)
	}
	want := []string{"Panel Principal", "Ventas", "Reportes", "Otros"}
	if len(labels) != len(want) {
		t.Fatalf("unexpected owner menu %v", labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("unexpected owner menu %v", labels)
		}
	}

	main, user = goadmin.MenuForRole("guest")
	if len(main) != 0 || len(user) != 0 {
		t.Fatalf("unknown role should see nothing")
	}
}

func TestAdminActivityEmitter(t *testing.T) {
	capture := &activity.CaptureHook{}
	admin, _ := goadmin.New(goadmin.Config{
		ActivityHooks:  activity.Hooks{capture},
		ActivityConfig: activity.Config{Enabled: true},
	})
	if !admin.Activity().Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	_ = admin.Activity().Emit(context.Background(), activity.Event{Verb: "sales.sale.delete", ObjectType: "sale", ObjectID: "1"})
	if len(capture.Events) != 1 {
		t.Fatalf("expected captured event")
	}
}
