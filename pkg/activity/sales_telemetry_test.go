package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

func TestSalesTelemetryMapsDelete(t *testing.T) {
	capture := &CaptureHook{}
	tel := SalesTelemetry{Emitter: NewEmitter(Hooks{capture}, Config{Enabled: true})}

	ctx := sales.ContextWithActivity(context.Background(), sales.ActivityContext{ActorID: "a-1", UserID: "u-1", TenantID: "Gaviota"})
	tel.Record(ctx, "sales.command.delete", map[string]any{"ids": []int64{3, 9}, "removed": 2})

	if len(capture.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(capture.Events))
	}
	evt := capture.Events[0]
	if evt.Verb != "sales.sale.delete" || evt.ObjectType != "sale" || evt.ObjectID != "3,9" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.ActorID != "a-1" || evt.UserID != "u-1" || evt.TenantID != "Gaviota" {
		t.Fatalf("actor context not copied: %+v", evt)
	}
	if evt.Channel != DefaultChannel {
		t.Fatalf("expected default channel, got %q", evt.Channel)
	}
}

func TestSalesTelemetryMapsUpdateAndCreate(t *testing.T) {
	capture := &CaptureHook{}
	tel := SalesTelemetry{Emitter: NewEmitter(Hooks{capture}, Config{Enabled: true})}

	tel.Record(context.Background(), "sales.command.update", map[string]any{"id": int64(12)})
	tel.Record(context.Background(), "sales.command.create", map[string]any{"passengers": 2})

	if len(capture.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(capture.Events))
	}
	if capture.Events[0].ObjectID != "12" || capture.Events[1].ObjectID != "new" {
		t.Fatalf("unexpected object ids %q %q", capture.Events[0].ObjectID, capture.Events[1].ObjectID)
	}
}

func TestSalesTelemetryIgnoresUnmappedEvents(t *testing.T) {
	capture := &CaptureHook{}
	tel := SalesTelemetry{Emitter: NewEmitter(Hooks{capture}, Config{Enabled: true})}

	tel.Record(context.Background(), "sales.grid.hook_failed", nil)
	tel.Record(context.Background(), "sales.command.refresh", nil)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(capture.Events))
	}
}

func TestSalesTelemetryReportsHookErrors(t *testing.T) {
	failing := HookFunc(func(context.Context, Event) error { return errors.New("sink down") })
	var got error
	tel := SalesTelemetry{
		Emitter: NewEmitter(Hooks{failing}, Config{Enabled: true}),
		OnError: func(err error) { got = err },
	}

	tel.Record(context.Background(), "sales.command.load", map[string]any{"start_date": "2024-05-01", "end_date": "2024-05-10"})
	if got == nil {
		t.Fatalf("expected hook error to be reported")
	}
}

func TestSalesTelemetryNilEmitter(t *testing.T) {
	SalesTelemetry{}.Record(context.Background(), "sales.command.delete", nil)
}
