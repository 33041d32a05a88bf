package sales

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogTelemetryWritesSortedAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	telemetry := NewSlogTelemetry(logger)

	telemetry.Record(context.Background(), "sales.grid.load", map[string]any{"rows": 3, "business": "Gaviota"})

	line := buf.String()
	if !strings.Contains(line, "event=sales.grid.load") {
		t.Fatalf("expected event attribute, got %q", line)
	}
	if strings.Index(line, "business=") > strings.Index(line, "rows=") {
		t.Fatalf("expected sorted attributes, got %q", line)
	}
}

func TestTelemetryFanoutSkipsNil(t *testing.T) {
	first := &recordingTelemetry{}
	second := &recordingTelemetry{}
	fanout := TelemetryFanout{first, nil, second}
	fanout.Record(context.Background(), "sales.grid.delete", nil)
	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("expected both members to record, got %v and %v", first.events, second.events)
	}
}

func TestActivityContextRoundTrip(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "a", TenantID: "Gaviota"})
	got := ActivityFromContext(ctx)
	if got.ActorID != "a" || got.TenantID != "Gaviota" {
		t.Fatalf("unexpected activity %+v", got)
	}
	if (ActivityFromContext(context.Background()) != ActivityContext{}) {
		t.Fatalf("expected empty activity")
	}
}
