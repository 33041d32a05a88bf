package activity

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

var salesVerbs = map[string]string{
	"sales.command.delete": "sales.sale.delete",
	"sales.command.update": "sales.sale.update",
	"sales.command.create": "sales.sale.create",
	"sales.command.load":   "sales.grid.load",
}

// SalesTelemetry turns sales command telemetry into activity events. Events
// without an activity verb are ignored.
type SalesTelemetry struct {
	Emitter *Emitter
	// OnError receives hook failures; telemetry never fails the command.
	OnError func(error)
}

// Record implements sales.Telemetry.
func (t SalesTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	verb, ok := salesVerbs[event]
	if !ok || !t.Emitter.Enabled() {
		return
	}
	meta := sales.ActivityFromContext(ctx)
	evt := Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: "sale",
		ObjectID:   objectID(event, payload),
		Metadata:   payload,
	}
	if event == "sales.command.load" {
		evt.ObjectType = "sales_range"
	}
	if err := t.Emitter.Emit(ctx, evt); err != nil && t.OnError != nil {
		t.OnError(fmt.Errorf("activity: %s: %w", verb, err))
	}
}

func objectID(event string, payload map[string]any) string {
	switch event {
	case "sales.command.delete":
		if ids, ok := payload["ids"].([]int64); ok && len(ids) > 0 {
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.FormatInt(id, 10)
			}
			return strings.Join(parts, ",")
		}
		return "selection"
	case "sales.command.update":
		if id, ok := payload["id"].(int64); ok {
			return strconv.FormatInt(id, 10)
		}
	case "sales.command.load":
		start, _ := payload["start_date"].(string)
		end, _ := payload["end_date"].(string)
		return start + ".." + end
	}
	return "new"
}
