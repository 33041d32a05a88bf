package commands

import (
	"context"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// Actor identifies who issued a command.
type Actor struct {
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

func (a Actor) withActivity(ctx context.Context) context.Context {
	return sales.ContextWithActivity(ctx, sales.ActivityContext{
		ActorID:  a.ActorID,
		UserID:   a.UserID,
		TenantID: a.TenantID,
	})
}
