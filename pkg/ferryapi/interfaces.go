package ferryapi

import (
	"context"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// SalesClient covers the grid operations plus exports.
type SalesClient interface {
	sales.Backend
	sales.ReportBackend
}

// AuthClient covers login, token refresh and invite registration.
type AuthClient interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	RefreshToken(ctx context.Context, token string) (string, error)
	ValidateInvite(ctx context.Context, token string) (bool, error)
	InviteEmail(ctx context.Context, token string) (string, error)
	UseInvite(ctx context.Context, token string) error
	Register(ctx context.Context, reg Registration) error
}

// Client is a convenience union for services that implement every backend call.
type Client interface {
	SalesClient
	AuthClient
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Business string `json:"business"`
}

// Session converts the login result into the session handed to the grid.
func (r LoginResult) Session(role string) sales.Session {
	return sales.Session{
		Business: r.Business,
		Token:    r.Token,
		Email:    r.Email,
		Name:     r.Name,
		Role:     role,
	}
}

// Registration creates a seller account from an invite token.
type Registration struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BusinessID int64  `json:"business_id"`
	Token      string `json:"token"`
}
