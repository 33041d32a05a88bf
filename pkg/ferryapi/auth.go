package ferryapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-ferry-admin/components/sales"
)

// Login exchanges credentials for a session token via POST /login.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return LoginResult{}, fmt.Errorf("ferryapi: login: %w: email and password are required", sales.ErrInvalidInput)
	}
	var out LoginResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/login", payload: creds}, &out); err != nil {
		return LoginResult{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return LoginResult{}, &sales.DecodeError{Resource: "login", Field: "token", Err: fmt.Errorf("missing token")}
	}
	if out.Email == "" {
		out.Email = creds.Email
	}
	return out, nil
}

// RefreshToken implements sales.TokenRefresher via POST /refresh.
func (c *HTTPClient) RefreshToken(ctx context.Context, token string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"token": token}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/refresh", payload: payload}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", &sales.DecodeError{Resource: "refresh", Field: "token", Err: fmt.Errorf("missing token")}
	}
	return out.Token, nil
}

// ValidateInvite checks an invite token via GET /validar-token.
func (c *HTTPClient) ValidateInvite(ctx context.Context, token string) (bool, error) {
	var out struct {
		Valid bool `json:"valid"`
	}
	params := url.Values{"token": {token}}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/validar-token", query: params}, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// InviteEmail returns the address an invite was issued to via GET /get-token-mail.
func (c *HTTPClient) InviteEmail(ctx context.Context, token string) (string, error) {
	var out struct {
		Email string `json:"email"`
	}
	params := url.Values{"token": {token}}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/get-token-mail", query: params}, &out); err != nil {
		return "", err
	}
	return out.Email, nil
}

// UseInvite marks an invite token as consumed via POST /use-token.
func (c *HTTPClient) UseInvite(ctx context.Context, token string) error {
	payload := map[string]string{"token": token}
	return c.do(ctx, request{method: http.MethodPost, path: "/use-token", payload: payload, token: token}, nil)
}

// Register creates the account bound to reg.Token via POST /register. The
// invite token doubles as the bearer credential.
func (c *HTTPClient) Register(ctx context.Context, reg Registration) error {
	if strings.TrimSpace(reg.Token) == "" || strings.TrimSpace(reg.Email) == "" {
		return fmt.Errorf("ferryapi: register: %w: token and email are required", sales.ErrInvalidInput)
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/register", payload: reg, token: reg.Token}, nil)
}

// CompleteRegistration validates the invite, registers the account and marks
// the invite as used, in that order.
func CompleteRegistration(ctx context.Context, client AuthClient, reg Registration) error {
	valid, err := client.ValidateInvite(ctx, reg.Token)
	if err != nil {
		return fmt.Errorf("ferryapi: validate invite: %w", err)
	}
	if !valid {
		return fmt.Errorf("ferryapi: %w: invite token is not valid", sales.ErrInvalidInput)
	}
	if reg.Email == "" {
		email, err := client.InviteEmail(ctx, reg.Token)
		if err != nil {
			return fmt.Errorf("ferryapi: invite email: %w", err)
		}
		reg.Email = email
	}
	if err := client.Register(ctx, reg); err != nil {
		return err
	}
	return client.UseInvite(ctx, reg.Token)
}
