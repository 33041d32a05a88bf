package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/pkg/ferryapi"
)

type loginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"FERRY_PASSWORD" help:"Account password."`
	Role     string `default:"owner" enum:"owner,admin" help:"Role used for navigation."`
}

func (cmd *loginCmd) Run(a *app) error {
	ctx := context.Background()
	result, err := a.client.Login(ctx, ferryapi.Credentials{Email: cmd.Email, Password: cmd.Password})
	if err != nil {
		return a.notice(sales.OpLogin, err)
	}
	session := result.Session(cmd.Role)
	if err := a.store.Save(ctx, session); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Signed in as %s (%s)\n", session.Email, session.Business)
	return nil
}

type logoutCmd struct{}

func (cmd *logoutCmd) Run(a *app) error {
	if err := a.store.Clear(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Session cleared")
	return nil
}

type refreshCmd struct{}

func (cmd *refreshCmd) Run(a *app) error {
	session, err := sales.RefreshSession(context.Background(), a.store, a.client)
	if err != nil {
		if errors.Is(err, sales.ErrSessionExpired) {
			return fmt.Errorf("ferryctl: session expired, run ferryctl login: %w", err)
		}
		return err
	}
	fmt.Fprintf(a.out, "✓ Session renewed for %s\n", session.Email)
	return nil
}

type registerCmd struct {
	Token      string `required:"" help:"Invite token."`
	FirstName  string `name:"first-name" required:"" help:"Seller first name."`
	LastName   string `name:"last-name" required:"" help:"Seller last name."`
	Email      string `help:"Email; defaults to the invite email."`
	Password   string `required:"" env:"FERRY_PASSWORD" help:"New password."`
	BusinessID int64  `name:"business-id" required:"" help:"Business the seller joins."`
}

func (cmd *registerCmd) Run(a *app) error {
	err := ferryapi.CompleteRegistration(context.Background(), a.client, ferryapi.Registration{
		FirstName:  cmd.FirstName,
		LastName:   cmd.LastName,
		Email:      cmd.Email,
		Password:   cmd.Password,
		BusinessID: cmd.BusinessID,
		Token:      cmd.Token,
	})
	if err != nil {
		return a.notice(sales.OpLogin, err)
	}
	fmt.Fprintln(a.out, "✓ Account created, run ferryctl login")
	return nil
}
