// Geosnap - Travel Photo Sharing and Rewards Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geosnap

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/juju/gnuflag"

	"github.com/tomtom215/geosnap/internal/api"
	"github.com/tomtom215/geosnap/internal/format"
	"github.com/tomtom215/geosnap/internal/models"
	"github.com/tomtom215/geosnap/internal/session"
)

type loginCommand struct {
	email    string
	password string
}

func (c *loginCommand) Info() *Info {
	return &Info{Name: "login", Args: "[email]", Purpose: "sign in and remember the session"}
}

func (c *loginCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.email, "email", "", "account email")
	f.StringVar(&c.password, "password", "", "password (prompted when omitted)")
}

func (c *loginCommand) Init(args []string) error {
	if len(args) > 0 {
		if c.email != "" {
			return usageErrorf("email given twice")
		}
		c.email, args = args[0], args[1:]
	}
	return checkEmpty(args)
}

func (c *loginCommand) Run(ctx context.Context, app *App) error {
	if c.email == "" {
		email, err := app.prompt("Email: ")
		if err != nil {
			return err
		}
		c.email = email
	}
	if c.password == "" {
		pw, err := app.prompt("Password: ")
		if err != nil {
			return err
		}
		c.password = pw
	}
	user, err := app.account.Login(ctx, c.email, c.password)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

type registerCommand struct {
	req models.RegisterRequest
}

func (c *registerCommand) Info() *Info {
	return &Info{Name: "register", Purpose: "create an account and sign in"}
}

func (c *registerCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.req.Name, "name", "", "display name")
	f.StringVar(&c.req.Email, "email", "", "account email")
	f.StringVar(&c.req.Password, "password", "", "password, at least 6 characters (prompted when omitted)")
	f.StringVar(&c.req.Phone, "phone", "", "10-digit phone number")
}

func (c *registerCommand) Init(args []string) error {
	if c.req.Name == "" || c.req.Email == "" {
		return usageErrorf("--name and --email are required")
	}
	return checkEmpty(args)
}

func (c *registerCommand) Run(ctx context.Context, app *App) error {
	if c.req.Password == "" {
		pw, err := app.prompt("Password: ")
		if err != nil {
			return err
		}
		c.req.Password = pw
	}
	user, err := app.account.Register(ctx, c.req)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Welcome, %s\n", user.Name)
	return nil
}

type logoutCommand struct{ commandBase }

func (c *logoutCommand) Info() *Info {
	return &Info{Name: "logout", Purpose: "forget the stored session"}
}

func (c *logoutCommand) Run(ctx context.Context, app *App) error {
	return app.account.Logout(ctx)
}

type whoamiCommand struct{ commandBase }

func (c *whoamiCommand) Info() *Info {
	return &Info{Name: "whoami", Purpose: "show the signed-in user", Guard: session.RequireAuth}
}

func (c *whoamiCommand) Run(ctx context.Context, app *App) error {
	u, err := app.account.Me(ctx)
	if err != nil {
		return err
	}
	t := newTable()
	t.AddRow("Name:", u.Name)
	t.AddRow("Email:", u.Email)
	t.AddRow("Role:", u.Role)
	if u.Phone != "" {
		t.AddRow("Phone:", u.Phone)
	}
	if u.Bio != "" {
		t.AddRow("Bio:", format.Truncate(u.Bio, 0))
	}
	if !u.CreatedAt.IsZero() {
		t.AddRow("Member since:", format.Date(u.CreatedAt))
	}
	fmt.Fprintln(app.out, t)
	return nil
}

type forgotPasswordCommand struct {
	commandBase
	email string
}

func (c *forgotPasswordCommand) Info() *Info {
	return &Info{Name: "forgot-password", Args: "<email>", Purpose: "email a password reset link"}
}

func (c *forgotPasswordCommand) Init(args []string) error {
	if len(args) == 0 {
		return usageErrorf("no email specified")
	}
	c.email = args[0]
	return checkEmpty(args[1:])
}

func (c *forgotPasswordCommand) Run(ctx context.Context, app *App) error {
	return app.account.ForgotPassword(ctx, c.email)
}

type profileCommand struct {
	upd         models.ProfileUpdate
	photo       string
	removePhoto bool
}

func (c *profileCommand) Info() *Info {
	return &Info{Name: "profile", Purpose: "update the profile or profile photo", Guard: session.RequireAuth}
}

func (c *profileCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.upd.Name, "name", "", "new display name")
	f.StringVar(&c.upd.Phone, "phone", "", "new 10-digit phone number")
	f.StringVar(&c.upd.Bio, "bio", "", "new bio")
	f.StringVar(&c.photo, "photo", "", "image file to use as profile photo")
	f.BoolVar(&c.removePhoto, "remove-photo", false, "remove the profile photo")
}

func (c *profileCommand) Init(args []string) error {
	if c.photo != "" && c.removePhoto {
		return usageErrorf("--photo and --remove-photo are mutually exclusive")
	}
	if c.upd == (models.ProfileUpdate{}) && c.photo == "" && !c.removePhoto {
		return usageErrorf("nothing to update")
	}
	return checkEmpty(args)
}

func (c *profileCommand) Run(ctx context.Context, app *App) error {
	if c.upd != (models.ProfileUpdate{}) {
		c.upd.Name = strings.TrimSpace(c.upd.Name)
		if _, err := app.account.UpdateProfile(ctx, c.upd); err != nil {
			return err
		}
	}
	switch {
	case c.photo != "":
		up, file, err := api.OpenUpload(c.photo)
		if err != nil {
			return err
		}
		defer file.Close()
		if _, err := app.account.SetProfilePhoto(ctx, up); err != nil {
			return err
		}
	case c.removePhoto:
		if err := app.account.RemoveProfilePhoto(ctx); err != nil {
			return err
		}
	}
	return nil
}
