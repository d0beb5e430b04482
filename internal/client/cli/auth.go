package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bereal/internal/common"
)

// Test seams for interactive input.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for username, email and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		a.say("Already logged in, log out first")
		return nil
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	u, err := a.authService.Register(rctx, username, email, password)
	if err != nil {
		a.sayError(err)
		return err
	}

	a.say(fmt.Sprintf("Welcome, %s!", u.Name()))
	return a.Feed(ctx)
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.say("Already logged in, log out first")
		return nil
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	u, err := a.authService.Login(rctx, username, password)
	if err != nil {
		a.sayError(err)
		return err
	}

	a.say(fmt.Sprintf("Logged in as %s", u.Name()))
	return a.Feed(ctx)
}

// Logout asks for confirmation and ends the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.say("Not logged in")
		return nil
	}

	ok, err := Confirm(a.reader, "Log out of BeReal?", a.out)
	if err != nil || !ok {
		return err
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	err = a.authService.Logout(rctx)
	a.clearFeed()
	if err != nil && !errors.Is(err, common.ErrNotLoggedIn) {
		a.log.Warn(ctx, "remote logout failed", "error", err)
	}

	a.say("Logged out")
	return nil
}
