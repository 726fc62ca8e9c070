package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/prepadmin/internal/client/router"
	"github.com/dmitrijs2005/prepadmin/internal/client/tokenstore"
	"github.com/dmitrijs2005/prepadmin/internal/common"
)

// MsgMissingCredentials is shown when email or password is left empty.
const MsgMissingCredentials = "Please enter both email and password"

// Login prompts for credentials and signs in. Only admin accounts are
// accepted; on success the console opens the template list.
func (a *App) Login(ctx context.Context) error {
	a.showLogin()

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return errors.New(MsgMissingCredentials)
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return errors.New(a.session.LastError())
	}

	printlnFn("Logged in as", email)
	return a.Go(ctx, router.PathHome)
}

// Logout forgets the stored token. No request is sent.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.showLogin()
	printlnFn("Logged out.")
	return nil
}

// showLogin moves to the login screen. Being there already leaves the back
// stack untouched, so Back never lands on a second copy of /login.
func (a *App) showLogin() {
	if a.router.Navigator().Current() != router.PathLogin {
		a.router.Navigate(router.PathLogin)
	}
	a.enter(router.ScreenLogin)
}

// WhoAmI prints the session state and, when signed in, the identity.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.State()
	if s.Identity == nil {
		printlnFn("Session:", s.Status)
		return nil
	}
	u := s.Identity
	printlnFn("Session:", s.Status)
	printlnFn("Email:  ", u.Email)
	if u.FullName != "" {
		printlnFn("Name:   ", u.FullName)
	}
	printlnFn("Admin:  ", u.IsAdmin)

	if ts, ok := a.tokens.(tokenstore.Timestamped); ok {
		at, found, err := ts.SavedAt(ctx)
		if err != nil {
			a.log.Warn(ctx, "failed to read token timestamp", "error", err)
		} else if found {
			printlnFn("Token saved:", at.Local().Format(time.DateTime))
		}
	}
	return nil
}
