package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
	"github.com/dmitrijs2005/taskboard/internal/client/session"
	"github.com/dmitrijs2005/taskboard/internal/common"
)

func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, token, err := a.client.Signup(ctx, name, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return err
	}

	if err := a.setSession(&session.Session{Token: token, Name: user.Name, Email: user.Email}); err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err.Error())
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return err
	}

	if err := a.setSession(&session.Session{Token: token, Name: user.Name, Email: user.Email}); err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err.Error())
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	return nil
}

// WhoAmI shows the profile behind the stored session. It doubles as a session
// check: a 401 means the token went stale.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Name:  %s\n", a.session.Name)
	fmt.Fprintf(a.out, "Email: %s\n", a.session.Email)

	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, "Warning: server unreachable:", err.Error())
	}
	return nil
}

// Profile updates name and/or email. Empty input leaves a field unchanged.
func (a *App) Profile(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var namePtr, emailPtr *string
	if name != "" {
		namePtr = &name
	}
	if email != "" {
		emailPtr = &email
	}
	if namePtr == nil && emailPtr == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	user, err := a.client.UpdateProfile(ctx, namePtr, emailPtr)
	if err != nil {
		a.reportError(err)
		return err
	}

	a.session.Name = user.Name
	a.session.Email = user.Email
	if err := a.store.Save(a.session); err != nil {
		fmt.Fprintln(a.out, "Warning: session not saved:", err.Error())
	}

	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session = &session.Session{}
	a.client.SetToken("")
	if err := a.store.Clear(); err != nil {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// reportError prints err for the user, with a hint when the stored session is
// no longer accepted.
func (a *App) reportError(err error) {
	if api.IsUnauthorized(err) {
		fmt.Fprintln(a.out, "Session expired, please login again")
		return
	}
	fmt.Fprintln(a.out, "Error:", err.Error())
}
