package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/client/session"
	"github.com/aipapergrader/papergrader/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for an email, password and role and creates a new
// account. A successful registration is immediately followed by a login, so
// on return the user holds a live session and lands on their home view.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	roleText, err := getSimpleText(a.reader, "Enter role (teacher/student)", os.Stdout)
	if err != nil {
		return err
	}
	role, err := models.ParseRole(roleText)
	if err != nil {
		printlnFn("Role must be either 'teacher' or 'student'")
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.sessions.Register(ctx, email, string(password), role)
	if err != nil {
		return a.failAuth(err)
	}

	printlnFn(fmt.Sprintf("Registered and logged in as %s (%s)", sess.Email, sess.Role))
	a.navigate()
	return nil
}

// Login prompts for credentials and authenticates against the server. On
// success the session is persisted locally and the user is moved to the view
// matching their role.
//
// The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.sessions.Login(ctx, email, string(password))
	if err != nil {
		return a.failAuth(err)
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s)", sess.Email, sess.Role))
	a.navigate()
	return nil
}

// Logout discards the current session, local persistence included, and
// returns the user to the login view. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	a.selectedTest = 0
	a.navigate()
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the current session identity.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.ensureLoggedIn() {
		return nil
	}
	sess := a.sessions.Current()
	printlnFn(fmt.Sprintf("%s (%s)", sess.Email, sess.Role))
	return nil
}

// failAuth turns a session-layer error into a user-facing message. Server
// rejections carry the server's own wording; everything else gets a short
// canned explanation.
func (a *App) failAuth(err error) error {
	var rejected *session.RejectedError
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		printlnFn("Invalid email or password")
	case errors.Is(err, session.ErrNetworkFailure):
		printlnFn("Server unavailable, please try again later")
	case errors.As(err, &rejected):
		printlnFn("Request rejected: " + rejected.Message)
	default:
		printlnFn("Error: " + err.Error())
	}
	return err
}
