// Package routes decides which view the client may show for a given session.
// The decision is a pure function of the session and the required role, so
// repeated evaluation can never produce a redirect loop.
package routes

import "github.com/aipapergrader/papergrader/internal/client/models"

// View names a navigable screen.
type View string

const (
	ViewLogin   View = "login"
	ViewTeacher View = "teacher"
	ViewStudent View = "student"
)

// Decision is the outcome of evaluating a protected view.
type Decision int

const (
	// DecisionRender allows the protected content.
	DecisionRender Decision = iota
	// DecisionRedirectLogin sends the user to the unauthenticated entry
	// point. Absent session and wrong role produce the same decision on
	// purpose; the two cases are not distinguished.
	DecisionRedirectLogin
)

// Evaluate gates access to a view requiring the given role.
func Evaluate(sess *models.Session, required models.Role) Decision {
	if sess == nil {
		return DecisionRedirectLogin
	}
	if sess.Role != required {
		return DecisionRedirectLogin
	}
	return DecisionRender
}

// HomeView is the workspace a role lands on after authentication.
func HomeView(role models.Role) View {
	switch role {
	case models.RoleTeacher:
		return ViewTeacher
	case models.RoleStudent:
		return ViewStudent
	default:
		return ViewLogin
	}
}

// PostLoginRedirect returns the view to move to after a session change, and
// whether a move is needed. With no session the target is the login view;
// with a session it is the role's home view. Calling it again from the
// target view reports no move, which keeps the redirect idempotent.
func PostLoginRedirect(sess *models.Session, current View) (View, bool) {
	target := ViewLogin
	if sess != nil {
		target = HomeView(sess.Role)
	}
	return target, target != current
}
