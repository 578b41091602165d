package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/cache"
	"github.com/aipapergrader/papergrader/internal/client/config"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/client/routes"
	"github.com/aipapergrader/papergrader/internal/client/services"
	"github.com/aipapergrader/papergrader/internal/client/session"
	"github.com/aipapergrader/papergrader/internal/client/storage"
	"github.com/aipapergrader/papergrader/internal/logging"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	apiClient api.Client
	sessions  *session.Store
	tests     services.TestService
	questions services.QuestionService
	grading   services.GradingService
	reader    *bufio.Reader

	view         routes.View
	selectedTest int64
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewDefault()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local storage: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, log)
	sessions := session.NewStore(apiClient, db, log)
	cacheStore := cache.NewStore()

	a := &App{
		config:    c,
		log:       log,
		apiClient: apiClient,
		sessions:  sessions,
		tests:     services.NewTestService(apiClient, cacheStore, log),
		questions: services.NewQuestionService(apiClient, cacheStore, log),
		grading:   services.NewGradingService(apiClient, log),
		reader:    bufio.NewReader(os.Stdin),
		view:      routes.ViewLogin,
	}

	if _, err := sessions.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	a.navigate()

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()

	printlnFn("Welcome to the papergrader CLI (type 'help' for commands)")
	if sess := a.sessions.Current(); sess != nil {
		printlnFn(fmt.Sprintf("Restored session for %s (%s)", sess.Email, sess.Role))
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current() != nil
}

func (a *App) isTeacher() bool {
	sess := a.sessions.Current()
	return sess != nil && sess.Role == models.RoleTeacher
}

func (a *App) getStatus() string {
	sess := a.sessions.Current()
	if sess == nil {
		return fmt.Sprintf("(%s)", a.view)
	}
	return fmt.Sprintf("(%s %s)", sess.Email, a.view)
}

// navigate moves to the view the current session entitles the user to. The
// move is idempotent: evaluating it again from the target view is a no-op.
func (a *App) navigate() {
	if view, moved := routes.PostLoginRedirect(a.sessions.Current(), a.view); moved {
		a.view = view
		printlnFn(fmt.Sprintf("Switched to %s view", view))
	}
}

// ensure gates a command behind the route guard. On a redirect decision the
// user lands back on the login view, mirroring the web client's redirect to
// the unauthenticated entry point.
func (a *App) ensure(required models.Role) bool {
	if routes.Evaluate(a.sessions.Current(), required) == routes.DecisionRedirectLogin {
		printlnFn(fmt.Sprintf("This command requires a %s session", required))
		a.view = routes.ViewLogin
		return false
	}
	return true
}

// ensureLoggedIn gates commands available to any authenticated role.
func (a *App) ensureLoggedIn() bool {
	sess := a.sessions.Current()
	if sess == nil {
		printlnFn("Please log in first")
		a.view = routes.ViewLogin
		return false
	}
	return a.ensure(sess.Role)
}

// fail reports a command failure. A 401/403 from the server means the token
// is no longer valid: the session is discarded and the user returns to the
// login view.
func (a *App) fail(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		printlnFn("Your session is no longer valid, please log in again")
		a.sessions.Invalidate(ctx)
		a.selectedTest = 0
		a.navigate()
		return err
	}
	printlnFn("Error: " + err.Error())
	return err
}
