// Package session holds the authenticated identity for the running client
// and keeps it in sync with durable local storage.
//
// Contract:
//   - Restore: rebuild the session from the three persisted fields; if any is
//     missing the session is absent. No network call.
//   - Login: authenticate, derive the role from the token's role claim,
//     persist token/role/email atomically, update in-memory state.
//   - Register: create the account, then perform a full Login round-trip
//     (registration alone does not return a usable session).
//   - Logout: clear persisted and in-memory state unconditionally.
//
// A session is either fully present or absent; no partial state is ever
// persisted or exposed.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/client/repositories/state"
	"github.com/aipapergrader/papergrader/internal/client/token"
	"github.com/aipapergrader/papergrader/internal/dbx"
	"github.com/aipapergrader/papergrader/internal/logging"
)

type Store struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu      sync.RWMutex
	current *models.Session
}

func NewStore(client api.Client, db *sql.DB, log logging.Logger) *Store {
	return &Store{client: client, db: db, log: log.With("component", "session")}
}

func (s *Store) repo() state.Repository {
	return state.NewSQLiteRepository(s.db)
}

// Current returns the session, or nil when absent.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Restore reads the three persisted fields and reconstructs the session when
// all are present. A partially written or malformed record is cleared and
// treated as absent rather than surfaced as an error.
func (s *Store) Restore(ctx context.Context) (*models.Session, error) {
	repo := s.repo()

	tok, err := repo.Get(ctx, state.KeyToken)
	if err != nil {
		return nil, err
	}
	rawRole, err := repo.Get(ctx, state.KeyRole)
	if err != nil {
		return nil, err
	}
	email, err := repo.Get(ctx, state.KeyEmail)
	if err != nil {
		return nil, err
	}

	if tok == "" || rawRole == "" || email == "" {
		return nil, nil
	}

	role, err := models.ParseRole(rawRole)
	if err != nil {
		s.log.Warn(ctx, "persisted role is malformed, discarding session", "role", rawRole)
		s.Logout(ctx)
		return nil, nil
	}

	sess := &models.Session{Token: tok, Role: role, Email: email}
	s.install(sess)
	return sess, nil
}

// Login authenticates with the server, extracts the role claim from the
// returned token, and persists the session. A token without a role claim is
// fatal to the whole attempt: nothing is persisted and the in-memory state is
// left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*models.Session, error) {
	tok, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, mapAuthError(err)
	}

	role, err := token.Role(tok)
	if err != nil {
		s.log.Warn(ctx, "login rejected", "reason", err)
		return nil, err
	}

	sess := &models.Session{Token: tok, Role: role, Email: email}
	if err := s.persist(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.install(sess)
	s.log.Info(ctx, "logged in", "email", email, "role", role)
	return sess, nil
}

// Register creates the account and immediately logs in with the same
// credentials. Failures from either step propagate unchanged.
func (s *Store) Register(ctx context.Context, email, password string, role models.Role) (*models.Session, error) {
	if err := s.client.Register(ctx, email, password, role); err != nil {
		return nil, mapAuthError(err)
	}
	return s.Login(ctx, email, password)
}

// Logout clears persisted and in-memory state. It never fails; a storage
// error is logged and the in-memory session is dropped regardless.
func (s *Store) Logout(ctx context.Context) {
	if err := s.repo().Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	s.install(nil)
	s.log.Info(ctx, "logged out")
}

// Invalidate discards the session after the server rejected its token.
func (s *Store) Invalidate(ctx context.Context) {
	s.log.Warn(ctx, "session no longer valid, discarding")
	s.Logout(ctx)
}

// persist writes the three fields as one transaction so storage never holds
// a partial session.
func (s *Store) persist(ctx context.Context, sess *models.Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, state.KeyToken, sess.Token); err != nil {
			return err
		}
		if err := repo.Set(ctx, state.KeyRole, string(sess.Role)); err != nil {
			return err
		}
		return repo.Set(ctx, state.KeyEmail, sess.Email)
	})
}

func (s *Store) install(sess *models.Session) {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if sess != nil {
		s.client.SetToken(sess.Token)
	} else {
		s.client.SetToken("")
	}
}

// mapAuthError translates API-layer failures into the auth taxonomy.
func mapAuthError(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	case errors.Is(err, api.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		return &RejectedError{Message: serverErr.Message}
	}
	return err
}
