// Package session owns "who is the current user": the bearer token, the
// cached profile, and their round-trips through the persistent store and the
// remote identity endpoints.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/api"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// Backend is the slice of the api client the session depends on.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Register(ctx context.Context, draft domain.RegisterDraft) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error)
	ChangePassword(ctx context.Context, current, next string) error
}

// IdentityListener is notified whenever the session identity changes
// (login, logout, forced expiry). The cart uses this to re-key its storage.
type IdentityListener func(ctx context.Context, oldIdentity, newIdentity string)

// Manager is the single source of truth for the current session.
type Manager struct {
	st      store.Store
	backend Backend
	logger  *slog.Logger

	mu        sync.RWMutex
	token     string
	user      *domain.User
	identity  string // active cart-partitioning identity
	anonID    string
	ready     bool
	listeners []IdentityListener
}

// NewManager creates a session manager. Call Restore before serving views.
func NewManager(st store.Store, backend Backend, logger *slog.Logger) *Manager {
	return &Manager{
		st:      st,
		backend: backend,
		logger:  logger,
	}
}

// OnIdentityChange registers a listener. Must be called before Restore so
// the initial identity is observed.
func (m *Manager) OnIdentityChange(fn IdentityListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Token returns the current bearer credential, or "" when unauthenticated.
// Wired into the api client as its TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the cached profile, or nil. The copy may be stale between
// refreshes; nil with a token present means the profile fetch is pending or
// failed.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Ready reports whether the initial restore attempt has completed. Views
// must not make auth-gated decisions before this is true.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Authenticated reports whether a bearer token is held.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Identity returns the cart-partitioning identity: the user id when
// authenticated, otherwise a stable per-installation anonymous bucket.
func (m *Manager) Identity() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Restore loads any persisted session at startup. A found token is
// revalidated against the profile endpoint; an unauthorized answer discards
// the session. Ready is set unconditionally once this returns, whatever the
// outcome.
func (m *Manager) Restore(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.ready = true
		m.mu.Unlock()
	}()

	anon := m.anonIdentity(ctx)

	var token string
	if err := m.st.Get(ctx, store.KeyToken, &token); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			m.logger.Warn("failed to read stored token", slog.String("error", err.Error()))
		}
		m.setState(ctx, "", nil, anon)
		return nil
	}

	var user *domain.User
	var stored domain.User
	if err := m.st.Get(ctx, store.KeyUser, &stored); err == nil {
		user = &stored
	}

	// Hold the token in memory so the revalidation call is authenticated.
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	fresh, err := m.backend.Me(ctx)
	switch {
	case err == nil:
		if setErr := m.st.Set(ctx, store.KeyUser, fresh); setErr != nil {
			m.logger.Warn("failed to persist refreshed profile", slog.String("error", setErr.Error()))
		}
		m.setState(ctx, token, fresh, identityOf(fresh, anon))
	case errors.Is(err, apperrors.ErrUnauthorized):
		// Stored credential is expired or revoked. Drop it.
		m.logger.Info("stored session rejected by backend, discarding")
		m.clearStored(ctx)
		m.setState(ctx, "", nil, anon)
	default:
		// Backend unreachable: keep the stored session and the possibly
		// stale profile copy. user==nil with a token is a valid state.
		m.logger.Warn("session revalidation unavailable, keeping stored session",
			slog.String("error", err.Error()))
		m.setState(ctx, token, user, identityOf(user, anon))
	}

	return nil
}

// Login establishes a session. Nothing is persisted when the credential
// exchange fails; a previously stored session for a different identity is
// overwritten on success.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	tr, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.token = tr.AccessToken
	m.mu.Unlock()

	user := tr.User
	if user == nil {
		fetched, meErr := m.backend.Me(ctx)
		switch {
		case meErr == nil:
			user = fetched
		case errors.Is(meErr, apperrors.ErrUnauthorized):
			// The freshly issued token does not work; treat the whole
			// login as failed and keep no partial state.
			m.mu.Lock()
			m.token = ""
			m.mu.Unlock()
			return meErr
		default:
			m.logger.Warn("profile fetch after login failed",
				slog.String("error", meErr.Error()))
		}
	}

	if err := m.st.Set(ctx, store.KeyToken, tr.AccessToken); err != nil {
		// Keep memory and store in agreement: a login that could not be
		// persisted did not happen.
		m.mu.Lock()
		m.token = ""
		m.mu.Unlock()
		return apperrors.Wrap(err, "persist token")
	}
	if user != nil {
		if err := m.st.Set(ctx, store.KeyUser, user); err != nil {
			m.mu.Lock()
			m.token = ""
			m.mu.Unlock()
			m.clearStored(ctx)
			return apperrors.Wrap(err, "persist profile")
		}
	}

	identity := identityOf(user, email)
	m.setState(ctx, tr.AccessToken, user, identity)

	m.logger.Info("session established", slog.String("identity", identity))
	return nil
}

// Register creates an account and logs in with the same credentials in one
// flow. Registration failures (typically a duplicate email conflict) and
// login failures surface distinctly but through the single returned error.
func (m *Manager) Register(ctx context.Context, draft domain.RegisterDraft) error {
	if err := m.backend.Register(ctx, draft); err != nil {
		return apperrors.Wrap(err, "registration failed")
	}
	if err := m.Login(ctx, draft.Email, draft.Password); err != nil {
		return apperrors.Wrap(err, "account created but login failed")
	}
	return nil
}

// Logout clears the session from memory and the store and hands the cart
// back to the anonymous bucket. The departing identity's stored cart entry
// is left in place so a later login restores it; the legacy unkeyed entry is
// dropped so it cannot leak into the anonymous session.
func (m *Manager) Logout(ctx context.Context) {
	m.clearStored(ctx)
	if err := m.st.Delete(ctx, store.KeyLegacyCart); err != nil {
		m.logger.Warn("failed to drop legacy cart entry", slog.String("error", err.Error()))
	}
	m.setState(ctx, "", nil, m.anonIdentity(ctx))
	m.logger.Info("session ended")
}

// UpdateProfile applies a partial update and replaces the cached profile
// with the server's returned representation, never a locally merged guess.
func (m *Manager) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	updated, err := m.backend.UpdateProfile(ctx, patch)
	if err != nil {
		return nil, err
	}

	if err := m.st.Set(ctx, store.KeyUser, updated); err != nil {
		m.logger.Warn("failed to persist updated profile", slog.String("error", err.Error()))
	}

	m.mu.Lock()
	m.user = updated
	m.mu.Unlock()

	return updated, nil
}

// ChangePassword rotates the password. Token and cached profile are left
// untouched.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	return m.backend.ChangePassword(ctx, current, next)
}

// Expire force-clears the session. Wired into the api client's unauthorized
// hook: a single expired-token failure must not leave the UI looking logged
// in while every call 401s.
func (m *Manager) Expire() {
	ctx := context.Background()
	m.mu.RLock()
	hadToken := m.token != ""
	m.mu.RUnlock()
	if !hadToken {
		return
	}

	m.logger.Info("session expired by backend, clearing state")
	m.clearStored(ctx)
	m.setState(ctx, "", nil, m.anonIdentity(ctx))
}

// setState swaps the in-memory session and notifies identity listeners when
// the partitioning identity changed.
func (m *Manager) setState(ctx context.Context, token string, user *domain.User, identity string) {
	m.mu.Lock()
	old := m.identity
	m.token = token
	m.user = user
	m.identity = identity
	listeners := make([]IdentityListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if old == identity {
		return
	}
	for _, fn := range listeners {
		fn(ctx, old, identity)
	}
}

// clearStored removes token and profile from the persistent store.
func (m *Manager) clearStored(ctx context.Context) {
	if err := m.st.Delete(ctx, store.KeyToken); err != nil {
		m.logger.Warn("failed to delete stored token", slog.String("error", err.Error()))
	}
	if err := m.st.Delete(ctx, store.KeyUser); err != nil {
		m.logger.Warn("failed to delete stored profile", slog.String("error", err.Error()))
	}
}

// anonIdentity returns the stable per-installation anonymous bucket,
// creating and persisting it on first use.
func (m *Manager) anonIdentity(ctx context.Context) string {
	m.mu.RLock()
	cached := m.anonID
	m.mu.RUnlock()
	if cached != "" {
		return cached
	}

	var id string
	if err := m.st.Get(ctx, store.KeyAnonID, &id); err != nil || id == "" {
		id = uuid.New().String()
		if err := m.st.Set(ctx, store.KeyAnonID, id); err != nil {
			m.logger.Warn("failed to persist anonymous id", slog.String("error", err.Error()))
		}
	}

	m.mu.Lock()
	m.anonID = id
	m.mu.Unlock()
	return id
}

// identityOf picks the partitioning identity for a profile, preferring the
// user id, then the email, then the given fallback.
func identityOf(user *domain.User, fallback string) string {
	if user != nil {
		if user.ID != "" {
			return user.ID
		}
		if user.Email != "" {
			return user.Email
		}
	}
	return fallback
}
