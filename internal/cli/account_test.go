package cli

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/api"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/session"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store/file"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// --- Fake Backend ---

// flakyProfileBackend issues tokens without an embedded user and fails every
// profile fetch with a transport-level error.
type flakyProfileBackend struct{}

func (flakyProfileBackend) Login(_ context.Context, _, _ string) (*api.TokenResponse, error) {
	return &api.TokenResponse{AccessToken: "tok-1", TokenType: "bearer"}, nil
}

func (flakyProfileBackend) Register(_ context.Context, _ domain.RegisterDraft) error {
	return nil
}

func (flakyProfileBackend) Me(_ context.Context) (*domain.User, error) {
	return nil, apperrors.Unavailable("backend unreachable")
}

func (flakyProfileBackend) UpdateProfile(_ context.Context, _ domain.ProfilePatch) (*domain.User, error) {
	return nil, apperrors.Unavailable("backend unreachable")
}

func (flakyProfileBackend) ChangePassword(_ context.Context, _, _ string) error {
	return nil
}

func newLoginTestUI(t *testing.T, input string) (*UI, *bytes.Buffer) {
	t.Helper()
	st, err := file.Open(filepath.Join(t.TempDir(), "storefront.json"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	sess := session.NewManager(st, flakyProfileBackend{}, logger)

	out := &bytes.Buffer{}
	u := &UI{
		session: sess,
		st:      st,
		logger:  logger,
		in:      bufio.NewScanner(strings.NewReader(input)),
		out:     out,
	}
	return u, out
}

// --- Tests ---

func TestCmdLogin_ProfileFetchFailureStillGreets(t *testing.T) {
	u, out := newLoginTestUI(t, "ana@example.com\nsecret\n")

	require.NotPanics(t, func() {
		u.cmdLogin(context.Background())
	})

	// The session holds a token but no cached profile; the greeting falls
	// back to the entered email.
	assert.Nil(t, u.session.User())
	assert.Contains(t, out.String(), "¡Bienvenido, ana@example.com!")
}

func TestGreeting(t *testing.T) {
	ana := &domain.User{Name: "Ana"}
	assert.Equal(t, "Ana", greeting(ana, "ana@example.com"))
	assert.Equal(t, "ana@example.com", greeting(nil, "ana@example.com"))
	assert.Equal(t, "ana@example.com", greeting(&domain.User{}, "ana@example.com"))
}
