package checkout

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/store/file"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// --- Mocks ---

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreateOrder(ctx context.Context, order domain.OrderCreate) (*domain.OrderSummary, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderSummary), args.Error(1)
}

type stubSession struct {
	authed bool
}

func (s stubSession) Authenticated() bool { return s.authed }

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCart(t *testing.T) *cart.Manager {
	t.Helper()
	st, err := file.Open(filepath.Join(t.TempDir(), "storefront.json"))
	require.NoError(t, err)
	m := cart.NewManager(st, newTestLogger())
	m.Load(context.Background(), "u1")
	return m
}

func validForm() DeliveryForm {
	return DeliveryForm{
		Name:    "Ana",
		Phone:   "+52 55 1234 5678",
		Address: "Av. Siempre Viva 742",
	}
}

// --- Tests ---

func TestSubmit_Success(t *testing.T) {
	ctx := context.Background()
	cartMgr := newTestCart(t)
	cartMgr.AddItem(ctx, domain.Product{ID: "p1", Name: "Concha", Price: 12.5}, 2)
	require.InDelta(t, 25.0, cartMgr.Total(), 1e-9)

	backend := new(mockBackend)
	backend.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o domain.OrderCreate) bool {
		return len(o.Items) == 1 &&
			o.Items[0] == domain.OrderItemInput{ProductID: "p1", Qty: 2} &&
			o.DeliveryName == "Ana"
	})).Return(&domain.OrderSummary{ID: "o1", Code: "SR-0001", Total: 25.0, Status: domain.OrderCreated}, nil)

	svc := NewService(backend, stubSession{authed: true}, cartMgr, newTestLogger())
	summary, err := svc.Submit(ctx, validForm())

	require.NoError(t, err)
	assert.Equal(t, "SR-0001", summary.Code)
	assert.InDelta(t, 25.0, summary.Total, 1e-9)
	assert.Equal(t, domain.OrderCreated, summary.Status)

	// Cart is emptied only after the server accepted the order.
	assert.Zero(t, cartMgr.Len())
	backend.AssertExpectations(t)
}

func TestSubmit_TrimsFormFields(t *testing.T) {
	ctx := context.Background()
	cartMgr := newTestCart(t)
	cartMgr.AddItem(ctx, domain.Product{ID: "p1", Price: 1}, 1)

	backend := new(mockBackend)
	backend.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o domain.OrderCreate) bool {
		return o.DeliveryName == "Ana" && o.DeliveryAddress == "Av. Siempre Viva 742"
	})).Return(&domain.OrderSummary{Code: "SR-0002"}, nil)

	svc := NewService(backend, stubSession{authed: true}, cartMgr, newTestLogger())
	_, err := svc.Submit(ctx, DeliveryForm{
		Name:    "  Ana  ",
		Phone:   " +52 55 1234 5678 ",
		Address: "  Av. Siempre Viva 742  ",
	})
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestSubmit_InvalidForm(t *testing.T) {
	cartMgr := newTestCart(t)
	cartMgr.AddItem(context.Background(), domain.Product{ID: "p1", Price: 1}, 1)

	backend := new(mockBackend)
	svc := NewService(backend, stubSession{authed: true}, cartMgr, newTestLogger())

	cases := []struct {
		name string
		form DeliveryForm
	}{
		{"missing name", DeliveryForm{Phone: "+52 55 1234 5678", Address: "Av. Siempre Viva 742"}},
		{"bad phone", DeliveryForm{Name: "Ana", Phone: "not-a-phone!", Address: "Av. Siempre Viva 742"}},
		{"short phone", DeliveryForm{Name: "Ana", Phone: "12345", Address: "Av. Siempre Viva 742"}},
		{"short address", DeliveryForm{Name: "Ana", Phone: "+52 55 1234 5678", Address: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tc.form)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	backend.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	assert.Equal(t, 1, cartMgr.Len(), "cart untouched on validation failure")
}

func TestSubmit_EmptyCart(t *testing.T) {
	svc := NewService(new(mockBackend), stubSession{authed: true}, newTestCart(t), newTestLogger())

	_, err := svc.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSubmit_Unauthenticated(t *testing.T) {
	cartMgr := newTestCart(t)
	cartMgr.AddItem(context.Background(), domain.Product{ID: "p1", Price: 1}, 1)

	svc := NewService(new(mockBackend), stubSession{authed: false}, cartMgr, newTestLogger())

	_, err := svc.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 1, cartMgr.Len())
}

func TestSubmit_BackendFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	cartMgr := newTestCart(t)
	cartMgr.AddItem(ctx, domain.Product{ID: "p1", Price: 1}, 1)

	backend := new(mockBackend)
	backend.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, apperrors.Unavailable("backend down"))

	svc := NewService(backend, stubSession{authed: true}, cartMgr, newTestLogger())
	_, err := svc.Submit(ctx, validForm())

	require.Error(t, err)
	assert.Equal(t, 1, cartMgr.Len(), "cart must survive a failed submission")
}
