// Package checkout turns the cart into a submitted order: local validation
// of the delivery form, the create-order call, and the post-success cart
// clear.
package checkout

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/cart"
	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/validator"
)

// phoneRegexp matches what the backend accepts for delivery phones.
var phoneRegexp = regexp.MustCompile(`^[\d+\-\s]{6,20}$`)

func init() {
	// Registered once for the process; the tag is also used by profile forms.
	_ = validator.RegisterValidation("phone", func(fl playground.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
}

// Backend is the slice of the api client that checkout depends on.
type Backend interface {
	CreateOrder(ctx context.Context, order domain.OrderCreate) (*domain.OrderSummary, error)
}

// Session exposes the auth facts checkout needs.
type Session interface {
	Authenticated() bool
}

// DeliveryForm is the user-entered delivery block. Fields are trimmed
// before validation.
type DeliveryForm struct {
	Name    string `validate:"required,min=1,max=120"`
	Phone   string `validate:"required,phone"`
	Address string `validate:"required,min=5,max=240"`
	Notes   string `validate:"max=500"`
}

// Service coordinates cart, session, and the order endpoint.
type Service struct {
	backend Backend
	session Session
	cart    *cart.Manager
	logger  *slog.Logger
}

// NewService creates a checkout service.
func NewService(backend Backend, session Session, cartManager *cart.Manager, logger *slog.Logger) *Service {
	return &Service{
		backend: backend,
		session: session,
		cart:    cartManager,
		logger:  logger,
	}
}

// Submit validates the form and the cart, submits the order, and clears the
// cart on success. The returned summary carries the server-assigned code and
// the server-computed total; the client never recomputes either.
func (s *Service) Submit(ctx context.Context, form DeliveryForm) (*domain.OrderSummary, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Address = strings.TrimSpace(form.Address)
	form.Notes = strings.TrimSpace(form.Notes)

	if err := validator.Validate(form); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if s.cart.Len() == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	if !s.session.Authenticated() {
		return nil, apperrors.Unauthorized("login required to confirm an order")
	}

	order := domain.OrderCreate{
		Items:           s.cart.OrderItems(),
		DeliveryName:    form.Name,
		DeliveryPhone:   form.Phone,
		DeliveryAddress: form.Address,
		Notes:           form.Notes,
	}

	summary, err := s.backend.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.cart.Clear(ctx)

	s.logger.Info("order confirmed",
		slog.String("code", summary.Code),
		slog.Float64("total", summary.Total),
	)
	return summary, nil
}
