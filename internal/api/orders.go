package api

import (
	"context"
	"net/http"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

// Orders lists the current user's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := c.do(ctx, request{
		operation: "orders.list",
		method:    http.MethodGet,
		path:      "/api/orders",
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.OrderSummary{}
	}
	return out, nil
}

// Order fetches the full detail of one of the current user's orders.
func (c *Client) Order(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	var out domain.OrderDetail
	err := c.do(ctx, request{
		operation: "orders.detail",
		method:    http.MethodGet,
		path:      "/api/orders/" + orderID,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder submits the cart for fulfillment. The server prices the items
// and returns the authoritative total and order code.
func (c *Client) CreateOrder(ctx context.Context, order domain.OrderCreate) (*domain.OrderSummary, error) {
	var out domain.OrderSummary
	err := c.do(ctx, request{
		operation: "orders.create",
		method:    http.MethodPost,
		path:      "/api/orders",
		body:      order,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
