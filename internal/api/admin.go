package api

import (
	"context"
	"net/http"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

// The admin surface mirrors the customer endpoints under /api/admin and is
// gated server-side on the admin role; the client additionally checks
// user.IsAdmin() before rendering the panel, but never trusts that check.

// AdminListProducts lists all products including inactive ones.
func (c *Client) AdminListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, request{
		operation: "admin.products.list",
		method:    http.MethodGet,
		path:      "/api/admin/products",
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out, nil
}

// AdminCreateProduct creates a catalog product.
func (c *Client) AdminCreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, request{
		operation: "admin.products.create",
		method:    http.MethodPost,
		path:      "/api/admin/products",
		body:      draft,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUpdateProduct replaces a product.
func (c *Client) AdminUpdateProduct(ctx context.Context, productID string, draft domain.ProductDraft) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, request{
		operation: "admin.products.update",
		method:    http.MethodPut,
		path:      "/api/admin/products/" + productID,
		body:      draft,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminPatchProduct applies a partial product update (e.g. toggling
// availability from the panel).
func (c *Client) AdminPatchProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, request{
		operation: "admin.products.patch",
		method:    http.MethodPatch,
		path:      "/api/admin/products/" + productID,
		body:      patch,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteProduct removes a product. The backend answers 204.
func (c *Client) AdminDeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, request{
		operation: "admin.products.delete",
		method:    http.MethodDelete,
		path:      "/api/admin/products/" + productID,
		authed:    true,
	})
}

// AdminListOrders lists every order in the system, newest first.
func (c *Client) AdminListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	var out []domain.OrderSummary
	err := c.do(ctx, request{
		operation: "admin.orders.list",
		method:    http.MethodGet,
		path:      "/api/admin/orders",
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

// AdminOrderDetail fetches any order's full detail.
func (c *Client) AdminOrderDetail(ctx context.Context, orderID string) (*domain.OrderDetail, error) {
	var out domain.OrderDetail
	err := c.do(ctx, request{
		operation: "admin.orders.detail",
		method:    http.MethodGet,
		path:      "/api/admin/orders/" + orderID,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminUpdateOrderStatus moves an order to a new lifecycle state.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	body := struct {
		Status domain.OrderStatus `json:"status"`
	}{Status: status}

	return c.do(ctx, request{
		operation: "admin.orders.status",
		method:    http.MethodPatch,
		path:      "/api/admin/orders/" + orderID,
		body:      body,
		authed:    true,
	})
}

// AdminListClients lists registered customer accounts.
func (c *Client) AdminListClients(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.do(ctx, request{
		operation: "admin.clients.list",
		method:    http.MethodGet,
		path:      "/api/admin/clients",
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.User{}
	}
	return out, nil
}
