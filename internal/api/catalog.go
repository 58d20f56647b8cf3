package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

// Products lists the public catalog, optionally filtered by category.
// The backend only returns available products on this endpoint.
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("categoria", category)
	}

	var out []domain.Product
	err := c.do(ctx, request{
		operation: "catalog.list",
		method:    http.MethodGet,
		path:      "/api/productos",
		query:     q,
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
