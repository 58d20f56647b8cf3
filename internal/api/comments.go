package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

// Comments lists the reviews for a product, newest first.
func (c *Client) Comments(ctx context.Context, productID string) ([]domain.Comment, error) {
	q := url.Values{}
	q.Set("producto_id", productID)

	var out []domain.Comment
	err := c.do(ctx, request{
		operation: "comments.list",
		method:    http.MethodGet,
		path:      "/api/comentarios",
		query:     q,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Comment{}
	}
	return out, nil
}

// CreateComment posts a review for a product. Requires authentication.
func (c *Client) CreateComment(ctx context.Context, draft domain.CommentDraft) (*domain.Comment, error) {
	var out domain.Comment
	err := c.do(ctx, request{
		operation: "comments.create",
		method:    http.MethodPost,
		path:      "/api/comentarios",
		body:      draft,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
