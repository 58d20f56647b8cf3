package domain

import "time"

// Comment is a product review as returned by the backend.
type Comment struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"producto_id"`
	UserID    string    `json:"usuario_id"`
	Text      string    `json:"texto"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"creadoAt"`
}

// CommentDraft is the body for posting a new comment.
type CommentDraft struct {
	ProductID string `json:"producto_id" validate:"required"`
	Text      string `json:"texto" validate:"required,min=1,max=500"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
}
