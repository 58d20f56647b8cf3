package domain

// CartLine is a single cart line item. The JSON tags match the shape the
// original storefront persisted, so existing stored carts decode unchanged.
type CartLine struct {
	ProductID string  `json:"producto_id"`
	Name      string  `json:"nombre"`
	UnitPrice float64 `json:"precio"`
	Quantity  int     `json:"qty"`
	ImageURL  string  `json:"imagenUrl,omitempty"`
}

// Subtotal returns the line subtotal. Rounding happens only at display time.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
