package domain

import "time"

// OrderStatus is the server-side order lifecycle state.
type OrderStatus string

const (
	OrderCreated   OrderStatus = "CREATED"
	OrderPaid      OrderStatus = "PAID"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderCreated, OrderPaid, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItemInput is a cart line reduced to what order creation needs.
type OrderItemInput struct {
	ProductID string `json:"producto_id"`
	Qty       int    `json:"qty"`
}

// OrderCreate is the order submission body. The client never computes the
// authoritative total; the server prices each item from the catalog.
type OrderCreate struct {
	Items           []OrderItemInput `json:"items"`
	DeliveryName    string           `json:"delivery_nombre"`
	DeliveryPhone   string           `json:"delivery_telefono"`
	DeliveryAddress string           `json:"delivery_direccion"`
	Notes           string           `json:"notas,omitempty"`
}

// OrderSummary is the list/confirmation view of an order.
type OrderSummary struct {
	ID        string      `json:"_id"`
	Code      string      `json:"code"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"creadoAt"`
}

// OrderSnapshotItem is a priced line item as frozen by the server at
// submission time.
type OrderSnapshotItem struct {
	ProductID string  `json:"producto_id"`
	Name      string  `json:"nombre"`
	UnitPrice float64 `json:"precio"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  string  `json:"imagenUrl,omitempty"`
}

// DeliveryInfo is the delivery block stored with an order.
type DeliveryInfo struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	Notes   string `json:"notas,omitempty"`
}

// OrderDetail is the full server view of a single order.
type OrderDetail struct {
	ID        string              `json:"_id"`
	UserID    string              `json:"userId"`
	Code      string              `json:"code"`
	Items     []OrderSnapshotItem `json:"items"`
	Total     float64             `json:"total"`
	Status    OrderStatus         `json:"status"`
	Delivery  DeliveryInfo        `json:"delivery"`
	CreatedAt time.Time           `json:"createdAt"`
}
