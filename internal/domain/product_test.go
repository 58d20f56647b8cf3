package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshalProduct(t *testing.T, raw string) Product {
	t.Helper()
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestProductUnmarshal_CurrentFieldNames(t *testing.T) {
	p := unmarshalProduct(t, `{
		"_id": "p1",
		"nombre": "Concha de vainilla",
		"descripcion": "Pan dulce tradicional",
		"precio": 12.5,
		"categoria": "pan dulce",
		"imagenUrl": "https://img/concha.jpg",
		"stock": 20,
		"disponible": true
	}`)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Concha de vainilla", p.Name)
	assert.Equal(t, "Pan dulce tradicional", p.Description)
	assert.InDelta(t, 12.5, p.Price, 1e-9)
	assert.Equal(t, "pan dulce", p.Category)
	assert.Equal(t, "https://img/concha.jpg", p.ImageURL)
	assert.Equal(t, 20, p.Stock)
	assert.True(t, p.Available)
}

func TestProductUnmarshal_LegacyFieldNames(t *testing.T) {
	p := unmarshalProduct(t, `{
		"id": "p2",
		"title": "Bolillo",
		"price": 4,
		"category": "pan salado",
		"image": "https://img/bolillo.jpg",
		"activo": false
	}`)

	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, "Bolillo", p.Name)
	assert.InDelta(t, 4.0, p.Price, 1e-9)
	assert.Equal(t, "pan salado", p.Category)
	assert.Equal(t, "https://img/bolillo.jpg", p.ImageURL)
	assert.False(t, p.Available)
}

func TestProductUnmarshal_PreferenceOrder(t *testing.T) {
	// When both spellings are present the legacy English names win, matching
	// how documents were historically read.
	p := unmarshalProduct(t, `{
		"id": "plain",
		"_id": "mongo",
		"title": "Title",
		"nombre": "Nombre",
		"price": 1,
		"precio": 2,
		"image": "a.jpg",
		"imagenUrl": "b.jpg"
	}`)

	assert.Equal(t, "plain", p.ID)
	assert.Equal(t, "Title", p.Name)
	assert.InDelta(t, 1.0, p.Price, 1e-9)
	assert.Equal(t, "a.jpg", p.ImageURL)
}

func TestProductUnmarshal_Defaults(t *testing.T) {
	p := unmarshalProduct(t, `{"_id": "p3"}`)

	assert.Equal(t, "Producto", p.Name, "missing name falls back to a placeholder")
	assert.True(t, p.Available, "missing availability defaults to available")
	assert.Zero(t, p.Price)
}

func TestProductUnmarshal_DisponibleWinsOverActivo(t *testing.T) {
	p := unmarshalProduct(t, `{"_id": "p4", "disponible": false, "activo": true}`)
	assert.False(t, p.Available)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderCreated, OrderPaid, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s), "%s", s)
	}
	assert.False(t, ValidOrderStatus("SHIPPED"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("created"))
}

func TestCartLineSubtotal(t *testing.T) {
	line := CartLine{ProductID: "p1", UnitPrice: 12.5, Quantity: 3}
	assert.InDelta(t, 37.5, line.Subtotal(), 1e-9)
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleCustomer}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
}
