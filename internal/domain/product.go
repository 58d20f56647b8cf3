package domain

import "encoding/json"

// Product is the canonical catalog product shape. The backend has grown
// several generations of field names (title/nombre, price/precio,
// image/imagenUrl, activo/disponible); decoding normalizes all of them so
// the rest of the client only ever sees this struct.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion,omitempty"`
	Price       float64 `json:"precio"`
	Category    string  `json:"categoria,omitempty"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
	Slug        string  `json:"slug,omitempty"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"disponible"`
}

// productWire carries every historical spelling the backend may emit.
type productWire struct {
	ID          string   `json:"id"`
	AltID       string   `json:"_id"`
	Title       *string  `json:"title"`
	Nombre      *string  `json:"nombre"`
	Description string   `json:"descripcion"`
	Price       *float64 `json:"price"`
	Precio      *float64 `json:"precio"`
	Category    *string  `json:"category"`
	Categoria   *string  `json:"categoria"`
	Image       *string  `json:"image"`
	ImagenURL   *string  `json:"imagenUrl"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Activo      *bool    `json:"activo"`
	Disponible  *bool    `json:"disponible"`
}

// UnmarshalJSON decodes a product document, accepting both the current and
// the legacy field names. Preference order matches the original client:
// title before nombre, price before precio, image before imagenUrl.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	p.ID = w.ID
	if p.ID == "" {
		p.ID = w.AltID
	}

	p.Name = firstString(w.Title, w.Nombre)
	if p.Name == "" {
		p.Name = "Producto"
	}
	p.Description = w.Description
	p.Price = firstFloat(w.Price, w.Precio)
	p.Category = firstString(w.Category, w.Categoria)
	p.ImageURL = firstString(w.Image, w.ImagenURL)
	p.Slug = w.Slug
	p.Stock = w.Stock

	// "disponible" is the outward flag, "activo" the stored one.
	switch {
	case w.Disponible != nil:
		p.Available = *w.Disponible
	case w.Activo != nil:
		p.Available = *w.Activo
	default:
		p.Available = true
	}

	return nil
}

func firstString(candidates ...*string) string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return *c
		}
	}
	return ""
}

func firstFloat(candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return 0
}

// ProductDraft is the write shape for admin product create/update.
type ProductDraft struct {
	Name        string  `json:"nombre" validate:"required,min=2"`
	Description string  `json:"descripcion,omitempty"`
	Price       float64 `json:"precio" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Active      bool    `json:"activo"`
	ImageURL    string  `json:"imagenUrl,omitempty"`
	Category    string  `json:"categoria,omitempty"`
	Slug        string  `json:"slug,omitempty"`
}

// ProductPatch holds a partial admin update; nil fields are omitted from the
// request body.
type ProductPatch struct {
	Name        *string  `json:"nombre,omitempty"`
	Description *string  `json:"descripcion,omitempty"`
	Price       *float64 `json:"precio,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Active      *bool    `json:"activo,omitempty"`
	ImageURL    *string  `json:"imagenUrl,omitempty"`
	Category    *string  `json:"categoria,omitempty"`
}
