package dto

import "time"

// ProductRequest entrada para crear o reemplazar un producto (reemplazo completo, sin merge).
// Images viaja en base64 en JSON; en multipart se envían archivos en el campo "images".
type ProductRequest struct {
	Name     string   `json:"name" form:"name" validate:"required,min=1,max=200"`
	Price    string   `json:"price" form:"price"`
	Category string   `json:"category" form:"category"`
	Details  string   `json:"details" form:"details"`
	Images   [][]byte `json:"images" form:"-"`
}

// ProductResponse salida de un producto. Las fotos se descargan por URL, no inline.
type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Category     string    `json:"category"`
	Details      string    `json:"details"`
	ImageCount   int       `json:"image_count"`
	CoverURL     string    `json:"cover_url"`
	ImageURLs    []string  `json:"image_urls"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryGroupResponse un encabezado de la vista agrupada con sus productos.
type CategoryGroupResponse struct {
	Category string            `json:"category"`
	Icon     string            `json:"icon"`
	Items    []ProductResponse `json:"items"`
}

// Modos de vista del listado.
const (
	ViewFlat    = "flat"
	ViewGrouped = "grouped"
)

// ProductListResponse listado plano (Items) o agrupado (Groups) según View.
type ProductListResponse struct {
	View   string                  `json:"view"`
	Total  int                     `json:"total"`
	Items  []ProductResponse       `json:"items,omitempty"`
	Groups []CategoryGroupResponse `json:"groups,omitempty"`
}

// CategoriesResponse chips de filtro: All, las preferidas y las extra presentes.
type CategoriesResponse struct {
	Items []string `json:"items"`
}
