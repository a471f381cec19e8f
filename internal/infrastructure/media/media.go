// Package media detecta el tipo de los blobs de imagen y provee la imagen de reemplazo.
package media

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// PlaceholderContentType tipo de PlaceholderSVG.
const PlaceholderContentType = "image/svg+xml"

// PlaceholderSVG se sirve cuando un producto no tiene portada o la portada es inválida.
var PlaceholderSVG = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">` +
	`<rect fill="#f5f5f4" width="100" height="100"/>` +
	`<text fill="#a8a29e" x="50" y="50" text-anchor="middle" font-family="serif" font-style="italic">No Image</text></svg>`)

// ContentType tipo MIME detectado del blob.
func ContentType(img entity.Image) string {
	return mimetype.Detect(img).String()
}

// IsImage indica si el blob es una imagen reconocible.
func IsImage(img entity.Image) bool {
	if !img.Valid() {
		return false
	}
	return strings.HasPrefix(mimetype.Detect(img).String(), "image/")
}

// Extension extensión detectada sin punto ("jpg", "png", ...).
func Extension(img entity.Image) string {
	return strings.TrimPrefix(mimetype.Detect(img).Extension(), ".")
}

// CoverOrPlaceholder devuelve la portada con su tipo o el reemplazo si no hay una válida.
func CoverOrPlaceholder(p *entity.Product) ([]byte, string) {
	return ImageOrPlaceholder(p, 0)
}

// ImageOrPlaceholder igual que CoverOrPlaceholder para cualquier posición válida del slice.
func ImageOrPlaceholder(p *entity.Product, index int) ([]byte, string) {
	if index < 0 || index >= len(p.Images) || !IsImage(p.Images[index]) {
		return PlaceholderSVG, PlaceholderContentType
	}
	img := p.Images[index]
	return img, ContentType(img)
}
