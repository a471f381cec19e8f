package ports

import (
	"context"
	"time"

	"github.com/jhoicas/showroom-api/internal/domain/catalog"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// CatalogDocument contenido de un catálogo imprimible: la vista agrupada ya filtrada.
type CatalogDocument struct {
	Title          string
	CurrencySymbol string
	GeneratedAt    time.Time
	Filter         catalog.Filter
	Groups         []catalog.Group
}

// CatalogPDFGenerator puerto de salida para renderizar el catálogo en PDF.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, doc CatalogDocument) ([]byte, error)
}

// CatalogCSVEncoder puerto de salida para exportar registros como CSV (mismo formato que
// consume la herramienta de carga inicial).
type CatalogCSVEncoder interface {
	EncodeCatalogCSV(products []*entity.Product) ([]byte, error)
}
