package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/showroom-api/internal/application/ports"
	"github.com/jhoicas/showroom-api/internal/domain/catalog"
)

// CatalogExportUseCase exporta el catálogo filtrado a PDF (vista agrupada) o CSV (vista plana).
type CatalogExportUseCase struct {
	products *ProductUseCase
	pdf      ports.CatalogPDFGenerator
	csv      ports.CatalogCSVEncoder
	title    string
	symbol   string
	now      func() time.Time
}

// NewCatalogExportUseCase construye el caso de uso.
func NewCatalogExportUseCase(
	products *ProductUseCase,
	pdf ports.CatalogPDFGenerator,
	csv ports.CatalogCSVEncoder,
	title, currencySymbol string,
) *CatalogExportUseCase {
	return &CatalogExportUseCase{
		products: products,
		pdf:      pdf,
		csv:      csv,
		title:    title,
		symbol:   currencySymbol,
		now:      time.Now,
	}
}

// ExportPDF devuelve el PDF y el nombre de archivo sugerido.
func (uc *CatalogExportUseCase) ExportPDF(ctx context.Context, f catalog.Filter) ([]byte, string, error) {
	list, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	body, err := uc.pdf.GenerateCatalogPDF(ctx, ports.CatalogDocument{
		Title:          uc.title,
		CurrencySymbol: uc.symbol,
		GeneratedAt:    now,
		Filter:         f,
		Groups:         uc.products.GroupByCategory(list),
	})
	if err != nil {
		return nil, "", fmt.Errorf("exportar pdf: %w", err)
	}
	return body, fileName(now, "pdf"), nil
}

// ExportCSV devuelve el CSV y el nombre de archivo sugerido.
func (uc *CatalogExportUseCase) ExportCSV(ctx context.Context, f catalog.Filter) ([]byte, string, error) {
	list, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, "", err
	}
	body, err := uc.csv.EncodeCatalogCSV(list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar csv: %w", err)
	}
	return body, fileName(uc.now(), "csv"), nil
}

func fileName(t time.Time, ext string) string {
	return fmt.Sprintf("catalogo-%s.%s", t.Format("20060102"), ext)
}
