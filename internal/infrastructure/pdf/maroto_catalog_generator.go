// Package pdf genera el catálogo imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del catálogo          │  Fecha + filtro     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA (n)                                              │
//	│  FOTO │ Nombre + detalles                       │  Precio   │
//	│  ...                                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/showroom-api/internal/application/ports"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/infrastructure/media"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 68, Green: 64, Blue: 60}
	colorGray    = &props.Color{Red: 120, Green: 113, Blue: 108}
)

// fallbackSymbol reemplaza símbolos de moneda que la fuente base (cp1252) no puede dibujar.
const fallbackSymbol = "Rs. "

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogGenerator implementa ports.CatalogPDFGenerator usando Maroto v2.
type MarotoCatalogGenerator struct{}

// NewMarotoCatalogGenerator construye el generador.
func NewMarotoCatalogGenerator() *MarotoCatalogGenerator { return &MarotoCatalogGenerator{} }

// GenerateCatalogPDF genera el PDF y devuelve sus bytes.
func (g *MarotoCatalogGenerator) GenerateCatalogPDF(ctx context.Context, doc ports.CatalogDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)
	symbol := printableSymbol(doc.CurrencySymbol)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := 0
	for _, group := range doc.Groups {
		m.AddRows(groupHeaderRow(group.Category, len(group.Products)))
		for _, p := range group.Products {
			m.AddRows(productRow(p, symbol))
			total++
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	if total == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No hay productos para este filtro.", props.Text{
				Size: 10, Align: align.Center, Top: 4, Color: colorGray,
			}),
		)))
	}

	m.AddRows(footerRow(total))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar catálogo: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc ports.CatalogDocument) core.Row {
	scope := "Todas las categorías"
	if !doc.Filter.IsUnfiltered() {
		scope = filterLabel(doc)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(doc.Title, "Catálogo"), props.Text{
				Style: fontstyle.BoldItalic, Size: 16, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(scope, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func groupHeaderRow(category string, count int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%d)", category, count), props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 3,
		}),
	))
}

func productRow(p *entity.Product, symbol string) core.Row {
	photo := col.New(3)
	if cover, ext, ok := embeddableCover(p); ok {
		photo = photo.Add(image.NewFromBytes(cover, ext, props.Rect{Center: true, Percent: 90}))
	} else {
		photo = photo.Add(text.New("Sin imagen", props.Text{
			Size: 7, Align: align.Center, Top: 12, Color: colorGray, Style: fontstyle.Italic,
		}))
	}
	return row.New(32).Add(
		photo,
		col.New(6).Add(
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3, Left: 2}),
			text.New(p.Details, props.Text{Size: 8, Top: 9, Left: 2, Color: colorGray}),
		),
		col.New(3).Add(
			text.New(p.PriceDisplay(symbol), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3, Right: 1,
			}),
		),
	)
}

func footerRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos", total), props.Text{
			Size: 7, Align: align.Right, Top: 3, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// embeddableCover devuelve la portada si es un JPEG o PNG que se puede decodificar.
func embeddableCover(p *entity.Product) ([]byte, extension.Type, bool) {
	cover, ok := p.Cover()
	if !ok {
		return nil, "", false
	}
	var ext extension.Type
	switch media.Extension(cover) {
	case "jpg", "jpeg":
		ext = extension.Jpg
	case "png":
		ext = extension.Png
	default:
		return nil, "", false
	}
	if _, _, err := stdimage.DecodeConfig(bytes.NewReader(cover)); err != nil {
		return nil, "", false
	}
	return cover, ext, true
}

// printableSymbol conserva el símbolo si existe en cp1252 (la codificación de las fuentes base).
func printableSymbol(symbol string) string {
	if _, err := charmap.Windows1252.NewEncoder().String(symbol); err != nil {
		return fallbackSymbol
	}
	return symbol
}

func filterLabel(doc ports.CatalogDocument) string {
	f := doc.Filter
	term := strings.TrimSpace(f.SearchText)
	switch {
	case f.Category != "" && f.Category != entity.CategoryAll && term != "":
		return fmt.Sprintf("%s · \"%s\"", f.Category, term)
	case term != "":
		return fmt.Sprintf("\"%s\"", term)
	}
	return f.Category
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
