// Package csvexport serializa registros del catálogo como CSV con gocsv.
// Las columnas coinciden con las que lee cmd/seed, así un export se puede volver a cargar.
package csvexport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// Row fila CSV del catálogo. Las fotos no viajan en CSV.
type Row struct {
	ID       int64  `csv:"id"`
	Name     string `csv:"name"`
	Price    string `csv:"price"`
	Category string `csv:"category"`
	Details  string `csv:"details"`
	Images   int    `csv:"image_count"`
}

// Encoder implementa ports.CatalogCSVEncoder.
type Encoder struct{}

// NewEncoder construye el encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// EncodeCatalogCSV escribe cabecera + una fila por producto en el orden recibido.
func (e *Encoder) EncodeCatalogCSV(products []*entity.Product) ([]byte, error) {
	rows := make([]*Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, &Row{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.NormalizedCategory(),
			Details:  p.Details,
			Images:   len(p.Images),
		})
	}
	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, fmt.Errorf("csv: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode lee filas CSV (con cabecera). Columnas desconocidas se ignoran.
func Decode(r io.Reader) ([]*Row, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	return rows, nil
}
