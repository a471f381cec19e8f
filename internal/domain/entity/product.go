package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Image blob binario de una foto tal como se subió. Vacío = entrada inválida recuperada al leer.
type Image []byte

// Valid indica si el blob tiene contenido utilizable como imagen.
func (i Image) Valid() bool { return len(i) > 0 }

// Product representa un mueble del catálogo.
// ID lo asigna el almacén al crear y no cambia; Images[0] es la portada.
type Product struct {
	ID        int64
	Name      string
	Price     string // tal como se ingresó; se interpreta como monto solo al mostrar
	Category  string // vacío se resuelve a Other (ver NormalizedCategory)
	Details   string
	Images    []Image
	UpdatedAt time.Time
}

// NormalizedCategory categoría efectiva del registro (nunca vacía).
func (p *Product) NormalizedCategory() string {
	return NormalizeCategory(p.Category)
}

// Cover devuelve la portada y si es utilizable.
func (p *Product) Cover() (Image, bool) {
	if len(p.Images) == 0 || !p.Images[0].Valid() {
		return nil, false
	}
	return p.Images[0], true
}

// PriceAmount interpreta Price como monto decimal.
func (p *Product) PriceAmount() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(p.Price))
}

var pricePrinter = message.NewPrinter(language.English)

// PriceDisplay formatea el precio con símbolo y separador de miles: "4999" -> "₹4,999".
// Un precio que no es numérico se devuelve tal cual.
func (p *Product) PriceDisplay(symbol string) string {
	amount, err := p.PriceAmount()
	if err != nil {
		return p.Price
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	rounded := amount.Round(2)
	out := sign + symbol + pricePrinter.Sprintf("%d", rounded.IntPart())
	if !rounded.Equal(rounded.Truncate(0)) {
		fixed := rounded.StringFixed(2)
		out += fixed[strings.IndexByte(fixed, '.'):]
	}
	return out
}
