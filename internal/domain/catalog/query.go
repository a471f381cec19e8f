// Package catalog contiene las reglas de consulta del catálogo (servicio de dominio puro):
// filtro por categoría, búsqueda de texto y agrupación por categoría.
package catalog

import (
	"strings"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// Filter criterios opcionales de listado. Ambos se combinan con AND.
type Filter struct {
	Category   string // "" o entity.CategoryAll = sin filtro
	SearchText string // subcadena sin distinguir mayúsculas en Name o Details
}

func (f Filter) hasCategory() bool {
	return f.Category != "" && f.Category != entity.CategoryAll
}

func (f Filter) search() string {
	return strings.TrimSpace(f.SearchText)
}

// IsUnfiltered indica si no hay filtro ni búsqueda activos (corresponde a la vista agrupada).
func (f Filter) IsUnfiltered() bool {
	return !f.hasCategory() && f.search() == ""
}

// Matches evalúa un registro contra el filtro.
func (f Filter) Matches(p *entity.Product) bool {
	if f.hasCategory() && p.NormalizedCategory() != f.Category {
		return false
	}
	term := f.search()
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Details), term)
}

// Apply devuelve los registros que cumplen el filtro, conservando el orden de entrada.
func Apply(products []*entity.Product, f Filter) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Group productos de una misma categoría normalizada.
type Group struct {
	Category string
	Products []*entity.Product
}

// GroupByCategory particiona por categoría normalizada. Primero el orden preferido
// (Sofa, Bed, Table, Chair, Storage, Other), luego el resto por primera aparición.
// Se omiten los grupos vacíos; dentro de cada grupo se conserva el orden de entrada.
func GroupByCategory(products []*entity.Product) []Group {
	buckets := make(map[string][]*entity.Product)
	var seen []string
	for _, p := range products {
		cat := p.NormalizedCategory()
		if _, ok := buckets[cat]; !ok {
			seen = append(seen, cat)
		}
		buckets[cat] = append(buckets[cat], p)
	}

	groups := make([]Group, 0, len(buckets))
	for _, cat := range orderCategories(seen) {
		if list := buckets[cat]; len(list) > 0 {
			groups = append(groups, Group{Category: cat, Products: list})
		}
	}
	return groups
}

// Categories lista para los chips de filtro: All, el orden preferido y luego las
// categorías extra presentes en los registros.
func Categories(products []*entity.Product) []string {
	var seen []string
	known := make(map[string]bool)
	for _, p := range products {
		cat := p.NormalizedCategory()
		if !known[cat] {
			known[cat] = true
			seen = append(seen, cat)
		}
	}
	return append([]string{entity.CategoryAll}, orderCategories(seen)...)
}

// orderCategories antepone el orden preferido y agrega las demás en el orden recibido.
func orderCategories(seen []string) []string {
	order := make([]string, 0, len(entity.PreferredCategoryOrder)+len(seen))
	order = append(order, entity.PreferredCategoryOrder...)
	preferred := make(map[string]bool, len(order))
	for _, c := range order {
		preferred[c] = true
	}
	for _, c := range seen {
		if !preferred[c] {
			order = append(order, c)
			preferred[c] = true
		}
	}
	return order
}
