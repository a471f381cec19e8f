package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/showroom-api/internal/domain/catalog"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

func product(id int64, name, category, details string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Category: category, Details: details}
}

func ids(products []*entity.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SinFiltroDevuelveTodo(t *testing.T) {
	all := []*entity.Product{
		product(1, "Oak Table", "Table", ""),
		product(2, "Stool", "", ""),
	}

	got := catalog.Apply(all, catalog.Filter{Category: entity.CategoryAll, SearchText: ""})
	assert.Equal(t, []int64{1, 2}, ids(got))

	got = catalog.Apply(all, catalog.Filter{})
	assert.Equal(t, []int64{1, 2}, ids(got), "categoría vacía equivale a All")
}

func TestApply_FiltroCategoriaExacto(t *testing.T) {
	all := []*entity.Product{
		product(1, "Armchair", "Chair", ""),
		product(2, "Lowercase chair", "chair", ""),
		product(3, "Bench", "", ""),
	}

	got := catalog.Apply(all, catalog.Filter{Category: "Chair"})
	assert.Equal(t, []int64{1}, ids(got), "la comparación de categoría no pliega mayúsculas")

	got = catalog.Apply(all, catalog.Filter{Category: entity.CategoryOther})
	assert.Equal(t, []int64{3}, ids(got), "sin categoría se normaliza a Other")
}

func TestApply_BusquedaEnNombreODetalles(t *testing.T) {
	all := []*entity.Product{
		product(1, "Oak Table", "Table", ""),
		product(2, "Bed", "Bed", "solid OAK frame"),
		product(3, "Sofa", "Sofa", "velvet"),
	}

	got := catalog.Apply(all, catalog.Filter{SearchText: "  oak "})
	assert.Equal(t, []int64{1, 2}, ids(got))
}

func TestApply_CategoriaYBusquedaSeCombinanConAND(t *testing.T) {
	all := []*entity.Product{
		product(1, "Oak Table", "Table", ""),
		product(2, "Oak Bed", "Bed", ""),
		product(3, "Glass Table", "Table", ""),
	}

	got := catalog.Apply(all, catalog.Filter{Category: "Table", SearchText: "oak"})
	assert.Equal(t, []int64{1}, ids(got))
}

func TestFilter_IsUnfiltered(t *testing.T) {
	assert.True(t, catalog.Filter{}.IsUnfiltered())
	assert.True(t, catalog.Filter{Category: "All", SearchText: "   "}.IsUnfiltered())
	assert.False(t, catalog.Filter{Category: "Sofa"}.IsUnfiltered())
	assert.False(t, catalog.Filter{SearchText: "oak"}.IsUnfiltered())
}

// ──────────────────────────────────────────────────────────────────────────────
// Agrupación
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupByCategory_OrdenPreferido(t *testing.T) {
	a := product(1, "A", "Sofa", "")
	b := product(2, "B", "Chair", "")
	c := product(3, "C", "Sofa", "")

	groups := catalog.GroupByCategory([]*entity.Product{b, a, c})
	require.Len(t, groups, 2)
	assert.Equal(t, "Sofa", groups[0].Category, "Sofa va antes que Chair sin importar el orden de inserción")
	assert.Equal(t, []int64{1, 3}, ids(groups[0].Products))
	assert.Equal(t, "Chair", groups[1].Category)
	assert.Equal(t, []int64{2}, ids(groups[1].Products))
}

func TestGroupByCategory_ExtrasPorPrimeraAparicion(t *testing.T) {
	groups := catalog.GroupByCategory([]*entity.Product{
		product(1, "Lamp", "Lighting", ""),
		product(2, "Rug", "Decor", ""),
		product(3, "Misc", "", ""),
		product(4, "Lamp 2", "Lighting", ""),
	})

	var order []string
	for _, g := range groups {
		order = append(order, g.Category)
	}
	assert.Equal(t, []string{"Other", "Lighting", "Decor"}, order)
	assert.Equal(t, []int64{1, 4}, ids(groups[1].Products))
}

func TestGroupByCategory_Vacio(t *testing.T) {
	assert.Empty(t, catalog.GroupByCategory(nil))
}

func TestCategories_IncluyeAllPreferidasYExtras(t *testing.T) {
	got := catalog.Categories([]*entity.Product{
		product(1, "Lamp", "Lighting", ""),
		product(2, "Sofa", "Sofa", ""),
	})
	assert.Equal(t, []string{"All", "Sofa", "Bed", "Table", "Chair", "Storage", "Other", "Lighting"}, got)
}
