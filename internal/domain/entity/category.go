package entity

// Categorías conocidas del catálogo. La enumeración es abierta: cualquier otro texto es válido.
const (
	CategorySofa    = "Sofa"
	CategoryBed     = "Bed"
	CategoryTable   = "Table"
	CategoryChair   = "Chair"
	CategoryStorage = "Storage"
	CategoryOther   = "Other"

	// CategoryAll es el centinela de filtro "sin filtro de categoría". Nunca se persiste.
	CategoryAll = "All"
)

// PreferredCategoryOrder orden fijo de la vista agrupada.
var PreferredCategoryOrder = []string{
	CategorySofa,
	CategoryBed,
	CategoryTable,
	CategoryChair,
	CategoryStorage,
	CategoryOther,
}

var categoryIcons = map[string]string{
	CategorySofa:    "🛋️",
	CategoryBed:     "🛏️",
	CategoryTable:   "桌",
	CategoryChair:   "🪑",
	CategoryStorage: "📦",
	CategoryOther:   "✨",
}

// NormalizeCategory resuelve una categoría ausente a Other. Comparación exacta, sin case folding.
func NormalizeCategory(category string) string {
	if category == "" {
		return CategoryOther
	}
	return category
}

// CategoryIcon icono de cabecera de la vista agrupada (✨ para categorías desconocidas).
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}
