package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/showroom-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	ExportUC  *usecase.CatalogExportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/categories", productHandler.Categories)

	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/cover", productHandler.Cover)
	products.Get("/:id/images/:index", productHandler.Image)

	if deps.ExportUC != nil {
		catalogHandler := NewCatalogHandler(deps.ExportUC)
		cat := api.Group("/catalog")
		cat.Get("/export.pdf", catalogHandler.ExportPDF)
		cat.Get("/export.csv", catalogHandler.ExportCSV)
	}
}
