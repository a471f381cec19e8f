package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/showroom-api/internal/application/usecase"
)

// CatalogHandler exportaciones del catálogo.
type CatalogHandler struct {
	uc *usecase.CatalogExportUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogExportUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ExportPDF godoc
// @Summary      Catálogo en PDF
// @Description  Vista agrupada de los productos que cumplen el filtro.
// @Tags         catalog
// @Produce      application/pdf
// @Param        category  query  string  false  "Categoría exacta"
// @Param        q         query  string  false  "Texto de búsqueda"
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/export.pdf [get]
func (h *CatalogHandler) ExportPDF(c *fiber.Ctx) error {
	body, name, err := h.uc.ExportPDF(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, body, name, "application/pdf")
}

// ExportCSV godoc
// @Summary      Catálogo en CSV
// @Tags         catalog
// @Produce      text/csv
// @Param        category  query  string  false  "Categoría exacta"
// @Param        q         query  string  false  "Texto de búsqueda"
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/export.csv [get]
func (h *CatalogHandler) ExportCSV(c *fiber.Ctx) error {
	body, name, err := h.uc.ExportCSV(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, body, name, "text/csv; charset=utf-8")
}

func sendAttachment(c *fiber.Ctx, body []byte, name, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(body)
}
