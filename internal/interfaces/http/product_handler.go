package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/showroom-api/internal/application/dto"
	"github.com/jhoicas/showroom-api/internal/application/usecase"
	"github.com/jhoicas/showroom-api/internal/domain/catalog"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Description  Sin filtro ni búsqueda la vista auto es agrupada por categoría; con cualquiera de ellos es plana.
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Categoría exacta; All o vacío = todas"
// @Param        q         query  string  false  "Texto en nombre o detalles (sin distinguir mayúsculas)"
// @Param        view      query  string  false  "auto | flat | grouped"  default(auto)
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	mode, ok := parseView(c.Query("view"))
	if !ok {
		return badRequest(c, "INVALID_VIEW", "view debe ser auto, flat o grouped")
	}
	out, err := h.uc.Browse(c.UserContext(), filterFromQuery(c), mode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías para filtrar
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", err.Error())
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Description  JSON con images en base64, o multipart/form-data con archivos en el campo images.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar producto
// @Description  Reemplazo completo: los campos omitidos quedan vacíos. Si el id no existe se crea con ese id.
// @Tags         products
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Registro completo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", err.Error())
	}
	in, err := parseProductRequest(c)
	if err != nil {
		return badRequest(c, "INVALID_BODY", err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Idempotente: un id inexistente también responde 204.
// @Tags         products
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", err.Error())
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cover godoc
// @Summary      Portada del producto
// @Description  Sin portada válida se sirve una imagen SVG de reemplazo.
// @Tags         products
// @Produce      image/png,image/jpeg,image/svg+xml
// @Param        id   path  int  true  "ID del producto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/cover [get]
func (h *ProductHandler) Cover(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", err.Error())
	}
	body, contentType, err := h.uc.Cover(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendImage(c, body, contentType)
}

// Image godoc
// @Summary      Foto por posición
// @Tags         products
// @Produce      image/png,image/jpeg,image/svg+xml
// @Param        id     path  int  true  "ID del producto"
// @Param        index  path  int  true  "Posición (0 = portada)"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images/{index} [get]
func (h *ProductHandler) Image(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return badRequest(c, "INVALID_ID", err.Error())
	}
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return badRequest(c, "INVALID_INDEX", "index debe ser un entero >= 0")
	}
	body, contentType, err := h.uc.Image(c.UserContext(), id, index)
	if err != nil {
		return writeError(c, err)
	}
	return sendImage(c, body, contentType)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func filterFromQuery(c *fiber.Ctx) catalog.Filter {
	return catalog.Filter{Category: c.Query("category"), SearchText: c.Query("q")}
}

func parseView(v string) (usecase.ViewMode, bool) {
	switch usecase.ViewMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", usecase.ViewAuto:
		return usecase.ViewAuto, true
	case usecase.ViewFlat:
		return usecase.ViewFlat, true
	case usecase.ViewGrouped:
		return usecase.ViewGrouped, true
	}
	return "", false
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id debe ser un entero positivo")
	}
	return int64(id), nil
}

func sendImage(c *fiber.Ctx, body []byte, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-cache")
	return c.Send(body)
}

// parseProductRequest acepta JSON (images en base64) o multipart (archivos "images").
func parseProductRequest(c *fiber.Ctx) (dto.ProductRequest, error) {
	var in dto.ProductRequest
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&in); err != nil {
			return in, fmt.Errorf("cuerpo inválido")
		}
		return in, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, fmt.Errorf("formulario inválido")
	}
	in.Name = formValue(form.Value, "name")
	in.Price = formValue(form.Value, "price")
	in.Category = formValue(form.Value, "category")
	in.Details = formValue(form.Value, "details")
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return in, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return in, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		in.Images = append(in.Images, data)
	}
	return in, nil
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
