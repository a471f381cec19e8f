package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/showroom-api/internal/application/dto"
	"github.com/jhoicas/showroom-api/internal/domain"
	"github.com/jhoicas/showroom-api/internal/domain/catalog"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/domain/repository"
	"github.com/jhoicas/showroom-api/internal/infrastructure/media"
)

// ViewMode cómo presentar un listado. ViewAuto agrupa solo si no hay filtro ni búsqueda.
type ViewMode string

const (
	ViewAuto    ViewMode = "auto"
	ViewFlat    ViewMode = dto.ViewFlat
	ViewGrouped ViewMode = dto.ViewGrouped
)

// ProductUseCase casos de uso del catálogo. No guarda estado: cada consulta lee el almacén.
type ProductUseCase struct {
	repo           repository.ProductRepository
	currencySymbol string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, currencySymbol string) *ProductUseCase {
	return &ProductUseCase{repo: repo, currencySymbol: currencySymbol}
}

// Create valida y persiste un producto nuevo; el ID lo asigna el almacén.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	id, err := uc.repo.Add(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return uc.toProductResponse(product), nil
}

// Update reemplaza por completo el producto id (si no existe se crea con ese id).
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.fromRequest(in)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// Delete elimina un producto; un id inexistente no es error.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// GetByID devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return uc.toProductResponse(product), nil
}

// List lee todo el almacén y aplica el filtro (categoría y luego texto). Orden estable por ID.
func (uc *ProductUseCase) List(ctx context.Context, f catalog.Filter) ([]*entity.Product, error) {
	all, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	list := catalog.Apply(all, f)
	slices.SortFunc(list, func(a, b *entity.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return list, nil
}

// GroupByCategory particiona registros ya filtrados en la vista agrupada.
func (uc *ProductUseCase) GroupByCategory(products []*entity.Product) []catalog.Group {
	return catalog.GroupByCategory(products)
}

// Browse lista con el filtro y devuelve la forma pedida por el llamador.
func (uc *ProductUseCase) Browse(ctx context.Context, f catalog.Filter, mode ViewMode) (*dto.ProductListResponse, error) {
	list, err := uc.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if mode == ViewAuto {
		mode = ViewFlat
		if f.IsUnfiltered() {
			mode = ViewGrouped
		}
	}
	out := &dto.ProductListResponse{View: string(mode), Total: len(list)}
	if mode == ViewGrouped {
		for _, g := range uc.GroupByCategory(list) {
			out.Groups = append(out.Groups, dto.CategoryGroupResponse{
				Category: g.Category,
				Icon:     entity.CategoryIcon(g.Category),
				Items:    uc.toProductResponses(g.Products),
			})
		}
		return out, nil
	}
	out.Items = uc.toProductResponses(list)
	return out, nil
}

// Categories chips de filtro a partir del contenido actual del almacén.
func (uc *ProductUseCase) Categories(ctx context.Context) (*dto.CategoriesResponse, error) {
	all, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CategoriesResponse{Items: catalog.Categories(all)}, nil
}

// Cover devuelve la portada o la imagen de reemplazo. domain.ErrNotFound si el producto no existe.
func (uc *ProductUseCase) Cover(ctx context.Context, id int64) ([]byte, string, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	body, contentType := media.CoverOrPlaceholder(product)
	return body, contentType, nil
}

// Image devuelve la foto index. Fuera de rango -> domain.ErrNotFound; malformada -> reemplazo.
func (uc *ProductUseCase) Image(ctx context.Context, id int64, index int) ([]byte, string, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if index < 0 || index >= len(product.Images) {
		return nil, "", fmt.Errorf("%w: imagen %d de %d", domain.ErrNotFound, index, len(product.Images))
	}
	body, contentType := media.ImageOrPlaceholder(product, index)
	return body, contentType, nil
}

func (uc *ProductUseCase) find(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) fromRequest(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	images := make([]entity.Image, 0, len(in.Images))
	for i, raw := range in.Images {
		img := entity.Image(raw)
		if !media.IsImage(img) {
			return nil, fmt.Errorf("%w: images[%d] no es una imagen", domain.ErrInvalidInput, i)
		}
		images = append(images, img)
	}
	return &entity.Product{
		Name:      name,
		Price:     strings.TrimSpace(in.Price),
		Category:  strings.TrimSpace(in.Category),
		Details:   in.Details,
		Images:    images,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (uc *ProductUseCase) toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *uc.toProductResponse(p))
	}
	return items
}

func (uc *ProductUseCase) toProductResponse(p *entity.Product) *dto.ProductResponse {
	urls := make([]string, len(p.Images))
	for i := range p.Images {
		urls[i] = fmt.Sprintf("/api/products/%d/images/%d", p.ID, i)
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: p.PriceDisplay(uc.currencySymbol),
		Category:     p.NormalizedCategory(),
		Details:      p.Details,
		ImageCount:   len(p.Images),
		CoverURL:     fmt.Sprintf("/api/products/%d/cover", p.ID),
		ImageURLs:    urls,
		UpdatedAt:    p.UpdatedAt,
	}
}
