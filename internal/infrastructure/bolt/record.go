package bolt

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// storedProduct forma persistida de un Product. Images se guarda como entradas crudas
// para tolerar elementos que no son blobs; Image es el campo de una sola foto del esquema v1.
type storedProduct struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	Price     string                `json:"price"`
	Category  string                `json:"category,omitempty"`
	Details   string                `json:"details,omitempty"`
	Images    []jsoniter.RawMessage `json:"images,omitempty"`
	Image     jsoniter.RawMessage   `json:"image,omitempty"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

func fromEntity(p *entity.Product) (storedProduct, error) {
	rec := storedProduct{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Details:   p.Details,
		UpdatedAt: p.UpdatedAt,
	}
	for _, img := range p.Images {
		raw, err := json.Marshal([]byte(img))
		if err != nil {
			return storedProduct{}, err
		}
		rec.Images = append(rec.Images, raw)
	}
	return rec, nil
}

func (r storedProduct) toEntity() *entity.Product {
	return &entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Category:  r.Category,
		Details:   r.Details,
		Images:    storedImages(r.Images, r.Image),
		UpdatedAt: r.UpdatedAt,
	}
}

// storedImages resuelve la unión "images" | "image" (legado) a la lista normalizada.
// "images" tiene prioridad. Una entrada que no decodifica como blob queda vacía en su posición.
func storedImages(list []jsoniter.RawMessage, legacy jsoniter.RawMessage) []entity.Image {
	if len(list) == 0 {
		if img, ok := decodeBlob(legacy); ok {
			return []entity.Image{img}
		}
		return nil
	}
	out := make([]entity.Image, 0, len(list))
	for _, raw := range list {
		img, _ := decodeBlob(raw)
		out = append(out, img)
	}
	return out
}

func decodeBlob(raw jsoniter.RawMessage) (entity.Image, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	var b []byte
	if err := json.Unmarshal(raw, &b); err != nil || len(b) == 0 {
		return nil, false
	}
	return entity.Image(b), true
}

func decodeProduct(key, value []byte) (*entity.Product, error) {
	var rec storedProduct
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, err
	}
	p := rec.toEntity()
	p.ID = btoi(key)
	return p, nil
}
