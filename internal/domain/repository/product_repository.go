package repository

import (
	"context"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Cada operación es una unidad atómica; no hay transacciones multi-registro.
type ProductRepository interface {
	// GetAll devuelve todos los registros, sin orden garantizado. Falla con domain.ErrStorageUnavailable.
	GetAll(ctx context.Context) ([]*entity.Product, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// Add asigna un ID nuevo (ignora product.ID), persiste y devuelve el ID. Falla con domain.ErrWriteFailed.
	Add(ctx context.Context, product *entity.Product) (int64, error)
	// Update reemplaza por completo el registro con product.ID; si no existe lo crea (upsert).
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina el registro si existe; no es error si no existe.
	Delete(ctx context.Context, id int64) error
}
