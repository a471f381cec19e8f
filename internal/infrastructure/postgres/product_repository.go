package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/showroom-api/internal/domain"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, price, category, details, images, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db *DB
}

// NewProductRepository construye el adaptador. La conexión y las migraciones ocurren en el primer uso.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// GetAll lista todos los productos.
func (r *ProductRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	q, err := r.db.handle(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM furniture`)
	if err != nil {
		return nil, readError("list furniture", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, readError("scan furniture", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("list furniture", err)
	}
	return list, nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	q, err := r.db.handle(ctx)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM furniture WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, readError("get furniture", err)
	}
	return p, nil
}

// Add inserta con el siguiente valor de la secuencia BIGSERIAL.
func (r *ProductRepo) Add(ctx context.Context, product *entity.Product) (int64, error) {
	q, err := r.db.handle(ctx)
	if err != nil {
		return 0, err
	}
	var id int64
	err = q.QueryRow(ctx, `
		INSERT INTO furniture (name, price, price_amount, category, details, images, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		product.Name, product.Price, priceAmount(product), product.Category, product.Details,
		imagesParam(product.Images), product.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, writeError("insert furniture", err)
	}
	return id, nil
}

// Update reemplaza el registro completo (upsert) y adelanta la secuencia si el ID la supera.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if product.ID <= 0 {
		return fmt.Errorf("%w: id %d", domain.ErrInvalidInput, product.ID)
	}
	q, err := r.db.handle(ctx)
	if err != nil {
		return err
	}
	err = pgx.BeginFunc(ctx, q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO furniture (id, name, price, price_amount, category, details, images, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				price_amount = EXCLUDED.price_amount,
				category = EXCLUDED.category,
				details = EXCLUDED.details,
				images = EXCLUDED.images,
				updated_at = EXCLUDED.updated_at`,
			product.ID, product.Name, product.Price, priceAmount(product), product.Category,
			product.Details, imagesParam(product.Images), product.UpdatedAt,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			SELECT setval(pg_get_serial_sequence('furniture', 'id'), GREATEST($1::bigint, last_value))
			FROM furniture_id_seq`, product.ID)
		return err
	})
	if err != nil {
		return writeError("upsert furniture", err)
	}
	return nil
}

// Delete elimina por ID; sin filas afectadas no es error.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	q, err := r.db.handle(ctx)
	if err != nil {
		return err
	}
	if _, err := q.Exec(ctx, `DELETE FROM furniture WHERE id = $1`, id); err != nil {
		return writeError("delete furniture", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var images [][]byte
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Details, &images, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Images = storedImages(images)
	return &p, nil
}

// storedImages convierte BYTEA[]; un elemento NULL queda como imagen vacía en su posición.
func storedImages(images [][]byte) []entity.Image {
	if len(images) == 0 {
		return nil
	}
	out := make([]entity.Image, len(images))
	for i, img := range images {
		out[i] = entity.Image(img)
	}
	return out
}

func imagesParam(images []entity.Image) [][]byte {
	out := make([][]byte, len(images))
	for i, img := range images {
		out[i] = []byte(img)
	}
	return out
}

// priceAmount valor numérico para idx_furniture_price_amount; NULL si el precio no es numérico.
func priceAmount(p *entity.Product) decimal.NullDecimal {
	amount, err := p.PriceAmount()
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: amount, Valid: true}
}
