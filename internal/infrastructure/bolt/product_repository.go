package bolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/showroom-api/internal/domain"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre bbolt.
type ProductRepo struct {
	db *DB
}

// NewProductRepository construye el adaptador. El archivo se abre en la primera operación.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// GetAll devuelve todos los registros en orden de ID.
func (r *ProductRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	db, err := r.db.handle(ctx)
	if err != nil {
		return nil, err
	}
	var list []*entity.Product
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketFurniture).ForEach(func(k, v []byte) error {
			p, err := decodeProduct(k, v)
			if err != nil {
				return fmt.Errorf("registro %d: %w", btoi(k), err)
			}
			list = append(list, p)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: leer furniture: %v", domain.ErrStorageUnavailable, err)
	}
	return list, nil
}

// GetByID obtiene un registro por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	db, err := r.db.handle(ctx)
	if err != nil {
		return nil, err
	}
	var p *entity.Product
	err = db.View(func(tx *bbolt.Tx) error {
		k := itob(id)
		v := tx.Bucket(bucketFurniture).Get(k)
		if v == nil {
			return nil
		}
		p, err = decodeProduct(k, v)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: leer registro %d: %v", domain.ErrStorageUnavailable, id, err)
	}
	return p, nil
}

// Add asigna el siguiente valor de la secuencia (nunca reutilizado) y persiste el registro.
func (r *ProductRepo) Add(ctx context.Context, product *entity.Product) (int64, error) {
	db, err := r.db.handle(ctx)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.Update(func(tx *bbolt.Tx) error {
		seq, err := tx.Bucket(bucketFurniture).NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)
		rec := *product
		rec.ID = id
		return putProduct(tx, &rec)
	})
	if err != nil {
		return 0, fmt.Errorf("%w: insertar: %v", domain.ErrWriteFailed, err)
	}
	return id, nil
}

// Update reemplaza el registro completo (upsert). Un ID mayor que la secuencia la adelanta.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if product.ID <= 0 {
		return fmt.Errorf("%w: id %d", domain.ErrInvalidInput, product.ID)
	}
	db, err := r.db.handle(ctx)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFurniture)
		if uint64(product.ID) > b.Sequence() {
			if err := b.SetSequence(uint64(product.ID)); err != nil {
				return err
			}
		}
		return putProduct(tx, product)
	})
	if err != nil {
		return fmt.Errorf("%w: actualizar %d: %v", domain.ErrWriteFailed, product.ID, err)
	}
	return nil
}

// Delete elimina el registro y sus entradas de índice; no-op si no existe.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	db, err := r.db.handle(ctx)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketFurniture)
		k := itob(id)
		v := b.Get(k)
		if v == nil {
			return nil
		}
		if err := unindex(tx, k, v); err != nil {
			return err
		}
		return b.Delete(k)
	})
	if err != nil {
		return fmt.Errorf("%w: eliminar %d: %v", domain.ErrWriteFailed, id, err)
	}
	return nil
}

// putProduct escribe el registro y mantiene idx_name / idx_price en la misma transacción.
func putProduct(tx *bbolt.Tx, product *entity.Product) error {
	b := tx.Bucket(bucketFurniture)
	k := itob(product.ID)
	if old := b.Get(k); old != nil {
		if err := unindex(tx, k, old); err != nil {
			return err
		}
	}
	rec, err := fromEntity(product)
	if err != nil {
		return err
	}
	v, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := b.Put(k, v); err != nil {
		return err
	}
	if err := tx.Bucket(bucketIdxName).Put(indexKey(nameKey(product.Name), k), nil); err != nil {
		return err
	}
	return tx.Bucket(bucketIdxPrice).Put(indexKey(product.Price, k), nil)
}

func unindex(tx *bbolt.Tx, k, v []byte) error {
	var rec storedProduct
	if err := json.Unmarshal(v, &rec); err != nil {
		// Un registro ilegible no tiene entradas de índice recuperables; se sobrescribe igual.
		return nil
	}
	return errors.Join(
		tx.Bucket(bucketIdxName).Delete(indexKey(nameKey(rec.Name), k)),
		tx.Bucket(bucketIdxPrice).Delete(indexKey(rec.Price, k)),
	)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// indexValueMax largo máximo del valor dentro de una clave de índice. Acota la clave muy por
// debajo de bbolt.MaxKeySize; valores más largos comparten prefijo y desempatan por ID.
const indexValueMax = 256

// indexKey valor (truncado a indexValueMax) + 0x00 + id big-endian: ordena por valor y desempata por ID.
func indexKey(value string, id []byte) []byte {
	if len(value) > indexValueMax {
		value = value[:indexValueMax]
	}
	var buf bytes.Buffer
	buf.Grow(len(value) + 1 + len(id))
	buf.WriteString(value)
	buf.WriteByte(0)
	buf.Write(id)
	return buf.Bytes()
}

// idsByName IDs en orden del índice de nombre (minúsculas).
func (r *ProductRepo) idsByName(ctx context.Context) ([]int64, error) {
	return r.indexedIDs(ctx, bucketIdxName)
}

// idsByPrice IDs en orden lexicográfico del índice de precio.
func (r *ProductRepo) idsByPrice(ctx context.Context) ([]int64, error) {
	return r.indexedIDs(ctx, bucketIdxPrice)
}

func (r *ProductRepo) indexedIDs(ctx context.Context, bucket []byte) ([]int64, error) {
	db, err := r.db.handle(ctx)
	if err != nil {
		return nil, err
	}
	var out []int64
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
			if len(k) < 8 {
				return nil
			}
			out = append(out, btoi(k[len(k)-8:]))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: leer índice %s: %v", domain.ErrStorageUnavailable, bucket, err)
	}
	return out, nil
}
