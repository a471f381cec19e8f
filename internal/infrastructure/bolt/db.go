// Package bolt implementa el almacén por defecto: un archivo bbolt local con
// secuencia autoincremental, esquema versionado y migración de registros legados.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/showroom-api/internal/domain"
)

// SchemaVersion versión actual del esquema del archivo.
// v1: registros con una sola imagen ("image"). v2: lista ordenada ("images").
const SchemaVersion = 2

var (
	bucketMeta      = []byte("meta")
	bucketFurniture = []byte("furniture")
	bucketIdxName   = []byte("idx_name")
	bucketIdxPrice  = []byte("idx_price")

	keySchemaVersion = []byte("schema_version")
)

// DB abre el archivo bbolt de forma perezosa en el primer uso.
// Si la apertura falla, cada llamada devuelve domain.ErrStorageUnavailable y la siguiente reintenta.
type DB struct {
	path    string
	timeout time.Duration

	mu sync.Mutex
	db *bbolt.DB
}

// Lazy construye el handle sin tocar el disco. timeout acota la espera del bloqueo del archivo.
func Lazy(path string, timeout time.Duration) *DB {
	return &DB{path: path, timeout: timeout}
}

// Path ruta del archivo.
func (d *DB) Path() string { return d.path }

// Close cierra el archivo si llegó a abrirse.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// handle devuelve el *bbolt.DB abierto, abriéndolo y preparando el esquema si hace falta.
func (d *DB) handle(ctx context.Context) (*bbolt.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db != nil {
		return d.db, nil
	}

	if dir := filepath.Dir(d.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: crear directorio: %v", domain.ErrStorageUnavailable, err)
		}
	}
	db, err := bbolt.Open(d.path, 0o600, &bbolt.Options{Timeout: d.timeout})
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrStorageUnavailable, d.path, err)
	}
	if err := db.Update(ensureSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: esquema: %v", domain.ErrStorageUnavailable, err)
	}
	d.db = db
	return db, nil
}

// ensureSchema crea buckets y aplica las migraciones pendientes. Idempotente:
// con el archivo ya en SchemaVersion no escribe nada. El bloqueo del archivo serializa aperturas concurrentes.
func ensureSchema(tx *bbolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists(bucketMeta)
	if err != nil {
		return err
	}
	version := 0
	if raw := meta.Get(keySchemaVersion); raw != nil {
		version, err = strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("schema_version ilegible %q", raw)
		}
	}
	switch {
	case version == SchemaVersion:
		return nil
	case version > SchemaVersion:
		return fmt.Errorf("schema_version %d es más nuevo que el soportado (%d)", version, SchemaVersion)
	}

	for _, name := range [][]byte{bucketFurniture, bucketIdxName, bucketIdxPrice} {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return err
		}
	}
	if version == 1 {
		if err := migrateLegacyImages(tx); err != nil {
			return fmt.Errorf("migrar v1->v2: %w", err)
		}
	}
	return meta.Put(keySchemaVersion, []byte(strconv.Itoa(SchemaVersion)))
}

// migrateLegacyImages reescribe los registros v1 ("image") como v2 ("images") y reconstruye índices.
func migrateLegacyImages(tx *bbolt.Tx) error {
	b := tx.Bucket(bucketFurniture)
	type pending struct {
		key []byte
		rec storedProduct
	}
	var rewrites []pending
	err := b.ForEach(func(k, v []byte) error {
		var rec storedProduct
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("registro %d: %w", btoi(k), err)
		}
		if len(rec.Image) == 0 && len(rec.Images) > 0 {
			return nil
		}
		rewrites = append(rewrites, pending{key: append([]byte(nil), k...), rec: rec})
		return nil
	})
	if err != nil {
		return err
	}
	for _, p := range rewrites {
		product := p.rec.toEntity()
		product.ID = btoi(p.key)
		if err := putProduct(tx, product); err != nil {
			return err
		}
	}
	return nil
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
