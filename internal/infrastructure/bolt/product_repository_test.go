package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/jhoicas/showroom-api/internal/domain"
	"github.com/jhoicas/showroom-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testUpdatedAt = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*ProductRepo, *DB) {
	t.Helper()
	db := Lazy(filepath.Join(t.TempDir(), "catalog.db"), time.Second)
	t.Cleanup(func() { _ = db.Close() })
	return NewProductRepository(db), db
}

// sinFecha compara UpdatedAt por instante y lo anula para poder usar assert.Equal con el resto.
func sinFecha(t *testing.T, want time.Time, p *entity.Product) *entity.Product {
	t.Helper()
	require.NotNil(t, p)
	assert.True(t, want.Equal(p.UpdatedAt), "UpdatedAt %v != %v", p.UpdatedAt, want)
	cp := *p
	cp.UpdatedAt = time.Time{}
	return &cp
}

func findByID(list []*entity.Product, id int64) *entity.Product {
	for _, p := range list {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// seedRaw escribe un archivo bbolt con una versión de esquema y registros a mano.
func seedRaw(t *testing.T, path string, version string, records map[int64]string) {
	t.Helper()
	raw, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	defer raw.Close()
	require.NoError(t, raw.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		if err := meta.Put(keySchemaVersion, []byte(version)); err != nil {
			return err
		}
		b, err := tx.CreateBucketIfNotExists(bucketFurniture)
		if err != nil {
			return err
		}
		var max int64
		for id, v := range records {
			if id > max {
				max = id
			}
			if err := b.Put(itob(id), []byte(v)); err != nil {
				return err
			}
		}
		return b.SetSequence(uint64(max))
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_GetAllIncluyeRegistroConIDUnico(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	in := &entity.Product{
		ID:        999, // se ignora
		Name:      "Velvet Sofa",
		Price:     "25000",
		Category:  "Sofa",
		Details:   "three seater",
		UpdatedAt: testUpdatedAt,
	}
	id1, err := repo.Add(ctx, in)
	require.NoError(t, err)
	id2, err := repo.Add(ctx, &entity.Product{Name: "Stool", UpdatedAt: testUpdatedAt})
	require.NoError(t, err)

	assert.Positive(t, id1)
	assert.NotEqual(t, id1, id2, "los IDs deben ser únicos")
	assert.Equal(t, int64(999), in.ID, "Add no debe mutar la entrada")

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got := sinFecha(t, testUpdatedAt, findByID(all, id1))
	want := *in
	want.ID = id1
	want.UpdatedAt = time.Time{}
	assert.Equal(t, &want, got)
}

func TestUpdate_ReemplazoCompletoSinMerge(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, &entity.Product{
		Name:     "Bed",
		Price:    "30000",
		Category: "Bed",
		Details:  "king size",
		Images:   []entity.Image{[]byte("img")},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: id, Name: "Bed v2", UpdatedAt: testUpdatedAt}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got = sinFecha(t, testUpdatedAt, got)
	assert.Equal(t, &entity.Product{ID: id, Name: "Bed v2"}, got,
		"los campos ausentes en el nuevo payload no se conservan")
}

func TestUpdate_UpsertAdelantaLaSecuencia(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: 40, Name: "Imported"}))

	got, err := repo.GetByID(ctx, 40)
	require.NoError(t, err)
	require.NotNil(t, got, "Update crea el registro si no existe")

	next, err := repo.Add(ctx, &entity.Product{Name: "After"})
	require.NoError(t, err)
	assert.Greater(t, next, int64(40), "Add no debe colisionar con un ID insertado por upsert")
}

func TestUpdate_IDInvalido(t *testing.T) {
	repo, _ := newTestRepo(t)
	err := repo.Update(context.Background(), &entity.Product{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_EliminaYEsIdempotente(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, &entity.Product{Name: "Chair", Category: "Chair"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.Delete(ctx, id), "borrar un ID inexistente no es error")
	require.NoError(t, repo.Delete(ctx, 12345))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Nil(t, findByID(all, id))
}

func TestGetByID_Inexistente(t *testing.T) {
	repo, _ := newTestRepo(t)
	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestImagenes_RoundTripConOrden(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := entity.Image{0x89, 'P', 'N', 'G', 0x00, 0xff}
	second := entity.Image{0xff, 0xd8, 0xff, 0x01}
	id, err := repo.Add(ctx, &entity.Product{Name: "Cabinet", Images: []entity.Image{first, second}})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, first, got.Images[0])
	assert.Equal(t, second, got.Images[1])
}

func TestEscenario_OakTable(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, &entity.Product{Name: "Oak Table", Price: "4999", Category: "Table"})
	require.NoError(t, err)
	assert.Positive(t, id)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, "Table", all[0].Category)

	require.NoError(t, repo.Delete(ctx, id))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura, esquema y migraciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReabrir_ConservaDatosYSecuencia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	db := Lazy(path, time.Second)
	repo := NewProductRepository(db)
	first, err := repo.Add(ctx, &entity.Product{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first))
	require.NoError(t, db.Close())

	db = Lazy(path, time.Second)
	defer db.Close()
	repo = NewProductRepository(db)
	second, err := repo.Add(ctx, &entity.Product{Name: "B"})
	require.NoError(t, err)
	assert.Greater(t, second, first, "los IDs no se reutilizan entre aperturas")

	require.NoError(t, db.db.View(func(tx *bbolt.Tx) error {
		assert.Equal(t, "2", string(tx.Bucket(bucketMeta).Get(keySchemaVersion)))
		return nil
	}))
}

func TestMigracion_V1ImagenLegada(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	// "aW1n" = base64("img")
	seedRaw(t, path, "1", map[int64]string{
		3: `{"id":3,"name":"Old Sofa","price":"100","image":"aW1n"}`,
		4: `{"id":4,"name":"Bare","price":"5"}`,
	})

	db := Lazy(path, time.Second)
	defer db.Close()
	repo := NewProductRepository(db)

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []entity.Image{entity.Image("img")}, got.Images)
	assert.Equal(t, "Other", got.NormalizedCategory())

	bare, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, bare.Images)

	require.NoError(t, db.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketFurniture).Get(itob(3))
		assert.NotContains(t, string(raw), `"image":`, "el registro se reescribe con la forma v2")
		return nil
	}))

	ids, err := repo.idsByName(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4}, ids, "la migración reconstruye los índices")
}

func TestLectura_ImagenMalformadaQuedaVaciaEnSuPosicion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.db")
	seedRaw(t, path, "2", map[int64]string{
		1: `{"id":1,"name":"Odd","price":"1","images":[42,"aW1n",null,{"x":1}]}`,
	})
	db := Lazy(path, time.Second)
	defer db.Close()

	got, err := NewProductRepository(db).GetByID(context.Background(), 1)
	require.NoError(t, err, "una imagen malformada no hace fallar la lectura")
	require.Len(t, got.Images, 4)
	assert.False(t, got.Images[0].Valid())
	assert.Equal(t, entity.Image("img"), got.Images[1])
	assert.False(t, got.Images[2].Valid())
	assert.False(t, got.Images[3].Valid())

	_, ok := got.Cover()
	assert.False(t, ok, "portada inválida")
}

func TestApertura_FallaConStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	repo := NewProductRepository(Lazy(dir, 100*time.Millisecond)) // un directorio no es un archivo bbolt

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = repo.Add(context.Background(), &entity.Product{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable, "toda operación reporta el almacén no disponible")
}

func TestApertura_EsquemaMasNuevo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")
	seedRaw(t, path, "9", nil)

	_, err := NewProductRepository(Lazy(path, time.Second)).GetAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestContextoCancelado(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAll(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

// ──────────────────────────────────────────────────────────────────────────────
// Índices
// ──────────────────────────────────────────────────────────────────────────────

func TestIndices_SeMantienenEnUpdateYDelete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Add(ctx, &entity.Product{Name: "Zeta", Price: "200"})
	require.NoError(t, err)
	b, err := repo.Add(ctx, &entity.Product{Name: "alpha", Price: "100"})
	require.NoError(t, err)

	byName, err := repo.idsByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{b, a}, byName)

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: a, Name: "Aardvark", Price: "050"}))
	byName, err = repo.idsByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b}, byName, "el nombre viejo sale del índice")

	byPrice, err := repo.idsByPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b}, byPrice)

	require.NoError(t, repo.Delete(ctx, a))
	byName, err = repo.idsByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, byName)
}

func TestIndices_ValorLargoNoRechazaElRegistro(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	long := strings.Repeat("a", 40000)

	id, err := repo.Add(ctx, &entity.Product{Name: long, Price: strings.Repeat("9", 40000)})
	require.NoError(t, err)
	other, err := repo.Add(ctx, &entity.Product{Name: long + "b"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, long, got.Name)

	byName, err := repo.idsByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{id, other}, byName, "prefijo compartido desempata por ID")

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: id, Name: "corto"}))
	byName, err = repo.idsByName(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{other, id}, byName)
}

func TestEscritura_FallaConWriteFailedSinCambios(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	id, err := repo.Add(ctx, &entity.Product{Name: "Sofa"})
	require.NoError(t, err)

	// dejar el handle abierto pero con el archivo cerrado por debajo
	raw, err := db.handle(ctx)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	_, err = repo.Add(ctx, &entity.Product{Name: "Bed"})
	assert.ErrorIs(t, err, domain.ErrWriteFailed)
	err = repo.Update(ctx, &entity.Product{ID: id, Name: "Sofa II"})
	assert.ErrorIs(t, err, domain.ErrWriteFailed)
	err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrWriteFailed)

	// reabrir: el almacén quedó como antes de los intentos fallidos
	require.NoError(t, db.Close())
	again := Lazy(db.Path(), time.Second)
	t.Cleanup(func() { _ = again.Close() })
	reopened := NewProductRepository(again)
	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Sofa", all[0].Name)
	next, err := reopened.Add(ctx, &entity.Product{Name: "Bed"})
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}
