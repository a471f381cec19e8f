// Package storage selecciona el adaptador de persistencia según STORAGE_DRIVER.
package storage

import (
	"fmt"

	"github.com/jhoicas/showroom-api/internal/domain/repository"
	"github.com/jhoicas/showroom-api/internal/infrastructure/bolt"
	"github.com/jhoicas/showroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/showroom-api/pkg/config"
)

// Store repositorio listo para usar más su cierre. Ningún adaptador conecta al construirse:
// la primera operación abre el almacén y un fallo se reintenta en la siguiente.
type Store struct {
	Products repository.ProductRepository
	Driver   string
	Location string
	close    func() error
}

// Open construye el Store del driver configurado.
func Open(cfg config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageBolt:
		db := bolt.Lazy(cfg.Storage.BoltPath, cfg.Storage.BoltTimeout)
		return &Store{
			Products: bolt.NewProductRepository(db),
			Driver:   config.StorageBolt,
			Location: db.Path(),
			close:    db.Close,
		}, nil
	case config.StoragePostgres:
		db := postgres.Lazy(cfg.DB)
		return &Store{
			Products: postgres.NewProductRepository(db),
			Driver:   config.StoragePostgres,
			Location: fmt.Sprintf("%s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName),
			close: func() error {
				db.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Storage.Driver)
}

// Close libera el almacén.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
