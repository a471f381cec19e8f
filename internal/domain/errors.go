package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrStorageUnavailable el almacén no se pudo abrir (permisos, bloqueo, esquema dañado, BD caída).
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	// ErrWriteFailed el motor rechazó una escritura; el cambio no se aplicó.
	ErrWriteFailed = errors.New("escritura rechazada por el almacenamiento")
)
