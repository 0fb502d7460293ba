package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidDateRange = errors.New("rango de fechas inválido")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnknownMovement  = errors.New("tipo de movimiento desconocido")
)
