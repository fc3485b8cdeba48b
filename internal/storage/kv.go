package storage

import (
	"context"
	"errors"
)

// Claves fijas del estado durable del cliente.
const (
	KeyToken        = "consola:token"
	KeyNavPrincipal = "consola:nav:principal"
	KeyNavAuto      = "consola:nav:automatizacion"
	KeyNavAdmin     = "consola:nav:administracion"
)

var (
	// ErrNotFound se devuelve cuando la clave no existe.
	ErrNotFound = errors.New("clave no encontrada")
)

// KV define el comportamiento mínimo para persistir estado del cliente.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
