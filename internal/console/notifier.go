package console

import (
	"errors"

	"github.com/rs/zerolog"
)

var (
	// ErrNoAutorizado indica ausencia de permiso para la acción pedida.
	ErrNoAutorizado = errors.New("acceso denegado")
)

// Notifier entrega notificaciones transitorias visibles para el operador:
// título legible y detalle opcional. Nada se traga en silencio salvo el
// logout remoto best-effort.
type Notifier interface {
	Notificar(titulo, detalle string)
	NotificarError(titulo string, err error)
}

// LogNotifier implementa Notifier sobre zerolog; suficiente para la consola
// sin frontend propio y para las pruebas.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notificar(titulo, detalle string) {
	evt := n.Logger.Info().Str("titulo", titulo)
	if detalle != "" {
		evt = evt.Str("detalle", detalle)
	}
	evt.Msg("aviso")
}

func (n LogNotifier) NotificarError(titulo string, err error) {
	n.Logger.Error().Err(err).Str("titulo", titulo).Msg("aviso")
}
