package poll

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Estado refleja la máquina de estados de una vista monitoreada.
type Estado string

const (
	EstadoIdle        Estado = "idle"
	EstadoCargando    Estado = "cargando"
	EstadoActivo      Estado = "activo"
	EstadoRefrescando Estado = "refrescando"
	EstadoError       Estado = "error"
)

// Fetch obtiene el snapshot fresco de la vista.
type Fetch[T any] func(ctx context.Context) (T, error)

// Synchronizer mantiene una vista casi en tiempo real refrescando por
// intervalo y a demanda. Cada fetch lleva un número de secuencia monótono
// asignado al emitirse: una respuesta con secuencia menor o igual a la última
// aplicada se descarta, así un refresh forzado posterior nunca es pisado por
// un tick lento que llega tarde. Los refrescos de fondo no vacían el dato ya
// renderizado; en error el dato previo sigue visible.
type Synchronizer[T any] struct {
	nombre    string
	intervalo time.Duration
	fetch     Fetch[T]
	logger    zerolog.Logger

	onError  func(error)
	onChange func(T)

	mu       sync.Mutex
	estado   Estado
	dato     T
	tiene    bool
	seq      uint64
	aplicado uint64
	vivo     bool
	cancel   context.CancelFunc
}

// New crea el sincronizador, todavía sin timer.
func New[T any](nombre string, intervalo time.Duration, fetch Fetch[T], logger zerolog.Logger) *Synchronizer[T] {
	if intervalo <= 0 {
		intervalo = 30 * time.Second
	}
	return &Synchronizer[T]{
		nombre:    nombre,
		intervalo: intervalo,
		fetch:     fetch,
		logger:    logger,
		estado:    EstadoIdle,
	}
}

// OnError registra el hook de notificación de fallas. Fijar antes de Start.
func (s *Synchronizer[T]) OnError(fn func(error)) {
	s.onError = fn
}

// OnChange registra el callback invocado con cada snapshot aplicado. Fijar
// antes de Start.
func (s *Synchronizer[T]) OnChange(fn func(T)) {
	s.onChange = fn
}

// Start hace el fetch inicial y agenda los ticks. Seguro de llamar tras un
// Stop previo; un Start sobre un sincronizador vivo es no-op.
func (s *Synchronizer[T]) Start(ctx context.Context) {
	s.mu.Lock()
	if s.vivo {
		s.mu.Unlock()
		return
	}
	s.vivo = true
	s.estado = EstadoCargando
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx)
}

// Stop cancela el timer. Los fetches en vuelo terminan solos pero sus
// resultados se descartan: ninguna vista desmontada vuelve a mutar estado.
func (s *Synchronizer[T]) Stop() {
	s.mu.Lock()
	if !s.vivo {
		s.mu.Unlock()
		return
	}
	s.vivo = false
	s.estado = EstadoIdle
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Refrescar fuerza un fetch inmediato fuera de banda. Por secuencia, su
// resultado supera a cualquier tick emitido antes que siga en vuelo.
func (s *Synchronizer[T]) Refrescar(ctx context.Context) {
	s.doFetch(ctx)
}

// Snapshot devuelve el último dato aplicado y si existe alguno.
func (s *Synchronizer[T]) Snapshot() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dato, s.tiene
}

// EstadoActual informa el estado de la máquina.
func (s *Synchronizer[T]) EstadoActual() Estado {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estado
}

func (s *Synchronizer[T]) run(ctx context.Context) {
	s.logger.Info().Str("vista", s.nombre).Dur("intervalo", s.intervalo).Msg("poll: loop iniciado")

	s.doFetch(ctx)

	ticker := time.NewTicker(s.intervalo)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str("vista", s.nombre).Msg("poll: loop encerrado")
			return
		case <-ticker.C:
			s.doFetch(ctx)
		}
	}
}

func (s *Synchronizer[T]) doFetch(ctx context.Context) {
	s.mu.Lock()
	if !s.vivo {
		s.mu.Unlock()
		return
	}
	s.seq++
	miSeq := s.seq
	if s.tiene {
		// Refresco silencioso: el dato previo sigue visible hasta que
		// llegue el nuevo.
		s.estado = EstadoRefrescando
	} else {
		s.estado = EstadoCargando
	}
	s.mu.Unlock()

	dato, err := s.fetch(ctx)

	s.mu.Lock()
	if !s.vivo || miSeq <= s.aplicado {
		s.mu.Unlock()
		return
	}
	s.aplicado = miSeq

	if err != nil {
		s.estado = EstadoError
		onError := s.onError
		s.mu.Unlock()

		s.logger.Warn().Err(err).Str("vista", s.nombre).Msg("poll: fetch falló, se reintenta en el próximo tick")
		if onError != nil {
			onError(err)
		}
		return
	}

	s.dato = dato
	s.tiene = true
	s.estado = EstadoActivo
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(dato)
	}
}
