package console

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiscalpy/consola/internal/poll"
)

// Indicador es el semáforo de conectividad con el backend.
type Indicador string

const (
	IndicadorChecking Indicador = "checking"
	IndicadorOK       Indicador = "ok"
	IndicadorError    Indicador = "error"
)

type healthAPI interface {
	Health(ctx context.Context) error
}

// HealthController sondea el backend cada 60s y mantiene el indicador.
// Una falla del probe es un dato, no un error de polling: el fetch nunca
// falla, devuelve el indicador en rojo.
type HealthController struct {
	api  healthAPI
	sync *poll.Synchronizer[Indicador]
}

func NewHealthController(api healthAPI, intervalo time.Duration, logger zerolog.Logger) *HealthController {
	c := &HealthController{api: api}
	c.sync = poll.New("health", intervalo, c.fetch, logger)
	return c
}

func (c *HealthController) fetch(ctx context.Context) (Indicador, error) {
	if err := c.api.Health(ctx); err != nil {
		return IndicadorError, nil
	}
	return IndicadorOK, nil
}

// Montar arranca el probe periódico.
func (c *HealthController) Montar(ctx context.Context) {
	c.sync.Start(ctx)
}

// Desmontar corta el probe.
func (c *HealthController) Desmontar() {
	c.sync.Stop()
}

// Estado devuelve el indicador vigente; checking hasta el primer resultado.
func (c *HealthController) Estado() Indicador {
	indicador, tiene := c.sync.Snapshot()
	if !tiene {
		return IndicadorChecking
	}
	return indicador
}
