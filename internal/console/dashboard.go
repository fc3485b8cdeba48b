package console

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fiscalpy/consola/internal/job"
	"github.com/fiscalpy/consola/internal/poll"
	"github.com/fiscalpy/consola/internal/state"
	"github.com/fiscalpy/consola/internal/tenant"
)

type dashboardAPI interface {
	ListJobs(ctx context.Context, filtro job.Filtro) ([]job.Job, error)
	ListTenants(ctx context.Context) ([]tenant.Resumen, error)
}

// ResumenPanel agrega los contadores del panel. Se recalcula entero con cada
// snapshot; nunca se parchea incrementalmente.
type ResumenPanel struct {
	Jobs           job.Conteos `json:"jobs"`
	TenantsActivos int         `json:"tenants_activos"`
	TenantsTotal   int         `json:"tenants_total"`
}

// DashboardController mantiene los contadores del panel vivos cada 30s.
type DashboardController struct {
	api    dashboardAPI
	estado *state.Container
	sync   *poll.Synchronizer[ResumenPanel]

	mu          sync.Mutex
	baja        func()
	scopePrevio state.TenantScope
}

func NewDashboardController(api dashboardAPI, estado *state.Container, notifier Notifier, intervalo time.Duration, logger zerolog.Logger) *DashboardController {
	c := &DashboardController{api: api, estado: estado}
	c.sync = poll.New("dashboard", intervalo, c.fetch, logger)
	c.sync.OnError(func(err error) {
		notifier.NotificarError("No se pudo actualizar el panel", err)
	})
	return c
}

// Montar arranca el polling y refresca ante cambios de scope.
func (c *DashboardController) Montar(ctx context.Context) {
	c.scopePrevio = c.estado.Scope()
	c.baja = c.estado.Subscribe(func() {
		scope := c.estado.Scope()
		c.mu.Lock()
		cambio := !scopeIgual(c.scopePrevio, scope)
		c.scopePrevio = scope
		c.mu.Unlock()
		if cambio {
			go c.sync.Refrescar(context.Background())
		}
	})
	c.sync.Start(ctx)
}

// Desmontar corta timer y suscripción.
func (c *DashboardController) Desmontar() {
	c.sync.Stop()
	if c.baja != nil {
		c.baja()
		c.baja = nil
	}
}

func (c *DashboardController) fetch(ctx context.Context) (ResumenPanel, error) {
	filtro := job.Filtro{}
	if scope := c.estado.Scope(); scope.Activo != nil {
		filtro.TenantID = scope.Activo
	}

	jobs, err := c.api.ListJobs(ctx, filtro)
	if err != nil {
		return ResumenPanel{}, err
	}

	tenants, err := c.api.ListTenants(ctx)
	if err != nil {
		return ResumenPanel{}, err
	}

	return ResumenPanel{
		Jobs:           job.Contar(jobs),
		TenantsActivos: tenant.ContarActivos(tenants),
		TenantsTotal:   len(tenants),
	}, nil
}

// Refrescar es el botón manual del panel.
func (c *DashboardController) Refrescar(ctx context.Context) {
	c.sync.Refrescar(ctx)
}

// Snapshot devuelve el último resumen aplicado.
func (c *DashboardController) Snapshot() (ResumenPanel, bool) {
	return c.sync.Snapshot()
}

// EstadoVista expone el estado de la máquina de polling.
func (c *DashboardController) EstadoVista() poll.Estado {
	return c.sync.EstadoActual()
}
