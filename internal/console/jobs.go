package console

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fiscalpy/consola/internal/job"
	"github.com/fiscalpy/consola/internal/poll"
	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/state"
)

type jobsAPI interface {
	ListJobs(ctx context.Context, filtro job.Filtro) ([]job.Job, error)
	EnqueueSyncComprobantes(ctx context.Context, tenantID uuid.UUID, mes, anio *int) (*job.Job, error)
	EnqueueDescargarXML(ctx context.Context, tenantID uuid.UUID, batchSize int) (*job.Job, error)
}

// JobsController mantiene la lista de jobs viva por polling y encola
// sincronizaciones. Las mutaciones confirman contra el backend y recién
// entonces fuerzan un refresh; nunca hay apply optimista.
type JobsController struct {
	api      jobsAPI
	estado   *state.Container
	notifier Notifier
	sync     *poll.Synchronizer[[]job.Job]

	mu     sync.Mutex
	filtro job.Filtro

	baja        func()
	scopePrevio state.TenantScope
}

// NewJobsController arma el controlador con su sincronizador de 15s (o el
// intervalo configurado).
func NewJobsController(api jobsAPI, estado *state.Container, notifier Notifier, intervalo time.Duration, logger zerolog.Logger) *JobsController {
	c := &JobsController{api: api, estado: estado, notifier: notifier}
	c.sync = poll.New("jobs", intervalo, c.fetch, logger)
	c.sync.OnError(func(err error) {
		notifier.NotificarError("No se pudo actualizar la lista de jobs", err)
	})
	return c
}

// Montar arranca el polling y se suscribe al contenedor: un cambio de tenant
// activo refresca la lista dentro del mismo ciclo.
func (c *JobsController) Montar(ctx context.Context) {
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

// Desmontar corta el timer y la suscripción; los fetches en vuelo quedan
// descartados por el sincronizador.
func (c *JobsController) Desmontar() {
	c.sync.Stop()
	if c.baja != nil {
		c.baja()
		c.baja = nil
	}
}

func (c *JobsController) fetch(ctx context.Context) ([]job.Job, error) {
	c.mu.Lock()
	filtro := c.filtro
	c.mu.Unlock()

	if scope := c.estado.Scope(); scope.Activo != nil {
		filtro.TenantID = scope.Activo
	}
	return c.api.ListJobs(ctx, filtro)
}

// SetFiltro cambia el filtro de listado y fuerza un refresh inmediato.
func (c *JobsController) SetFiltro(ctx context.Context, filtro job.Filtro) {
	c.mu.Lock()
	c.filtro = filtro
	c.mu.Unlock()
	c.sync.Refrescar(ctx)
}

// Refrescar es el botón manual de la vista.
func (c *JobsController) Refrescar(ctx context.Context) {
	c.sync.Refrescar(ctx)
}

// Snapshot devuelve la última lista aplicada.
func (c *JobsController) Snapshot() ([]job.Job, bool) {
	return c.sync.Snapshot()
}

// Conteos recalcula los totales por estado desde el snapshot completo.
func (c *JobsController) Conteos() job.Conteos {
	jobs, _ := c.sync.Snapshot()
	return job.Contar(jobs)
}

// EstadoVista expone el estado de la máquina de polling.
func (c *JobsController) EstadoVista() poll.Estado {
	return c.sync.EstadoActual()
}

// EncolarSync pide al backend una sincronización de comprobantes para el
// tenant dado y, confirmada, fuerza el refresh fuera de banda.
func (c *JobsController) EncolarSync(ctx context.Context, tenantID uuid.UUID, mes, anio *int) error {
	if err := c.autorizar(tenantID); err != nil {
		return err
	}

	encolado, err := c.api.EnqueueSyncComprobantes(ctx, tenantID, mes, anio)
	if err != nil {
		c.notifier.NotificarError("No se pudo encolar la sincronización", err)
		return err
	}

	c.notifier.Notificar("Sincronización encolada", "job "+encolado.ID.String())
	c.sync.Refrescar(ctx)
	return nil
}

// EncolarDescargaXML pide la descarga de XMLs por lote.
func (c *JobsController) EncolarDescargaXML(ctx context.Context, tenantID uuid.UUID, batchSize int) error {
	if err := c.autorizar(tenantID); err != nil {
		return err
	}

	encolado, err := c.api.EnqueueDescargarXML(ctx, tenantID, batchSize)
	if err != nil {
		c.notifier.NotificarError("No se pudo encolar la descarga de XML", err)
		return err
	}

	c.notifier.Notificar("Descarga de XML encolada", "job "+encolado.ID.String())
	c.sync.Refrescar(ctx)
	return nil
}

func (c *JobsController) autorizar(tenantID uuid.UUID) error {
	sesion := c.estado.Session()
	if !rbac.HasPermission(sesion.Identity, "jobs", "create") {
		c.notifier.NotificarError("Acción no permitida", ErrNoAutorizado)
		return ErrNoAutorizado
	}
	if !c.estado.Scope().Visible(tenantID) {
		c.notifier.NotificarError("Tenant fuera de alcance", ErrNoAutorizado)
		return ErrNoAutorizado
	}
	return nil
}

func scopeIgual(a, b state.TenantScope) bool {
	if (a.Activo == nil) != (b.Activo == nil) {
		return false
	}
	if a.Activo != nil && *a.Activo != *b.Activo {
		return false
	}
	if len(a.Visibles) != len(b.Visibles) {
		return false
	}
	for i := range a.Visibles {
		if a.Visibles[i] != b.Visibles[i] {
			return false
		}
	}
	return true
}
