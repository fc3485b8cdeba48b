package console

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fiscalpy/consola/internal/job"
	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/state"
)

type stubJobsAPI struct {
	mu         sync.Mutex
	jobs       []job.Job
	listCalls  int
	enqueueErr error
	filtros    []job.Filtro
}

func (s *stubJobsAPI) ListJobs(ctx context.Context, filtro job.Filtro) ([]job.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.filtros = append(s.filtros, filtro)
	out := make([]job.Job, len(s.jobs))
	copy(out, s.jobs)
	return out, nil
}

func (s *stubJobsAPI) EnqueueSyncComprobantes(ctx context.Context, tenantID uuid.UUID, mes, anio *int) (*job.Job, error) {
	if s.enqueueErr != nil {
		return nil, s.enqueueErr
	}
	nuevo := job.Job{ID: uuid.New(), TenantID: tenantID, TipoJob: job.TipoSyncComprobantes, Estado: job.EstadoPending}
	s.mu.Lock()
	s.jobs = append(s.jobs, nuevo)
	s.mu.Unlock()
	return &nuevo, nil
}

func (s *stubJobsAPI) EnqueueDescargarXML(ctx context.Context, tenantID uuid.UUID, batchSize int) (*job.Job, error) {
	if s.enqueueErr != nil {
		return nil, s.enqueueErr
	}
	nuevo := job.Job{ID: uuid.New(), TenantID: tenantID, TipoJob: job.TipoDescargarXML, Estado: job.EstadoPending}
	s.mu.Lock()
	s.jobs = append(s.jobs, nuevo)
	s.mu.Unlock()
	return &nuevo, nil
}

type stubNotifier struct {
	mu      sync.Mutex
	avisos  []string
	errores []string
}

func (n *stubNotifier) Notificar(titulo, detalle string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.avisos = append(n.avisos, titulo)
}

func (n *stubNotifier) NotificarError(titulo string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errores = append(n.errores, titulo)
}

func esperar(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func sesionSuperAdmin(estado *state.Container, tenantID uuid.UUID) {
	identity := &rbac.Identity{ID: uuid.New(), Nombre: "Root", Rol: rbac.Rol{Nombre: rbac.RoleSuperAdmin}}
	estado.SetSession(state.Session{Status: state.StatusReady, Identity: identity})
	estado.SetScope(state.TenantScope{Visibles: []uuid.UUID{tenantID}})
}

// La mutación confirmada fuerza un refresh inmediato en vez de esperar al
// próximo tick.
func TestEncolarSyncRefrescaFueraDeBanda(t *testing.T) {
	tenantID := uuid.New()
	apiStub := &stubJobsAPI{jobs: []job.Job{{ID: uuid.New(), TenantID: tenantID, Estado: job.EstadoDone}}}
	notifier := &stubNotifier{}
	estado := state.NewContainer()
	sesionSuperAdmin(estado, tenantID)

	ctrl := NewJobsController(apiStub, estado, notifier, time.Hour, zerolog.Nop())
	ctrl.Montar(context.Background())
	defer ctrl.Desmontar()

	esperar(t, func() bool {
		jobs, tiene := ctrl.Snapshot()
		return tiene && len(jobs) == 1
	}, "el fetch inicial no se aplicó")

	if err := ctrl.EncolarSync(context.Background(), tenantID, nil, nil); err != nil {
		t.Fatalf("encolar: %v", err)
	}

	// El intervalo es de una hora: si el snapshot creció fue por el refresh
	// forzado tras la mutación.
	jobs, _ := ctrl.Snapshot()
	if len(jobs) != 2 {
		t.Fatalf("la mutación debe refrescar la lista ya: %d jobs", len(jobs))
	}
	if ctrl.Conteos().Pending != 1 {
		t.Fatalf("conteos desactualizados: %+v", ctrl.Conteos())
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.avisos) != 1 {
		t.Fatalf("la mutación confirmada debe avisar: %v", notifier.avisos)
	}
}

func TestEncolarSinPermisoNoLlamaAlBackend(t *testing.T) {
	tenantID := uuid.New()
	apiStub := &stubJobsAPI{}
	notifier := &stubNotifier{}
	estado := state.NewContainer()

	identity := &rbac.Identity{
		ID:       uuid.New(),
		Rol:      rbac.Rol{Nombre: rbac.RoleReadonly},
		Permisos: []string{},
		TenantID: &tenantID,
	}
	estado.SetSession(state.Session{Status: state.StatusReady, Identity: identity})
	estado.SetScope(state.TenantScope{Visibles: []uuid.UUID{tenantID}, Activo: &tenantID})

	ctrl := NewJobsController(apiStub, estado, notifier, time.Hour, zerolog.Nop())

	err := ctrl.EncolarSync(context.Background(), tenantID, nil, nil)
	if !errors.Is(err, ErrNoAutorizado) {
		t.Fatalf("esperado ErrNoAutorizado, obtenido %v", err)
	}

	apiStub.mu.Lock()
	defer apiStub.mu.Unlock()
	if len(apiStub.jobs) != 0 {
		t.Fatal("sin permiso no se encola nada")
	}
}

// Una mutación rechazada por el backend no toca el estado previo.
func TestEncolarFallidoDejaEstadoIntacto(t *testing.T) {
	tenantID := uuid.New()
	apiStub := &stubJobsAPI{
		jobs:       []job.Job{{ID: uuid.New(), TenantID: tenantID, Estado: job.EstadoDone}},
		enqueueErr: errors.New("backend rechazó"),
	}
	notifier := &stubNotifier{}
	estado := state.NewContainer()
	sesionSuperAdmin(estado, tenantID)

	ctrl := NewJobsController(apiStub, estado, notifier, time.Hour, zerolog.Nop())
	ctrl.Montar(context.Background())
	defer ctrl.Desmontar()

	esperar(t, func() bool {
		_, tiene := ctrl.Snapshot()
		return tiene
	}, "el fetch inicial no se aplicó")

	if err := ctrl.EncolarSync(context.Background(), tenantID, nil, nil); err == nil {
		t.Fatal("se esperaba la falla del backend")
	}

	jobs, _ := ctrl.Snapshot()
	if len(jobs) != 1 || jobs[0].Estado != job.EstadoDone {
		t.Fatal("el estado previo debe quedar intacto tras la falla")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.errores) != 1 {
		t.Fatal("la falla debe notificarse")
	}
}

// Cambiar el tenant activo refresca el listado con el filtro nuevo.
func TestCambioDeScopeRefresca(t *testing.T) {
	tenantID := uuid.New()
	apiStub := &stubJobsAPI{}
	estado := state.NewContainer()
	sesionSuperAdmin(estado, tenantID)

	ctrl := NewJobsController(apiStub, estado, &stubNotifier{}, time.Hour, zerolog.Nop())
	ctrl.Montar(context.Background())
	defer ctrl.Desmontar()

	esperar(t, func() bool {
		apiStub.mu.Lock()
		defer apiStub.mu.Unlock()
		return apiStub.listCalls == 1
	}, "el fetch inicial no arrancó")

	estado.SetScope(state.TenantScope{Visibles: []uuid.UUID{tenantID}, Activo: &tenantID})

	esperar(t, func() bool {
		apiStub.mu.Lock()
		defer apiStub.mu.Unlock()
		if len(apiStub.filtros) < 2 {
			return false
		}
		ultimo := apiStub.filtros[len(apiStub.filtros)-1]
		return ultimo.TenantID != nil && *ultimo.TenantID == tenantID
	}, "el cambio de scope no refrescó con el filtro nuevo")
}
