package console

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/scope"
	"github.com/fiscalpy/consola/internal/state"
	"github.com/fiscalpy/consola/internal/tenant"
)

type tenantsAPI interface {
	ListTenants(ctx context.Context) ([]tenant.Resumen, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Detalle, error)
	CreateTenant(ctx context.Context, in tenant.CrearInput) (*tenant.Detalle, error)
	UpdateTenant(ctx context.Context, id uuid.UUID, in tenant.ActualizarInput) (*tenant.Detalle, error)
}

// TenantsController administra el listado de tenants como caché de lectura y
// canaliza las mutaciones. Cada listado fresco recalcula el scope, así una
// selección activa colgante cae sola a "todos".
type TenantsController struct {
	api      tenantsAPI
	estado   *state.Container
	resolver *scope.Resolver
	notifier Notifier

	mu    sync.Mutex
	cache []tenant.Resumen
}

func NewTenantsController(api tenantsAPI, estado *state.Container, resolver *scope.Resolver, notifier Notifier) *TenantsController {
	return &TenantsController{api: api, estado: estado, resolver: resolver, notifier: notifier}
}

// Listar refresca la caché desde el backend y actualiza el scope.
func (c *TenantsController) Listar(ctx context.Context) ([]tenant.Resumen, error) {
	tenants, err := c.api.ListTenants(ctx)
	if err != nil {
		c.notifier.NotificarError("No se pudo listar las empresas", err)
		return nil, err
	}

	c.mu.Lock()
	c.cache = tenants
	c.mu.Unlock()

	c.resolver.Actualizar(tenants)
	return tenants, nil
}

// Cache devuelve el último listado conocido sin ir a la red.
func (c *TenantsController) Cache() []tenant.Resumen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache
}

// Detalle trae la ficha completa, con la configuración anidada.
func (c *TenantsController) Detalle(ctx context.Context, id uuid.UUID) (*tenant.Detalle, error) {
	detalle, err := c.api.GetTenant(ctx, id)
	if err != nil {
		c.notifier.NotificarError("No se pudo cargar la empresa", err)
		return nil, err
	}
	return detalle, nil
}

// Crear valida el formulario, registra el tenant y refresca listado y scope.
// Si el backend rechaza, el estado previo queda intacto.
func (c *TenantsController) Crear(ctx context.Context, in tenant.CrearInput) (*tenant.Detalle, error) {
	if !c.autorizado("tenants", "create") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	detalle, err := c.api.CreateTenant(ctx, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo crear la empresa", err)
		return nil, err
	}

	c.notifier.Notificar("Empresa creada", detalle.NombreFantasia)
	if _, err := c.Listar(ctx); err != nil {
		return detalle, nil
	}
	return detalle, nil
}

// Actualizar valida y edita un tenant existente. Los campos secretos vacíos
// viajan vacíos y el servidor los deja sin cambios.
func (c *TenantsController) Actualizar(ctx context.Context, id uuid.UUID, in tenant.ActualizarInput) (*tenant.Detalle, error) {
	if !c.autorizado("tenants", "update") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	detalle, err := c.api.UpdateTenant(ctx, id, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo actualizar la empresa", err)
		return nil, err
	}

	c.notifier.Notificar("Empresa actualizada", detalle.NombreFantasia)
	if _, err := c.Listar(ctx); err != nil {
		return detalle, nil
	}
	return detalle, nil
}

// Seleccionar fija el tenant activo de la sesión. Para identidades que no
// son super_admin el resolutor lo convierte en no-op.
func (c *TenantsController) Seleccionar(id *uuid.UUID) state.TenantScope {
	c.mu.Lock()
	cache := c.cache
	c.mu.Unlock()
	return c.resolver.SeleccionarTenant(id, cache)
}

func (c *TenantsController) autorizado(recurso, accion string) bool {
	sesion := c.estado.Session()
	if rbac.HasPermission(sesion.Identity, recurso, accion) {
		return true
	}
	c.notifier.NotificarError("Acción no permitida", ErrNoAutorizado)
	return false
}
