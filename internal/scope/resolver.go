package scope

import (
	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/state"
	"github.com/fiscalpy/consola/internal/tenant"
)

// Resolve calcula el scope de tenants para una identidad dada. Para todo rol
// distinto de super_admin el conjunto visible es exactamente {tenant_id} y la
// selección activa queda fija ahí. Para super_admin el conjunto es la lista
// completa y activo puede ser nil ("todos") o un tenant existente; una
// selección colgante (tenant borrado) cae a nil.
func Resolve(identity *rbac.Identity, tenants []tenant.Resumen, activo *uuid.UUID) state.TenantScope {
	if identity == nil {
		return state.TenantScope{}
	}

	if identity.Rol.Nombre != rbac.RoleSuperAdmin {
		if identity.TenantID == nil {
			return state.TenantScope{}
		}
		id := *identity.TenantID
		return state.TenantScope{Visibles: []uuid.UUID{id}, Activo: &id}
	}

	visibles := make([]uuid.UUID, 0, len(tenants))
	for _, t := range tenants {
		visibles = append(visibles, t.ID)
	}

	if activo != nil {
		if _, ok := tenant.Buscar(tenants, *activo); !ok {
			activo = nil
		} else {
			id := *activo
			activo = &id
		}
	}

	return state.TenantScope{Visibles: visibles, Activo: activo}
}

// Resolver mantiene el scope del contenedor consistente con la identidad y
// la lista de tenants conocida. La selección activa vive sólo en memoria:
// se pierde en cada arranque, a propósito.
type Resolver struct {
	estado *state.Container
}

func NewResolver(estado *state.Container) *Resolver {
	return &Resolver{estado: estado}
}

// Actualizar recalcula el scope contra la lista fresca de tenants,
// preservando la selección activa cuando sigue siendo válida.
func (r *Resolver) Actualizar(tenants []tenant.Resumen) state.TenantScope {
	sesion := r.estado.Session()
	previo := r.estado.Scope()
	nuevo := Resolve(sesion.Identity, tenants, previo.Activo)
	r.estado.SetScope(nuevo)
	return nuevo
}

// SeleccionarTenant cambia el tenant activo. Para identidades que no son
// super_admin es un no-op: su scope es fijo. Pasar nil vuelve a "todos".
func (r *Resolver) SeleccionarTenant(id *uuid.UUID, tenants []tenant.Resumen) state.TenantScope {
	sesion := r.estado.Session()
	if sesion.Identity == nil || sesion.Identity.Rol.Nombre != rbac.RoleSuperAdmin {
		return r.estado.Scope()
	}

	nuevo := Resolve(sesion.Identity, tenants, id)
	r.estado.SetScope(nuevo)
	return nuevo
}
