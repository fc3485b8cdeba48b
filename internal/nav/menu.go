package nav

import (
	"github.com/fiscalpy/consola/internal/rbac"
)

// PageID identifica cada página de la consola.
type PageID string

const (
	PageDashboard PageID = "dashboard"
	PageTenants   PageID = "tenants"
	PageJobs      PageID = "jobs"
	PagePlanes    PageID = "planes"
	PageAddons    PageID = "addons"
	PageCuenta    PageID = "cuenta"
)

// Grupo nombra los bloques colapsables del menú.
type Grupo string

const (
	GrupoPrincipal      Grupo = "principal"
	GrupoAutomatizacion Grupo = "automatizacion"
	GrupoAdministracion Grupo = "administracion"
)

// Item es una entrada estática del menú. Roles en nil significa visible para
// todos los roles.
type Item struct {
	ID       PageID
	Etiqueta string
	Grupo    Grupo
	Roles    []rbac.RoleName
}

// Definicion devuelve el menú completo en su orden canónico. El filtrado
// nunca reordena: el estado de colapso atado a posiciones sigue válido.
func Definicion() []Item {
	return []Item{
		{ID: PageDashboard, Etiqueta: "Panel", Grupo: GrupoPrincipal},
		{ID: PageTenants, Etiqueta: "Empresas", Grupo: GrupoPrincipal, Roles: []rbac.RoleName{rbac.RoleSuperAdmin}},
		{ID: PageJobs, Etiqueta: "Sincronizaciones", Grupo: GrupoAutomatizacion, Roles: []rbac.RoleName{rbac.RoleSuperAdmin, rbac.RoleAdminEmpresa, rbac.RoleUsuarioEmpresa}},
		{ID: PagePlanes, Etiqueta: "Planes", Grupo: GrupoAdministracion, Roles: []rbac.RoleName{rbac.RoleSuperAdmin}},
		{ID: PageAddons, Etiqueta: "Complementos", Grupo: GrupoAdministracion, Roles: []rbac.RoleName{rbac.RoleSuperAdmin}},
		{ID: PageCuenta, Etiqueta: "Mi cuenta", Grupo: GrupoAdministracion},
	}
}

// Visibles filtra la definición para el rol dado preservando el orden.
// Un item sin roles declarados es visible para cualquiera.
func Visibles(definicion []Item, rol rbac.RoleName) []Item {
	visibles := make([]Item, 0, len(definicion))
	for _, item := range definicion {
		if len(item.Roles) == 0 {
			visibles = append(visibles, item)
			continue
		}
		for _, permitido := range item.Roles {
			if permitido == rol {
				visibles = append(visibles, item)
				break
			}
		}
	}
	return visibles
}
