package rbac

import (
	"github.com/google/uuid"
)

// RoleName es la enumeración cerrada de roles de la plataforma.
type RoleName string

const (
	RoleSuperAdmin     RoleName = "super_admin"
	RoleAdminEmpresa   RoleName = "admin_empresa"
	RoleUsuarioEmpresa RoleName = "usuario_empresa"
	RoleReadonly       RoleName = "readonly"
)

// Valido indica si el rol pertenece a la enumeración conocida.
func (r RoleName) Valido() bool {
	switch r {
	case RoleSuperAdmin, RoleAdminEmpresa, RoleUsuarioEmpresa, RoleReadonly:
		return true
	}
	return false
}

// Rol envuelve el nombre de rol tal como viaja en el JSON del backend.
type Rol struct {
	Nombre RoleName `json:"nombre"`
}

// Identity representa la identidad autenticada de la sesión. Es inmutable una
// vez obtenida: se reemplaza completa en login/refetch y se descarta en logout.
type Identity struct {
	ID       uuid.UUID  `json:"id"`
	Nombre   string     `json:"nombre"`
	Rol      Rol        `json:"rol"`
	Permisos []string   `json:"permisos"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
}
