package rbac

// HasPermission evalúa "recurso:accion" contra los permisos de la identidad.
// super_admin satisface cualquier chequeo sin mirar la lista.
func HasPermission(id *Identity, recurso, accion string) bool {
	if id == nil {
		return false
	}
	if id.Rol.Nombre == RoleSuperAdmin {
		return true
	}
	objetivo := recurso + ":" + accion
	for _, p := range id.Permisos {
		if p == objetivo {
			return true
		}
	}
	return false
}

// Flags agrupa los indicadores gruesos de rol que consumen menú y vistas.
type Flags struct {
	SuperAdmin     bool
	AdminEmpresa   bool
	UsuarioEmpresa bool
	Readonly       bool
}

// FlagsFor deriva los indicadores a partir del rol. Se recalcula en cada
// cambio de identidad; nunca se cachea entre login/logout.
func FlagsFor(id *Identity) Flags {
	if id == nil {
		return Flags{}
	}
	switch id.Rol.Nombre {
	case RoleSuperAdmin:
		return Flags{SuperAdmin: true, AdminEmpresa: true}
	case RoleAdminEmpresa:
		return Flags{AdminEmpresa: true}
	case RoleUsuarioEmpresa:
		return Flags{UsuarioEmpresa: true}
	case RoleReadonly:
		return Flags{Readonly: true}
	}
	return Flags{}
}
