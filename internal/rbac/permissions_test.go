package rbac

import (
	"testing"

	"github.com/google/uuid"
)

func TestHasPermissionSuperAdminIgnoraLista(t *testing.T) {
	id := &Identity{ID: uuid.New(), Rol: Rol{Nombre: RoleSuperAdmin}, Permisos: nil}

	casos := [][2]string{
		{"tenants", "delete"},
		{"jobs", "create"},
		{"cualquier", "cosa"},
	}
	for _, c := range casos {
		if !HasPermission(id, c[0], c[1]) {
			t.Fatalf("super_admin debe pasar %s:%s", c[0], c[1])
		}
	}
}

func TestHasPermissionAdminEmpresaSinPermisos(t *testing.T) {
	tenantID := uuid.New()
	id := &Identity{
		ID:       uuid.New(),
		Rol:      Rol{Nombre: RoleAdminEmpresa},
		Permisos: []string{},
		TenantID: &tenantID,
	}

	if HasPermission(id, "tenants", "delete") {
		t.Fatal("admin_empresa sin permisos no debe pasar tenants:delete")
	}
}

func TestHasPermissionMembresiaExacta(t *testing.T) {
	id := &Identity{
		Rol:      Rol{Nombre: RoleUsuarioEmpresa},
		Permisos: []string{"jobs:create", "tenants:read"},
	}

	if !HasPermission(id, "jobs", "create") {
		t.Fatal("jobs:create está en la lista")
	}
	if HasPermission(id, "jobs", "delete") {
		t.Fatal("jobs:delete no está en la lista")
	}
	if HasPermission(nil, "jobs", "create") {
		t.Fatal("sin identidad no hay permiso")
	}
}

func TestFlagsForCadaRol(t *testing.T) {
	casos := []struct {
		rol      RoleName
		esperado Flags
	}{
		{RoleSuperAdmin, Flags{SuperAdmin: true, AdminEmpresa: true}},
		{RoleAdminEmpresa, Flags{AdminEmpresa: true}},
		{RoleUsuarioEmpresa, Flags{UsuarioEmpresa: true}},
		{RoleReadonly, Flags{Readonly: true}},
	}

	for _, c := range casos {
		got := FlagsFor(&Identity{Rol: Rol{Nombre: c.rol}})
		if got != c.esperado {
			t.Fatalf("flags de %s: esperado %+v, obtenido %+v", c.rol, c.esperado, got)
		}
	}

	if FlagsFor(nil) != (Flags{}) {
		t.Fatal("sin identidad todos los flags deben ser falsos")
	}
}
