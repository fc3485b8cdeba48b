package tenant

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/util"
)

func TestCrearInputValidar(t *testing.T) {
	base := CrearInput{NombreFantasia: "Ferretería Asunción", RUC: "80012345-6", EmailContacto: "dueño@example.com"}
	if err := base.Validar(); err != nil {
		t.Fatalf("input válido rechazado: %v", err)
	}

	casos := []struct {
		nombre string
		input  CrearInput
		campo  string
	}{
		{"sin nombre", CrearInput{RUC: "80012345-6"}, "nombre_fantasia"},
		{"ruc corto", CrearInput{NombreFantasia: "X", RUC: "123-4"}, "ruc"},
		{"ruc sin verificador", CrearInput{NombreFantasia: "X", RUC: "80012345"}, "ruc"},
		{"email roto", CrearInput{NombreFantasia: "X", RUC: "80012345-6", EmailContacto: "no-es-mail"}, "email_contacto"},
	}

	for _, c := range casos {
		err := c.input.Validar()
		if err == nil {
			t.Fatalf("%s: se esperaba error", c.nombre)
		}
		var vErr *util.ValidationError
		if !errors.As(err, &vErr) || vErr.Campo != c.campo {
			t.Fatalf("%s: se esperaba error de %s, obtenido %v", c.nombre, c.campo, err)
		}
	}
}

func TestActualizarInputPermiteSecretoVacio(t *testing.T) {
	// El vacío en los campos secretos significa "sin cambios"; no es un
	// error de formulario.
	in := ActualizarInput{NombreFantasia: "Ferretería", Config: Credenciales{MarangatuClave: ""}}
	if err := in.Validar(); err != nil {
		t.Fatalf("secreto vacío no debe fallar validación: %v", err)
	}
}

func TestContarActivosYBuscar(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	tenants := []Resumen{
		{ID: a, Activo: true},
		{ID: b, Activo: false},
	}

	if got := ContarActivos(tenants); got != 1 {
		t.Fatalf("activos esperado 1, obtenido %d", got)
	}

	if _, ok := Buscar(tenants, b); !ok {
		t.Fatal("b está en la lista")
	}
	if _, ok := Buscar(tenants, uuid.New()); ok {
		t.Fatal("un id ajeno no debe encontrarse")
	}
}
