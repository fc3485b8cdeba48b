package tenant

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/util"
)

var (
	ErrNotFound = errors.New("tenant no encontrado")
)

// Resumen representa un tenant tal como lo lista el backend. El cliente lo
// trata como caché de lectura: se refresca con cada list/detalle.
type Resumen struct {
	ID             uuid.UUID `json:"id"`
	NombreFantasia string    `json:"nombre_fantasia"`
	RUC            string    `json:"ruc"`
	Activo         bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	EmailContacto  string    `json:"email_contacto,omitempty"`
}

// Credenciales agrupa los accesos a Marangatú y ORDS del tenant. Los campos
// secretos son de sólo escritura: el backend nunca los devuelve y, en una
// actualización, el string vacío significa "dejar sin cambios". Con este
// contrato un vaciado intencional no es expresable por la API; la política
// queda explícita acá en vez de replicarse en silencio.
type Credenciales struct {
	MarangatuUsuario string `json:"marangatu_usuario,omitempty"`
	MarangatuClave   string `json:"marangatu_clave,omitempty"`
	OrdsURL          string `json:"ords_url,omitempty"`
	OrdsUsuario      string `json:"ords_usuario,omitempty"`
	OrdsClave        string `json:"ords_clave,omitempty"`
}

// Detalle extiende el resumen con la configuración anidada.
type Detalle struct {
	Resumen
	Config Credenciales `json:"config"`
}

// CrearInput contiene los campos para registrar un tenant.
type CrearInput struct {
	NombreFantasia string       `json:"nombre_fantasia"`
	RUC            string       `json:"ruc"`
	EmailContacto  string       `json:"email_contacto,omitempty"`
	Config         Credenciales `json:"config"`
}

// Validar corre los chequeos de formulario previos al POST.
func (in CrearInput) Validar() error {
	if err := util.Requerir(in.NombreFantasia, "nombre_fantasia"); err != nil {
		return err
	}
	if err := util.ValidarRUC(in.RUC); err != nil {
		return err
	}
	return util.ValidarEmail(in.EmailContacto, "email_contacto")
}

// ActualizarInput contiene los campos editables de un tenant existente.
type ActualizarInput struct {
	NombreFantasia string       `json:"nombre_fantasia"`
	EmailContacto  string       `json:"email_contacto,omitempty"`
	Activo         bool         `json:"activo"`
	Config         Credenciales `json:"config"`
}

// Validar corre los chequeos de formulario previos al PUT.
func (in ActualizarInput) Validar() error {
	if err := util.Requerir(in.NombreFantasia, "nombre_fantasia"); err != nil {
		return err
	}
	return util.ValidarEmail(in.EmailContacto, "email_contacto")
}

// ContarActivos recalcula el total de tenants activos desde el snapshot
// completo, nunca por parches incrementales.
func ContarActivos(tenants []Resumen) int {
	total := 0
	for _, t := range tenants {
		if t.Activo {
			total++
		}
	}
	return total
}

// Buscar devuelve el resumen con el id dado, si existe en la lista.
func Buscar(tenants []Resumen, id uuid.UUID) (Resumen, bool) {
	for _, t := range tenants {
		if t.ID == id {
			return t, true
		}
	}
	return Resumen{}, false
}
