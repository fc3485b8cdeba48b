package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/util"
)

// Plan describe un plan comercial de la plataforma.
type Plan struct {
	ID            uuid.UUID `json:"id"`
	Nombre        string    `json:"nombre"`
	PrecioMensual int64     `json:"precio_mensual"`
	MaxTenants    int       `json:"max_tenants"`
	Activo        bool      `json:"activo"`
	CreatedAt     time.Time `json:"created_at"`
}

// Addon describe un complemento contratable sobre un plan.
type Addon struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Precio    int64     `json:"precio"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanInput contiene los campos de alta/edición de un plan.
type PlanInput struct {
	Nombre        string `json:"nombre"`
	PrecioMensual int64  `json:"precio_mensual"`
	MaxTenants    int    `json:"max_tenants"`
	Activo        bool   `json:"activo"`
}

// Validar corre los chequeos de formulario previos al envío.
func (in PlanInput) Validar() error {
	if err := util.Requerir(in.Nombre, "nombre"); err != nil {
		return err
	}
	if in.PrecioMensual < 0 {
		return &util.ValidationError{Campo: "precio_mensual", Motivo: "no puede ser negativo"}
	}
	return nil
}

// AddonInput contiene los campos de alta/edición de un complemento.
type AddonInput struct {
	Nombre string `json:"nombre"`
	Precio int64  `json:"precio"`
	Activo bool   `json:"activo"`
}

// Validar corre los chequeos de formulario previos al envío.
func (in AddonInput) Validar() error {
	if err := util.Requerir(in.Nombre, "nombre"); err != nil {
		return err
	}
	if in.Precio < 0 {
		return &util.ValidationError{Campo: "precio", Motivo: "no puede ser negativo"}
	}
	return nil
}
