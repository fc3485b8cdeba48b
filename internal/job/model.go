package job

import (
	"time"

	"github.com/google/uuid"
)

// TipoJob enumera los trabajos de sincronización que ejecuta el backend.
type TipoJob string

const (
	TipoSyncComprobantes TipoJob = "SYNC_COMPROBANTES"
	TipoEnviarAOrds      TipoJob = "ENVIAR_A_ORDS"
	TipoDescargarXML     TipoJob = "DESCARGAR_XML"
)

// Estado enumera el ciclo de vida de un job. Las transiciones ocurren del
// lado del servidor; el cliente nunca escribe el estado, sólo encola.
type Estado string

const (
	EstadoPending Estado = "PENDING"
	EstadoRunning Estado = "RUNNING"
	EstadoDone    Estado = "DONE"
	EstadoFailed  Estado = "FAILED"
)

// Job es el snapshot de un trabajo según el último fetch.
type Job struct {
	ID           uuid.UUID      `json:"id"`
	TenantID     uuid.UUID      `json:"tenant_id"`
	TipoJob      TipoJob        `json:"tipo_job"`
	Estado       Estado         `json:"estado"`
	Intentos     int            `json:"intentos"`
	MaxIntentos  int            `json:"max_intentos"`
	Payload      map[string]any `json:"payload,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	LastRunAt    *time.Time     `json:"last_run_at,omitempty"`
	NextRunAt    *time.Time     `json:"next_run_at,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
}

// Filtro describe los parámetros de listado que resuelve el servidor.
type Filtro struct {
	Estado   Estado
	TipoJob  TipoJob
	TenantID *uuid.UUID
	Limit    int
}

// Conteos agrega totales por estado. Siempre se recalcula desde el snapshot
// completo para no divergir de la verdad del servidor.
type Conteos struct {
	Pending int `json:"pending"`
	Running int `json:"running"`
	Done    int `json:"done"`
	Failed  int `json:"failed"`
}

// Contar recorre el snapshot y devuelve los totales por estado.
func Contar(jobs []Job) Conteos {
	var c Conteos
	for _, j := range jobs {
		switch j.Estado {
		case EstadoPending:
			c.Pending++
		case EstadoRunning:
			c.Running++
		case EstadoDone:
			c.Done++
		case EstadoFailed:
			c.Failed++
		}
	}
	return c
}
