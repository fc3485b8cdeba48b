package status

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fiscalpy/consola/internal/console"
	"github.com/fiscalpy/consola/internal/state"
)

// Deps agrupa lo que el servidor de estado expone en sólo lectura.
type Deps struct {
	Estado *state.Container
	Panel  *console.DashboardController
	Jobs   *console.JobsController
	Salud  *console.HealthController
}

// NewRouter arma la superficie HTTP local de la consola: el estado vivo de
// sesión, conectividad y snapshots, sin ninguna mutación.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		sesion := deps.Estado.Session()
		scope := deps.Estado.Scope()

		cuerpo := map[string]any{
			"sesion":       string(sesion.Status),
			"conectividad": string(deps.Salud.Estado()),
		}
		if sesion.Identity != nil {
			cuerpo["usuario"] = sesion.Identity.Nombre
			cuerpo["rol"] = string(sesion.Identity.Rol.Nombre)
		}
		if scope.Activo != nil {
			cuerpo["tenant_activo"] = scope.Activo.String()
		}
		if resumen, tiene := deps.Panel.Snapshot(); tiene {
			cuerpo["panel"] = resumen
		}
		WriteJSON(w, http.StatusOK, cuerpo)
	})

	r.Get("/status/jobs", func(w http.ResponseWriter, _ *http.Request) {
		jobs, tiene := deps.Jobs.Snapshot()
		if !tiene {
			WriteError(w, http.StatusServiceUnavailable, "SIN_DATOS", "todavía no hay snapshot de jobs")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"jobs":    jobs,
			"conteos": deps.Jobs.Conteos(),
			"estado":  string(deps.Jobs.EstadoVista()),
		})
	})

	return r
}
