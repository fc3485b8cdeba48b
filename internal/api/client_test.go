package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/job"
)

type tokenFijo struct {
	mu    sync.Mutex
	token string
}

func (t *tokenFijo) Token() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

func (t *tokenFijo) set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

func nuevoCliente(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cliente, err := New(Config{BaseURL: srv.URL, Tokens: tokens})
	if err != nil {
		t.Fatalf("crear cliente: %v", err)
	}
	return cliente
}

// El header Authorization se arma con el token vigente al momento de cada
// llamada, no con el capturado al construir el cliente.
func TestTokenSeLeePorLlamada(t *testing.T) {
	var mu sync.Mutex
	var vistos []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		vistos = append(vistos, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	tokens := &tokenFijo{token: "primero"}
	cliente := nuevoCliente(t, handler, tokens)

	ctx := context.Background()
	if err := cliente.Health(ctx); err != nil {
		t.Fatalf("health: %v", err)
	}

	tokens.set("")
	if err := cliente.Health(ctx); err != nil {
		t.Fatalf("health sin token: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if vistos[0] != "Bearer primero" {
		t.Fatalf("primera llamada: %q", vistos[0])
	}
	if vistos[1] != "" {
		t.Fatalf("tras limpiar el token no debe viajar Authorization: %q", vistos[1])
	}
}

func TestLoginDecodificaTokenEIdentidad(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("ruta inesperada: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("body: %v", err)
		}
		if body["email"] != "op@example.com" {
			t.Errorf("email: %q", body["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"usuario": map[string]any{
				"id":       uuid.New().String(),
				"nombre":   "Operadora",
				"rol":      map[string]string{"nombre": "super_admin"},
				"permisos": []string{},
			},
		})
	})

	cliente := nuevoCliente(t, handler, &tokenFijo{})
	result, err := cliente.Login(context.Background(), "op@example.com", "secreta")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "tok-123" || result.Usuario.Nombre != "Operadora" {
		t.Fatalf("respuesta mal decodificada: %+v", result)
	}
}

func TestErroresDelBackendSeTipan(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token vencido"})
	})

	cliente := nuevoCliente(t, handler, &tokenFijo{token: "viejo"})
	_, err := cliente.Me(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("esperado *api.Error, obtenido %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "token vencido" {
		t.Fatalf("error mal mapeado: %+v", apiErr)
	}
}

func TestListJobsArmaQueryDeFiltros(t *testing.T) {
	tenantID := uuid.New()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("estado") != "FAILED" || q.Get("tipo_job") != "SYNC_COMPROBANTES" {
			t.Errorf("query incompleta: %s", r.URL.RawQuery)
		}
		if q.Get("tenant_id") != tenantID.String() || q.Get("limit") != "50" {
			t.Errorf("query incompleta: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	cliente := nuevoCliente(t, handler, &tokenFijo{token: "tok"})
	filtro := job.Filtro{
		Estado:   job.EstadoFailed,
		TipoJob:  job.TipoSyncComprobantes,
		TenantID: &tenantID,
		Limit:    50,
	}
	if _, err := cliente.ListJobs(context.Background(), filtro); err != nil {
		t.Fatalf("list jobs: %v", err)
	}
}
