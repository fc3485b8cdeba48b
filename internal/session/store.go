package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/fiscalpy/consola/internal/api"
	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/state"
	"github.com/fiscalpy/consola/internal/storage"
)

var (
	// ErrCredencialesInvalidas indica falla de autenticación.
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	// ErrTokenInvalido indica que el backend rechazó el token almacenado.
	ErrTokenInvalido = errors.New("token inválido")
	// ErrRed indica una falla de transporte, no de credenciales.
	ErrRed = errors.New("error de red")
)

type backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context) (*rbac.Identity, error)
	Logout(ctx context.Context) error
}

// Store es el dueño del token y de la identidad de la sesión. Es el único
// punto de escritura de la sesión en el contenedor de estado.
type Store struct {
	backend backend
	kv      storage.KV
	estado  *state.Container
	logger  zerolog.Logger

	mu    sync.Mutex
	token string
	gen   uint64
}

// NewStore construye el SessionStore. El backend se inyecta por interfaz
// para poder stubearlo en pruebas.
func NewStore(b backend, kv storage.KV, estado *state.Container, logger zerolog.Logger) *Store {
	return &Store{backend: b, kv: kv, estado: estado, logger: logger}
}

// SetBackend inyecta el cliente HTTP después de construido. Se llama una vez
// en el arranque: el cliente necesita al Store como TokenSource y el Store
// necesita al cliente para hablar con el backend.
func (s *Store) SetBackend(b backend) {
	s.backend = b
}

// Token devuelve el token vigente. Implementa api.TokenSource: se lee en el
// momento de cada request, nunca se captura antes.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Restore lee el token persistido y, si existe, recupera la identidad.
// Es idempotente: restaurar dos veces el mismo token produce la misma sesión.
func (s *Store) Restore(ctx context.Context) (state.Session, error) {
	token, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.volverAnonimo(false), nil
		}
		return s.volverAnonimo(false), err
	}

	// Un token ya vencido no merece el viaje a /auth/me.
	if tokenVencido(token) {
		s.logger.Info().Msg("session: token persistido vencido, se descarta")
		return s.volverAnonimo(true), nil
	}

	s.mu.Lock()
	s.token = token
	gen := s.gen
	s.mu.Unlock()

	identity, err := s.fetchIdentity(ctx, gen)
	if err != nil {
		if errors.Is(err, ErrTokenInvalido) {
			return s.volverAnonimo(true), nil
		}
		// Falla de red: el token persistido queda intacto para el próximo
		// arranque, pero esta corrida sigue anónima.
		sesion := s.volverAnonimo(false)
		return sesion, err
	}
	if identity == nil {
		// La sesión cambió mientras el fetch estaba en vuelo; el resultado
		// se descarta y vale lo que haya quedado en el contenedor.
		return s.estado.Session(), nil
	}

	sesion := state.Session{Status: state.StatusReady, Identity: identity}
	s.estado.SetSession(sesion)
	return sesion, nil
}

// Login autentica contra el backend, persiste el token y deja la sesión en
// ready. En falla la sesión queda anónima y nada se persiste.
func (s *Store) Login(ctx context.Context, email, password string) (*rbac.Identity, error) {
	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			s.logger.Warn().Msg("session: credenciales rechazadas")
			return nil, ErrCredencialesInvalidas
		}
		return nil, fmt.Errorf("%w: %v", ErrRed, err)
	}

	s.mu.Lock()
	s.token = result.Token
	s.gen++
	s.mu.Unlock()

	if err := s.kv.Set(ctx, storage.KeyToken, result.Token); err != nil {
		s.logger.Error().Err(err).Msg("session: no se pudo persistir el token")
	}

	identity := result.Usuario
	s.estado.SetSession(state.Session{Status: state.StatusReady, Identity: &identity})
	return &identity, nil
}

// Logout avisa al backend (best-effort, la falla se traga) y limpia token e
// identidad. Localmente nunca falla.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("session: logout remoto falló, se continúa local")
	}

	s.mu.Lock()
	s.token = ""
	s.gen++
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		s.logger.Error().Err(err).Msg("session: no se pudo borrar el token persistido")
	}
	s.estado.SetSession(state.Session{Status: state.StatusAnonymous})
}

// fetchIdentity consulta /auth/me. Devuelve identidad nil, sin error, cuando
// la sesión mutó (logout/login) mientras el request estaba en vuelo.
func (s *Store) fetchIdentity(ctx context.Context, gen uint64) (*rbac.Identity, error) {
	identity, err := s.backend.Me(ctx)

	s.mu.Lock()
	vigente := s.gen == gen
	s.mu.Unlock()
	if !vigente {
		return nil, nil
	}

	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
			return nil, ErrTokenInvalido
		}
		return nil, fmt.Errorf("%w: %v", ErrRed, err)
	}
	return identity, nil
}

// volverAnonimo limpia el estado en memoria y, si se pide, también el token
// persistido (caso token rechazado: sin esto habría un loop de refresh).
func (s *Store) volverAnonimo(borrarPersistido bool) state.Session {
	s.mu.Lock()
	s.token = ""
	s.gen++
	s.mu.Unlock()

	if borrarPersistido {
		if err := s.kv.Delete(context.Background(), storage.KeyToken); err != nil {
			s.logger.Error().Err(err).Msg("session: no se pudo borrar el token persistido")
		}
	}

	sesion := state.Session{Status: state.StatusAnonymous}
	s.estado.SetSession(sesion)
	return sesion
}

// tokenVencido hace un parse sin verificar firma sólo para mirar exp. Un
// token opaco (no JWT) pasa de largo y lo valida /auth/me.
func tokenVencido(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
