package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/rbac"
)

// SessionStatus describe el ciclo de vida de la sesión.
type SessionStatus string

const (
	StatusChecking  SessionStatus = "checking"
	StatusReady     SessionStatus = "ready"
	StatusAnonymous SessionStatus = "anonymous"
)

// Session agrupa el estado de autenticación visible para las vistas. El token
// no viaja acá: sólo lo conoce el SessionStore y el cliente HTTP.
type Session struct {
	Status   SessionStatus
	Identity *rbac.Identity
}

// TenantScope indica qué tenants puede ver la identidad y cuál está activo.
// Activo en nil significa "todos" (sólo posible para super_admin).
type TenantScope struct {
	Visibles []uuid.UUID
	Activo   *uuid.UUID
}

// Visible informa pertenencia al conjunto visible.
func (s TenantScope) Visible(id uuid.UUID) bool {
	for _, v := range s.Visibles {
		if v == id {
			return true
		}
	}
	return false
}

// Container es el contenedor único de Session/Identity/TenantScope del
// proceso. Las lecturas son sincrónicas; las escrituras son reemplazos
// atómicos completos y sólo las realizan SessionStore y el resolutor de
// scope, nunca las vistas.
type Container struct {
	mu      sync.RWMutex
	session Session
	scope   TenantScope

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewContainer arranca en estado checking, previo a restaurar la sesión.
func NewContainer() *Container {
	return &Container{
		session: Session{Status: StatusChecking},
		subs:    make(map[int]func()),
	}
}

// Session devuelve la sesión vigente.
func (c *Container) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Scope devuelve el scope de tenants vigente.
func (c *Container) Scope() TenantScope {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scope
}

// SetSession reemplaza la sesión completa y notifica a los suscriptores.
func (c *Container) SetSession(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	c.notify()
}

// SetScope reemplaza el scope completo y notifica a los suscriptores.
func (c *Container) SetScope(s TenantScope) {
	c.mu.Lock()
	c.scope = s
	c.mu.Unlock()
	c.notify()
}

// Subscribe registra un callback invocado en cada transición de estado.
// Devuelve la función de baja; debe llamarse al desmontar la vista.
func (c *Container) Subscribe(fn func()) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Container) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
