package nav

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/fiscalpy/consola/internal/storage"
)

// Colapsos persiste el estado colapsado/expandido de los tres grupos del
// menú. Se carga completo al construirse, antes del primer render, para que
// la restauración no parpadee.
type Colapsos struct {
	kv storage.KV

	mu     sync.Mutex
	estado map[Grupo]bool
}

func claveGrupo(g Grupo) string {
	switch g {
	case GrupoPrincipal:
		return storage.KeyNavPrincipal
	case GrupoAutomatizacion:
		return storage.KeyNavAuto
	case GrupoAdministracion:
		return storage.KeyNavAdmin
	}
	return ""
}

// CargarColapsos lee los tres flags del almacén durable. Una clave ausente
// significa expandido.
func CargarColapsos(ctx context.Context, kv storage.KV) (*Colapsos, error) {
	c := &Colapsos{kv: kv, estado: make(map[Grupo]bool)}
	for _, g := range []Grupo{GrupoPrincipal, GrupoAutomatizacion, GrupoAdministracion} {
		val, err := kv.Get(ctx, claveGrupo(g))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.estado[g] = false
				continue
			}
			return nil, err
		}
		colapsado, _ := strconv.ParseBool(val)
		c.estado[g] = colapsado
	}
	return c, nil
}

// Colapsado informa el estado del grupo.
func (c *Colapsos) Colapsado(g Grupo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.estado[g]
}

// Alternar invierte el estado del grupo y lo persiste bajo su clave fija.
func (c *Colapsos) Alternar(ctx context.Context, g Grupo) (bool, error) {
	c.mu.Lock()
	nuevo := !c.estado[g]
	c.estado[g] = nuevo
	c.mu.Unlock()

	if err := c.kv.Set(ctx, claveGrupo(g), strconv.FormatBool(nuevo)); err != nil {
		return nuevo, err
	}
	return nuevo, nil
}
