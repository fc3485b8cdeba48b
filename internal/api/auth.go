package api

import (
	"context"
	"net/http"

	"github.com/fiscalpy/consola/internal/rbac"
)

// LoginResult es la respuesta de POST /auth/login.
type LoginResult struct {
	Token   string        `json:"token"`
	Usuario rbac.Identity `json:"usuario"`
}

// Login envía credenciales y devuelve token e identidad.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me obtiene la identidad asociada al token vigente.
func (c *Client) Me(ctx context.Context) (*rbac.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var identity rbac.Identity
	if err := c.do(req, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout avisa al backend que invalide el token. Es best-effort: el caller
// decide ignorar la falla.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
