package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/tenant"
)

// ListTenants trae el listado completo de tenants visibles para el token.
func (c *Client) ListTenants(ctx context.Context) ([]tenant.Resumen, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tenants", nil)
	if err != nil {
		return nil, err
	}

	var tenants []tenant.Resumen
	if err := c.do(req, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetTenant trae el detalle con la configuración anidada.
func (c *Client) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Detalle, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tenants/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var detalle tenant.Detalle
	if err := c.do(req, &detalle); err != nil {
		return nil, err
	}
	return &detalle, nil
}

// CreateTenant registra un tenant nuevo.
func (c *Client) CreateTenant(ctx context.Context, in tenant.CrearInput) (*tenant.Detalle, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/tenants", in)
	if err != nil {
		return nil, err
	}

	var detalle tenant.Detalle
	if err := c.do(req, &detalle); err != nil {
		return nil, err
	}
	return &detalle, nil
}

// UpdateTenant actualiza un tenant existente. Los campos secretos vacíos se
// interpretan del lado del servidor como "sin cambios".
func (c *Client) UpdateTenant(ctx context.Context, id uuid.UUID, in tenant.ActualizarInput) (*tenant.Detalle, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/tenants/"+id.String(), in)
	if err != nil {
		return nil, err
	}

	var detalle tenant.Detalle
	if err := c.do(req, &detalle); err != nil {
		return nil, err
	}
	return &detalle, nil
}
