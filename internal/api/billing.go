package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/billing"
)

// ListPlans lista los planes comerciales.
func (c *Client) ListPlans(ctx context.Context) ([]billing.Plan, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/billing/plans", nil)
	if err != nil {
		return nil, err
	}

	var plans []billing.Plan
	if err := c.do(req, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan da de alta un plan.
func (c *Client) CreatePlan(ctx context.Context, in billing.PlanInput) (*billing.Plan, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/billing/plans", in)
	if err != nil {
		return nil, err
	}

	var plan billing.Plan
	if err := c.do(req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan edita un plan existente.
func (c *Client) UpdatePlan(ctx context.Context, id uuid.UUID, in billing.PlanInput) (*billing.Plan, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/billing/plans/"+id.String(), in)
	if err != nil {
		return nil, err
	}

	var plan billing.Plan
	if err := c.do(req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeletePlan elimina un plan.
func (c *Client) DeletePlan(ctx context.Context, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/billing/plans/"+id.String(), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListAddons lista los complementos.
func (c *Client) ListAddons(ctx context.Context) ([]billing.Addon, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/billing/addons", nil)
	if err != nil {
		return nil, err
	}

	var addons []billing.Addon
	if err := c.do(req, &addons); err != nil {
		return nil, err
	}
	return addons, nil
}

// CreateAddon da de alta un complemento.
func (c *Client) CreateAddon(ctx context.Context, in billing.AddonInput) (*billing.Addon, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/billing/addons", in)
	if err != nil {
		return nil, err
	}

	var addon billing.Addon
	if err := c.do(req, &addon); err != nil {
		return nil, err
	}
	return &addon, nil
}

// UpdateAddon edita un complemento existente.
func (c *Client) UpdateAddon(ctx context.Context, id uuid.UUID, in billing.AddonInput) (*billing.Addon, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/billing/addons/"+id.String(), in)
	if err != nil {
		return nil, err
	}

	var addon billing.Addon
	if err := c.do(req, &addon); err != nil {
		return nil, err
	}
	return &addon, nil
}

// DeleteAddon elimina un complemento.
func (c *Client) DeleteAddon(ctx context.Context, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/billing/addons/"+id.String(), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
