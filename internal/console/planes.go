package console

import (
	"context"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/billing"
	"github.com/fiscalpy/consola/internal/rbac"
	"github.com/fiscalpy/consola/internal/state"
)

type billingAPI interface {
	ListPlans(ctx context.Context) ([]billing.Plan, error)
	CreatePlan(ctx context.Context, in billing.PlanInput) (*billing.Plan, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, in billing.PlanInput) (*billing.Plan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ListAddons(ctx context.Context) ([]billing.Addon, error)
	CreateAddon(ctx context.Context, in billing.AddonInput) (*billing.Addon, error)
	UpdateAddon(ctx context.Context, id uuid.UUID, in billing.AddonInput) (*billing.Addon, error)
	DeleteAddon(ctx context.Context, id uuid.UUID) error
}

// PlanesController administra planes y complementos. Carga a demanda, sin
// polling: los planes cambian poco.
type PlanesController struct {
	api      billingAPI
	estado   *state.Container
	notifier Notifier
}

func NewPlanesController(api billingAPI, estado *state.Container, notifier Notifier) *PlanesController {
	return &PlanesController{api: api, estado: estado, notifier: notifier}
}

// Planes lista los planes vigentes.
func (c *PlanesController) Planes(ctx context.Context) ([]billing.Plan, error) {
	plans, err := c.api.ListPlans(ctx)
	if err != nil {
		c.notifier.NotificarError("No se pudo listar los planes", err)
		return nil, err
	}
	return plans, nil
}

// CrearPlan valida y da de alta un plan.
func (c *PlanesController) CrearPlan(ctx context.Context, in billing.PlanInput) (*billing.Plan, error) {
	if !c.autorizado("billing", "manage") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	plan, err := c.api.CreatePlan(ctx, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo crear el plan", err)
		return nil, err
	}
	c.notifier.Notificar("Plan creado", plan.Nombre)
	return plan, nil
}

// ActualizarPlan valida y edita un plan.
func (c *PlanesController) ActualizarPlan(ctx context.Context, id uuid.UUID, in billing.PlanInput) (*billing.Plan, error) {
	if !c.autorizado("billing", "manage") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	plan, err := c.api.UpdatePlan(ctx, id, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo actualizar el plan", err)
		return nil, err
	}
	c.notifier.Notificar("Plan actualizado", plan.Nombre)
	return plan, nil
}

// EliminarPlan borra un plan.
func (c *PlanesController) EliminarPlan(ctx context.Context, id uuid.UUID) error {
	if !c.autorizado("billing", "manage") {
		return ErrNoAutorizado
	}
	if err := c.api.DeletePlan(ctx, id); err != nil {
		c.notifier.NotificarError("No se pudo eliminar el plan", err)
		return err
	}
	c.notifier.Notificar("Plan eliminado", "")
	return nil
}

// Addons lista los complementos.
func (c *PlanesController) Addons(ctx context.Context) ([]billing.Addon, error) {
	addons, err := c.api.ListAddons(ctx)
	if err != nil {
		c.notifier.NotificarError("No se pudo listar los complementos", err)
		return nil, err
	}
	return addons, nil
}

// CrearAddon valida y da de alta un complemento.
func (c *PlanesController) CrearAddon(ctx context.Context, in billing.AddonInput) (*billing.Addon, error) {
	if !c.autorizado("billing", "manage") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	addon, err := c.api.CreateAddon(ctx, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo crear el complemento", err)
		return nil, err
	}
	c.notifier.Notificar("Complemento creado", addon.Nombre)
	return addon, nil
}

// ActualizarAddon valida y edita un complemento.
func (c *PlanesController) ActualizarAddon(ctx context.Context, id uuid.UUID, in billing.AddonInput) (*billing.Addon, error) {
	if !c.autorizado("billing", "manage") {
		return nil, ErrNoAutorizado
	}
	if err := in.Validar(); err != nil {
		return nil, err
	}

	addon, err := c.api.UpdateAddon(ctx, id, in)
	if err != nil {
		c.notifier.NotificarError("No se pudo actualizar el complemento", err)
		return nil, err
	}
	c.notifier.Notificar("Complemento actualizado", addon.Nombre)
	return addon, nil
}

// EliminarAddon borra un complemento.
func (c *PlanesController) EliminarAddon(ctx context.Context, id uuid.UUID) error {
	if !c.autorizado("billing", "manage") {
		return ErrNoAutorizado
	}
	if err := c.api.DeleteAddon(ctx, id); err != nil {
		c.notifier.NotificarError("No se pudo eliminar el complemento", err)
		return err
	}
	c.notifier.Notificar("Complemento eliminado", "")
	return nil
}

func (c *PlanesController) autorizado(recurso, accion string) bool {
	sesion := c.estado.Session()
	if rbac.HasPermission(sesion.Identity, recurso, accion) {
		return true
	}
	c.notifier.NotificarError("Acción no permitida", ErrNoAutorizado)
	return false
}
