package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/fiscalpy/consola/internal/job"
)

// ListJobs lista jobs con filtrado del lado del servidor.
func (c *Client) ListJobs(ctx context.Context, filtro job.Filtro) ([]job.Job, error) {
	q := url.Values{}
	if filtro.Estado != "" {
		q.Set("estado", string(filtro.Estado))
	}
	if filtro.TipoJob != "" {
		q.Set("tipo_job", string(filtro.TipoJob))
	}
	if filtro.TenantID != nil {
		q.Set("tenant_id", filtro.TenantID.String())
	}
	if filtro.Limit > 0 {
		q.Set("limit", strconv.Itoa(filtro.Limit))
	}

	path := "/jobs"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var jobs []job.Job
	if err := c.do(req, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// EnqueueSyncComprobantes encola una sincronización de comprobantes. El job
// corre asincrónicamente del lado del servidor; la respuesta es inmediata.
func (c *Client) EnqueueSyncComprobantes(ctx context.Context, tenantID uuid.UUID, mes, anio *int) (*job.Job, error) {
	body := map[string]any{"tenant_id": tenantID}
	if mes != nil {
		body["mes"] = *mes
	}
	if anio != nil {
		body["anio"] = *anio
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/jobs/sync-comprobantes", body)
	if err != nil {
		return nil, err
	}

	var encolado job.Job
	if err := c.do(req, &encolado); err != nil {
		return nil, err
	}
	return &encolado, nil
}

// EnqueueDescargarXML encola una descarga de XMLs por lote.
func (c *Client) EnqueueDescargarXML(ctx context.Context, tenantID uuid.UUID, batchSize int) (*job.Job, error) {
	body := map[string]any{"tenant_id": tenantID, "batch_size": batchSize}

	req, err := c.newRequest(ctx, http.MethodPost, "/jobs/descargar-xml", body)
	if err != nil {
		return nil, err
	}

	var encolado job.Job
	if err := c.do(req, &encolado); err != nil {
		return nil, err
	}
	return &encolado, nil
}
