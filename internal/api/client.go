package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// TokenSource entrega el token vigente al momento de armar cada request.
// Se lee en el instante de la llamada, nunca se captura al construir el
// cliente: un logout a mitad de un request no debe filtrar un Authorization
// viejo en la llamada siguiente.
type TokenSource interface {
	Token() string
}

// Error representa un cuerpo de error devuelto por el backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Client encapsula llamadas al backend de la plataforma.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	limiter    *rate.Limiter
}

// Config describe lo esencial para construir el cliente.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	Tokens            TokenSource
	RequestsPerSecond float64
	Burst             int
}

// New valida la configuración y devuelve el cliente.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base url obligatoria")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("api: token source obligatorio")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		tokens:     cfg.Tokens,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	endpoint := c.baseURL + path

	var req *http.Request
	var err error
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return nil, err
		}
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, v any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Message
	if message == "" && body.Error != nil {
		message = body.Error.Message
	}
	return &Error{Status: resp.StatusCode, Message: message}
}

// Health hace el probe liviano de conectividad, sin autenticación.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
