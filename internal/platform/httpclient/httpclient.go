package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 10 * time.Second

	// Endpoint de renovación. El refresh va SIN bearer y por fuera del
	// ciclo de retry: es el único request que no puede re-dispararse a
	// sí mismo.
	refreshPath = "/autenticacao/refresh"
)

var (
	// ErrSessionExpired: el refresh falló (o la respuesta no trajo un
	// token usable). Las credenciales ya fueron borradas; la UI debe
	// volver al login.
	ErrSessionExpired = errors.New("httpclient: session expired")
)

// TokenSource lee y escribe el par de credenciales persistidas.
// internal/platform/tokenstore lo implementa con un archivo.
type TokenSource interface {
	Access() string
	Refresh() string
	// Store persiste el par. Si refresh viene vacío, conserva el actual.
	Store(access, refresh string) error
	Clear() error
}

// Client envuelve *http.Client para hablar con el Pet Manager API:
// agrega el bearer guardado a cada request, marca cada llamada con un
// X-Request-Id, y ante un 401 intercambia el refresh token y reintenta
// el request original exactamente una vez.
type Client struct {
	httpc   *http.Client
	baseURL string
	tokens  TokenSource

	mu        sync.Mutex
	onExpired func()
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource

	// Transport opcional (p.ej. para tests).
	Transport http.RoundTripper

	// OnSessionExpired corre cuando el refresh falla y la sesión queda
	// desarmada. Puede setearse después con SetOnSessionExpired.
	OnSessionExpired func()
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
	}
	if cfg.Tokens == nil {
		return nil, errors.New("httpclient: token source required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := cfg.Transport
	if tr == nil {
		tr = http.DefaultTransport
	}

	return &Client{
		httpc:     &http.Client{Timeout: timeout, Transport: tr},
		baseURL:   strings.TrimRight(base, "/"),
		tokens:    cfg.Tokens,
		onExpired: cfg.OnSessionExpired,
	}, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) SetOnSessionExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// request es un intento replayable: el body vive como bytes para poder
// reconstruirlo en el replay post-refresh.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// DoJSON hace un request JSON contra el API.
// - in: body a enviar (opcional). Si nil => no body, sin Content-Type.
// - out: donde decodificar la respuesta (opcional).
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	r := request{method: method, path: path, query: query}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		r.body = b
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}

// DoMultipart sube un archivo como multipart/form-data. El Content-Type
// lo calcula el writer (incluye el boundary); nunca se setea a mano.
func (c *Client) DoMultipart(ctx context.Context, method, path, field, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("httpclient: multipart: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("httpclient: multipart write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("httpclient: multipart close: %w", err)
	}

	r := request{
		method:      method,
		path:        path,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	}
	return c.do(ctx, r, out)
}

// do es el pipeline de dos estados: intento original y, ante un 401,
// refreshAndReplay. El replay no vuelve a pasar por acá, así que un
// segundo 401 sale como *HTTPError y nada más.
func (c *Client) do(ctx context.Context, r request, out any) error {
	status, raw, err := c.attempt(ctx, r, c.tokens.Access())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		status, raw, err = c.refreshAndReplay(ctx, r, status, raw)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &HTTPError{StatusCode: status, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// refreshAndReplay intercambia el refresh token y repite el request
// original una única vez con la credencial nueva.
//
// Sin refresh token guardado no hay nada que intercambiar: el 401
// original sigue su curso (caso típico: login con credenciales malas).
// Si el intercambio falla, se borran ambas credenciales y la sesión
// queda expirada: ese es el único camino irrecuperable.
func (c *Client) refreshAndReplay(ctx context.Context, r request, origStatus int, origRaw []byte) (int, []byte, error) {
	refresh := strings.TrimSpace(c.tokens.Refresh())
	if refresh == "" {
		return origStatus, origRaw, nil
	}

	body, _ := json.Marshal(map[string]string{"token": refresh})
	status, raw, err := c.attempt(ctx, request{
		method:      http.MethodPut,
		path:        refreshPath,
		body:        body,
		contentType: "application/json",
	}, "")
	if err != nil || status < 200 || status >= 300 {
		c.expireSession()
		if err != nil {
			return 0, nil, fmt.Errorf("%w: refresh failed: %v", ErrSessionExpired, err)
		}
		return 0, nil, fmt.Errorf("%w: refresh status=%d", ErrSessionExpired, status)
	}

	// Algunas versiones del API responden {token: ...} en vez del par
	// access_token/refresh_token; se aceptan ambas formas.
	var tp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		Token        string `json:"token"`
	}
	if err := json.Unmarshal(raw, &tp); err != nil {
		c.expireSession()
		return 0, nil, fmt.Errorf("%w: refresh body: %v", ErrSessionExpired, err)
	}
	access := strings.TrimSpace(tp.AccessToken)
	if access == "" {
		access = strings.TrimSpace(tp.Token)
	}
	if access == "" {
		c.expireSession()
		return 0, nil, fmt.Errorf("%w: refresh response missing token", ErrSessionExpired)
	}
	if err := c.tokens.Store(access, strings.TrimSpace(tp.RefreshToken)); err != nil {
		return 0, nil, fmt.Errorf("httpclient: store tokens: %w", err)
	}

	return c.attempt(ctx, r, access)
}

// attempt ejecuta un request puro, sin lógica de retry.
func (c *Client) attempt(ctx context.Context, r request, token string) (int, []byte, error) {
	fullURL := c.baseURL + r.path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20) // 1MB max
	return resp.StatusCode, raw, nil
}

func (c *Client) expireSession() {
	_ = c.tokens.Clear()

	c.mu.Lock()
	fn := c.onExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
