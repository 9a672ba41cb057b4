package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober verifica que una URL de foto siga viva. La terminal no
// renderiza la imagen, pero el indicador de foto de las listas y el
// detalle sí depende de que la URL responda.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

type httpProber struct {
	c *http.Client
}

func NewProber(timeout time.Duration) Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpProber{c: &http.Client{Timeout: timeout}}
}

func (p *httpProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("probe: status=%d", resp.StatusCode)
	}
	return nil
}

// retryTracker implementa el "reintentar una sola vez" ante una foto
// rota: el primer fallo por id habilita un refresh silencioso del
// registro; a partir del segundo, la foto queda marcada como rota.
type retryTracker struct {
	tried map[int64]bool
}

func newRetryTracker() *retryTracker {
	return &retryTracker{tried: make(map[int64]bool)}
}

// shouldRetry devuelve true solo la primera vez que se consulta un id.
func (t *retryTracker) shouldRetry(id int64) bool {
	if t.tried[id] {
		return false
	}
	t.tried[id] = true
	return true
}

func (t *retryTracker) reset() {
	t.tried = make(map[int64]bool)
}
