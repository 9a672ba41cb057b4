package petmanager

import (
	"context"
	"os"
	"strings"
	"time"

	"pet-manager-admin/internal/ports/petapi"
)

// Version se pisa por ldflags en el build de release.
var Version = "1.0.0"

// Health implementa petapi.HealthService: un listado mínimo (página 0,
// tamaño 1) cronometrado. Cualquier falla se traduce a offline con
// latencia cero, nunca a error.
type Health struct {
	pets    petapi.PetService
	baseURL string
}

var _ petapi.HealthService = (*Health)(nil)

func NewHealth(pets petapi.PetService, baseURL string) *Health {
	return &Health{pets: pets, baseURL: baseURL}
}

func (s *Health) CheckAPI(ctx context.Context) petapi.Health {
	start := time.Now()
	if _, err := s.pets.List(ctx, 0, 1, ""); err != nil {
		return petapi.Health{Online: false, Latency: 0}
	}
	return petapi.Health{
		Online:  true,
		Latency: time.Since(start).Milliseconds(),
	}
}

func (s *Health) AppInfo() petapi.AppInfo {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "production"
	}
	return petapi.AppInfo{
		Version:     Version,
		Environment: env,
		BaseURL:     s.baseURL,
	}
}
