package petmanager

import (
	"context"
	"net/http"

	"pet-manager-admin/internal/platform/httpclient"
	"pet-manager-admin/internal/ports/petapi"
)

const loginPath = "/autenticacao/login"

// Auth implementa petapi.AuthService. El login propaga el error tal
// cual (la página distingue 401 de otras fallas); la renovación
// automática post-401 no pasa por acá, vive en el wrapper.
type Auth struct {
	http *httpclient.Client
}

var _ petapi.AuthService = (*Auth)(nil)

func NewAuth(c *httpclient.Client) *Auth {
	return &Auth{http: c}
}

func (s *Auth) Login(ctx context.Context, creds petapi.Credentials) (petapi.TokenPair, error) {
	var out petapi.TokenPair
	if err := s.http.DoJSON(ctx, http.MethodPost, loginPath, nil, creds, &out); err != nil {
		return petapi.TokenPair{}, err
	}
	return out, nil
}

func (s *Auth) Refresh(ctx context.Context, refreshToken string) (petapi.TokenPair, error) {
	var out petapi.TokenPair
	in := map[string]string{"token": refreshToken}
	if err := s.http.DoJSON(ctx, http.MethodPut, "/autenticacao/refresh", nil, in, &out); err != nil {
		return petapi.TokenPair{}, err
	}
	return out, nil
}
