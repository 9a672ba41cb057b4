package session

import (
	"context"
	"strings"
	"sync"

	"pet-manager-admin/internal/ports/petapi"
)

// Estado de sesión del proceso: autenticado o no. Objeto explícito e
// inyectable, con transiciones definidas (Init, Login, Logout, Expire);
// nada de estado global ambient.

// Store es la vista que la sesión necesita del almacén de credenciales.
type Store interface {
	Access() string
	Store(access, refresh string) error
	Clear() error
}

type Session struct {
	mu    sync.Mutex
	store Store
	auth  petapi.AuthService

	authenticated bool
}

func New(store Store, auth petapi.AuthService) *Session {
	return &Session{store: store, auth: auth}
}

// Init arranca autenticado si hay access token guardado. El chequeo es
// sincrónico y no valida contra el servidor: un token vencido se
// descubre recién cuando un request falle.
func (s *Session) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = strings.TrimSpace(s.store.Access()) != ""
}

// Login intercambia credenciales por tokens, persiste ambos y pasa a
// autenticado. El error se propaga sin envolver: quien llama decide
// cómo mostrarlo.
func (s *Session) Login(ctx context.Context, username, password string) error {
	pair, err := s.auth.Login(ctx, petapi.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := s.store.Store(pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Logout borra las credenciales locales. No hay invalidación server-side.
func (s *Session) Logout() {
	_ = s.store.Clear()

	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}

// Expire marca la sesión como caída sin tocar el store (el wrapper ya
// borró las credenciales cuando falló el refresh).
func (s *Session) Expire() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}
