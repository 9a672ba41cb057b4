package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persiste el par de credenciales opacas en un archivo JSON con
// las claves fijas `token` y `refreshToken`. La presencia del access
// token al arrancar es lo único que decide "autenticado": la validez
// real la descubre el primer request que falle.
//
// El acceso está serializado con un mutex porque lo comparten el
// wrapper HTTP, el servicio de auth y la sesión.

const fileName = "credentials.json"

type Store struct {
	mu      sync.Mutex
	path    string
	access  string
	refresh string
}

type fileFormat struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// DefaultPath: <config del usuario>/pet-manager-admin/credentials.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("tokenstore: user config dir: %w", err)
	}
	return filepath.Join(dir, "pet-manager-admin", fileName), nil
}

// New abre (o inicializa vacío) el store en path.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("tokenstore: path required")
	}

	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("tokenstore: read %s: %w", path, err)
	}

	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		// Archivo corrupto: arrancar deslogueado en vez de romper.
		return s, nil
	}
	s.access = f.Token
	s.refresh = f.RefreshToken
	return s, nil
}

func (s *Store) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *Store) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

// Store guarda el par. Con refresh vacío conserva el refresh actual
// (el endpoint de renovación no siempre rota el refresh token).
func (s *Store) Store(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return s.persist()
}

// Clear borra ambas credenciales y el archivo.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	s.refresh = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tokenstore: remove: %w", err)
	}
	return nil
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: mkdir: %w", err)
	}
	b, err := json.Marshal(fileFormat{Token: s.access, RefreshToken: s.refresh})
	if err != nil {
		return fmt.Errorf("tokenstore: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("tokenstore: write: %w", err)
	}
	return nil
}
