package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "sub", "credentials.json")
}

func TestStore_MissingFile_StartsLoggedOut(t *testing.T) {
	s, err := New(tempPath(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if s.Access() != "" || s.Refresh() != "" {
		t.Fatalf("expected empty store, got %q / %q", s.Access(), s.Refresh())
	}
}

func TestStore_PersistsAndReloads(t *testing.T) {
	path := tempPath(t)

	s, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := s.Store("acc-1", "ref-1"); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	// segunda instancia sobre el mismo archivo
	s2, err := New(path)
	if err != nil {
		t.Fatalf("New (reload) returned error: %v", err)
	}
	if s2.Access() != "acc-1" || s2.Refresh() != "ref-1" {
		t.Fatalf("expected reloaded pair, got %q / %q", s2.Access(), s2.Refresh())
	}
}

func TestStore_FileFormatUsesFixedKeys(t *testing.T) {
	path := tempPath(t)
	s, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := s.Store("acc-1", "ref-1"); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var f map[string]string
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f["token"] != "acc-1" || f["refreshToken"] != "ref-1" {
		t.Fatalf("unexpected file contents: %v", f)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

// El refresh no siempre rota: guardar con refresh vacío conserva el
// que ya estaba.
func TestStore_EmptyRefresh_KeepsCurrent(t *testing.T) {
	s, err := New(tempPath(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := s.Store("acc-1", "ref-1"); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if err := s.Store("acc-2", ""); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if s.Access() != "acc-2" || s.Refresh() != "ref-1" {
		t.Fatalf("expected refresh preserved, got %q / %q", s.Access(), s.Refresh())
	}
}

func TestStore_Clear_RemovesFile(t *testing.T) {
	path := tempPath(t)
	s, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := s.Store("acc-1", "ref-1"); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.Access() != "" || s.Refresh() != "" {
		t.Fatalf("expected cleared store, got %q / %q", s.Access(), s.Refresh())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err: %v", err)
	}

	// limpiar dos veces no es error
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestStore_CorruptFile_StartsLoggedOut(t *testing.T) {
	path := tempPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{no es json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if s.Access() != "" || s.Refresh() != "" {
		t.Fatalf("expected logged out on corrupt file, got %q / %q", s.Access(), s.Refresh())
	}
}
