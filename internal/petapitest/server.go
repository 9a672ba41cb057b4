// Package petapitest levanta un Pet Manager API fake en memoria para
// los tests: login/refresh con rotación de tokens, CRUD de pets y
// tutores, fotos multipart y vínculo pet-tutor. Reproduce también las
// mañas del API real (listado sin fotos, foto singular en el detalle)
// para poder ejercitar los parches del cliente.
package petapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type photo struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	FileName    string `json:"nomeArquivo"`
	ContentType string `json:"contentType,omitempty"`
}

type petRecord struct {
	ID      int64
	Name    string
	Species string
	Age     int
	Breed   string
	Photos  []photo
	TutorID int64 // 0 = sin tutor
}

type tutorRecord struct {
	ID      int64
	Name    string
	Phone   string
	Address string
	Photos  []photo
}

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	username string
	password string

	access       string
	refresh      string
	tokenSeq     int
	loginCalls   int
	refreshCalls int
	failRefresh  bool

	// OmitListPhotos reproduce la inconsistencia del API real: el
	// listado viene sin fotos aunque el detalle las tenga.
	omitListPhotos bool
	// singularPhoto hace que el detalle mande `foto` (singular) en vez
	// de `fotos`.
	singularPhoto bool

	pets        map[int64]*petRecord
	tutors      map[int64]*tutorRecord
	nextID      int64
	nextPhotoID int64
}

func New() *Server {
	s := &Server{
		username:    "admin",
		password:    "admin",
		pets:        make(map[int64]*petRecord),
		tutors:      make(map[int64]*tutorRecord),
		nextID:      1,
		nextPhotoID: 1,
	}

	r := chi.NewRouter()
	r.Post("/autenticacao/login", s.handleLogin)
	r.Put("/autenticacao/refresh", s.handleRefresh)

	r.Route("/v1", func(vr chi.Router) {
		vr.Use(s.requireBearer)

		vr.Route("/pets", func(pr chi.Router) {
			pr.Get("/", s.handleListPets)
			pr.Post("/", s.handleCreatePet)
			pr.Get("/{petID}", s.handleGetPet)
			pr.Put("/{petID}", s.handleUpdatePet)
			pr.Delete("/{petID}", s.handleDeletePet)
			pr.Post("/{petID}/fotos", s.handleAddPetPhoto)
			pr.Delete("/{petID}/fotos/{fotoID}", s.handleDeletePetPhoto)
		})

		vr.Route("/tutores", func(tr chi.Router) {
			tr.Get("/", s.handleListTutors)
			tr.Post("/", s.handleCreateTutor)
			tr.Get("/{tutorID}", s.handleGetTutor)
			tr.Put("/{tutorID}", s.handleUpdateTutor)
			tr.Delete("/{tutorID}", s.handleDeleteTutor)
			tr.Post("/{tutorID}/fotos", s.handleAddTutorPhoto)
			tr.Delete("/{tutorID}/fotos/{fotoID}", s.handleDeleteTutorPhoto)
			tr.Post("/{tutorID}/pets/{petID}", s.handleLinkPet)
			tr.Delete("/{tutorID}/pets/{petID}", s.handleUnlinkPet)
		})
	})

	s.srv = httptest.NewServer(r)
	return s
}

func (s *Server) Close()      { s.srv.Close() }
func (s *Server) URL() string { return s.srv.URL }

// IssueTokens emite un par válido sin pasar por login, para que los
// tests siembren el token store directamente.
func (s *Server) IssueTokens() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotateAccessLocked()
	s.refresh = fmt.Sprintf("ref-%d", s.tokenSeq)
	return s.access, s.refresh
}

// ExpireAccess invalida el access token vigente del lado del servidor:
// el próximo request del cliente da 401 hasta que renueve.
func (s *Server) ExpireAccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotateAccessLocked()
}

func (s *Server) SetFailRefresh(v bool) {
	s.mu.Lock()
	s.failRefresh = v
	s.mu.Unlock()
}

func (s *Server) SetOmitListPhotos(v bool) {
	s.mu.Lock()
	s.omitListPhotos = v
	s.mu.Unlock()
}

func (s *Server) SetSingularPhotoDetail(v bool) {
	s.mu.Lock()
	s.singularPhoto = v
	s.mu.Unlock()
}

func (s *Server) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// SeedPet carga un pet directo en memoria y devuelve su id.
func (s *Server) SeedPet(name, species string, age int, breed string, photoURLs ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &petRecord{
		ID:      s.nextID,
		Name:    name,
		Species: species,
		Age:     age,
		Breed:   breed,
	}
	s.nextID++
	for _, u := range photoURLs {
		p.Photos = append(p.Photos, s.newPhotoLocked(u))
	}
	s.pets[p.ID] = p
	return p.ID
}

func (s *Server) SeedTutor(name, phone, address string, photoURLs ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tutorRecord{
		ID:      s.nextID,
		Name:    name,
		Phone:   phone,
		Address: address,
	}
	s.nextID++
	for _, u := range photoURLs {
		t.Photos = append(t.Photos, s.newPhotoLocked(u))
	}
	s.tutors[t.ID] = t
	return t.ID
}

// HasPet informa si el pet sigue existiendo (para asserts de delete).
func (s *Server) HasPet(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pets[id]
	return ok
}

// PetTutor devuelve el id del tutor vinculado (0 = ninguno).
func (s *Server) PetTutor(petID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pets[petID]; ok {
		return p.TutorID
	}
	return 0
}

func (s *Server) newPhotoLocked(url string) photo {
	ph := photo{
		ID:       s.nextPhotoID,
		URL:      url,
		FileName: url[strings.LastIndex(url, "/")+1:],
	}
	if strings.HasSuffix(strings.ToLower(url), ".gif") {
		ph.ContentType = "image/gif"
	}
	s.nextPhotoID++
	return ph
}

func (s *Server) rotateAccessLocked() {
	s.tokenSeq++
	s.access = fmt.Sprintf("acc-%d", s.tokenSeq)
}

// ------------------------------------------------------------------
// auth
// ------------------------------------------------------------------

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))

		s.mu.Lock()
		ok := token != "" && token == s.access
		s.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"mensagem": "token inválido"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginCalls++

	if req.Username != s.username || req.Password != s.password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"mensagem": "credenciais inválidas"})
		return
	}

	s.rotateAccessLocked()
	s.refresh = fmt.Sprintf("ref-%d", s.tokenSeq)
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":       s.access,
		"refresh_token":      s.refresh,
		"expires_in":         300,
		"refresh_expires_in": 1800,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++

	if s.failRefresh || req.Token == "" || req.Token != s.refresh {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"mensagem": "refresh token inválido"})
		return
	}

	s.rotateAccessLocked()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":       s.access,
		"refresh_token":      s.refresh,
		"expires_in":         300,
		"refresh_expires_in": 1800,
	})
}

// ------------------------------------------------------------------
// helpers
// ------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return page, size
}

func urlID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id, err == nil && id > 0
}

func paginate[T any](all []T, page, size int) (content []T, totalPages int) {
	total := len(all)
	totalPages = (total + size - 1) / size

	start := page * size
	if start >= total {
		return []T{}, totalPages
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], totalPages
}

func sortedIDs[T any](m map[int64]*T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
