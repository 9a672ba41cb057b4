package petapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type petJSON struct {
	ID      int64      `json:"id"`
	Name    string     `json:"nome"`
	Species string     `json:"especie"`
	Age     int        `json:"idade"`
	Breed   string     `json:"raca,omitempty"`
	Photo   *photo     `json:"foto,omitempty"`
	Photos  []photo    `json:"fotos,omitempty"`
	Tutor   *tutorJSON `json:"tutor,omitempty"`
}

type tutorJSON struct {
	ID      int64     `json:"id"`
	Name    string    `json:"nome"`
	Phone   string    `json:"telefone"`
	Address string    `json:"endereco"`
	Photo   *photo    `json:"foto,omitempty"`
	Photos  []photo   `json:"fotos,omitempty"`
	Pets    []petJSON `json:"pets,omitempty"`
}

type pageJSON[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

func (s *Server) petListItemLocked(p *petRecord) petJSON {
	out := petJSON{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Age:     p.Age,
		Breed:   p.Breed,
	}
	if !s.omitListPhotos {
		out.Photos = append([]photo(nil), p.Photos...)
	}
	return out
}

func (s *Server) petDetailLocked(p *petRecord) petJSON {
	out := petJSON{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Age:     p.Age,
		Breed:   p.Breed,
	}
	if s.singularPhoto && len(p.Photos) > 0 {
		last := p.Photos[len(p.Photos)-1]
		out.Photo = &last
	} else {
		out.Photos = append([]photo(nil), p.Photos...)
	}
	if p.TutorID != 0 {
		if t, ok := s.tutors[p.TutorID]; ok {
			out.Tutor = &tutorJSON{ID: t.ID, Name: t.Name, Phone: t.Phone, Address: t.Address}
		}
	}
	return out
}

func (s *Server) tutorListItemLocked(t *tutorRecord) tutorJSON {
	out := tutorJSON{
		ID:      t.ID,
		Name:    t.Name,
		Phone:   t.Phone,
		Address: t.Address,
	}
	if !s.omitListPhotos {
		out.Photos = append([]photo(nil), t.Photos...)
	}
	return out
}

func (s *Server) tutorDetailLocked(t *tutorRecord) tutorJSON {
	out := tutorJSON{
		ID:      t.ID,
		Name:    t.Name,
		Phone:   t.Phone,
		Address: t.Address,
		Photos:  append([]photo(nil), t.Photos...),
	}
	for _, id := range sortedIDs(s.pets) {
		p := s.pets[id]
		if p.TutorID == t.ID {
			out.Pets = append(out.Pets, petJSON{
				ID:      p.ID,
				Name:    p.Name,
				Species: p.Species,
				Age:     p.Age,
				Breed:   p.Breed,
			})
		}
	}
	return out
}

// ------------------------------------------------------------------
// pets
// ------------------------------------------------------------------

func (s *Server) handleListPets(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	nameFilter := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("nome")))

	s.mu.Lock()
	defer s.mu.Unlock()

	var all []petJSON
	for _, id := range sortedIDs(s.pets) {
		p := s.pets[id]
		if nameFilter != "" && !strings.Contains(strings.ToLower(p.Name), nameFilter) {
			continue
		}
		all = append(all, s.petListItemLocked(p))
	}

	content, totalPages := paginate(all, page, size)
	writeJSON(w, http.StatusOK, pageJSON[petJSON]{
		Content:       content,
		TotalElements: len(all),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	})
}

func (s *Server) handleGetPet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "petID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.pets[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "pet não encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, s.petDetailLocked(p))
}

func (s *Server) handleCreatePet(w http.ResponseWriter, r *http.Request) {
	var req petJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Species) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "campos obrigatórios ausentes"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &petRecord{
		ID:      s.nextID,
		Name:    req.Name,
		Species: req.Species,
		Age:     req.Age,
		Breed:   req.Breed,
	}
	s.nextID++
	s.pets[p.ID] = p
	writeJSON(w, http.StatusCreated, s.petDetailLocked(p))
}

func (s *Server) handleUpdatePet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "petID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	var req petJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.pets[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "pet não encontrado"})
		return
	}
	p.Name = req.Name
	p.Species = req.Species
	p.Age = req.Age
	p.Breed = req.Breed
	writeJSON(w, http.StatusOK, s.petDetailLocked(p))
}

func (s *Server) handleDeletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "petID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.pets[id]; !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "pet não encontrado"})
		return
	}
	delete(s.pets, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPetPhoto(w http.ResponseWriter, r *http.Request) {
	s.handleAddPhoto(w, r, "petID", "arquivo", func(id int64, ph photo) bool {
		p, ok := s.pets[id]
		if !ok {
			return false
		}
		p.Photos = append(p.Photos, ph)
		return true
	})
}

func (s *Server) handleDeletePetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "petID")
	photoID, ok2 := urlID(r, "fotoID")
	if !ok || !ok2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.pets[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "pet não encontrado"})
		return
	}
	p.Photos = removePhoto(p.Photos, photoID)
	w.WriteHeader(http.StatusNoContent)
}

// handleAddPhoto factoriza la subida multipart de pets y tutores; el
// nombre del campo difiere entre ambos endpoints (arquivo vs foto).
func (s *Server) handleAddPhoto(w http.ResponseWriter, r *http.Request, idKey, field string, attach func(int64, photo) bool) {
	id, ok := urlID(r, idKey)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"mensagem": "esperado multipart/form-data"})
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": fmt.Sprintf("campo %s ausente", field)})
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	ph := photo{
		ID:          s.nextPhotoID,
		URL:         fmt.Sprintf("%s/static/%d/%s", s.srv.URL, s.nextPhotoID, header.Filename),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	s.nextPhotoID++

	if !attach(id, ph) {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "não encontrado"})
		return
	}
	writeJSON(w, http.StatusCreated, ph)
}

func removePhoto(list []photo, id int64) []photo {
	kept := list[:0]
	for _, ph := range list {
		if ph.ID != id {
			kept = append(kept, ph)
		}
	}
	return kept
}

// ------------------------------------------------------------------
// tutores
// ------------------------------------------------------------------

func (s *Server) handleListTutors(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	var all []tutorJSON
	for _, id := range sortedIDs(s.tutors) {
		all = append(all, s.tutorListItemLocked(s.tutors[id]))
	}

	content, totalPages := paginate(all, page, size)
	writeJSON(w, http.StatusOK, pageJSON[tutorJSON]{
		Content:       content,
		TotalElements: len(all),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	})
}

func (s *Server) handleGetTutor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "tutorID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tutors[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "tutor não encontrado"})
		return
	}
	writeJSON(w, http.StatusOK, s.tutorDetailLocked(t))
}

func (s *Server) handleCreateTutor(w http.ResponseWriter, r *http.Request) {
	var req tutorJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "campos obrigatórios ausentes"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tutorRecord{
		ID:      s.nextID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	s.nextID++
	s.tutors[t.ID] = t
	writeJSON(w, http.StatusCreated, s.tutorDetailLocked(t))
}

func (s *Server) handleUpdateTutor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "tutorID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	var req tutorJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "json inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tutors[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "tutor não encontrado"})
		return
	}
	t.Name = req.Name
	t.Phone = req.Phone
	t.Address = req.Address
	writeJSON(w, http.StatusOK, s.tutorDetailLocked(t))
}

// El delete de tutor NO cascadea a los pets: solo rompe el vínculo.
func (s *Server) handleDeleteTutor(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "tutorID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tutors[id]; !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "tutor não encontrado"})
		return
	}
	delete(s.tutors, id)
	for _, p := range s.pets {
		if p.TutorID == id {
			p.TutorID = 0
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTutorPhoto(w http.ResponseWriter, r *http.Request) {
	s.handleAddPhoto(w, r, "tutorID", "foto", func(id int64, ph photo) bool {
		t, ok := s.tutors[id]
		if !ok {
			return false
		}
		t.Photos = append(t.Photos, ph)
		return true
	})
}

func (s *Server) handleDeleteTutorPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "tutorID")
	photoID, ok2 := urlID(r, "fotoID")
	if !ok || !ok2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tutors[id]
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "tutor não encontrado"})
		return
	}
	t.Photos = removePhoto(t.Photos, photoID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLinkPet(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := urlID(r, "tutorID")
	petID, ok2 := urlID(r, "petID")
	if !ok || !ok2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, foundPet := s.pets[petID]
	_, foundTutor := s.tutors[tutorID]
	if !foundPet || !foundTutor {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "não encontrado"})
		return
	}
	p.TutorID = tutorID
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnlinkPet(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := urlID(r, "tutorID")
	petID, ok2 := urlID(r, "petID")
	if !ok || !ok2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"mensagem": "id inválido"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, foundPet := s.pets[petID]
	if !foundPet || p.TutorID != tutorID {
		writeJSON(w, http.StatusNotFound, map[string]string{"mensagem": "vínculo não encontrado"})
		return
	}
	p.TutorID = 0
	w.WriteHeader(http.StatusNoContent)
}
