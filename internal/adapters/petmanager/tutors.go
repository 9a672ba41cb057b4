package petmanager

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pet-manager-admin/internal/platform/httpclient"
	"pet-manager-admin/internal/ports/petapi"
)

const baseTutors = "/v1/tutores"

// Tutors implementa petapi.TutorService. Simétrico a Pets, más el
// vínculo/desvínculo de pets. Ojo: el campo multipart acá es `foto`,
// no `arquivo`.
type Tutors struct {
	http *httpclient.Client
}

var _ petapi.TutorService = (*Tutors)(nil)

func NewTutors(c *httpclient.Client) *Tutors {
	return &Tutors{http: c}
}

func (s *Tutors) List(ctx context.Context, page, size int) (petapi.Page[petapi.TutorSummary], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out pageWire[tutorWire]
	if err := s.http.DoJSON(ctx, http.MethodGet, baseTutors, q, nil, &out); err != nil {
		return petapi.Page[petapi.TutorSummary]{}, err
	}

	res := petapi.Page[petapi.TutorSummary]{
		Content:       make([]petapi.TutorSummary, 0, len(out.Content)),
		TotalElements: out.TotalElements,
		TotalPages:    out.TotalPages,
		Size:          out.Size,
		Number:        out.Number,
	}
	for _, w := range out.Content {
		res.Content = append(res.Content, w.toSummary())
	}
	return res, nil
}

func (s *Tutors) Get(ctx context.Context, id int64) (petapi.Tutor, error) {
	var out tutorWire
	if err := s.http.DoJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", baseTutors, id), nil, nil, &out); err != nil {
		return petapi.Tutor{}, err
	}
	return out.toTutor(), nil
}

func (s *Tutors) Create(ctx context.Context, in petapi.TutorInput) (petapi.Tutor, error) {
	var out tutorWire
	if err := s.http.DoJSON(ctx, http.MethodPost, baseTutors, nil, tutorInputToWire(in), &out); err != nil {
		return petapi.Tutor{}, err
	}
	return out.toTutor(), nil
}

func (s *Tutors) Update(ctx context.Context, id int64, in petapi.TutorInput) (petapi.Tutor, error) {
	var out tutorWire
	if err := s.http.DoJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", baseTutors, id), nil, tutorInputToWire(in), &out); err != nil {
		return petapi.Tutor{}, err
	}
	return out.toTutor(), nil
}

func (s *Tutors) Delete(ctx context.Context, id int64) error {
	return s.http.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", baseTutors, id), nil, nil, nil)
}

func (s *Tutors) AddPhoto(ctx context.Context, id int64, filename string, data []byte) (petapi.Attachment, error) {
	var out petapi.Attachment
	path := fmt.Sprintf("%s/%d/fotos", baseTutors, id)
	if err := s.http.DoMultipart(ctx, http.MethodPost, path, "foto", filename, data, &out); err != nil {
		return petapi.Attachment{}, err
	}
	return out, nil
}

func (s *Tutors) DeletePhoto(ctx context.Context, id, photoID int64) error {
	return s.http.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d/fotos/%d", baseTutors, id, photoID), nil, nil, nil)
}

func (s *Tutors) LinkPet(ctx context.Context, tutorID, petID int64) error {
	return s.http.DoJSON(ctx, http.MethodPost, fmt.Sprintf("%s/%d/pets/%d", baseTutors, tutorID, petID), nil, nil, nil)
}

func (s *Tutors) UnlinkPet(ctx context.Context, tutorID, petID int64) error {
	return s.http.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d/pets/%d", baseTutors, tutorID, petID), nil, nil, nil)
}
