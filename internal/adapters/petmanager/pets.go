package petmanager

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"pet-manager-admin/internal/platform/httpclient"
	"pet-manager-admin/internal/ports/petapi"
)

const basePets = "/v1/pets"

// Pets implementa petapi.PetService sobre el wrapper HTTP.
// Cada operación es un mapeo sin estado: un request, una respuesta.
type Pets struct {
	http *httpclient.Client
}

var _ petapi.PetService = (*Pets)(nil)

func NewPets(c *httpclient.Client) *Pets {
	return &Pets{http: c}
}

func (s *Pets) List(ctx context.Context, page, size int, name string) (petapi.Page[petapi.PetSummary], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if strings.TrimSpace(name) != "" {
		q.Set("nome", strings.TrimSpace(name))
	}

	var out pageWire[petWire]
	if err := s.http.DoJSON(ctx, http.MethodGet, basePets, q, nil, &out); err != nil {
		return petapi.Page[petapi.PetSummary]{}, err
	}

	res := petapi.Page[petapi.PetSummary]{
		Content:       make([]petapi.PetSummary, 0, len(out.Content)),
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

func (s *Pets) Get(ctx context.Context, id int64) (petapi.Pet, error) {
	var out petWire
	if err := s.http.DoJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", basePets, id), nil, nil, &out); err != nil {
		return petapi.Pet{}, err
	}
	return out.toPet(), nil
}

func (s *Pets) Create(ctx context.Context, in petapi.PetInput) (petapi.Pet, error) {
	var out petWire
	if err := s.http.DoJSON(ctx, http.MethodPost, basePets, nil, petInputToWire(in), &out); err != nil {
		return petapi.Pet{}, err
	}
	return out.toPet(), nil
}

func (s *Pets) Update(ctx context.Context, id int64, in petapi.PetInput) (petapi.Pet, error) {
	var out petWire
	if err := s.http.DoJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", basePets, id), nil, petInputToWire(in), &out); err != nil {
		return petapi.Pet{}, err
	}
	return out.toPet(), nil
}

func (s *Pets) Delete(ctx context.Context, id int64) error {
	return s.http.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", basePets, id), nil, nil, nil)
}

// AddPhoto sube la foto como multipart; el campo del form es `arquivo`.
func (s *Pets) AddPhoto(ctx context.Context, id int64, filename string, data []byte) (petapi.Attachment, error) {
	var out petapi.Attachment
	path := fmt.Sprintf("%s/%d/fotos", basePets, id)
	if err := s.http.DoMultipart(ctx, http.MethodPost, path, "arquivo", filename, data, &out); err != nil {
		return petapi.Attachment{}, err
	}
	return out, nil
}

func (s *Pets) DeletePhoto(ctx context.Context, id, photoID int64) error {
	return s.http.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d/fotos/%d", basePets, id, photoID), nil, nil, nil)
}
