package petmanager

import "pet-manager-admin/internal/ports/petapi"

// DTOs del wire. El API habla portugués (`nome`, `especie`, ...) y es
// inconsistente con las fotos: el detalle puede traer `foto` singular,
// `fotos` lista, ambas o ninguna. La normalización a un único slice
// pasa una sola vez, acá.

type pageWire[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

type tutorRefWire struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
}

type petWire struct {
	ID      int64               `json:"id"`
	Name    string              `json:"nome"`
	Species string              `json:"especie"`
	Age     int                 `json:"idade"`
	Breed   string              `json:"raca"`
	Photo   *petapi.Attachment  `json:"foto"`
	Photos  []petapi.Attachment `json:"fotos"`
	Tutor   *tutorRefWire       `json:"tutor"`
}

type tutorWire struct {
	ID      int64               `json:"id"`
	Name    string              `json:"nome"`
	Phone   string              `json:"telefone"`
	Address string              `json:"endereco"`
	Photo   *petapi.Attachment  `json:"foto"`
	Photos  []petapi.Attachment `json:"fotos"`
	Pets    []petWire           `json:"pets"`
}

type petRequestWire struct {
	Name    string `json:"nome"`
	Species string `json:"especie"`
	Age     int    `json:"idade"`
	Breed   string `json:"raca,omitempty"`
}

type tutorRequestWire struct {
	Name    string `json:"nome"`
	Phone   string `json:"telefone"`
	Address string `json:"endereco"`
}

// mergePhotos colapsa singular + lista en un slice, singular primero,
// sin duplicar por id.
func mergePhotos(single *petapi.Attachment, list []petapi.Attachment) []petapi.Attachment {
	if single == nil && len(list) == 0 {
		return nil
	}

	out := make([]petapi.Attachment, 0, len(list)+1)
	if single != nil {
		out = append(out, *single)
	}
	for _, a := range list {
		if single != nil && a.ID == single.ID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (w petWire) toSummary() petapi.PetSummary {
	return petapi.PetSummary{
		ID:      w.ID,
		Name:    w.Name,
		Species: w.Species,
		Age:     w.Age,
		Breed:   w.Breed,
		Photos:  mergePhotos(w.Photo, w.Photos),
	}
}

func (w petWire) toPet() petapi.Pet {
	p := petapi.Pet{
		ID:      w.ID,
		Name:    w.Name,
		Species: w.Species,
		Age:     w.Age,
		Breed:   w.Breed,
		Photos:  mergePhotos(w.Photo, w.Photos),
	}
	if w.Tutor != nil {
		p.Tutor = &petapi.TutorRef{
			ID:      w.Tutor.ID,
			Name:    w.Tutor.Name,
			Phone:   w.Tutor.Phone,
			Address: w.Tutor.Address,
		}
	}
	return p
}

func (w tutorWire) toSummary() petapi.TutorSummary {
	return petapi.TutorSummary{
		ID:      w.ID,
		Name:    w.Name,
		Phone:   w.Phone,
		Address: w.Address,
		Photos:  mergePhotos(w.Photo, w.Photos),
	}
}

func (w tutorWire) toTutor() petapi.Tutor {
	t := petapi.Tutor{
		ID:      w.ID,
		Name:    w.Name,
		Phone:   w.Phone,
		Address: w.Address,
		Photos:  mergePhotos(w.Photo, w.Photos),
	}
	for _, pw := range w.Pets {
		t.Pets = append(t.Pets, pw.toSummary())
	}
	return t
}

func petInputToWire(in petapi.PetInput) petRequestWire {
	return petRequestWire{
		Name:    in.Name,
		Species: in.Species,
		Age:     in.Age,
		Breed:   in.Breed,
	}
}

func tutorInputToWire(in petapi.TutorInput) tutorRequestWire {
	return tutorRequestWire{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
}
