package petapi

import "context"

// Interfaces que consumen las fachadas. Las implementaciones viven en
// internal/adapters/petmanager; en tests se cubren contra el servidor
// fake de internal/petapitest.

type PetService interface {
	// List acepta página base cero, tamaño y filtro opcional por nombre.
	List(ctx context.Context, page, size int, name string) (Page[PetSummary], error)
	Get(ctx context.Context, id int64) (Pet, error)
	Create(ctx context.Context, in PetInput) (Pet, error)
	Update(ctx context.Context, id int64, in PetInput) (Pet, error)
	Delete(ctx context.Context, id int64) error
	AddPhoto(ctx context.Context, id int64, filename string, data []byte) (Attachment, error)
	DeletePhoto(ctx context.Context, id, photoID int64) error
}

type TutorService interface {
	// El endpoint de tutores no filtra por nombre.
	List(ctx context.Context, page, size int) (Page[TutorSummary], error)
	Get(ctx context.Context, id int64) (Tutor, error)
	Create(ctx context.Context, in TutorInput) (Tutor, error)
	Update(ctx context.Context, id int64, in TutorInput) (Tutor, error)
	Delete(ctx context.Context, id int64) error
	AddPhoto(ctx context.Context, id int64, filename string, data []byte) (Attachment, error)
	DeletePhoto(ctx context.Context, id, photoID int64) error
	LinkPet(ctx context.Context, tutorID, petID int64) error
	UnlinkPet(ctx context.Context, tutorID, petID int64) error
}

type AuthService interface {
	// Login NO traga el error: la página de login necesita distinguir
	// credenciales inválidas de otras fallas.
	Login(ctx context.Context, creds Credentials) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type HealthService interface {
	// CheckAPI nunca devuelve error: cualquier falla es {Online:false, 0}.
	CheckAPI(ctx context.Context) Health
	AppInfo() AppInfo
}
