package petapi

// Modelos normalizados del Pet Manager API.
// El API a veces manda la foto en singular (`foto`) y a veces en lista
// (`fotos`); los adapters colapsan ambas formas en un único slice Photos
// al decodificar, así el resto del código nunca pregunta por la forma.

// Attachment es una foto subida al API, asociada a un pet o a un tutor.
type Attachment struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	FileName    string `json:"nomeArquivo"`
	ContentType string `json:"contentType,omitempty"`
}

// TutorRef es el resumen de tutor embebido en el detalle de un pet.
type TutorRef struct {
	ID      int64
	Name    string
	Phone   string
	Address string
}

// PetSummary es la forma de lista: sin tutor.
type PetSummary struct {
	ID      int64
	Name    string
	Species string
	Age     int
	Breed   string
	Photos  []Attachment
}

// Pet es la forma de detalle: resumen + tutor (si tiene).
type Pet struct {
	ID      int64
	Name    string
	Species string
	Age     int
	Breed   string
	Photos  []Attachment
	Tutor   *TutorRef
}

// Summary proyecta el detalle a la forma de lista.
func (p Pet) Summary() PetSummary {
	return PetSummary{
		ID:      p.ID,
		Name:    p.Name,
		Species: p.Species,
		Age:     p.Age,
		Breed:   p.Breed,
		Photos:  p.Photos,
	}
}

// TutorSummary es la forma de lista: sin pets asociados.
type TutorSummary struct {
	ID      int64
	Name    string
	Phone   string
	Address string
	Photos  []Attachment
}

// Tutor es la forma de detalle: incluye los pets asociados.
type Tutor struct {
	ID      int64
	Name    string
	Phone   string
	Address string
	Photos  []Attachment
	Pets    []PetSummary
}

func (t Tutor) Summary() TutorSummary {
	return TutorSummary{
		ID:      t.ID,
		Name:    t.Name,
		Phone:   t.Phone,
		Address: t.Address,
		Photos:  t.Photos,
	}
}

// PetInput es el payload de alta/edición de un pet.
// Los tags validate los consume internal/validate antes de tocar la red.
type PetInput struct {
	Name    string `validate:"required"`
	Species string `validate:"required"`
	Age     int    `validate:"gte=0"`
	Breed   string
}

// TutorInput es el payload de alta/edición de un tutor.
type TutorInput struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required,phonebr"`
	Address string `validate:"required"`
}

// Page es la colección paginada que devuelven los listados.
// Invariante del API: 0 <= Number < TotalPages cuando TotalPages > 0.
type Page[T any] struct {
	Content       []T
	TotalElements int
	TotalPages    int
	Size          int
	Number        int
}

// Credentials para POST /autenticacao/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair es la respuesta de login/refresh. Los tokens son opacos:
// acá no se decodifican ni se valida expiración, eso lo descubre el
// primer request que falle.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

// Health es el resultado del probe contra el API.
type Health struct {
	Online  bool
	Latency int64 // milisegundos; 0 si Online es false
}

// AppInfo describe este cliente, para la página de status.
type AppInfo struct {
	Version     string
	Environment string
	BaseURL     string
}
