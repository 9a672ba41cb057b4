package petmanager

import (
	"context"
	"testing"

	"pet-manager-admin/internal/petapitest"
	"pet-manager-admin/internal/platform/httpclient"
	"pet-manager-admin/internal/ports/petapi"
)

// -------------------------
// Token source (in-memory)
// -------------------------

type memTokens struct {
	access  string
	refresh string
}

func (m *memTokens) Access() string  { return m.access }
func (m *memTokens) Refresh() string { return m.refresh }

func (m *memTokens) Store(access, refresh string) error {
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	return nil
}

func (m *memTokens) Clear() error {
	m.access, m.refresh = "", ""
	return nil
}

func newTestClient(t *testing.T, api *petapitest.Server) *httpclient.Client {
	t.Helper()
	access, refresh := api.IssueTokens()
	c, err := httpclient.New(httpclient.Config{
		BaseURL: api.URL(),
		Tokens:  &memTokens{access: access, refresh: refresh},
	})
	if err != nil {
		t.Fatalf("httpclient.New returned error: %v", err)
	}
	return c
}

func TestPets_List_NormalizesPage(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	api.SeedPet("Rex", "cachorro", 3, "vira-lata", "http://img/rex.png")
	api.SeedPet("Mimi", "gato", 2, "")

	svc := NewPets(newTestClient(t, api))

	page, err := svc.List(context.Background(), 0, 10, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalElements != 2 || page.TotalPages != 1 || page.Number != 0 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(page.Content))
	}
	first := page.Content[0]
	if first.Name != "Rex" || first.Species != "cachorro" || first.Age != 3 || first.Breed != "vira-lata" {
		t.Fatalf("unexpected first pet: %+v", first)
	}
	if len(first.Photos) != 1 || first.Photos[0].URL != "http://img/rex.png" {
		t.Fatalf("expected normalized photo, got %+v", first.Photos)
	}
}

func TestPets_List_FiltersByName(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	api.SeedPet("Rex", "cachorro", 3, "")
	api.SeedPet("Mimi", "gato", 2, "")

	svc := NewPets(newTestClient(t, api))

	page, err := svc.List(context.Background(), 0, 10, "re")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].Name != "Rex" {
		t.Fatalf("expected only Rex, got %+v", page.Content)
	}
}

// El detalle puede venir con `foto` singular en vez de `fotos`; ambas
// formas terminan en el mismo slice Photos.
func TestPets_Get_MergesSingularPhoto(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	id := api.SeedPet("Rex", "cachorro", 3, "", "http://img/a.png", "http://img/b.png")
	api.SetSingularPhotoDetail(true)

	svc := NewPets(newTestClient(t, api))

	pet, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(pet.Photos) != 1 || pet.Photos[0].URL != "http://img/b.png" {
		t.Fatalf("expected singular photo normalized, got %+v", pet.Photos)
	}
}

func TestPets_CreateUpdateDelete(t *testing.T) {
	api := petapitest.New()
	defer api.Close()

	svc := NewPets(newTestClient(t, api))
	ctx := context.Background()

	created, err := svc.Create(ctx, petapi.PetInput{Name: "Thor", Species: "cachorro", Age: 1, Breed: "pastor"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 || created.Name != "Thor" {
		t.Fatalf("unexpected created pet: %+v", created)
	}

	updated, err := svc.Update(ctx, created.ID, petapi.PetInput{Name: "Thor II", Species: "cachorro", Age: 2, Breed: "pastor"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Thor II" || updated.Age != 2 {
		t.Fatalf("unexpected updated pet: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if api.HasPet(created.ID) {
		t.Fatalf("expected pet %d removed from server", created.ID)
	}
}

func TestPets_AddAndDeletePhoto(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	id := api.SeedPet("Rex", "cachorro", 3, "")

	svc := NewPets(newTestClient(t, api))
	ctx := context.Background()

	att, err := svc.AddPhoto(ctx, id, "rex.jpg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("AddPhoto returned error: %v", err)
	}
	if att.ID == 0 || att.FileName != "rex.jpg" {
		t.Fatalf("unexpected attachment: %+v", att)
	}

	if err := svc.DeletePhoto(ctx, id, att.ID); err != nil {
		t.Fatalf("DeletePhoto returned error: %v", err)
	}
	pet, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(pet.Photos) != 0 {
		t.Fatalf("expected no photos left, got %+v", pet.Photos)
	}
}

func TestTutors_LinkAndUnlinkPet(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	tutorID := api.SeedTutor("Ana", "11988887777", "Rua A, 123")
	petID := api.SeedPet("Rex", "cachorro", 3, "")

	svc := NewTutors(newTestClient(t, api))
	ctx := context.Background()

	if err := svc.LinkPet(ctx, tutorID, petID); err != nil {
		t.Fatalf("LinkPet returned error: %v", err)
	}
	if got := api.PetTutor(petID); got != tutorID {
		t.Fatalf("expected pet linked to %d, got %d", tutorID, got)
	}

	tut, err := svc.Get(ctx, tutorID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(tut.Pets) != 1 || tut.Pets[0].ID != petID {
		t.Fatalf("expected linked pet in detail, got %+v", tut.Pets)
	}

	if err := svc.UnlinkPet(ctx, tutorID, petID); err != nil {
		t.Fatalf("UnlinkPet returned error: %v", err)
	}
	if got := api.PetTutor(petID); got != 0 {
		t.Fatalf("expected pet unlinked, still at %d", got)
	}
}

func TestTutors_DeleteDoesNotCascade(t *testing.T) {
	api := petapitest.New()
	defer api.Close()
	tutorID := api.SeedTutor("Ana", "11988887777", "Rua A, 123")
	petID := api.SeedPet("Rex", "cachorro", 3, "")

	svc := NewTutors(newTestClient(t, api))
	ctx := context.Background()

	if err := svc.LinkPet(ctx, tutorID, petID); err != nil {
		t.Fatalf("LinkPet returned error: %v", err)
	}
	if err := svc.Delete(ctx, tutorID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !api.HasPet(petID) {
		t.Fatalf("expected pet to survive tutor delete")
	}
	if got := api.PetTutor(petID); got != 0 {
		t.Fatalf("expected link broken, got tutor %d", got)
	}
}

func TestAuth_LoginAndRefresh(t *testing.T) {
	api := petapitest.New()
	defer api.Close()

	// login no necesita bearer previo
	c, err := httpclient.New(httpclient.Config{BaseURL: api.URL(), Tokens: &memTokens{}})
	if err != nil {
		t.Fatalf("httpclient.New returned error: %v", err)
	}
	svc := NewAuth(c)
	ctx := context.Background()

	pair, err := svc.Login(ctx, petapi.Credentials{Username: "admin", Password: "admin"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}

	renewed, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if renewed.AccessToken == "" || renewed.AccessToken == pair.AccessToken {
		t.Fatalf("expected rotated access token, got %q", renewed.AccessToken)
	}
}

func TestAuth_Login_BadCredentials(t *testing.T) {
	api := petapitest.New()
	defer api.Close()

	c, err := httpclient.New(httpclient.Config{BaseURL: api.URL(), Tokens: &memTokens{}})
	if err != nil {
		t.Fatalf("httpclient.New returned error: %v", err)
	}
	svc := NewAuth(c)

	if _, err := svc.Login(context.Background(), petapi.Credentials{Username: "admin", Password: "wrong"}); err == nil {
		t.Fatalf("expected error for bad credentials")
	}
}

func TestHealth_CheckAPI(t *testing.T) {
	api := petapitest.New()
	api.SeedPet("Rex", "cachorro", 3, "")

	pets := NewPets(newTestClient(t, api))
	h := NewHealth(pets, api.URL())

	got := h.CheckAPI(context.Background())
	if !got.Online {
		t.Fatalf("expected online, got %+v", got)
	}

	api.Close()
	got = h.CheckAPI(context.Background())
	if got.Online || got.Latency != 0 {
		t.Fatalf("expected offline with zero latency, got %+v", got)
	}
}

func TestHealth_AppInfo(t *testing.T) {
	h := NewHealth(nil, "https://api.example.com")
	info := h.AppInfo()
	if info.BaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base url %q", info.BaseURL)
	}
	if info.Version == "" || info.Environment == "" {
		t.Fatalf("expected version and environment, got %+v", info)
	}
}
