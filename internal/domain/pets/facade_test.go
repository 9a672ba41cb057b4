package pets

import (
	"context"
	"errors"
	"testing"

	"pet-manager-admin/internal/ports/petapi"
)

// -------------------------
// Service fake (in-memory)
// -------------------------

var errBoom = errors.New("boom")

type fakeService struct {
	pets map[int64]petapi.Pet

	failList   bool
	failGet    bool
	failCreate bool
	failDelete bool

	// quita las fotos de los items listados, como hace el API real
	omitListPhotos bool

	getCalls int
}

func newFakeService(pets ...petapi.Pet) *fakeService {
	f := &fakeService{pets: map[int64]petapi.Pet{}}
	for _, p := range pets {
		f.pets[p.ID] = p
	}
	return f
}

func (f *fakeService) List(ctx context.Context, page, size int, name string) (petapi.Page[petapi.PetSummary], error) {
	if f.failList {
		return petapi.Page[petapi.PetSummary]{}, errBoom
	}
	var content []petapi.PetSummary
	for id := int64(1); id <= int64(len(f.pets))+10; id++ {
		p, ok := f.pets[id]
		if !ok {
			continue
		}
		sum := p.Summary()
		if f.omitListPhotos {
			sum.Photos = nil
		}
		content = append(content, sum)
	}
	return petapi.Page[petapi.PetSummary]{
		Content:       content,
		TotalElements: len(content),
		TotalPages:    1,
		Size:          size,
		Number:        page,
	}, nil
}

func (f *fakeService) Get(ctx context.Context, id int64) (petapi.Pet, error) {
	f.getCalls++
	if f.failGet {
		return petapi.Pet{}, errBoom
	}
	p, ok := f.pets[id]
	if !ok {
		return petapi.Pet{}, errBoom
	}
	return p, nil
}

func (f *fakeService) Create(ctx context.Context, in petapi.PetInput) (petapi.Pet, error) {
	if f.failCreate {
		return petapi.Pet{}, errBoom
	}
	p := petapi.Pet{ID: int64(len(f.pets) + 1), Name: in.Name, Species: in.Species, Age: in.Age, Breed: in.Breed}
	f.pets[p.ID] = p
	return p, nil
}

func (f *fakeService) Update(ctx context.Context, id int64, in petapi.PetInput) (petapi.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return petapi.Pet{}, errBoom
	}
	p.Name, p.Species, p.Age, p.Breed = in.Name, in.Species, in.Age, in.Breed
	f.pets[id] = p
	return p, nil
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	if f.failDelete {
		return errBoom
	}
	delete(f.pets, id)
	return nil
}

func (f *fakeService) AddPhoto(ctx context.Context, id int64, filename string, data []byte) (petapi.Attachment, error) {
	return petapi.Attachment{ID: 99, FileName: filename}, nil
}

func (f *fakeService) DeletePhoto(ctx context.Context, id, photoID int64) error { return nil }

func somePets() []petapi.Pet {
	return []petapi.Pet{
		{ID: 1, Name: "Rex", Species: "cachorro", Age: 3, Photos: []petapi.Attachment{{ID: 10, URL: "http://img/rex.png"}}},
		{ID: 2, Name: "Mimi", Species: "gato", Age: 2, Photos: []petapi.Attachment{{ID: 11, URL: "http://img/mimi.png"}}},
	}
}

func TestFacade_List_LoadsItemsAndPagination(t *testing.T) {
	f := NewFacade(newFakeService(somePets()...), 10, nil)

	f.List(context.Background(), 0, "")

	st := f.State()
	if st.Busy || st.Err != "" {
		t.Fatalf("expected clean state, got busy=%v err=%q", st.Busy, st.Err)
	}
	if len(st.Items) != 2 || st.Items[0].Name != "Rex" {
		t.Fatalf("unexpected items: %+v", st.Items)
	}
	if st.Pagination.TotalElements != 2 || st.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", st.Pagination)
	}
}

// Las entradas que llegan sin fotos se reparan con el detalle, y SOLO
// el campo de fotos: el resto de la fila no se pisa.
func TestFacade_List_PatchesMissingPhotos(t *testing.T) {
	svc := newFakeService(somePets()...)
	svc.omitListPhotos = true
	f := NewFacade(svc, 10, nil)

	f.List(context.Background(), 0, "")

	st := f.State()
	if len(st.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(st.Items))
	}
	for _, it := range st.Items {
		if len(it.Photos) == 0 {
			t.Fatalf("expected photos patched for pet %d", it.ID)
		}
	}
	// una fila reparada conserva sus datos originales
	if st.Items[0].Name != "Rex" || st.Items[0].Species != "cachorro" || st.Items[0].Age != 3 {
		t.Fatalf("row data clobbered: %+v", st.Items[0])
	}
	if svc.getCalls != 2 {
		t.Fatalf("expected 2 detail fetches, got %d", svc.getCalls)
	}
}

func TestFacade_List_NoMissingPhotos_NoDetailFetches(t *testing.T) {
	svc := newFakeService(somePets()...)
	f := NewFacade(svc, 10, nil)

	f.List(context.Background(), 0, "")

	if svc.getCalls != 0 {
		t.Fatalf("expected no detail fetches, got %d", svc.getCalls)
	}
}

// Si el listado falla, la lista anterior queda intacta y el error es el
// mensaje fijo, nunca el crudo del transporte.
func TestFacade_List_FailureKeepsPreviousItems(t *testing.T) {
	svc := newFakeService(somePets()...)
	f := NewFacade(svc, 10, nil)

	f.List(context.Background(), 0, "")
	svc.failList = true
	f.List(context.Background(), 1, "")

	st := f.State()
	if len(st.Items) != 2 {
		t.Fatalf("expected previous items kept, got %d", len(st.Items))
	}
	if st.Err != msgList {
		t.Fatalf("expected %q, got %q", msgList, st.Err)
	}
}

func TestFacade_GetByID_SetsSelected(t *testing.T) {
	f := NewFacade(newFakeService(somePets()...), 10, nil)

	det := f.GetByID(context.Background(), 1)
	if det == nil || det.Name != "Rex" {
		t.Fatalf("unexpected detail: %+v", det)
	}
	st := f.State()
	if st.Selected == nil || st.Selected.ID != 1 {
		t.Fatalf("expected selection, got %+v", st.Selected)
	}
}

func TestFacade_GetByID_FailureSetsMessage(t *testing.T) {
	svc := newFakeService(somePets()...)
	svc.failGet = true
	f := NewFacade(svc, 10, nil)

	if det := f.GetByID(context.Background(), 1); det != nil {
		t.Fatalf("expected nil detail, got %+v", det)
	}
	if st := f.State(); st.Err != msgDetail {
		t.Fatalf("expected %q, got %q", msgDetail, st.Err)
	}
}

// RefreshInList repara las fotos sin tocar busy ni error.
func TestFacade_RefreshInList_IsSilent(t *testing.T) {
	svc := newFakeService(somePets()...)
	svc.omitListPhotos = true

	f := NewFacade(svc, 10, nil)
	f.List(context.Background(), 0, "")

	// cambia la foto del lado del server
	p := svc.pets[1]
	p.Photos = []petapi.Attachment{{ID: 50, URL: "http://img/nueva.png"}}
	svc.pets[1] = p

	det := f.RefreshInList(context.Background(), 1)
	if det == nil {
		t.Fatalf("expected detail")
	}

	st := f.State()
	if st.Err != "" || st.Busy {
		t.Fatalf("expected silent refresh, got busy=%v err=%q", st.Busy, st.Err)
	}
	if st.Items[0].Photos[0].URL != "http://img/nueva.png" {
		t.Fatalf("expected patched row photo, got %+v", st.Items[0].Photos)
	}
	if st.Items[0].Name != "Rex" {
		t.Fatalf("row data clobbered: %+v", st.Items[0])
	}
}

func TestFacade_RefreshInList_FailureIsSilent(t *testing.T) {
	svc := newFakeService(somePets()...)
	f := NewFacade(svc, 10, nil)
	f.List(context.Background(), 0, "")

	svc.failGet = true
	if det := f.RefreshInList(context.Background(), 1); det != nil {
		t.Fatalf("expected nil, got %+v", det)
	}
	if st := f.State(); st.Err != "" {
		t.Fatalf("expected no error surfaced, got %q", st.Err)
	}
}

func TestFacade_Delete_RemovesRowOnly(t *testing.T) {
	f := NewFacade(newFakeService(somePets()...), 10, nil)
	f.List(context.Background(), 0, "")

	if ok := f.Delete(context.Background(), 1); !ok {
		t.Fatalf("expected delete to succeed")
	}
	st := f.State()
	if len(st.Items) != 1 || st.Items[0].ID != 2 {
		t.Fatalf("expected only pet 2 left, got %+v", st.Items)
	}
}

func TestFacade_Delete_FailureKeepsList(t *testing.T) {
	svc := newFakeService(somePets()...)
	f := NewFacade(svc, 10, nil)
	f.List(context.Background(), 0, "")

	svc.failDelete = true
	if ok := f.Delete(context.Background(), 1); ok {
		t.Fatalf("expected delete to fail")
	}
	st := f.State()
	if len(st.Items) != 2 {
		t.Fatalf("expected list untouched, got %d items", len(st.Items))
	}
	if st.Err != msgDelete {
		t.Fatalf("expected %q, got %q", msgDelete, st.Err)
	}
}

func TestFacade_Create_DoesNotTouchList(t *testing.T) {
	svc := newFakeService(somePets()...)
	f := NewFacade(svc, 10, nil)
	f.List(context.Background(), 0, "")

	created := f.Create(context.Background(), petapi.PetInput{Name: "Thor", Species: "cachorro"})
	if created == nil || created.ID == 0 {
		t.Fatalf("unexpected created: %+v", created)
	}
	if st := f.State(); len(st.Items) != 2 {
		t.Fatalf("expected list untouched, got %d items", len(st.Items))
	}
}

func TestFacade_Create_FailureSetsMessage(t *testing.T) {
	svc := newFakeService()
	svc.failCreate = true
	f := NewFacade(svc, 10, nil)

	if created := f.Create(context.Background(), petapi.PetInput{Name: "Thor"}); created != nil {
		t.Fatalf("expected nil, got %+v", created)
	}
	if st := f.State(); st.Err != msgCreate {
		t.Fatalf("expected %q, got %q", msgCreate, st.Err)
	}
}

func TestFacade_State_ReturnsCopies(t *testing.T) {
	f := NewFacade(newFakeService(somePets()...), 10, nil)
	f.List(context.Background(), 0, "")
	f.GetByID(context.Background(), 1)

	st := f.State()
	st.Items[0].Name = "mutado"
	st.Selected.Name = "mutado"

	st2 := f.State()
	if st2.Items[0].Name != "Rex" || st2.Selected.Name != "Rex" {
		t.Fatalf("state leaked internal references: %+v", st2.Items[0])
	}
}
