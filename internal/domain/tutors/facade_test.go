package tutors

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
	tutors map[int64]petapi.Tutor
	links  map[int64]int64 // pet -> tutor

	failList bool
	failLink bool
}

func newFakeService(tutors ...petapi.Tutor) *fakeService {
	f := &fakeService{tutors: map[int64]petapi.Tutor{}, links: map[int64]int64{}}
	for _, t := range tutors {
		f.tutors[t.ID] = t
	}
	return f
}

func (f *fakeService) List(ctx context.Context, page, size int) (petapi.Page[petapi.TutorSummary], error) {
	if f.failList {
		return petapi.Page[petapi.TutorSummary]{}, errBoom
	}
	var content []petapi.TutorSummary
	for id := int64(1); id <= int64(len(f.tutors))+10; id++ {
		t, ok := f.tutors[id]
		if !ok {
			continue
		}
		content = append(content, t.Summary())
	}
	return petapi.Page[petapi.TutorSummary]{
		Content:       content,
		TotalElements: len(content),
		TotalPages:    1,
		Size:          size,
		Number:        page,
	}, nil
}

func (f *fakeService) Get(ctx context.Context, id int64) (petapi.Tutor, error) {
	t, ok := f.tutors[id]
	if !ok {
		return petapi.Tutor{}, errBoom
	}
	return t, nil
}

func (f *fakeService) Create(ctx context.Context, in petapi.TutorInput) (petapi.Tutor, error) {
	t := petapi.Tutor{ID: int64(len(f.tutors) + 1), Name: in.Name, Phone: in.Phone, Address: in.Address}
	f.tutors[t.ID] = t
	return t, nil
}

func (f *fakeService) Update(ctx context.Context, id int64, in petapi.TutorInput) (petapi.Tutor, error) {
	t, ok := f.tutors[id]
	if !ok {
		return petapi.Tutor{}, errBoom
	}
	t.Name, t.Phone, t.Address = in.Name, in.Phone, in.Address
	f.tutors[id] = t
	return t, nil
}

func (f *fakeService) Delete(ctx context.Context, id int64) error {
	delete(f.tutors, id)
	return nil
}

func (f *fakeService) AddPhoto(ctx context.Context, id int64, filename string, data []byte) (petapi.Attachment, error) {
	return petapi.Attachment{ID: 99, FileName: filename}, nil
}

func (f *fakeService) DeletePhoto(ctx context.Context, id, photoID int64) error { return nil }

func (f *fakeService) LinkPet(ctx context.Context, tutorID, petID int64) error {
	if f.failLink {
		return errBoom
	}
	f.links[petID] = tutorID
	return nil
}

func (f *fakeService) UnlinkPet(ctx context.Context, tutorID, petID int64) error {
	if f.failLink {
		return errBoom
	}
	delete(f.links, petID)
	return nil
}

func someTutors() []petapi.Tutor {
	return []petapi.Tutor{
		{ID: 1, Name: "Ana", Phone: "11988887777", Address: "Rua A, 123", Photos: []petapi.Attachment{{ID: 10, URL: "http://img/ana.png"}}},
		{ID: 2, Name: "Bruno", Phone: "21977776666", Address: "Rua B, 456", Photos: []petapi.Attachment{{ID: 11, URL: "http://img/bruno.png"}}},
	}
}

func TestFacade_List_LoadsItems(t *testing.T) {
	f := NewFacade(newFakeService(someTutors()...), 10, nil)

	f.List(context.Background(), 0)

	st := f.State()
	if len(st.Items) != 2 || st.Items[0].Name != "Ana" {
		t.Fatalf("unexpected items: %+v", st.Items)
	}
	if st.Pagination.TotalElements != 2 {
		t.Fatalf("unexpected pagination: %+v", st.Pagination)
	}
}

func TestFacade_List_FailureKeepsPreviousItems(t *testing.T) {
	svc := newFakeService(someTutors()...)
	f := NewFacade(svc, 10, nil)

	f.List(context.Background(), 0)
	svc.failList = true
	f.List(context.Background(), 1)

	st := f.State()
	if len(st.Items) != 2 {
		t.Fatalf("expected previous items kept, got %d", len(st.Items))
	}
	if st.Err != msgList {
		t.Fatalf("expected %q, got %q", msgList, st.Err)
	}
}

func TestFacade_LinkPet_Succeeds(t *testing.T) {
	svc := newFakeService(someTutors()...)
	f := NewFacade(svc, 10, nil)

	if ok := f.LinkPet(context.Background(), 1, 7); !ok {
		t.Fatalf("expected link to succeed")
	}
	if svc.links[7] != 1 {
		t.Fatalf("expected pet 7 linked to tutor 1, got %d", svc.links[7])
	}
	if st := f.State(); st.Err != "" {
		t.Fatalf("expected no error, got %q", st.Err)
	}
}

func TestFacade_LinkPet_FailureSetsMessage(t *testing.T) {
	svc := newFakeService(someTutors()...)
	svc.failLink = true
	f := NewFacade(svc, 10, nil)

	if ok := f.LinkPet(context.Background(), 1, 7); ok {
		t.Fatalf("expected link to fail")
	}
	if st := f.State(); st.Err != msgLink {
		t.Fatalf("expected %q, got %q", msgLink, st.Err)
	}
}

func TestFacade_UnlinkPet(t *testing.T) {
	svc := newFakeService(someTutors()...)
	svc.links[7] = 1
	f := NewFacade(svc, 10, nil)

	if ok := f.UnlinkPet(context.Background(), 1, 7); !ok {
		t.Fatalf("expected unlink to succeed")
	}
	if _, linked := svc.links[7]; linked {
		t.Fatalf("expected link removed")
	}

	svc.failLink = true
	if ok := f.UnlinkPet(context.Background(), 1, 8); ok {
		t.Fatalf("expected unlink to fail")
	}
	if st := f.State(); st.Err != msgUnlink {
		t.Fatalf("expected %q, got %q", msgUnlink, st.Err)
	}
}

func TestFacade_GetByID_SetsSelected(t *testing.T) {
	f := NewFacade(newFakeService(someTutors()...), 10, nil)

	det := f.GetByID(context.Background(), 2)
	if det == nil || det.Name != "Bruno" {
		t.Fatalf("unexpected detail: %+v", det)
	}
	if st := f.State(); st.Selected == nil || st.Selected.ID != 2 {
		t.Fatalf("expected selection, got %+v", f.State().Selected)
	}
}

func TestFacade_Delete_RemovesRow(t *testing.T) {
	f := NewFacade(newFakeService(someTutors()...), 10, nil)
	f.List(context.Background(), 0)

	if ok := f.Delete(context.Background(), 1); !ok {
		t.Fatalf("expected delete to succeed")
	}
	st := f.State()
	if len(st.Items) != 1 || st.Items[0].ID != 2 {
		t.Fatalf("expected only tutor 2 left, got %+v", st.Items)
	}
}
