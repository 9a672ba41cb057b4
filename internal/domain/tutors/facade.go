package tutors

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"pet-manager-admin/internal/platform/logger"
	"pet-manager-admin/internal/ports/petapi"
)

const (
	msgList        = "Erro ao buscar tutores. Tente novamente."
	msgDetail      = "Erro ao buscar detalhes do tutor."
	msgCreate      = "Erro ao cadastrar tutor."
	msgUpdate      = "Erro ao atualizar tutor."
	msgDelete      = "Erro ao excluir tutor."
	msgAddPhoto    = "Erro ao adicionar foto."
	msgRemovePhoto = "Erro ao remover foto."
	msgLink        = "Erro ao vincular pet ao tutor."
	msgUnlink      = "Erro ao desvincular pet do tutor."
)

type Pagination struct {
	Page          int
	TotalPages    int
	TotalElements int
	PageSize      int
}

type State struct {
	Items      []petapi.TutorSummary
	Selected   *petapi.Tutor
	Busy       bool
	Err        string
	Pagination Pagination
}

// Facade de tutores. Misma mecánica que la de pets (lista + selección
// + flags + parche de fotos), más el vínculo/desvínculo de pets. Ver
// internal/domain/pets para el detalle de la semántica compartida.
type Facade struct {
	svc petapi.TutorService
	log logger.Logger

	mu       sync.Mutex
	items    []petapi.TutorSummary
	selected *petapi.Tutor
	busy     bool
	errMsg   string
	pag      Pagination
}

func NewFacade(svc petapi.TutorService, pageSize int, log logger.Logger) *Facade {
	if log == nil {
		log = logger.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Facade{
		svc: svc,
		log: log,
		pag: Pagination{PageSize: pageSize},
	}
}

func (f *Facade) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := State{
		Items:      make([]petapi.TutorSummary, len(f.items)),
		Busy:       f.busy,
		Err:        f.errMsg,
		Pagination: f.pag,
	}
	copy(st.Items, f.items)
	if f.selected != nil {
		sel := *f.selected
		st.Selected = &sel
	}
	return st
}

func (f *Facade) List(ctx context.Context, page int) {
	f.begin()
	defer f.end()

	res, err := f.svc.List(ctx, page, f.pageSize())
	if err != nil {
		f.log.Warn("tutors list failed", map[string]any{"page": page, "err": err.Error()})
		f.fail(msgList)
		return
	}

	f.mu.Lock()
	f.items = res.Content
	f.pag = Pagination{
		Page:          res.Number,
		TotalPages:    res.TotalPages,
		TotalElements: res.TotalElements,
		PageSize:      res.Size,
	}
	f.mu.Unlock()

	f.patchMissingPhotos(ctx)
}

func (f *Facade) patchMissingPhotos(ctx context.Context) {
	f.mu.Lock()
	var missing []int64
	for _, t := range f.items {
		if len(t.Photos) == 0 {
			missing = append(missing, t.ID)
		}
	}
	f.mu.Unlock()

	if len(missing) == 0 {
		return
	}

	var (
		pmu   sync.Mutex
		found = make(map[int64][]petapi.Attachment)
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range missing {
		g.Go(func() error {
			det, err := f.svc.Get(gctx, id)
			if err != nil {
				f.log.Debug("photo patch failed", map[string]any{"tutor": id, "err": err.Error()})
				return nil
			}
			if len(det.Photos) == 0 {
				return nil
			}
			pmu.Lock()
			found[id] = det.Photos
			pmu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(found) == 0 {
		return
	}

	f.mu.Lock()
	for i := range f.items {
		if ph, ok := found[f.items[i].ID]; ok {
			f.items[i].Photos = ph
		}
	}
	f.mu.Unlock()
}

func (f *Facade) GetByID(ctx context.Context, id int64) *petapi.Tutor {
	f.begin()
	defer f.end()

	det, err := f.svc.Get(ctx, id)
	if err != nil {
		f.log.Warn("tutor detail failed", map[string]any{"tutor": id, "err": err.Error()})
		f.fail(msgDetail)
		return nil
	}

	f.mu.Lock()
	sel := det
	f.selected = &sel
	f.mu.Unlock()
	return &det
}

func (f *Facade) RefreshInList(ctx context.Context, id int64) *petapi.Tutor {
	det, err := f.svc.Get(ctx, id)
	if err != nil {
		return nil
	}

	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ID == id && len(det.Photos) > 0 {
			f.items[i].Photos = det.Photos
		}
	}
	if f.selected != nil && f.selected.ID == id && len(det.Photos) > 0 {
		f.selected.Photos = det.Photos
	}
	f.mu.Unlock()
	return &det
}

func (f *Facade) Create(ctx context.Context, in petapi.TutorInput) *petapi.Tutor {
	f.begin()
	defer f.end()

	t, err := f.svc.Create(ctx, in)
	if err != nil {
		f.log.Warn("tutor create failed", map[string]any{"err": err.Error()})
		f.fail(msgCreate)
		return nil
	}
	return &t
}

func (f *Facade) Update(ctx context.Context, id int64, in petapi.TutorInput) *petapi.Tutor {
	f.begin()
	defer f.end()

	t, err := f.svc.Update(ctx, id, in)
	if err != nil {
		f.log.Warn("tutor update failed", map[string]any{"tutor": id, "err": err.Error()})
		f.fail(msgUpdate)
		return nil
	}
	return &t
}

func (f *Facade) Delete(ctx context.Context, id int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.Delete(ctx, id); err != nil {
		f.log.Warn("tutor delete failed", map[string]any{"tutor": id, "err": err.Error()})
		f.fail(msgDelete)
		return false
	}

	f.mu.Lock()
	kept := f.items[:0]
	for _, t := range f.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.items = kept
	f.mu.Unlock()
	return true
}

func (f *Facade) AttachPhoto(ctx context.Context, id int64, filename string, data []byte) *petapi.Attachment {
	f.begin()
	defer f.end()

	a, err := f.svc.AddPhoto(ctx, id, filename, data)
	if err != nil {
		f.log.Warn("tutor photo upload failed", map[string]any{"tutor": id, "err": err.Error()})
		f.fail(msgAddPhoto)
		return nil
	}
	return &a
}

func (f *Facade) RemovePhoto(ctx context.Context, id, photoID int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.DeletePhoto(ctx, id, photoID); err != nil {
		f.log.Warn("tutor photo delete failed", map[string]any{"tutor": id, "foto": photoID, "err": err.Error()})
		f.fail(msgRemovePhoto)
		return false
	}
	return true
}

// LinkPet asocia un pet al tutor. No refresca la selección: quien
// llama re-consulta el detalle para ver la lista de pets actualizada.
func (f *Facade) LinkPet(ctx context.Context, tutorID, petID int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.LinkPet(ctx, tutorID, petID); err != nil {
		f.log.Warn("link pet failed", map[string]any{"tutor": tutorID, "pet": petID, "err": err.Error()})
		f.fail(msgLink)
		return false
	}
	return true
}

func (f *Facade) UnlinkPet(ctx context.Context, tutorID, petID int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.UnlinkPet(ctx, tutorID, petID); err != nil {
		f.log.Warn("unlink pet failed", map[string]any{"tutor": tutorID, "pet": petID, "err": err.Error()})
		f.fail(msgUnlink)
		return false
	}
	return true
}

func (f *Facade) ClearError() {
	f.mu.Lock()
	f.errMsg = ""
	f.mu.Unlock()
}

func (f *Facade) ClearSelected() {
	f.mu.Lock()
	f.selected = nil
	f.mu.Unlock()
}

func (f *Facade) begin() {
	f.mu.Lock()
	f.busy = true
	f.errMsg = ""
	f.mu.Unlock()
}

func (f *Facade) end() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

func (f *Facade) fail(msg string) {
	f.mu.Lock()
	f.errMsg = msg
	f.mu.Unlock()
}

func (f *Facade) pageSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pag.PageSize
}
