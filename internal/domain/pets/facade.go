package pets

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"pet-manager-admin/internal/platform/logger"
	"pet-manager-admin/internal/ports/petapi"
)

// Mensajes fijos que ve el usuario. Ningún error crudo del transporte
// cruza esta frontera.
const (
	msgList        = "Erro ao buscar pets. Tente novamente."
	msgDetail      = "Erro ao buscar detalhes do pet."
	msgCreate      = "Erro ao cadastrar pet."
	msgUpdate      = "Erro ao atualizar pet."
	msgDelete      = "Erro ao excluir pet."
	msgAddPhoto    = "Erro ao adicionar foto."
	msgRemovePhoto = "Erro ao remover foto."
)

type Pagination struct {
	Page          int
	TotalPages    int
	TotalElements int
	PageSize      int
}

// State es la foto del estado que consume la UI. Items es una copia:
// se puede renderizar sin tocar el lock de la fachada.
type State struct {
	Items      []petapi.PetSummary
	Selected   *petapi.Pet
	Busy       bool
	Err        string
	Pagination Pagination
}

// Facade es el contenedor de estado por recurso: lista actual,
// selección de detalle, flags de carga/error y cursores de paginación,
// más las mutaciones. La lista local es un cache best-effort; la
// fuente de verdad siempre es el API.
type Facade struct {
	svc petapi.PetService
	log logger.Logger

	mu       sync.Mutex
	items    []petapi.PetSummary
	selected *petapi.Pet
	busy     bool
	errMsg   string
	pag      Pagination
}

func NewFacade(svc petapi.PetService, pageSize int, log logger.Logger) *Facade {
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
		Items:      make([]petapi.PetSummary, len(f.items)),
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

// List carga una página (con filtro opcional por nombre) y después
// repara las entradas que llegaron sin fotos con fetches de detalle en
// paralelo. Si el listado falla, la lista anterior queda intacta.
func (f *Facade) List(ctx context.Context, page int, search string) {
	f.begin()
	defer f.end()

	res, err := f.svc.List(ctx, page, f.pageSize(), search)
	if err != nil {
		f.log.Warn("pets list failed", map[string]any{"page": page, "err": err.Error()})
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

// patchMissingPhotos: el endpoint de listado a veces omite las fotos.
// Para cada entrada sin fotos se pide el detalle (en paralelo, fallas
// individuales toleradas) y se mergea SOLO el campo de fotos, para no
// pisar el resto de la fila con datos de otra respuesta.
func (f *Facade) patchMissingPhotos(ctx context.Context) {
	f.mu.Lock()
	var missing []int64
	for _, p := range f.items {
		if len(p.Photos) == 0 {
			missing = append(missing, p.ID)
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
				// sin parche para esta entrada, nada más
				f.log.Debug("photo patch failed", map[string]any{"pet": id, "err": err.Error()})
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

// GetByID carga el detalle y lo deja como selección actual. Devuelve
// nil con el error seteado si falla.
func (f *Facade) GetByID(ctx context.Context, id int64) *petapi.Pet {
	f.begin()
	defer f.end()

	det, err := f.svc.Get(ctx, id)
	if err != nil {
		f.log.Warn("pet detail failed", map[string]any{"pet": id, "err": err.Error()})
		f.fail(msgDetail)
		return nil
	}

	f.mu.Lock()
	sel := det
	f.selected = &sel
	f.mu.Unlock()
	return &det
}

// RefreshInList es la variante silenciosa de GetByID: repara las fotos
// de una fila (y de la selección si coincide) sin tocar busy ni error.
// Se usa cuando una URL de foto ya cacheada vino rota.
func (f *Facade) RefreshInList(ctx context.Context, id int64) *petapi.Pet {
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

// Create no toca la lista local: quien llama navega al detalle nuevo.
func (f *Facade) Create(ctx context.Context, in petapi.PetInput) *petapi.Pet {
	f.begin()
	defer f.end()

	p, err := f.svc.Create(ctx, in)
	if err != nil {
		f.log.Warn("pet create failed", map[string]any{"err": err.Error()})
		f.fail(msgCreate)
		return nil
	}
	return &p
}

func (f *Facade) Update(ctx context.Context, id int64, in petapi.PetInput) *petapi.Pet {
	f.begin()
	defer f.end()

	p, err := f.svc.Update(ctx, id, in)
	if err != nil {
		f.log.Warn("pet update failed", map[string]any{"pet": id, "err": err.Error()})
		f.fail(msgUpdate)
		return nil
	}
	return &p
}

// Delete borra remoto y, si salió bien, saca la fila de la lista local
// por id. Si falla, la lista queda como estaba y el error queda fijo.
func (f *Facade) Delete(ctx context.Context, id int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.Delete(ctx, id); err != nil {
		f.log.Warn("pet delete failed", map[string]any{"pet": id, "err": err.Error()})
		f.fail(msgDelete)
		return false
	}

	f.mu.Lock()
	kept := f.items[:0]
	for _, p := range f.items {
		if p.ID != id {
			kept = append(kept, p)
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
		f.log.Warn("pet photo upload failed", map[string]any{"pet": id, "err": err.Error()})
		f.fail(msgAddPhoto)
		return nil
	}
	return &a
}

func (f *Facade) RemovePhoto(ctx context.Context, id, photoID int64) bool {
	f.begin()
	defer f.end()

	if err := f.svc.DeletePhoto(ctx, id, photoID); err != nil {
		f.log.Warn("pet photo delete failed", map[string]any{"pet": id, "foto": photoID, "err": err.Error()})
		f.fail(msgRemovePhoto)
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
