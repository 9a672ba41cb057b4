package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/domain/photos"
)

type petDetailLoadedMsg struct {
	found bool
}

type petDetailPhotoProbeMsg struct {
	url string
	err error
}

type petPhotoAttachedMsg struct {
	ok bool
}

type petPhotoRemovedMsg struct {
	ok bool
}

type petDeletedMsg struct {
	ok bool
}

type petDetailMode int

const (
	petDetailViewing petDetailMode = iota
	petDetailConfirmDelete
	petDetailAttaching
	petDetailPickingPhoto
)

// PetDetailModel muestra un pet puntual con su tutor y sus fotos.
// La foto principal se resuelve igual que en la lista; si el probe
// falla una vez se refresca el detalle y se reintenta, a la segunda
// queda marcada como rota.
type PetDetailModel struct {
	deps   *Deps
	styles Styles

	id   int64
	mode petDetailMode

	photoPath   textinput.Model
	photoCursor int

	photoURL    string
	photoBroken bool
	retried     bool

	notice string
}

func NewPetDetailModel(deps *Deps, st Styles) PetDetailModel {
	path := textinput.New()
	path.Placeholder = "/caminho/para/foto.jpg"
	path.CharLimit = 256

	return PetDetailModel{
		deps:      deps,
		styles:    st,
		photoPath: path,
	}
}

func (m *PetDetailModel) enter(id int64) tea.Cmd {
	m.id = id
	m.mode = petDetailViewing
	m.photoURL = ""
	m.photoBroken = false
	m.retried = false
	m.notice = ""
	m.photoCursor = 0
	return m.loadCmd()
}

func (m *PetDetailModel) loadCmd() tea.Cmd {
	f := m.deps.Pets
	id := m.id
	return func() tea.Msg {
		det := f.GetByID(context.Background(), id)
		return petDetailLoadedMsg{found: det != nil}
	}
}

func (m *PetDetailModel) probeCmd() tea.Cmd {
	url := m.photoURL
	if url == "" {
		return nil
	}
	prober := m.deps.Prober
	return func() tea.Msg {
		return petDetailPhotoProbeMsg{url: url, err: prober.Probe(context.Background(), url)}
	}
}

func (m PetDetailModel) Update(msg tea.Msg) (PetDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case petDetailLoadedMsg:
		if !msg.found {
			return m, nil
		}
		st := m.deps.Pets.State()
		if st.Selected == nil {
			return m, nil
		}
		m.photoURL = photos.StaticURL(st.Selected.Photos)
		m.photoBroken = false
		return m, m.probeCmd()

	case petDetailPhotoProbeMsg:
		if msg.err == nil || msg.url != m.photoURL {
			return m, nil
		}
		if !m.retried {
			m.retried = true
			return m, m.loadCmd()
		}
		m.photoBroken = true
		return m, nil

	case petPhotoAttachedMsg:
		if msg.ok {
			m.notice = "Foto adicionada."
			m.retried = false
			return m, m.loadCmd()
		}
		return m, nil

	case petPhotoRemovedMsg:
		if msg.ok {
			m.notice = "Foto removida."
			m.photoCursor = 0
			m.retried = false
			return m, m.loadCmd()
		}
		return m, nil

	case petDeletedMsg:
		if msg.ok {
			return m, navTo(pageHome)
		}
		m.mode = petDetailViewing
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == petDetailAttaching {
		var cmd tea.Cmd
		m.photoPath, cmd = m.photoPath.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PetDetailModel) handleKey(msg tea.KeyMsg) (PetDetailModel, tea.Cmd) {
	switch m.mode {
	case petDetailConfirmDelete:
		switch msg.String() {
		case "y", "s":
			f := m.deps.Pets
			id := m.id
			return m, func() tea.Msg {
				return petDeletedMsg{ok: f.Delete(context.Background(), id)}
			}
		case "n", "esc":
			m.mode = petDetailViewing
		}
		return m, nil

	case petDetailAttaching:
		switch msg.String() {
		case "enter":
			return m.submitPhoto()
		case "esc":
			m.mode = petDetailViewing
			m.photoPath.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.photoPath, cmd = m.photoPath.Update(msg)
			return m, cmd
		}

	case petDetailPickingPhoto:
		st := m.deps.Pets.State()
		var count int
		if st.Selected != nil {
			count = len(st.Selected.Photos)
		}
		switch msg.String() {
		case "up", "k":
			if m.photoCursor > 0 {
				m.photoCursor--
			}
		case "down", "j":
			if m.photoCursor < count-1 {
				m.photoCursor++
			}
		case "enter":
			if st.Selected != nil && m.photoCursor < count {
				f := m.deps.Pets
				id := m.id
				photoID := st.Selected.Photos[m.photoCursor].ID
				m.mode = petDetailViewing
				return m, func() tea.Msg {
					return petPhotoRemovedMsg{ok: f.RemovePhoto(context.Background(), id, photoID)}
				}
			}
		case "esc":
			m.mode = petDetailViewing
		}
		return m, nil
	}

	st := m.deps.Pets.State()
	switch msg.String() {
	case "e":
		return m, navToID(pagePetForm, m.id)
	case "d":
		m.mode = petDetailConfirmDelete
	case "t":
		if st.Selected != nil && st.Selected.Tutor != nil {
			return m, navToID(pageTutorDetail, st.Selected.Tutor.ID)
		}
	case "f":
		m.mode = petDetailAttaching
		m.photoPath.SetValue("")
		m.notice = ""
		return m, m.photoPath.Focus()
	case "x":
		if st.Selected != nil && len(st.Selected.Photos) > 0 {
			m.mode = petDetailPickingPhoto
			m.photoCursor = 0
			m.notice = ""
		}
	case "r":
		m.retried = false
		m.notice = ""
		return m, m.loadCmd()
	case "esc", "q":
		return m, navTo(pageHome)
	}
	return m, nil
}

func (m PetDetailModel) submitPhoto() (PetDetailModel, tea.Cmd) {
	path := strings.TrimSpace(m.photoPath.Value())
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.notice = "Não foi possível ler o arquivo."
		return m, nil
	}
	m.mode = petDetailViewing
	m.photoPath.Blur()

	f := m.deps.Pets
	id := m.id
	name := filepath.Base(path)
	return m, func() tea.Msg {
		att := f.AttachPhoto(context.Background(), id, name, data)
		return petPhotoAttachedMsg{ok: att != nil}
	}
}

func (m PetDetailModel) View() string {
	st := m.deps.Pets.State()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Detalhes do Pet"))
	b.WriteString("\n\n")

	if st.Busy {
		b.WriteString(m.styles.Dim.Render("Carregando..."))
		b.WriteString("\n")
	}
	if st.Err != "" {
		b.WriteString(m.styles.Error.Render(st.Err))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n")
	}

	p := st.Selected
	if p == nil || p.ID != m.id {
		if !st.Busy {
			b.WriteString(m.styles.Dim.Render("Pet não encontrado."))
		}
		return b.String()
	}

	field := func(label, value string) {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(m.styles.Value.Render(value))
		b.WriteString("\n")
	}
	field("ID", strconv.FormatInt(p.ID, 10))
	field("Nome", p.Name)
	field("Espécie", p.Species)
	field("Idade", strconv.Itoa(p.Age))
	field("Raça", p.Breed)
	if p.Tutor != nil {
		field("Tutor", fmt.Sprintf("%s (t: ver)", p.Tutor.Name))
	} else {
		field("Tutor", "—")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Foto principal: "))
	switch {
	case m.photoURL == "":
		b.WriteString(m.styles.Dim.Render("sem foto"))
	case m.photoBroken:
		b.WriteString(m.styles.Error.Render("indisponível"))
	default:
		b.WriteString(m.styles.Value.Render(m.photoURL))
	}
	b.WriteString("\n")

	if len(p.Photos) > 0 {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("Fotos (%d):", len(p.Photos))))
		b.WriteString("\n")
		for i, ph := range p.Photos {
			row := fmt.Sprintf("  #%d %s", ph.ID, ph.FileName)
			if m.mode == petDetailPickingPhoto && i == m.photoCursor {
				b.WriteString(m.styles.Selected.Render(row))
			} else {
				b.WriteString(m.styles.Value.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.mode {
	case petDetailConfirmDelete:
		b.WriteString(m.styles.Error.Render("Excluir este pet? (s/n)"))
	case petDetailAttaching:
		b.WriteString(m.styles.Label.Render("Arquivo: "))
		b.WriteString(m.photoPath.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: enviar • esc: cancelar"))
	case petDetailPickingPhoto:
		b.WriteString(m.styles.Help.Render("↑/↓: escolher foto • enter: remover • esc: cancelar"))
	default:
		b.WriteString(m.styles.Help.Render("e: editar • d: excluir • f: adicionar foto • x: remover foto • t: tutor • r: recarregar • esc: voltar"))
	}
	return b.String()
}
