package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/domain/photos"
)

type tutorDetailLoadedMsg struct {
	found bool
}

type tutorLinkChangedMsg struct {
	ok bool
}

type tutorDeletedMsg struct {
	ok bool
}

type tutorDetailMode int

const (
	tutorDetailViewing tutorDetailMode = iota
	tutorDetailConfirmDelete
	tutorDetailLinking
	tutorDetailConfirmUnlink
)

// TutorDetailModel muestra un tutor con sus pets vinculados. Vincular
// y desvincular siempre terminan en un re-fetch del detalle: el server
// es la única fuente de verdad sobre la asociación.
type TutorDetailModel struct {
	deps   *Deps
	styles Styles

	id        int64
	mode      tutorDetailMode
	petCursor int

	linkInput textinput.Model
	notice    string
}

func NewTutorDetailModel(deps *Deps, st Styles) TutorDetailModel {
	link := textinput.New()
	link.Placeholder = "ID do pet"
	link.CharLimit = 10

	return TutorDetailModel{
		deps:      deps,
		styles:    st,
		linkInput: link,
	}
}

func (m *TutorDetailModel) enter(id int64) tea.Cmd {
	m.id = id
	m.mode = tutorDetailViewing
	m.petCursor = 0
	m.notice = ""
	return m.loadCmd()
}

func (m *TutorDetailModel) loadCmd() tea.Cmd {
	f := m.deps.Tutors
	id := m.id
	return func() tea.Msg {
		det := f.GetByID(context.Background(), id)
		return tutorDetailLoadedMsg{found: det != nil}
	}
}

func (m TutorDetailModel) Update(msg tea.Msg) (TutorDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tutorDetailLoadedMsg:
		if msg.found {
			st := m.deps.Tutors.State()
			if st.Selected != nil && m.petCursor >= len(st.Selected.Pets) {
				m.petCursor = 0
			}
		}
		return m, nil

	case tutorLinkChangedMsg:
		if msg.ok {
			return m, m.loadCmd()
		}
		return m, nil

	case tutorDeletedMsg:
		if msg.ok {
			return m, navTo(pageTutors)
		}
		m.mode = tutorDetailViewing
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == tutorDetailLinking {
		var cmd tea.Cmd
		m.linkInput, cmd = m.linkInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TutorDetailModel) handleKey(msg tea.KeyMsg) (TutorDetailModel, tea.Cmd) {
	switch m.mode {
	case tutorDetailConfirmDelete:
		switch msg.String() {
		case "y", "s":
			f := m.deps.Tutors
			id := m.id
			return m, func() tea.Msg {
				return tutorDeletedMsg{ok: f.Delete(context.Background(), id)}
			}
		case "n", "esc":
			m.mode = tutorDetailViewing
		}
		return m, nil

	case tutorDetailLinking:
		switch msg.String() {
		case "enter":
			return m.submitLink()
		case "esc":
			m.mode = tutorDetailViewing
			m.linkInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.linkInput, cmd = m.linkInput.Update(msg)
			return m, cmd
		}

	case tutorDetailConfirmUnlink:
		switch msg.String() {
		case "y", "s":
			st := m.deps.Tutors.State()
			if st.Selected != nil && m.petCursor < len(st.Selected.Pets) {
				f := m.deps.Tutors
				tutorID := m.id
				petID := st.Selected.Pets[m.petCursor].ID
				m.mode = tutorDetailViewing
				return m, func() tea.Msg {
					return tutorLinkChangedMsg{ok: f.UnlinkPet(context.Background(), tutorID, petID)}
				}
			}
			m.mode = tutorDetailViewing
		case "n", "esc":
			m.mode = tutorDetailViewing
		}
		return m, nil
	}

	st := m.deps.Tutors.State()
	var pets int
	if st.Selected != nil {
		pets = len(st.Selected.Pets)
	}

	switch msg.String() {
	case "up", "k":
		if m.petCursor > 0 {
			m.petCursor--
		}
	case "down", "j":
		if m.petCursor < pets-1 {
			m.petCursor++
		}
	case "enter":
		if st.Selected != nil && m.petCursor < pets {
			return m, navToID(pagePetDetail, st.Selected.Pets[m.petCursor].ID)
		}
	case "e":
		return m, navToID(pageTutorForm, m.id)
	case "d":
		m.mode = tutorDetailConfirmDelete
	case "v":
		m.mode = tutorDetailLinking
		m.linkInput.SetValue("")
		m.notice = ""
		return m, m.linkInput.Focus()
	case "u":
		if pets > 0 {
			m.mode = tutorDetailConfirmUnlink
		}
	case "r":
		m.notice = ""
		return m, m.loadCmd()
	case "esc", "q":
		return m, navTo(pageTutors)
	}
	return m, nil
}

func (m TutorDetailModel) submitLink() (TutorDetailModel, tea.Cmd) {
	raw := strings.TrimSpace(m.linkInput.Value())
	petID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || petID <= 0 {
		m.notice = "ID de pet inválido."
		return m, nil
	}
	m.mode = tutorDetailViewing
	m.linkInput.Blur()

	f := m.deps.Tutors
	tutorID := m.id
	return m, func() tea.Msg {
		return tutorLinkChangedMsg{ok: f.LinkPet(context.Background(), tutorID, petID)}
	}
}

func (m TutorDetailModel) View() string {
	st := m.deps.Tutors.State()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Detalhes do Tutor"))
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
		b.WriteString(m.styles.Error.Render(m.notice))
		b.WriteString("\n")
	}

	t := st.Selected
	if t == nil || t.ID != m.id {
		if !st.Busy {
			b.WriteString(m.styles.Dim.Render("Tutor não encontrado."))
		}
		return b.String()
	}

	field := func(label, value string) {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(m.styles.Value.Render(value))
		b.WriteString("\n")
	}
	field("ID", strconv.FormatInt(t.ID, 10))
	field("Nome", t.Name)
	field("Telefone", t.Phone)
	field("Endereço", t.Address)

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Foto: "))
	if url := photos.StaticURL(t.Photos); url != "" {
		b.WriteString(m.styles.Value.Render(url))
	} else {
		b.WriteString(m.styles.Dim.Render("sem foto"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render(fmt.Sprintf("Pets vinculados (%d):", len(t.Pets))))
	b.WriteString("\n")
	if len(t.Pets) == 0 {
		b.WriteString(m.styles.Dim.Render("  nenhum"))
		b.WriteString("\n")
	}
	for i, p := range t.Pets {
		row := fmt.Sprintf("  #%d %s (%s)", p.ID, p.Name, p.Species)
		if i == m.petCursor {
			b.WriteString(m.styles.Selected.Render(row))
		} else {
			b.WriteString(m.styles.Value.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case tutorDetailConfirmDelete:
		b.WriteString(m.styles.Error.Render("Excluir este tutor? Os pets não serão excluídos. (s/n)"))
	case tutorDetailLinking:
		b.WriteString(m.styles.Label.Render("Vincular pet: "))
		b.WriteString(m.linkInput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: vincular • esc: cancelar"))
	case tutorDetailConfirmUnlink:
		b.WriteString(m.styles.Error.Render("Desvincular o pet selecionado? (s/n)"))
	default:
		b.WriteString(m.styles.Help.Render("↑/↓: pets • enter: ver pet • v: vincular • u: desvincular • e: editar • d: excluir • r: recarregar • esc: voltar"))
	}
	return b.String()
}
