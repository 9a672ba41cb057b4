package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/ports/petapi"
	"pet-manager-admin/internal/validate"
)

type tutorFormLoadedMsg struct {
	found bool
}

type tutorSavedMsg struct {
	id int64
	ok bool
}

// TutorFormModel sirve para alta (id == 0) y edición (id > 0).
type TutorFormModel struct {
	deps   *Deps
	styles Styles

	id     int64
	inputs []textinput.Model
	focus  int
	errs   map[string]string
}

const (
	tutorFieldName = iota
	tutorFieldPhone
	tutorFieldAddress
	tutorFieldCount
)

func NewTutorFormModel(deps *Deps, st Styles) TutorFormModel {
	inputs := make([]textinput.Model, tutorFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 128
	}
	inputs[tutorFieldName].Placeholder = "Nome"
	inputs[tutorFieldPhone].Placeholder = "Telefone"
	inputs[tutorFieldAddress].Placeholder = "Endereço"

	return TutorFormModel{
		deps:   deps,
		styles: st,
		inputs: inputs,
		errs:   map[string]string{},
	}
}

func (m *TutorFormModel) enter(id int64) tea.Cmd {
	m.id = id
	m.errs = map[string]string{}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = tutorFieldName
	m.inputs[tutorFieldName].Focus()

	if id == 0 {
		return nil
	}
	f := m.deps.Tutors
	return func() tea.Msg {
		det := f.GetByID(context.Background(), id)
		return tutorFormLoadedMsg{found: det != nil}
	}
}

func (m TutorFormModel) Update(msg tea.Msg) (TutorFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tutorFormLoadedMsg:
		if !msg.found {
			return m, nil
		}
		st := m.deps.Tutors.State()
		if t := st.Selected; t != nil && t.ID == m.id {
			m.inputs[tutorFieldName].SetValue(t.Name)
			m.inputs[tutorFieldPhone].SetValue(t.Phone)
			m.inputs[tutorFieldAddress].SetValue(t.Address)
		}
		return m, nil

	case tutorSavedMsg:
		if msg.ok {
			return m, navToID(pageTutorDetail, msg.id)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m.setFocus(m.focus + 1), nil
		case "shift+tab", "up":
			return m.setFocus(m.focus - 1), nil
		case "enter":
			return m.submit()
		case "esc":
			if m.id == 0 {
				return m, navTo(pageTutors)
			}
			return m, navToID(pageTutorDetail, m.id)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m TutorFormModel) setFocus(i int) TutorFormModel {
	if i < 0 {
		i = tutorFieldCount - 1
	}
	if i >= tutorFieldCount {
		i = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m TutorFormModel) submit() (TutorFormModel, tea.Cmd) {
	in := petapi.TutorInput{
		Name:    strings.TrimSpace(m.inputs[tutorFieldName].Value()),
		Phone:   strings.TrimSpace(m.inputs[tutorFieldPhone].Value()),
		Address: strings.TrimSpace(m.inputs[tutorFieldAddress].Value()),
	}

	m.errs = validate.Tutor(in)
	if len(m.errs) > 0 {
		return m, nil
	}

	f := m.deps.Tutors
	id := m.id
	return m, func() tea.Msg {
		if id == 0 {
			created := f.Create(context.Background(), in)
			if created == nil {
				return tutorSavedMsg{}
			}
			return tutorSavedMsg{id: created.ID, ok: true}
		}
		updated := f.Update(context.Background(), id, in)
		if updated == nil {
			return tutorSavedMsg{}
		}
		return tutorSavedMsg{id: updated.ID, ok: true}
	}
}

func (m TutorFormModel) View() string {
	st := m.deps.Tutors.State()

	var b strings.Builder
	if m.id == 0 {
		b.WriteString(m.styles.Header.Render("Novo Tutor"))
	} else {
		b.WriteString(m.styles.Header.Render("Editar Tutor"))
	}
	b.WriteString("\n\n")

	if st.Busy {
		b.WriteString(m.styles.Dim.Render("Salvando..."))
		b.WriteString("\n")
	}
	if st.Err != "" {
		b.WriteString(m.styles.Error.Render(st.Err))
		b.WriteString("\n")
	}

	labels := []string{"Nome", "Telefone", "Endereço"}
	keys := []string{"nome", "telefone", "endereco"}
	for i := range m.inputs {
		b.WriteString(m.styles.Label.Render(labels[i] + ": "))
		b.WriteString(m.inputs[i].View())
		if msg, ok := m.errs[keys[i]]; ok {
			b.WriteString("  ")
			b.WriteString(m.styles.Error.Render(msg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab: próximo campo • enter: salvar • esc: cancelar"))
	return b.String()
}
