package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/ports/petapi"
	"pet-manager-admin/internal/validate"
)

type petFormLoadedMsg struct {
	found bool
}

type petSavedMsg struct {
	id int64
	ok bool
}

// PetFormModel sirve para alta (id == 0) y edición (id > 0).
// Toda la validación corre local antes de tocar la red; el formulario
// no envía nada mientras haya errores de campo.
type PetFormModel struct {
	deps   *Deps
	styles Styles

	id     int64
	inputs []textinput.Model
	focus  int
	errs   map[string]string
}

const (
	petFieldName = iota
	petFieldSpecies
	petFieldAge
	petFieldBreed
	petFieldCount
)

func NewPetFormModel(deps *Deps, st Styles) PetFormModel {
	inputs := make([]textinput.Model, petFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].CharLimit = 64
	}
	inputs[petFieldName].Placeholder = "Nome"
	inputs[petFieldSpecies].Placeholder = "Espécie"
	inputs[petFieldAge].Placeholder = "Idade"
	inputs[petFieldBreed].Placeholder = "Raça"

	return PetFormModel{
		deps:   deps,
		styles: st,
		inputs: inputs,
		errs:   map[string]string{},
	}
}

func (m *PetFormModel) enter(id int64) tea.Cmd {
	m.id = id
	m.errs = map[string]string{}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = petFieldName
	m.inputs[petFieldName].Focus()

	if id == 0 {
		return nil
	}
	f := m.deps.Pets
	return func() tea.Msg {
		det := f.GetByID(context.Background(), id)
		return petFormLoadedMsg{found: det != nil}
	}
}

func (m PetFormModel) Update(msg tea.Msg) (PetFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case petFormLoadedMsg:
		if !msg.found {
			return m, nil
		}
		st := m.deps.Pets.State()
		if p := st.Selected; p != nil && p.ID == m.id {
			m.inputs[petFieldName].SetValue(p.Name)
			m.inputs[petFieldSpecies].SetValue(p.Species)
			m.inputs[petFieldAge].SetValue(strconv.Itoa(p.Age))
			m.inputs[petFieldBreed].SetValue(p.Breed)
		}
		return m, nil

	case petSavedMsg:
		if msg.ok {
			return m, navToID(pagePetDetail, msg.id)
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
				return m, navTo(pageHome)
			}
			return m, navToID(pagePetDetail, m.id)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m PetFormModel) setFocus(i int) PetFormModel {
	if i < 0 {
		i = petFieldCount - 1
	}
	if i >= petFieldCount {
		i = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
	return m
}

func (m PetFormModel) submit() (PetFormModel, tea.Cmd) {
	age, ageErr := parseAge(m.inputs[petFieldAge].Value())

	in := petapi.PetInput{
		Name:    strings.TrimSpace(m.inputs[petFieldName].Value()),
		Species: strings.TrimSpace(m.inputs[petFieldSpecies].Value()),
		Age:     age,
		Breed:   strings.TrimSpace(m.inputs[petFieldBreed].Value()),
	}

	m.errs = validate.Pet(in)
	if ageErr != nil {
		m.errs["idade"] = "Idade inválida"
	}
	if len(m.errs) > 0 {
		return m, nil
	}

	f := m.deps.Pets
	id := m.id
	return m, func() tea.Msg {
		if id == 0 {
			created := f.Create(context.Background(), in)
			if created == nil {
				return petSavedMsg{}
			}
			return petSavedMsg{id: created.ID, ok: true}
		}
		updated := f.Update(context.Background(), id, in)
		if updated == nil {
			return petSavedMsg{}
		}
		return petSavedMsg{id: updated.ID, ok: true}
	}
}

func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (m PetFormModel) View() string {
	st := m.deps.Pets.State()

	var b strings.Builder
	if m.id == 0 {
		b.WriteString(m.styles.Header.Render("Novo Pet"))
	} else {
		b.WriteString(m.styles.Header.Render("Editar Pet"))
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

	labels := []string{"Nome", "Espécie", "Idade", "Raça"}
	keys := []string{"nome", "especie", "idade", "raca"}
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
