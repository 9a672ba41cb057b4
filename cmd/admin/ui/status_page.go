package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/ports/petapi"
)

type healthCheckedMsg struct {
	health petapi.Health
}

// StatusModel muestra el estado del API remoto y los datos de este
// cliente. El probe es un listado mínimo con token, así valida red,
// API y sesión en un solo golpe.
type StatusModel struct {
	deps   *Deps
	styles Styles

	checking bool
	checked  bool
	health   petapi.Health
	info     petapi.AppInfo
}

func NewStatusModel(deps *Deps, st Styles) StatusModel {
	return StatusModel{
		deps:   deps,
		styles: st,
		info:   deps.Health.AppInfo(),
	}
}

func (m *StatusModel) enter() tea.Cmd {
	m.checking = true
	m.checked = false
	return m.checkCmd()
}

func (m *StatusModel) checkCmd() tea.Cmd {
	h := m.deps.Health
	return func() tea.Msg {
		return healthCheckedMsg{health: h.CheckAPI(context.Background())}
	}
}

func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case healthCheckedMsg:
		m.checking = false
		m.checked = true
		m.health = msg.health
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.checking = true
			return m, m.checkCmd()
		case "esc", "q":
			return m, navTo(pageHome)
		}
	}
	return m, nil
}

func (m StatusModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Status"))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(m.styles.Value.Render(value))
		b.WriteString("\n")
	}
	field("Versão", m.info.Version)
	field("Ambiente", m.info.Environment)
	field("API", m.info.BaseURL)

	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-12s", "Conexão")))
	switch {
	case m.checking:
		b.WriteString(m.styles.Dim.Render("verificando..."))
	case !m.checked:
		b.WriteString(m.styles.Dim.Render("—"))
	case m.health.Online:
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("online (%d ms)", m.health.Latency)))
	default:
		b.WriteString(m.styles.Error.Render("offline"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("r: verificar novamente • esc: voltar"))
	return b.String()
}
