package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/platform/httpclient"
)

type loginResultMsg struct {
	err error
}

type LoginModel struct {
	deps   *Deps
	styles Styles

	user textinput.Model
	pass textinput.Model

	busy   bool
	errMsg string
	notice string
}

func NewLoginModel(deps *Deps, st Styles) LoginModel {
	user := textinput.New()
	user.Placeholder = "usuário"
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "senha"
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword

	return LoginModel{deps: deps, styles: st, user: user, pass: pass}
}

func (m *LoginModel) enter() tea.Cmd {
	m.busy = false
	m.errMsg = ""
	m.user.SetValue("")
	m.pass.SetValue("")
	m.pass.Blur()
	return m.user.Focus()
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			if m.user.Focused() {
				m.user.Blur()
				return m, m.pass.Focus()
			}
			m.pass.Blur()
			return m, m.user.Focus()

		case "enter":
			if m.busy {
				return m, nil
			}
			return m.submit()
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = loginErrorMessage(msg.err)
			return m, nil
		}
		return m, navTo(pageHome)
	}

	var cmd tea.Cmd
	if m.user.Focused() {
		m.user, cmd = m.user.Update(msg)
	} else {
		m.pass, cmd = m.pass.Update(msg)
	}
	return m, cmd
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	user := strings.TrimSpace(m.user.Value())
	pass := m.pass.Value()

	// Validación local: sin campos no hay request.
	if user == "" || pass == "" {
		m.errMsg = "Preencha todos os campos"
		return m, nil
	}

	m.busy = true
	m.errMsg = ""
	m.notice = ""
	sess := m.deps.Sess
	return m, func() tea.Msg {
		return loginResultMsg{err: sess.Login(context.Background(), user, pass)}
	}
}

// loginErrorMessage es el único lugar donde la UI distingue el tipo de
// falla del login: 401 es credencial mala, el resto es conexión.
func loginErrorMessage(err error) string {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == 401 {
		return "Usuário ou senha inválidos"
	}
	return "Erro ao conectar. Tente novamente."
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Pet Manager Admin"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Title.Render("Login"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(m.styles.Dim.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Label.Render("Usuário: "))
	b.WriteString(m.user.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Senha:   "))
	b.WriteString(m.pass.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.styles.Dim.Render("Entrando..."))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab: alternar campo • enter: entrar • ctrl+c: sair"))
	return b.String()
}
