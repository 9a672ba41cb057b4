package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/domain/photos"
	"pet-manager-admin/internal/ports/petapi"
)

type petsLoadedMsg struct{}

type petPhotoProbeMsg struct {
	id  int64
	err error
}

type petRefreshedMsg struct {
	id int64
	ok bool
}

// HomeModel es la página principal: listado paginado de pets con
// búsqueda por nombre. Las fotos no se renderizan en la terminal, pero
// se verifica la URL y, si vino rota, se repara la fila una única vez
// con un refresh silencioso antes de marcarla.
type HomeModel struct {
	deps   *Deps
	styles Styles

	search    textinput.Model
	searching bool
	cursor    int

	retries *retryTracker
	broken  map[int64]bool
}

func NewHomeModel(deps *Deps, st Styles) HomeModel {
	search := textinput.New()
	search.Placeholder = "buscar por nome"
	search.CharLimit = 64

	return HomeModel{
		deps:    deps,
		styles:  st,
		search:  search,
		retries: newRetryTracker(),
		broken:  make(map[int64]bool),
	}
}

func (m *HomeModel) searchTerm() string {
	return strings.TrimSpace(m.search.Value())
}

func (m *HomeModel) enter(page int, search string) tea.Cmd {
	m.cursor = 0
	return m.loadCmd(page, search)
}

func (m *HomeModel) loadCmd(page int, search string) tea.Cmd {
	f := m.deps.Pets
	return func() tea.Msg {
		f.List(context.Background(), page, search)
		return petsLoadedMsg{}
	}
}

// probeCmds arma un probe por cada fila con foto resuelta.
func (m *HomeModel) probeCmds() tea.Cmd {
	st := m.deps.Pets.State()
	var cmds []tea.Cmd
	for _, p := range st.Items {
		url := photos.StaticURL(p.Photos)
		if url == "" || m.broken[p.ID] {
			continue
		}
		id := p.ID
		prober := m.deps.Prober
		cmds = append(cmds, func() tea.Msg {
			return petPhotoProbeMsg{id: id, err: prober.Probe(context.Background(), url)}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case petsLoadedMsg:
		m.retries.reset()
		m.broken = make(map[int64]bool)
		return m, m.probeCmds()

	case petPhotoProbeMsg:
		if msg.err == nil {
			return m, nil
		}
		if m.retries.shouldRetry(msg.id) {
			f := m.deps.Pets
			id := msg.id
			return m, func() tea.Msg {
				det := f.RefreshInList(context.Background(), id)
				return petRefreshedMsg{id: id, ok: det != nil}
			}
		}
		m.broken[msg.id] = true
		return m, nil

	case petRefreshedMsg:
		if !msg.ok {
			m.broken[msg.id] = true
			return m, nil
		}
		// re-probar la URL reparada; si vuelve a fallar, queda rota
		st := m.deps.Pets.State()
		for _, p := range st.Items {
			if p.ID != msg.id {
				continue
			}
			url := photos.StaticURL(p.Photos)
			if url == "" {
				m.broken[msg.id] = true
				return m, nil
			}
			id := msg.id
			prober := m.deps.Prober
			return m, func() tea.Msg {
				return petPhotoProbeMsg{id: id, err: prober.Probe(context.Background(), url)}
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m HomeModel) handleKey(msg tea.KeyMsg) (HomeModel, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, m.loadCmd(0, m.searchTerm())
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			return m, m.loadCmd(0, "")
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	st := m.deps.Pets.State()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(st.Items) {
			return m, navToID(pagePetDetail, st.Items[m.cursor].ID)
		}
	case "left", "h":
		if st.Pagination.Page > 0 {
			m.cursor = 0
			return m, m.loadCmd(st.Pagination.Page-1, m.searchTerm())
		}
	case "right", "l":
		if st.Pagination.Page < st.Pagination.TotalPages-1 {
			m.cursor = 0
			return m, m.loadCmd(st.Pagination.Page+1, m.searchTerm())
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "n":
		return m, navToID(pagePetForm, 0)
	case "t":
		return m, navTo(pageTutors)
	case "s":
		return m, navTo(pageStatus)
	case "r":
		return m, m.loadCmd(st.Pagination.Page, m.searchTerm())
	case "L":
		m.deps.Sess.Logout()
		return m, navTo(pageLogin)
	}
	return m, nil
}

func (m HomeModel) View() string {
	st := m.deps.Pets.State()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Pets"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("Busca: "))
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if st.Busy {
		b.WriteString(m.styles.Dim.Render("Carregando..."))
		b.WriteString("\n")
	}
	if st.Err != "" {
		b.WriteString(m.styles.Error.Render(st.Err))
		b.WriteString("\n")
	}

	if len(st.Items) == 0 && !st.Busy {
		b.WriteString(m.styles.Dim.Render("Nenhum pet encontrado."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Label.Render(fmt.Sprintf("%-5s %-20s %-12s %-6s %-15s %s", "ID", "Nome", "Espécie", "Idade", "Raça", "Foto")))
		b.WriteString("\n")
		for i, p := range st.Items {
			row := fmt.Sprintf("%-5d %-20s %-12s %-6d %-15s %s",
				p.ID, clip(p.Name, 20), clip(p.Species, 12), p.Age, clip(p.Breed, 15), m.photoBadge(p))
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render(row))
			} else {
				b.WriteString(m.styles.Value.Render(row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(paginationLine(st.Pagination.Page, st.Pagination.TotalPages, st.Pagination.TotalElements)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("↑/↓: navegar • enter: detalhes • ←/→: página • /: buscar • n: novo pet • t: tutores • s: status • r: recarregar • L: sair"))
	return b.String()
}

func (m HomeModel) photoBadge(p petapi.PetSummary) string {
	if m.broken[p.ID] {
		return "✗"
	}
	if photos.StaticURL(p.Photos) != "" {
		return "✓"
	}
	return "—"
}

func paginationLine(page, totalPages, totalElements int) string {
	if totalPages <= 0 {
		return "Página 0 de 0"
	}

	var parts []string
	for _, p := range PageWindow(page, totalPages) {
		if p == page {
			parts = append(parts, fmt.Sprintf("[%d]", p+1))
		} else {
			parts = append(parts, fmt.Sprintf("%d", p+1))
		}
	}
	return fmt.Sprintf("Página %d de %d (%d itens)  %s", page+1, totalPages, totalElements, strings.Join(parts, " "))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
