package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pet-manager-admin/internal/config"
	"pet-manager-admin/internal/domain/pets"
	"pet-manager-admin/internal/domain/session"
	"pet-manager-admin/internal/domain/tutors"
	"pet-manager-admin/internal/platform/logger"
	"pet-manager-admin/internal/ports/petapi"
)

// Deps es todo lo que las páginas consumen. Las páginas nunca tocan
// el wrapper HTTP directo: siempre fachadas y servicios.
type Deps struct {
	Cfg    config.Config
	Log    logger.Logger
	Sess   *session.Session
	Pets   *pets.Facade
	Tutors *tutors.Facade
	Health petapi.HealthService
	Prober Prober
}

type page int

const (
	pageLogin page = iota
	pageHome
	pagePetDetail
	pagePetForm
	pageTutors
	pageTutorDetail
	pageTutorForm
	pageStatus
)

// navMsg cambia de página. id se usa para detalle/edición.
type navMsg struct {
	to page
	id int64
}

func navTo(to page) tea.Cmd {
	return func() tea.Msg { return navMsg{to: to} }
}

func navToID(to page, id int64) tea.Cmd {
	return func() tea.Msg { return navMsg{to: to, id: id} }
}

// SessionExpiredMsg llega desde el wrapper HTTP cuando el refresh
// falló; equivale al "mandar al login" de la versión web.
type SessionExpiredMsg struct{}

type App struct {
	deps   *Deps
	styles Styles
	page   page

	login       LoginModel
	home        HomeModel
	petDetail   PetDetailModel
	petForm     PetFormModel
	tutorsList  TutorsModel
	tutorDetail TutorDetailModel
	tutorForm   TutorFormModel
	status      StatusModel

	width  int
	height int
}

func NewApp(deps *Deps) App {
	st := NewStyles()

	a := App{
		deps:        deps,
		styles:      st,
		login:       NewLoginModel(deps, st),
		home:        NewHomeModel(deps, st),
		petDetail:   NewPetDetailModel(deps, st),
		petForm:     NewPetFormModel(deps, st),
		tutorsList:  NewTutorsModel(deps, st),
		tutorDetail: NewTutorDetailModel(deps, st),
		tutorForm:   NewTutorFormModel(deps, st),
		status:      NewStatusModel(deps, st),
	}

	// El chequeo de sesión es sincrónico: para cuando la primera vista
	// se renderiza, ya se sabe si hay credencial guardada.
	deps.Sess.Init()
	if deps.Sess.Authenticated() {
		a.page = pageHome
	} else {
		a.page = pageLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	if a.page == pageHome {
		return a.home.enter(0, "")
	}
	return a.login.enter()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case SessionExpiredMsg:
		a.deps.Sess.Expire()
		a.page = pageLogin
		a.login.notice = "Sessão expirada. Entre novamente."
		return a, a.login.enter()

	case navMsg:
		return a.navigate(msg)
	}

	return a.route(msg)
}

func (a App) navigate(msg navMsg) (tea.Model, tea.Cmd) {
	a.page = msg.to
	switch msg.to {
	case pageLogin:
		return a, a.login.enter()
	case pageHome:
		st := a.deps.Pets.State()
		return a, a.home.enter(st.Pagination.Page, a.home.searchTerm())
	case pagePetDetail:
		return a, a.petDetail.enter(msg.id)
	case pagePetForm:
		return a, a.petForm.enter(msg.id)
	case pageTutors:
		st := a.deps.Tutors.State()
		return a, a.tutorsList.enter(st.Pagination.Page)
	case pageTutorDetail:
		return a, a.tutorDetail.enter(msg.id)
	case pageTutorForm:
		return a, a.tutorForm.enter(msg.id)
	case pageStatus:
		return a, a.status.enter()
	}
	return a, nil
}

func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case pageLogin:
		a.login, cmd = a.login.Update(msg)
	case pageHome:
		a.home, cmd = a.home.Update(msg)
	case pagePetDetail:
		a.petDetail, cmd = a.petDetail.Update(msg)
	case pagePetForm:
		a.petForm, cmd = a.petForm.Update(msg)
	case pageTutors:
		a.tutorsList, cmd = a.tutorsList.Update(msg)
	case pageTutorDetail:
		a.tutorDetail, cmd = a.tutorDetail.Update(msg)
	case pageTutorForm:
		a.tutorForm, cmd = a.tutorForm.Update(msg)
	case pageStatus:
		a.status, cmd = a.status.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.page {
	case pageLogin:
		return a.login.View()
	case pageHome:
		return a.home.View()
	case pagePetDetail:
		return a.petDetail.View()
	case pagePetForm:
		return a.petForm.View()
	case pageTutors:
		return a.tutorsList.View()
	case pageTutorDetail:
		return a.tutorDetail.View()
	case pageTutorForm:
		return a.tutorForm.View()
	case pageStatus:
		return a.status.View()
	}
	return ""
}
