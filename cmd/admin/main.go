package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pet-manager-admin/cmd/admin/ui"
	"pet-manager-admin/internal/adapters/petmanager"
	"pet-manager-admin/internal/config"
	"pet-manager-admin/internal/domain/pets"
	"pet-manager-admin/internal/domain/session"
	"pet-manager-admin/internal/domain/tutors"
	"pet-manager-admin/internal/platform/httpclient"
	"pet-manager-admin/internal/platform/logger"
	"pet-manager-admin/internal/platform/tokenstore"
)

var configPath string

// rootCmd sin subcomando lanza la TUI completa.
var rootCmd = &cobra.Command{
	Use:   "pet-admin",
	Short: "Cliente de administración del Pet Manager",
	Long: `pet-admin administra pets y tutores contra el Pet Manager API.

Sin argumentos abre la interfaz interactiva. Los subcomandos login,
logout y status sirven para scripting y diagnóstico rápido.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "ruta del archivo de configuración")
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env arma el grafo completo de dependencias: config, logger a archivo
// (stdout es de la TUI), token store, wrapper HTTP y servicios.
type env struct {
	cfg    config.Config
	log    logger.Logger
	store  *tokenstore.Store
	client *httpclient.Client
	sess   *session.Session
	pets   *petmanager.Pets
	tutors *petmanager.Tutors
	health *petmanager.Health
}

func buildEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		logPath = filepath.Join(dir, "admin.log")
	}
	log, err := logger.NewFile(logPath, logger.ParseLevel(cfg.Log.Level), logger.ParseFormat(cfg.Log.Format))
	if err != nil {
		return nil, err
	}

	tokenPath, err := tokenstore.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := tokenstore.New(tokenPath)
	if err != nil {
		return nil, err
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Tokens:  store,
	})
	if err != nil {
		return nil, err
	}

	petsSvc := petmanager.NewPets(client)
	tutorsSvc := petmanager.NewTutors(client)
	authSvc := petmanager.NewAuth(client)

	return &env{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: client,
		sess:   session.New(store, authSvc),
		pets:   petsSvc,
		tutors: tutorsSvc,
		health: petmanager.NewHealth(petsSvc, cfg.BaseURL),
	}, nil
}

func runTUI() error {
	e, err := buildEnv()
	if err != nil {
		return err
	}

	deps := &ui.Deps{
		Cfg:    e.cfg,
		Log:    e.log,
		Sess:   e.sess,
		Pets:   pets.NewFacade(e.pets, e.cfg.PageSize, e.log),
		Tutors: tutors.NewFacade(e.tutors, e.cfg.PageSize, e.log),
		Health: e.health,
		Prober: ui.NewProber(e.cfg.Timeout),
	}

	p := tea.NewProgram(ui.NewApp(deps), tea.WithAltScreen())

	// La expiración puede dispararse desde cualquier request en curso;
	// el programa la recibe como mensaje y vuelve al login.
	e.client.SetOnSessionExpired(func() {
		p.Send(ui.SessionExpiredMsg{})
	})

	e.log.Info("iniciando TUI", map[string]any{"base_url": e.cfg.BaseURL})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
