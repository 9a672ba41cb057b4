package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd es el mismo probe de la página de status, apto para
// scripting: exit code 0 solo si el API respondió.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Verificar la conexión con el API",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}

	info := e.health.AppInfo()
	fmt.Printf("Versão:   %s\n", info.Version)
	fmt.Printf("Ambiente: %s\n", info.Environment)
	fmt.Printf("API:      %s\n", info.BaseURL)

	h := e.health.CheckAPI(cmd.Context())
	if !h.Online {
		return fmt.Errorf("API offline")
	}
	fmt.Printf("Conexão:  online (%d ms)\n", h.Latency)
	return nil
}
