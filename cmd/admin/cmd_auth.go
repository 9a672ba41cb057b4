package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pet-manager-admin/internal/platform/httpclient"
)

// loginCmd autentica y persiste los tokens para la TUI y el resto de
// los subcomandos.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Autenticar contra el Pet Manager API",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Descartar la sesión guardada",
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}

	fmt.Print("Usuário: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	fmt.Print("Senha: ")
	rawPass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	password := strings.TrimSpace(string(rawPass))

	if username == "" || password == "" {
		return errors.New("Preencha todos os campos")
	}

	if err := e.sess.Login(cmd.Context(), username, password); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 401 {
			return errors.New("Usuário ou senha inválidos")
		}
		return fmt.Errorf("login: %w", err)
	}

	fmt.Println("Sessão iniciada.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	e, err := buildEnv()
	if err != nil {
		return err
	}
	e.sess.Logout()
	fmt.Println("Sessão encerrada.")
	return nil
}
