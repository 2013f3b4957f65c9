// Package cli implements the interactive surface of the vault: a small REPL
// with a registration/login stage and an authenticated session stage. All
// vault semantics live in the vault package; this layer only collects input
// and renders results.
package cli

import (
	"bufio"
	"io"
	"os"

	"passkeeper/internal/vault"
)

type App struct {
	vault    *vault.Service
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(v *vault.Service) *App {
	return &App{vault: v, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}
