package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"passkeeper/internal/cryptox"
	"passkeeper/internal/keystore"
	"passkeeper/internal/logging"
	"passkeeper/internal/repositories/repomanager"
	"passkeeper/internal/vault"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	rm, err := repomanager.New(repomanager.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	keys, err := keystore.NewFileKeyStore(t.TempDir())
	require.NoError(t, err)

	cipher, err := cryptox.New(cryptox.AlgorithmAESGCM)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	v := vault.New(db, rm, keys, cipher, log)

	var out bytes.Buffer
	return &App{vault: v, reader: rdr(input), out: &out}, &out
}

// stubPasswords makes readPassword return the given values in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(passwords) {
			return nil, io.EOF
		}
		pw := passwords[i]
		i++
		return []byte(pw), nil
	}
}

func TestRunFullSession(t *testing.T) {
	input := "register\n" + "alice\n" +
		"login\n" + "alice\n" +
		"add\n" + "github\n" + "alice@x.com\n" +
		"list\n" +
		"logout\n" +
		"exit\n"

	// register (password + confirmation), login, add secret
	stubPasswords(t, "Abcdef1!", "Abcdef1!", "Abcdef1!", "Secr3t!")

	app, out := newTestApp(t, input)
	app.Run(context.Background())

	s := out.String()
	require.Contains(t, s, "User created")
	require.Contains(t, s, "Welcome, alice")
	require.Contains(t, s, "Entry added")
	require.Contains(t, s, "github")
	require.Contains(t, s, "alice@x.com")
	require.Contains(t, s, "Secr3t!")
	require.Contains(t, s, "Logged out")
	require.Contains(t, s, "Bye!")
}

func TestRunPasswordMismatch(t *testing.T) {
	input := "register\n" + "alice\n" + "exit\n"
	stubPasswords(t, "Abcdef1!", "Different1!")

	app, out := newTestApp(t, input)
	app.Run(context.Background())

	require.Contains(t, out.String(), "passwords do not match")
}

func TestRunRequiresLogin(t *testing.T) {
	app, out := newTestApp(t, "list\nexit\n")
	app.Run(context.Background())

	require.Contains(t, out.String(), "Please login first")
}

func TestRunFailedLogin(t *testing.T) {
	input := "login\n" + "ghost\n" + "exit\n"
	stubPasswords(t, "Whatever1!")

	app, out := newTestApp(t, input)
	app.Run(context.Background())

	require.Contains(t, out.String(), "Authentication failed")
}

func TestRunDeleteUser(t *testing.T) {
	input := "register\n" + "alice\n" +
		"login\n" + "alice\n" +
		"deluser\n" + "y\n" +
		"exit\n"
	stubPasswords(t, "Abcdef1!", "Abcdef1!", "Abcdef1!")

	app, out := newTestApp(t, input)
	app.Run(context.Background())

	s := out.String()
	require.Contains(t, s, "Vault deleted")
	require.False(t, app.isLoggedIn())
}
