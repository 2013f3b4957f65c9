package vault

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
	"passkeeper/internal/keystore"
	"passkeeper/internal/logging"
	"passkeeper/internal/repositories/repomanager"
)

func newTestService(t *testing.T) (*Service, *sql.DB, keystore.KeyStore) {
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
	return New(db, rm, keys, cipher, log), db, keys
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))

	require.True(t, s.Authenticate(ctx, "alice", "Abcdef1!"))
	require.False(t, s.Authenticate(ctx, "alice", "wrong"))
	require.False(t, s.Authenticate(ctx, "ghost", "anything"))
}

func TestCreateUserDuplicate(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))

	err := s.CreateUser(ctx, "alice", "Other0th3r!")
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)

	// First registration is untouched.
	require.True(t, s.Authenticate(ctx, "alice", "Abcdef1!"))
	require.False(t, s.Authenticate(ctx, "alice", "Other0th3r!"))
}

func TestCreateUserWeakPassword(t *testing.T) {
	s, _, _ := newTestService(t)

	err := s.CreateUser(context.Background(), "alice", "weak")
	require.ErrorIs(t, err, common.ErrWeakPassword)
}

func TestCreateUserInvalidUsername(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"", "a/b", `a\b`, "tab\tname"} {
		err := s.CreateUser(ctx, name, "Abcdef1!")
		require.ErrorIs(t, err, common.ErrInvalidUsername, "username %q", name)
	}
}

func TestChangeMasterPassword(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))

	require.NoError(t, s.ChangeMasterPassword(ctx, "alice", "NewPass1!"))

	require.False(t, s.Authenticate(ctx, "alice", "Abcdef1!"))
	require.True(t, s.Authenticate(ctx, "alice", "NewPass1!"))

	// The key is not rotated, so existing entries still decrypt.
	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NoError(t, views[0].Err)
	require.Equal(t, "Secr3t!", views[0].Secret)
}

func TestChangeMasterPasswordErrors(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))

	err := s.ChangeMasterPassword(ctx, "ghost", "NewPass1!")
	require.ErrorIs(t, err, common.ErrUserNotFound)

	err = s.ChangeMasterPassword(ctx, "alice", "weak")
	require.ErrorIs(t, err, common.ErrWeakPassword)
}

func TestAddAndListEntries(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "github", views[0].Service)
	require.Equal(t, "alice@x.com", views[0].Login)
	require.Equal(t, "Secr3t!", views[0].Secret)
	require.NoError(t, views[0].Err)
}

func TestAddEntryUnknownUser(t *testing.T) {
	s, _, _ := newTestService(t)

	err := s.AddEntry(context.Background(), "ghost", "github", "x", "y")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestListEntriesUnknownUser(t *testing.T) {
	s, _, _ := newTestService(t)

	_, err := s.ListEntries(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestListEntriesEmpty(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestDuplicateServiceEntries(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))

	exists, err := s.EntryExists(ctx, "alice", "github")
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, s.AddEntry(ctx, "alice", "github", "work", "One1!pass"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "personal", "Two2!pass"))

	exists, err = s.EntryExists(ctx, "alice", "github")
	require.NoError(t, err)
	require.True(t, exists)

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)
}

func TestUpdateEntry(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))

	updated, err := s.UpdateEntry(ctx, "alice", "github", "alice2@x.com", "NewSecr3t!")
	require.NoError(t, err)
	require.True(t, updated)

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "alice2@x.com", views[0].Login)
	require.Equal(t, "NewSecr3t!", views[0].Secret)

	updated, err = s.UpdateEntry(ctx, "alice", "nonexistent", "x", "y")
	require.NoError(t, err)
	require.False(t, updated)

	_, err = s.UpdateEntry(ctx, "ghost", "github", "x", "y")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestDeleteEntry(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))

	deleted, err := s.DeleteEntry(ctx, "alice", "github")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = s.DeleteEntry(ctx, "alice", "github")
	require.NoError(t, err)
	require.False(t, deleted)

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestListEntriesCorruptedCiphertext(t *testing.T) {
	s, db, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "bank", "alice", "M0ney$afe"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))

	// Corrupt one stored ciphertext behind the vault's back.
	_, err := db.Exec(`UPDATE entries SET encrypted_secret = ? WHERE service_name = ?`,
		[]byte("garbage"), "bank")
	require.NoError(t, err)

	views, err := s.ListEntries(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.Equal(t, "bank", views[0].Service)
	require.ErrorIs(t, views[0].Err, common.ErrDecryption)
	require.Empty(t, views[0].Secret)

	// The healthy entry is unaffected.
	require.Equal(t, "github", views[1].Service)
	require.NoError(t, views[1].Err)
	require.Equal(t, "Secr3t!", views[1].Secret)
}

func TestDeleteUser(t *testing.T) {
	s, db, keys := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))
	require.NoError(t, s.AddEntry(ctx, "alice", "bank", "alice", "M0ney$afe"))

	require.NoError(t, s.DeleteUser(ctx, "alice"))

	require.False(t, s.Authenticate(ctx, "alice", "Abcdef1!"))

	_, err := s.ListEntries(ctx, "alice")
	require.ErrorIs(t, err, common.ErrUserNotFound)

	_, err = keys.Load(ctx, "alice")
	require.ErrorIs(t, err, common.ErrKeyNotFound)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count))
	require.Zero(t, count)
}

func TestDeleteUserUnknown(t *testing.T) {
	s, _, _ := newTestService(t)

	err := s.DeleteUser(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestDeleteUserDoesNotTouchOthers(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, s.CreateUser(ctx, "bob", "Bcdefg2@"))
	require.NoError(t, s.AddEntry(ctx, "alice", "github", "alice@x.com", "Secr3t!"))
	require.NoError(t, s.AddEntry(ctx, "bob", "github", "bob@x.com", "B0bsecret!"))

	require.NoError(t, s.DeleteUser(ctx, "alice"))

	require.True(t, s.Authenticate(ctx, "bob", "Bcdefg2@"))
	views, err := s.ListEntries(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "B0bsecret!", views[0].Secret)
}

func TestAuthenticateMissingKey(t *testing.T) {
	s, _, keys := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, "alice", "Abcdef1!"))
	require.NoError(t, keys.Delete(ctx, "alice"))

	// Fails closed, indistinguishable from a wrong password.
	require.False(t, s.Authenticate(ctx, "alice", "Abcdef1!"))
}
