// Package vault implements the credential vault core: user lifecycle
// (create, authenticate, change master password, delete) and credential-entry
// lifecycle (add, list, update, delete).
//
// Plaintext secrets never cross the credential-store boundary; every secret
// is sealed by the cipher under the owner's key before it is persisted.
package vault

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"passkeeper/internal/common"
	"passkeeper/internal/cryptox"
	"passkeeper/internal/dbx"
	"passkeeper/internal/keystore"
	"passkeeper/internal/logging"
	"passkeeper/internal/models"
	"passkeeper/internal/repositories/repomanager"
)

// usernameRules keeps usernames printable and free of path separators, so a
// username is always safe to use as a key-file name.
const usernameRules = "required,max=128,printascii,excludesall=0x2F0x5C"

// EntryView is one decrypted credential entry as returned by ListEntries.
// If the stored ciphertext could not be decrypted, Err is set and Secret is
// empty; the rest of the listing is unaffected.
type EntryView struct {
	Service string
	Login   string
	Secret  string
	Err     error
}

// Service is the vault core. It orchestrates the key store, the cipher and
// the credential store, and owns every invariant that keeps a user's vault
// consistent.
type Service struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	keys     keystore.KeyStore
	cipher   cryptox.Cipher
	log      logging.Logger
	validate *validator.Validate
}

// New creates a vault core service over the given collaborators.
func New(db *sql.DB, rm repomanager.RepositoryManager, keys keystore.KeyStore, cipher cryptox.Cipher, log logging.Logger) *Service {
	return &Service{
		db:       db,
		rm:       rm,
		keys:     keys,
		cipher:   cipher,
		log:      log.With("component", "vault"),
		validate: validator.New(),
	}
}

// getUser maps the repository's ErrNotFound to ErrUserNotFound so callers of
// the vault core see one consistent sentinel.
func (s *Service) getUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.rm.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser registers a new vault identity: it mints a fresh symmetric key,
// seals the master password under it, persists the identity and then the key.
// If the key cannot be stored, the just-created identity is removed again so
// no identity exists without a key.
func (s *Service) CreateUser(ctx context.Context, username, masterPassword string) error {
	if err := s.validate.Var(username, usernameRules); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidUsername, username)
	}
	if !ValidateStrength(masterPassword) {
		return common.ErrWeakPassword
	}

	_, err := s.getUser(ctx, username)
	if err == nil {
		return common.ErrUserAlreadyExists
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return err
	}

	key, err := s.keys.Generate()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	sealed, err := s.cipher.Encrypt(key, []byte(masterPassword))
	if err != nil {
		return err
	}

	user := &models.User{Username: username, MasterSecret: sealed}
	if err := s.rm.Users(s.db).Create(ctx, user); err != nil {
		return err
	}

	if err := s.keys.Store(ctx, username, key); err != nil {
		// Roll the identity back so signup can be retried cleanly.
		if delErr := s.rm.Users(s.db).Delete(ctx, username); delErr != nil {
			s.log.Error(ctx, "rollback after key store failure failed",
				"username", username, "error", delErr)
		}
		return err
	}

	s.log.Info(ctx, "user created", "username", username)
	return nil
}

// Authenticate checks a candidate master password and fails closed: an
// unknown user, a missing key and a failed decryption all collapse to false,
// so no failure mode is distinguishable from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) bool {
	user, err := s.getUser(ctx, username)
	if err != nil {
		return false
	}

	key, err := s.keys.Load(ctx, username)
	if err != nil {
		return false
	}
	defer common.WipeByteArray(key)

	plain, err := s.cipher.Decrypt(key, user.MasterSecret)
	if err != nil {
		return false
	}
	defer common.WipeByteArray(plain)

	return subtle.ConstantTimeCompare(plain, []byte(password)) == 1
}

// ChangeMasterPassword replaces the stored master secret with the new
// password sealed under the user's existing key. The key is never rotated.
func (s *Service) ChangeMasterPassword(ctx context.Context, username, newPassword string) error {
	if !ValidateStrength(newPassword) {
		return common.ErrWeakPassword
	}

	if _, err := s.getUser(ctx, username); err != nil {
		return err
	}

	key, err := s.keys.Load(ctx, username)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	sealed, err := s.cipher.Encrypt(key, []byte(newPassword))
	if err != nil {
		return err
	}

	if err := s.rm.Users(s.db).UpdateMasterSecret(ctx, username, sealed); err != nil {
		return err
	}

	s.log.Info(ctx, "master password changed", "username", username)
	return nil
}

// DeleteUser removes a vault completely: every owned entry and the identity
// go in one transaction, and the symmetric key is deleted after the commit.
// A crash mid-way can therefore leave an orphaned key, never a dangling
// reference.
func (s *Service) DeleteUser(ctx context.Context, username string) error {
	if _, err := s.getUser(ctx, username); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Entries(tx).DeleteAllByOwner(ctx, username); err != nil {
			return err
		}
		return s.rm.Users(tx).Delete(ctx, username)
	})
	if err != nil {
		return err
	}

	if err := s.keys.Delete(ctx, username); err != nil {
		return err
	}

	s.log.Info(ctx, "user deleted", "username", username)
	return nil
}

// AddEntry seals the secret under the owner's key and inserts a new
// credential entry. Duplicate service names are allowed; callers wanting
// uniqueness can probe with EntryExists first.
func (s *Service) AddEntry(ctx context.Context, username, service, login, secret string) error {
	if _, err := s.getUser(ctx, username); err != nil {
		return err
	}

	key, err := s.keys.Load(ctx, username)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	sealed, err := s.cipher.Encrypt(key, []byte(secret))
	if err != nil {
		return err
	}

	entry := &models.Entry{
		ID:      uuid.NewString(),
		Owner:   username,
		Service: service,
		Login:   login,
		Secret:  sealed,
	}
	return s.rm.Entries(s.db).Insert(ctx, entry)
}

// EntryExists reports whether the user already has an entry for the service.
func (s *Service) EntryExists(ctx context.Context, username, service string) (bool, error) {
	_, err := s.rm.Entries(s.db).FindFirst(ctx, username, service)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListEntries returns every credential entry owned by the user with its
// secret decrypted. An entry whose ciphertext fails to decrypt is reported
// in place with Err set instead of aborting the rest of the listing.
func (s *Service) ListEntries(ctx context.Context, username string) ([]EntryView, error) {
	if _, err := s.getUser(ctx, username); err != nil {
		return nil, err
	}

	key, err := s.keys.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	stored, err := s.rm.Entries(s.db).GetAllByOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(stored))
	for _, e := range stored {
		view := EntryView{Service: e.Service, Login: e.Login}
		plain, err := s.cipher.Decrypt(key, e.Secret)
		if err != nil {
			s.log.Warn(ctx, "stored entry failed to decrypt",
				"username", username, "service", e.Service, "error", err)
			view.Err = err
		} else {
			view.Secret = string(plain)
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateEntry replaces login and secret of the first entry matching the
// service name. It reports false when the user has no such entry, and fails
// with ErrUserNotFound when the user itself is unknown.
func (s *Service) UpdateEntry(ctx context.Context, username, service, newLogin, newSecret string) (bool, error) {
	if _, err := s.getUser(ctx, username); err != nil {
		return false, err
	}

	entry, err := s.rm.Entries(s.db).FindFirst(ctx, username, service)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	key, err := s.keys.Load(ctx, username)
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(key)

	sealed, err := s.cipher.Encrypt(key, []byte(newSecret))
	if err != nil {
		return false, err
	}

	if err := s.rm.Entries(s.db).Update(ctx, entry.ID, newLogin, sealed); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteEntry removes the first entry matching the service name and reports
// whether anything was deleted.
func (s *Service) DeleteEntry(ctx context.Context, username, service string) (bool, error) {
	entry, err := s.rm.Entries(s.db).FindFirst(ctx, username, service)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.rm.Entries(s.db).DeleteByID(ctx, entry.ID); err != nil {
		return false, err
	}
	return true, nil
}
