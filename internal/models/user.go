// Package models defines the records persisted by the credential store.
package models

// User is one vault identity. The master password is stored only in
// encrypted form, sealed under the user's symmetric key.
type User struct {
	Username     string
	MasterSecret []byte
}
