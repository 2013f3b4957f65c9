package models

// Entry is one stored credential: a (service, login, secret) triple scoped
// under its owner. The secret is sealed under the owner's symmetric key
// before it reaches the store. Service names are not unique per owner;
// first-match update/delete act on the entry ID.
type Entry struct {
	ID      string
	Owner   string
	Service string
	Login   string
	Secret  []byte
}
