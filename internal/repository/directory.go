package repository

import "github.com/techconf/scheduler/internal/model"

// Directory is the registry of known identities and their roles. It is
// consulted by the scheduling pipeline to validate speakers and by the
// listing operations to pick the attendee or speaker view. Credential
// storage and login live outside this core.
type Directory struct {
	users map[string]model.UserType
	order []string
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{users: make(map[string]model.UserType)}
}

// Add registers an identity. The caller must have checked Exists first.
func (d *Directory) Add(username string, t model.UserType) {
	if _, ok := d.users[username]; ok {
		panic("repository: duplicate username " + username)
	}
	d.users[username] = t
	d.order = append(d.order, username)
}

// Exists reports whether the identity is registered.
func (d *Directory) Exists(username string) bool {
	_, ok := d.users[username]
	return ok
}

// TypeOf returns the role of the identity, or UserInvalid for an
// unknown name.
func (d *Directory) TypeOf(username string) model.UserType {
	if t, ok := d.users[username]; ok {
		return t
	}
	return model.UserInvalid
}

// Usernames returns all registered identities in registration order.
func (d *Directory) Usernames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
