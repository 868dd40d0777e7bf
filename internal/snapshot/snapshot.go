// Package snapshot serializes the whole in-memory scheduling state to
// a single versioned blob and restores it atomically. The caller must
// hold exclusive access to the state for the duration of a capture or
// restore so no torn state is ever written or installed.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/repository"
)

// Version identifies the envelope layout. A mismatch fails the whole
// load.
const Version = 1

// Envelope is the serialized form of the complete state. The VIP flags
// are derived data and are not stored; they are recomputed on restore.
type Envelope struct {
	Version   int                 `json:"version"`
	Rooms     []model.Room        `json:"rooms"`
	Events    []model.Event       `json:"events"`
	Attending map[string][]string `json:"attending"`
	Hosting   map[string][]string `json:"hosting"`
	Users     []UserRecord        `json:"users"`
}

// UserRecord is one directory entry.
type UserRecord struct {
	Username string         `json:"username"`
	Type     model.UserType `json:"type"`
}

// Encode captures the store into a snapshot blob.
func Encode(store *repository.Store) ([]byte, error) {
	env := Envelope{
		Version:   Version,
		Rooms:     store.Rooms.All(),
		Attending: store.Ledger.ExportAttending(),
		Hosting:   store.Ledger.ExportHosting(),
	}
	for _, ev := range store.Events.All() {
		env.Events = append(env.Events, *ev)
	}
	for _, username := range store.Users.Usernames() {
		env.Users = append(env.Users, UserRecord{
			Username: username,
			Type:     store.Users.TypeOf(username),
		})
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode rebuilds a complete store from a snapshot blob. Any decoding
// failure rejects the whole snapshot; a partially restored state is
// never returned.
func Decode(data []byte) (*repository.Store, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("decode snapshot: unsupported version %d", env.Version)
	}

	store := repository.NewStore()
	for _, room := range env.Rooms {
		store.Rooms.Add(room)
	}
	for _, user := range env.Users {
		store.Users.Add(user.Username, user.Type)
	}
	for i := range env.Events {
		ev := env.Events[i]
		store.Events.Add(&ev)
	}
	for user, titles := range env.Attending {
		for _, title := range titles {
			store.Ledger.Enroll(user, title)
		}
	}
	for speaker, titles := range env.Hosting {
		for _, title := range titles {
			store.Ledger.AddHosting(speaker, title)
		}
	}
	return store, nil
}
