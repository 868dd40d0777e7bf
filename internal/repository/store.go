// Package repository holds the in-memory authoritative state for the
// scheduling system: the room registry, the event catalog, the
// enrollment ledger, and the user directory.
//
// The containers in this package are plain data structures and are NOT
// safe for concurrent use on their own. Every operation on them is
// check-then-act ("room free, then insert"), so locking individual
// calls would still race; the service layer holds one lock across each
// whole operation instead.
package repository

// Store bundles the four state containers into the single logical
// shared resource that the service layer guards with one lock.
type Store struct {
	Rooms  *RoomRegistry
	Events *EventCatalog
	Ledger *EnrollmentLedger
	Users  *Directory
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		Rooms:  NewRoomRegistry(),
		Events: NewEventCatalog(),
		Ledger: NewEnrollmentLedger(),
		Users:  NewDirectory(),
	}
}
