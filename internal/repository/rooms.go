package repository

import "github.com/techconf/scheduler/internal/model"

// RoomRegistry is the catalog of rooms and their capacities.
type RoomRegistry struct {
	rooms map[string]model.Room
	order []string // insertion order, for stable listings and snapshots
}

// NewRoomRegistry returns an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]model.Room)}
}

// Add inserts a room. The caller must have checked Exists first; adding
// a duplicate id is a programming error.
func (r *RoomRegistry) Add(room model.Room) {
	if _, ok := r.rooms[room.ID]; ok {
		panic("repository: duplicate room id " + room.ID)
	}
	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)
}

// Exists reports whether a room with the given id is registered.
func (r *RoomRegistry) Exists(id string) bool {
	_, ok := r.rooms[id]
	return ok
}

// CapacityOf returns the capacity of the given room, or 0 if the room
// does not exist. Callers for whom 0 is ambiguous must check Exists
// separately.
func (r *RoomRegistry) CapacityOf(id string) int {
	return r.rooms[id].Capacity
}

// All returns the rooms in insertion order.
func (r *RoomRegistry) All() []model.Room {
	out := make([]model.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rooms[id])
	}
	return out
}
