package game

import (
	"log"
	"sync"

	"github.com/scythe504/outsider-backend/internal"
	"github.com/scythe504/outsider-backend/internal/utils"
)

// =============================================================================
// ROOM MANAGEMENT
// =============================================================================

// Registry maps room codes to live rooms. It is the only state shared across rooms.
// Never acquire a room's Mu while holding mu.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
	}
}

func (r *Registry) Get(code string) (*internal.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

func (r *Registry) Exists(code string) bool {
	_, ok := r.Get(code)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// List returns a point-in-time copy of all live rooms.
func (r *Registry) List() []*internal.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]*internal.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// NewCode generates a room code not currently in use
func (r *Registry) NewCode() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for {
		code := utils.GenerateRoomCode()
		if _, exists := r.rooms[code]; !exists {
			return code
		}
	}
}

// getOrCreate retrieves existing room or creates new one
func (r *Registry) getOrCreate(code string) (*internal.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, exists := r.rooms[code]; exists {
		return room, false
	}

	room := internal.NewRoom(code)
	r.rooms[code] = room

	log.Printf("[getOrCreateRoom] Created new room %s (phase=%s)", code, room.Phase)
	return room, true
}

// remove deletes room only if it is still the entry registered under its code.
func (r *Registry) remove(room *internal.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, exists := r.rooms[room.Code]; exists && current == room {
		delete(r.rooms, room.Code)
		log.Printf("[CleanupRoom] Room %s removed from rooms map", room.Code)
	}
}

// destroyRoom handles complete room shutdown. Caller holds room.Mu.
func (c *Coordinator) destroyRoom(room *internal.Room) {
	log.Printf("[CleanupRoom] Cleaning up room %s", room.Code)

	cancelVoteTimer(room)
	room.Destroyed = true
	c.rooms.remove(room)

	room.Members = nil
	room.Order = nil
	room.ReadySet = nil
	room.Votes = nil
	room.VotedSet = nil
	room.Departed = nil
	room.Word = ""
}
