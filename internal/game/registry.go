// internal/game/registry.go
package game

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// codeAlphabet omits 0/O/1/I to keep codes human-typeable.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 5

	// DefaultSweepInterval and DefaultIdleMaxAge drive the periodic eviction
	// of abandoned rooms.
	DefaultSweepInterval = 60 * time.Second
	DefaultIdleMaxAge    = 30 * time.Minute
)

// Registry owns the mapping from room code to Room. It is an explicit object
// with injected lifetime, not a process-wide singleton, so tests can run
// independent instances.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rng   *rand.Rand
}

// NewRegistry returns an empty in-memory room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom generates a collision-checked code, stores a new room under it,
// and returns the room.
func (reg *Registry) CreateRoom() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	var code string
	for {
		code = reg.generateCode()
		if _, exists := reg.rooms[code]; !exists {
			break
		}
	}
	room := NewRoom(code)
	reg.rooms[code] = room
	return room
}

// generateCode builds a short alphanumeric room code. Assumes reg.mu is held.
func (reg *Registry) generateCode() string {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[reg.rng.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// Lookup returns the room for a code, or ErrRoomNotFound. Codes are
// case-insensitive.
func (reg *Registry) Lookup(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Delete removes a room from the registry. Idempotent.
func (reg *Registry) Delete(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, strings.ToUpper(code))
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// SweepIdle detaches rooms older than maxAge that never completed a game and
// returns them. Detaching under the registry lock cannot corrupt an in-flight
// transition: a dispatch already holding the room's own lock finishes safely
// on the detached object, and later intents see ErrRoomNotFound.
func (reg *Registry) SweepIdle(maxAge time.Duration) []*Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	var evicted []*Room
	for code, room := range reg.rooms {
		if !room.CreatedAt.Before(cutoff) {
			continue
		}
		// Completed is written under the room lock; take it briefly. Room
		// operations never acquire the registry lock, so ordering is safe.
		room.Mu.Lock()
		abandoned := !room.Completed
		room.Mu.Unlock()
		if abandoned {
			delete(reg.rooms, code)
			evicted = append(evicted, room)
		}
	}
	return evicted
}
