// internal/game/room.go
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duelyard/duelyard/internal/models"
)

// Room is the unit of isolation: one short code, up to two players, at most
// one active GameState. No data crosses room boundaries. All mutations to a
// room are serialized through Mu; the methods below assume the lock is held
// by the caller.
type Room struct {
	Code      string
	Players   []*models.Player
	GameState *GameState
	CreatedAt time.Time

	// Completed flips once any game in this room reaches game-over; the idle
	// sweep skips completed rooms.
	Completed bool

	// closed flips on teardown so a departing player is notified at most once.
	closed bool

	Mu  sync.Mutex
	rng *rand.Rand
}

// NewRoom builds an empty room under the given code.
func NewRoom(code string) *Room {
	return &Room{
		Code:      code,
		CreatedAt: time.Now(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// AddPlayer validates the payload and appends a new player. The same
// validation runs for the creator and joiner paths.
func (r *Room) AddPlayer(id uuid.UUID, data *models.PlayerData, isHost bool) (*models.Player, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlayerData, err)
	}
	if len(r.Players) >= 2 {
		return nil, ErrRoomFull
	}
	for _, p := range r.Players {
		if p.ID == id {
			return nil, fmt.Errorf("%w: already in room", ErrInvalidPlayerData)
		}
	}
	p := &models.Player{
		ID:          id,
		Name:        data.Name,
		Avatar:      data.Avatar,
		Deck:        models.CloneDeck(data.Deck),
		SpecialMove: data.SpecialMove,
		Health:      models.MaxHealth,
		IsHost:      isHost,
	}
	r.Players = append(r.Players, p)
	return p, nil
}

// PlayerByID returns the room member with the given id, or nil.
func (r *Room) PlayerByID(id uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// OpponentOf returns the other room member, or nil if the room is not full.
func (r *Room) OpponentOf(id uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// SetReady stores the player's deck (with a deep ready-time snapshot) and
// special move, then marks them ready. When both players are ready the room
// transitions to in-game and started is true. Once a GameState exists the
// restart handshake is the only sanctioned reset path, so a re-sent ready is
// rejected rather than rebuilding the game.
func (r *Room) SetReady(playerID uuid.UUID, deck []models.Card, move *models.SpecialMove) (started bool, err error) {
	if r.GameState != nil {
		return false, ErrGameAlreadyStarted
	}
	p := r.PlayerByID(playerID)
	if p == nil {
		return false, ErrPlayerNotFound
	}
	if len(deck) != models.HandSize {
		return false, fmt.Errorf("%w: deck must hold %d cards", ErrInvalidDeck, models.HandSize)
	}
	p.Deck = models.CloneDeck(deck)
	p.DeckInitial = models.CloneDeck(deck)
	if move != nil {
		p.SpecialMove = *move
	}
	p.Ready = true

	if len(r.Players) == 2 && r.Players[0].Ready && r.Players[1].Ready {
		// First-joined player opens the game.
		r.GameState = newGameState(r.Players[0], r.Players[1])
		return true, nil
	}
	return false, nil
}

// RequestRestart marks the player's restart request. Once both players have
// requested, the game is atomically rebuilt: combat fields reset, decks
// restored from their ready-time snapshots, and the opening turn chosen
// uniformly at random.
func (r *Room) RequestRestart(playerID uuid.UUID) (restarted bool, err error) {
	p := r.PlayerByID(playerID)
	if p == nil {
		return false, ErrPlayerNotFound
	}
	if r.GameState == nil {
		return false, ErrGameNotStarted
	}
	p.RestartRequested = true

	if !r.Players[0].RestartRequested || !r.Players[1].RestartRequested {
		return false, nil
	}
	for _, pl := range r.Players {
		pl.Deck = models.CloneDeck(pl.DeckInitial)
		pl.RestartRequested = false
	}
	first := r.rng.Intn(2)
	r.GameState = newGameState(r.Players[first], r.Players[1-first])
	return true, nil
}

// Close marks the room torn down. Returns false if it was already closed, so
// departure notifications fire at most once.
func (r *Room) Close() bool {
	if r.closed {
		return false
	}
	r.closed = true
	return true
}

// Closed reports whether the room has been torn down.
func (r *Room) Closed() bool {
	return r.closed
}

// Views snapshots the current roster in join order.
func (r *Room) Views() []PlayerView {
	out := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, viewOf(p))
	}
	return out
}

// Rand exposes the room-owned random source for card draws. Safe because all
// room operations are serialized under Mu.
func (r *Room) Rand() *rand.Rand {
	return r.rng
}
