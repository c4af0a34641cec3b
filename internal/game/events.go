// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/duelyard/duelyard/internal/models"
)

// EventType is an enum-like type for outbound messages.
type EventType string

const (
	EventRoomCreated          EventType = "room_created"
	EventPlayerJoined         EventType = "player_joined"
	EventGameStarted          EventType = "game_started"
	EventCardPlayed           EventType = "card_played"
	EventSpecialMoveApplied   EventType = "special_move_applied"
	EventGameStateUpdated     EventType = "game_state_updated"
	EventGameOver             EventType = "game_over"
	EventRestartRequested     EventType = "restart_requested"
	EventOpponentDisconnected EventType = "opponent_disconnected"
	EventError                EventType = "error"
	EventPong                 EventType = "pong"
)

// PlayerView is the broadcast snapshot of one player's state. Decks are
// public in this game, so the full deck rides along.
type PlayerView struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Avatar            string             `json:"avatar"`
	Health            int                `json:"health"`
	Deck              []models.Card      `json:"deck"`
	SpecialMove       models.SpecialMove `json:"specialMove"`
	SpecialMoveUsed   bool               `json:"specialMoveUsed"`
	ShieldActive      bool               `json:"shieldActive"`
	NextAttackDoubled bool               `json:"nextAttackDoubled"`
	ExtraTurns        int                `json:"extraTurns"`
	Ready             bool               `json:"ready"`
	IsHost            bool               `json:"isHost"`
}

// viewOf snapshots a player for broadcast.
func viewOf(p *models.Player) PlayerView {
	return PlayerView{
		ID:                p.ID,
		Name:              p.Name,
		Avatar:            p.Avatar,
		Health:            p.Health,
		Deck:              models.CloneDeck(p.Deck),
		SpecialMove:       p.SpecialMove,
		SpecialMoveUsed:   p.SpecialMoveUsed,
		ShieldActive:      p.ShieldActive,
		NextAttackDoubled: p.NextAttackDoubled,
		ExtraTurns:        p.ExtraTurns,
		Ready:             p.Ready,
		IsHost:            p.IsHost,
	}
}

// Event is one outbound message, delivered either to every socket subscribed
// to a room or to a single player. Fields are populated per event type.
type Event struct {
	Type            EventType    `json:"type"`
	RoomCode        string       `json:"roomCode,omitempty"`
	IsHost          bool         `json:"isHost,omitempty"`
	Players         []PlayerView `json:"players,omitempty"`
	CurrentTurn     *uuid.UUID   `json:"currentTurn,omitempty"`
	PlayerID        *uuid.UUID   `json:"playerId,omitempty"`
	CardIndex       *int         `json:"cardIndex,omitempty"`
	Card            *models.Card `json:"card,omitempty"`
	ReplacementCard *models.Card `json:"replacementCard,omitempty"`
	Message         string       `json:"message,omitempty"`
	ExtraTurn       bool         `json:"extraTurn,omitempty"`
	DoubleDamage    bool         `json:"doubleDamage,omitempty"`

	// Winner is set on game_over; nil with Draw=true means neither player won.
	Winner *uuid.UUID `json:"winner,omitempty"`
	Draw   bool       `json:"draw,omitempty"`
}
