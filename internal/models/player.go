// internal/models/player.go
package models

import "github.com/google/uuid"

const (
	// MaxHealth is the health every player starts and resets with. Health is
	// clamped to [0, MaxHealth] after every effect.
	MaxHealth = 100

	// HandSize is the fixed deck length; plays that shrink the deck below it
	// trigger a replacement draw from the catalog.
	HandSize = 5
)

// Player holds one participant's profile and combat state. A Player is owned
// exclusively by its Room; all mutation happens under the room's lock.
type Player struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar"`
	Deck        []Card      `json:"deck"`
	SpecialMove SpecialMove `json:"specialMove"`

	// DeckInitial is the deep snapshot taken at ready-time; a completed
	// restart handshake restores the deck from it.
	DeckInitial []Card `json:"-"`

	Health            int  `json:"health"`
	SpecialMoveUsed   bool `json:"specialMoveUsed"`
	ShieldActive      bool `json:"shieldActive"`
	NextAttackDoubled bool `json:"nextAttackDoubled"`
	ExtraTurns        int  `json:"extraTurns"`

	Ready            bool `json:"ready"`
	RestartRequested bool `json:"restartRequested"`
	IsHost           bool `json:"isHost"`
}

// ResetCombatState restores the player's combat fields to their start-of-game
// values. The deck is left alone; callers decide whether to restore it from
// DeckInitial.
func (p *Player) ResetCombatState() {
	p.Health = MaxHealth
	p.SpecialMoveUsed = false
	p.ShieldActive = false
	p.NextAttackDoubled = false
	p.ExtraTurns = 0
}
