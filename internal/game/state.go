// internal/game/state.go
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/duelyard/duelyard/internal/models"
)

// GameState is the in-progress combat snapshot for one room. It is created
// only by the start-game transition, replaced wholesale by a completed
// restart handshake, and destroyed with the room. While GameOver is false,
// CurrentTurn is always exactly one of the two players' ids.
type GameState struct {
	ID          uuid.UUID
	Players     [2]*models.Player
	CurrentTurn uuid.UUID
	GameOver    bool

	// Winner is set together with GameOver; nil means draw (or game still
	// running).
	Winner *uuid.UUID

	StartedAt time.Time
}

// newGameState builds a fresh state over the two players, resetting their
// combat fields. first takes the opening turn.
func newGameState(first, second *models.Player) *GameState {
	first.ResetCombatState()
	second.ResetCombatState()
	return &GameState{
		ID:          uuid.New(),
		Players:     [2]*models.Player{first, second},
		CurrentTurn: first.ID,
		StartedAt:   time.Now(),
	}
}

// playerByID returns the player with the given id, or ErrPlayerNotFound.
func (gs *GameState) playerByID(id uuid.UUID) (*models.Player, error) {
	for _, p := range gs.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// opponentOf returns the other player in the state.
func (gs *GameState) opponentOf(id uuid.UUID) (*models.Player, error) {
	for _, p := range gs.Players {
		if p.ID != id {
			return p, nil
		}
	}
	return nil, ErrOpponentMissing
}

// Views snapshots both players for broadcast, in seat order.
func (gs *GameState) Views() []PlayerView {
	return []PlayerView{viewOf(gs.Players[0]), viewOf(gs.Players[1])}
}

func clampHealth(p *models.Player) {
	if p.Health < 0 {
		p.Health = 0
	}
	if p.Health > models.MaxHealth {
		p.Health = models.MaxHealth
	}
}

// resolveWinner runs the win check after healths have been clamped. A
// simultaneous double-zero is a draw, never an arbitrary pick.
func resolveWinner(gs *GameState) {
	a, b := gs.Players[0], gs.Players[1]
	if a.Health > 0 && b.Health > 0 {
		return
	}
	gs.GameOver = true
	switch {
	case a.Health > 0:
		id := a.ID
		gs.Winner = &id
	case b.Health > 0:
		id := b.ID
		gs.Winner = &id
	default:
		gs.Winner = nil
	}
}

// advanceTurn transfers the turn to the opponent unless the actor holds an
// extra turn, which is consumed instead.
func advanceTurn(gs *GameState, actor, opponent *models.Player) {
	if actor.ExtraTurns > 0 {
		actor.ExtraTurns--
		return
	}
	gs.CurrentTurn = opponent.ID
}
