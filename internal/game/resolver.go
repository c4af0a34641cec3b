// internal/game/resolver.go
package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/duelyard/duelyard/internal/catalog"
	"github.com/duelyard/duelyard/internal/models"
)

// The combat resolver: pure transition functions over a GameState. No I/O
// happens here; the caller holds the room lock and owns broadcasting. On any
// returned error the state is untouched.

// PlayCardResult describes the observable outcome of one play-card action.
type PlayCardResult struct {
	Card        models.Card
	Replacement *models.Card

	// Damage is the net damage dealt to the opponent, after the double and
	// shield flags were applied. Zero for heal and shield cards.
	Damage int

	GameOver bool
	Winner   *uuid.UUID
}

// PlayCard resolves the card at cardIndex for the acting player, mutating gs
// in place. rng supplies the replacement draw.
func PlayCard(gs *GameState, actorID uuid.UUID, cardIndex int, rng *rand.Rand) (*PlayCardResult, error) {
	actor, err := gs.playerByID(actorID)
	if err != nil {
		return nil, err
	}
	if gs.CurrentTurn != actorID {
		return nil, ErrNotYourTurn
	}
	if cardIndex < 0 || cardIndex >= len(actor.Deck) {
		return nil, ErrInvalidCard
	}
	opponent, err := gs.opponentOf(actorID)
	if err != nil {
		return nil, err
	}

	card := actor.Deck[cardIndex]
	res := &PlayCardResult{Card: card}

	switch card.EffectiveKind() {
	case models.KindAttack:
		damage := card.Power
		if actor.NextAttackDoubled {
			damage *= 2
			actor.NextAttackDoubled = false
		}
		if opponent.ShieldActive {
			damage = damage / 2
			if damage < 1 {
				damage = 1
			}
			opponent.ShieldActive = false
		}
		opponent.Health -= damage
		res.Damage = damage
	case models.KindHeal:
		actor.Health += card.Power
	case models.KindShield:
		actor.ShieldActive = true
	}

	actor.Deck = append(actor.Deck[:cardIndex], actor.Deck[cardIndex+1:]...)
	if len(actor.Deck) < models.HandSize {
		drawn := catalog.RandomCard(rng)
		actor.Deck = append(actor.Deck, drawn)
		res.Replacement = &drawn
	}

	clampHealth(actor)
	clampHealth(opponent)
	resolveWinner(gs)
	res.GameOver = gs.GameOver
	res.Winner = gs.Winner

	if !gs.GameOver {
		advanceTurn(gs, actor, opponent)
	}
	return res, nil
}

// SpecialMoveResult describes the observable outcome of a special move.
type SpecialMoveResult struct {
	MoveName string
	Message  string

	// Known is false for move names absent from the catalog; such moves apply
	// no numeric effect but still consume the player's one use.
	Known bool

	ExtraTurn    bool
	DoubleDamage bool

	GameOver bool
	Winner   *uuid.UUID
}

// UseSpecialMove resolves the acting player's declared special move against
// the catalog's effect table. One use per player per game.
func UseSpecialMove(gs *GameState, actorID uuid.UUID) (*SpecialMoveResult, error) {
	actor, err := gs.playerByID(actorID)
	if err != nil {
		return nil, err
	}
	if gs.CurrentTurn != actorID {
		return nil, ErrNotYourTurn
	}
	if actor.SpecialMoveUsed {
		return nil, ErrSpecialMoveAlreadyUsed
	}
	opponent, err := gs.opponentOf(actorID)
	if err != nil {
		return nil, err
	}

	res := &SpecialMoveResult{MoveName: actor.SpecialMove.Name}

	effect, known := catalog.LookupMove(actor.SpecialMove.Name)
	res.Known = known
	if known {
		if damage := effect.DamageAgainst(opponent.Name); damage > 0 {
			opponent.Health -= damage
		}
		if effect.SelfDamage > 0 {
			actor.Health -= effect.SelfDamage
		}
		if effect.Heal > 0 {
			actor.Health += effect.Heal
		}
		if effect.ExtraTurns > 0 {
			actor.ExtraTurns += effect.ExtraTurns
			res.ExtraTurn = true
		}
		if effect.DoubleNext {
			actor.NextAttackDoubled = true
			res.DoubleDamage = true
		}
		res.Message = fmt.Sprintf("%s used %s! %s", actor.Name, effect.Name, effect.Description)
	} else {
		res.Message = fmt.Sprintf("%s used %s", actor.Name, actor.SpecialMove.Name)
	}

	actor.SpecialMoveUsed = true

	clampHealth(actor)
	clampHealth(opponent)
	resolveWinner(gs)
	res.GameOver = gs.GameOver
	res.Winner = gs.Winner

	if !gs.GameOver {
		// A granted extra turn is consumed here, keeping the turn on the
		// actor for exactly one more action.
		advanceTurn(gs, actor, opponent)
	}
	return res, nil
}
