// internal/models/card.go
package models

// CardKind classifies a card's combat effect.
type CardKind string

const (
	KindAttack CardKind = "attack"
	KindHeal   CardKind = "heal"
	KindShield CardKind = "shield"
)

// Card is a single playable card. Immutable once drawn; effect dispatch is
// keyed on name+kind.
type Card struct {
	Name  string   `json:"name"`
	Kind  CardKind `json:"kind"`
	Power int      `json:"power"`
}

// EffectiveKind returns the kind used for effect resolution. A card named
// "Egg" always resolves as an attack, even when the client categorized it
// differently.
func (c Card) EffectiveKind() CardKind {
	if c.Name == "Egg" {
		return KindAttack
	}
	return c.Kind
}

// SpecialMove is the client-declared identity of a player's once-per-game
// move. Only the identity is trusted; the numeric effect is resolved
// server-side from the move catalog by name.
type SpecialMove struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CloneDeck returns a deep copy of a deck slice.
func CloneDeck(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}
