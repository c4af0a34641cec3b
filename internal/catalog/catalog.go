// internal/catalog/catalog.go
package catalog

import (
	"math/rand"

	"github.com/duelyard/duelyard/internal/models"
)

// Cards is the fixed pool that replacement draws sample from. The pool is
// treated as infinite: draws resample it rather than deplete it.
var Cards = []models.Card{
	{Name: "Fireball", Kind: models.KindAttack, Power: 20},
	{Name: "Strike", Kind: models.KindAttack, Power: 15},
	{Name: "Lightning", Kind: models.KindAttack, Power: 25},
	{Name: "Dagger", Kind: models.KindAttack, Power: 10},
	{Name: "Egg", Kind: models.KindAttack, Power: 10},
	{Name: "Potion", Kind: models.KindHeal, Power: 15},
	{Name: "Elixir", Kind: models.KindHeal, Power: 25},
	{Name: "Bandage", Kind: models.KindHeal, Power: 10},
	{Name: "Iron Wall", Kind: models.KindShield, Power: 0},
	{Name: "Ward", Kind: models.KindShield, Power: 0},
}

// RandomCard draws one card uniformly from the pool.
func RandomCard(r *rand.Rand) models.Card {
	return Cards[r.Intn(len(Cards))]
}

// MoveEffect is the declarative, server-authoritative behavior of one named
// special move. Clients only declare the move's identity; every number here
// comes from this table.
type MoveEffect struct {
	Name        string
	Description string

	Damage     int // damage dealt to the opponent
	SelfDamage int // damage dealt to the actor
	Heal       int // healing applied to the actor
	ExtraTurns int // extra turns granted to the actor

	// DoubleNext sets the actor's next-attack-doubled flag.
	DoubleNext bool

	// BonusTargets lists opponent names that trigger BonusDamage in place of
	// Damage. An explicit roster, not a hidden special case.
	BonusTargets []string
	BonusDamage  int
}

// DamageAgainst returns the opponent damage this move deals, honoring the
// bonus-roster predicate.
func (e MoveEffect) DamageAgainst(opponentName string) int {
	for _, t := range e.BonusTargets {
		if t == opponentName {
			return e.BonusDamage
		}
	}
	return e.Damage
}

var moveTable = map[string]MoveEffect{
	"Dragon Breath": {
		Name:        "Dragon Breath",
		Description: "Engulfs the opponent in flame.",
		Damage:      40,
	},
	"Blade Fury": {
		Name:        "Blade Fury",
		Description: "A flurry of strikes.",
		Damage:      25,
	},
	"Healing Light": {
		Name:        "Healing Light",
		Description: "Bathes the caster in restoring light.",
		Heal:        30,
	},
	"Second Wind": {
		Name:        "Second Wind",
		Description: "A moment to catch your breath.",
		Heal:        20,
	},
	"Time Warp": {
		Name:        "Time Warp",
		Description: "Bends time for another action and a small shock.",
		Damage:      5,
		ExtraTurns:  1,
	},
	"Battle Focus": {
		Name:        "Battle Focus",
		Description: "The next attack lands twice as hard.",
		DoubleNext:  true,
	},
	"Blood Pact": {
		Name:        "Blood Pact",
		Description: "Power bought with the caster's own blood.",
		SelfDamage:  35,
	},
	"Vampiric Touch": {
		Name:        "Vampiric Touch",
		Description: "Drains the opponent's vitality.",
		Damage:      20,
		Heal:        20,
	},
	"Giant Slayer": {
		Name:         "Giant Slayer",
		Description:  "Devastating against the giants of legend.",
		Damage:       10,
		BonusTargets: []string{"Goliath", "Atlas", "Titan"},
		BonusDamage:  40,
	},
}

// LookupMove returns the effect for a named move. ok is false for names not
// in the catalog; callers treat those as a lenient no-op.
func LookupMove(name string) (MoveEffect, bool) {
	e, ok := moveTable[name]
	return e, ok
}

// Moves returns the full move table, primarily for listings and tests.
func Moves() []MoveEffect {
	out := make([]MoveEffect, 0, len(moveTable))
	for _, e := range moveTable {
		out = append(out, e)
	}
	return out
}
