// internal/game/resolver_test.go
package game

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelyard/duelyard/internal/models"
)

func testDeck() []models.Card {
	return []models.Card{
		{Name: "Fireball", Kind: models.KindAttack, Power: 20},
		{Name: "Strike", Kind: models.KindAttack, Power: 15},
		{Name: "Potion", Kind: models.KindHeal, Power: 15},
		{Name: "Elixir", Kind: models.KindHeal, Power: 25},
		{Name: "Iron Wall", Kind: models.KindShield, Power: 0},
	}
}

func testPlayer(name string) *models.Player {
	return &models.Player{
		ID:          uuid.New(),
		Name:        name,
		Avatar:      "knight",
		Deck:        testDeck(),
		SpecialMove: models.SpecialMove{Name: "Dragon Breath", Description: "Engulfs the opponent in flame."},
		Health:      models.MaxHealth,
	}
}

// setupCombat builds a started game where a holds the opening turn.
func setupCombat(t *testing.T) (*GameState, *models.Player, *models.Player, *rand.Rand) {
	t.Helper()
	a := testPlayer("Ada")
	b := testPlayer("Brin")
	gs := newGameState(a, b)
	require.Equal(t, a.ID, gs.CurrentTurn)
	return gs, a, b, rand.New(rand.NewSource(42))
}

func TestPlayCardAttack(t *testing.T) {
	gs, a, b, rng := setupCombat(t)

	res, err := PlayCard(gs, a.ID, 0, rng) // Fireball, 20
	require.NoError(t, err)

	assert.Equal(t, 20, res.Damage)
	assert.Equal(t, 80, b.Health)
	assert.Equal(t, 100, a.Health)
	assert.Equal(t, b.ID, gs.CurrentTurn)
	assert.False(t, res.GameOver)
}

func TestPlayCardReplacementKeepsHandSize(t *testing.T) {
	gs, a, _, rng := setupCombat(t)

	res, err := PlayCard(gs, a.ID, 0, rng)
	require.NoError(t, err)

	require.NotNil(t, res.Replacement)
	assert.Len(t, a.Deck, models.HandSize)
	assert.Equal(t, *res.Replacement, a.Deck[models.HandSize-1])
}

func TestPlayCardHealClampsAtMax(t *testing.T) {
	gs, a, _, rng := setupCombat(t)
	a.Health = 95

	_, err := PlayCard(gs, a.ID, 2, rng) // Potion, 15
	require.NoError(t, err)

	assert.Equal(t, models.MaxHealth, a.Health)
}

func TestPlayCardShieldHalvesNextAttack(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	b.ShieldActive = true

	res, err := PlayCard(gs, a.ID, 0, rng) // Fireball, 20
	require.NoError(t, err)

	assert.Equal(t, 10, res.Damage)
	assert.Equal(t, 90, b.Health)
	assert.False(t, b.ShieldActive, "shield clears after one attack")
}

func TestPlayCardShieldFloorsDamageAtOne(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.Deck[0] = models.Card{Name: "Pebble", Kind: models.KindAttack, Power: 1}
	b.ShieldActive = true

	res, err := PlayCard(gs, a.ID, 0, rng)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Damage)
	assert.Equal(t, 99, b.Health)
}

func TestPlayCardDoubleDamageConsumedOnce(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.NextAttackDoubled = true

	res, err := PlayCard(gs, a.ID, 0, rng) // Fireball, 20 -> 40
	require.NoError(t, err)
	assert.Equal(t, 40, res.Damage)
	assert.False(t, a.NextAttackDoubled)

	gs.CurrentTurn = a.ID
	res, err = PlayCard(gs, a.ID, 0, rng) // Strike, 15 (shifted to index 0)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Damage)
	assert.Equal(t, 45, b.Health)
}

func TestPlayCardDoubleThenShield(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.NextAttackDoubled = true
	b.ShieldActive = true

	// Double applies before the halving: 20 -> 40 -> 20.
	res, err := PlayCard(gs, a.ID, 0, rng)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Damage)
}

func TestPlayCardEggResolvesAsAttack(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.Deck[0] = models.Card{Name: "Egg", Kind: models.KindHeal, Power: 10}

	res, err := PlayCard(gs, a.ID, 0, rng)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Damage)
	assert.Equal(t, 90, b.Health)
	assert.Equal(t, 100, a.Health, "actor is not healed")
}

func TestPlayCardLethal(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	b.Health = 15

	res, err := PlayCard(gs, a.ID, 0, rng) // Fireball, 20
	require.NoError(t, err)

	assert.Equal(t, 0, b.Health, "health clamps at zero")
	assert.True(t, res.GameOver)
	require.NotNil(t, res.Winner)
	assert.Equal(t, a.ID, *res.Winner)
	assert.Equal(t, a.ID, gs.CurrentTurn, "turn does not advance past game over")
}

func TestPlayCardRejections(t *testing.T) {
	gs, a, b, rng := setupCombat(t)

	_, err := PlayCard(gs, b.ID, 0, rng)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = PlayCard(gs, a.ID, -1, rng)
	assert.ErrorIs(t, err, ErrInvalidCard)
	_, err = PlayCard(gs, a.ID, len(a.Deck), rng)
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = PlayCard(gs, uuid.New(), 0, rng)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	// Rejected plays leave the state untouched.
	assert.Equal(t, 100, b.Health)
	assert.Len(t, a.Deck, models.HandSize)
	assert.Equal(t, a.ID, gs.CurrentTurn)
}

func TestUseSpecialMoveDamage(t *testing.T) {
	gs, a, b, _ := setupCombat(t)

	res, err := UseSpecialMove(gs, a.ID) // Dragon Breath, 40
	require.NoError(t, err)

	assert.True(t, res.Known)
	assert.Equal(t, 60, b.Health)
	assert.True(t, a.SpecialMoveUsed)
	assert.Contains(t, res.Message, "Ada used Dragon Breath!")
	assert.Equal(t, b.ID, gs.CurrentTurn)
}

func TestUseSpecialMoveOncePerGame(t *testing.T) {
	gs, a, _, _ := setupCombat(t)

	_, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)

	gs.CurrentTurn = a.ID
	_, err = UseSpecialMove(gs, a.ID)
	assert.ErrorIs(t, err, ErrSpecialMoveAlreadyUsed)
}

func TestUseSpecialMoveExtraTurn(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Time Warp", Description: "x"}

	res, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)

	assert.True(t, res.ExtraTurn)
	assert.Equal(t, 95, b.Health)
	assert.Equal(t, a.ID, gs.CurrentTurn, "actor keeps the turn for one more action")
	assert.Equal(t, 0, a.ExtraTurns, "the grant is consumed immediately")

	_, err = PlayCard(gs, a.ID, 0, rng)
	require.NoError(t, err)
	assert.Equal(t, b.ID, gs.CurrentTurn, "turn passes after the extra action")
}

func TestUseSpecialMoveDoubleNext(t *testing.T) {
	gs, a, b, rng := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Battle Focus", Description: "x"}

	res, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)
	assert.True(t, res.DoubleDamage)
	assert.True(t, a.NextAttackDoubled)

	gs.CurrentTurn = a.ID
	played, err := PlayCard(gs, a.ID, 0, rng) // Fireball, 20 -> 40
	require.NoError(t, err)
	assert.Equal(t, 40, played.Damage)
	assert.Equal(t, 60, b.Health)
}

func TestUseSpecialMoveSelfDamageCanLose(t *testing.T) {
	gs, a, b, _ := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Blood Pact", Description: "x"}
	a.Health = 10

	res, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, a.Health)
	assert.True(t, res.GameOver)
	require.NotNil(t, res.Winner)
	assert.Equal(t, b.ID, *res.Winner)
}

func TestUseSpecialMoveVampiricTouch(t *testing.T) {
	gs, a, b, _ := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Vampiric Touch", Description: "x"}
	a.Health = 50

	_, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)

	assert.Equal(t, 70, a.Health)
	assert.Equal(t, 80, b.Health)
}

func TestUseSpecialMoveBonusRoster(t *testing.T) {
	gs, a, b, _ := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Giant Slayer", Description: "x"}
	b.Name = "Goliath"

	_, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, b.Health)
}

func TestUseSpecialMoveUnknownIsLenientNoop(t *testing.T) {
	gs, a, b, _ := setupCombat(t)
	a.SpecialMove = models.SpecialMove{Name: "Summon Kraken", Description: "x"}

	res, err := UseSpecialMove(gs, a.ID)
	require.NoError(t, err)

	assert.False(t, res.Known)
	assert.Equal(t, 100, a.Health)
	assert.Equal(t, 100, b.Health)
	assert.True(t, a.SpecialMoveUsed, "the one use is still consumed")
	assert.Equal(t, "Ada used Summon Kraken", res.Message)
	assert.Equal(t, b.ID, gs.CurrentTurn)
}

func TestResolveWinnerDoubleZeroIsDraw(t *testing.T) {
	gs, a, b, _ := setupCombat(t)
	a.Health = 0
	b.Health = 0

	resolveWinner(gs)

	assert.True(t, gs.GameOver)
	assert.Nil(t, gs.Winner)
}
