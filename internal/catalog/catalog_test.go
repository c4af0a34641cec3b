// internal/catalog/catalog_test.go
package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCardStaysInPool(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	inPool := func(name string) bool {
		for _, c := range Cards {
			if c.Name == name {
				return true
			}
		}
		return false
	}
	for i := 0; i < 100; i++ {
		c := RandomCard(r)
		require.True(t, inPool(c.Name), "drew %q which is not in the pool", c.Name)
	}
}

func TestLookupMove(t *testing.T) {
	e, ok := LookupMove("Dragon Breath")
	require.True(t, ok)
	assert.Equal(t, 40, e.Damage)

	_, ok = LookupMove("Summon Kraken")
	assert.False(t, ok)
}

func TestDamageAgainstRoster(t *testing.T) {
	e, ok := LookupMove("Giant Slayer")
	require.True(t, ok)

	assert.Equal(t, 40, e.DamageAgainst("Goliath"))
	assert.Equal(t, 40, e.DamageAgainst("Titan"))
	assert.Equal(t, 10, e.DamageAgainst("Ada"))
}

func TestMoveTableShape(t *testing.T) {
	for _, e := range Moves() {
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Description)
		assert.GreaterOrEqual(t, e.Damage, 0)
		assert.GreaterOrEqual(t, e.SelfDamage, 0)
		assert.GreaterOrEqual(t, e.Heal, 0)
		assert.GreaterOrEqual(t, e.ExtraTurns, 0)
		if len(e.BonusTargets) > 0 {
			assert.Greater(t, e.BonusDamage, 0, "%s has a bonus roster but no bonus damage", e.Name)
		}
	}
}
