package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// fixedSrc returns val for every Intn call, so a 1dN face is val+1.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

func roller(val int) *dice.Roller {
	return dice.NewLoggedRoller(fixedSrc{val}, zap.NewNop())
}

func TestAttackConfig_ChanceClamps(t *testing.T) {
	cfg := combat.DefaultAttackConfig()
	assert.Equal(t, 44, cfg.Chance(25, 11))
	assert.Equal(t, 5, cfg.Chance(0, 200))
	assert.Equal(t, 95, cfg.Chance(200, 0))
}

func TestAttackConfig_Validate(t *testing.T) {
	require.NoError(t, combat.DefaultAttackConfig().Validate())
	bad := combat.AttackConfig{BaseChance: 30, MinChance: 50, MaxChance: 40, CritChance: 60}
	assert.Error(t, bad.Validate())
}

func TestAttackRoll_HitAndCritical(t *testing.T) {
	cfg := combat.DefaultAttackConfig()

	r := combat.AttackRoll(50, 10, cfg, fixedSrc{0})
	assert.Equal(t, 1, r.Roll)
	assert.True(t, r.Hit)
	assert.True(t, r.Critical)

	r = combat.AttackRoll(50, 10, cfg, fixedSrc{40})
	assert.True(t, r.Hit)
	assert.False(t, r.Critical)

	r = combat.AttackRoll(50, 10, cfg, fixedSrc{99})
	assert.False(t, r.Hit)
	assert.False(t, r.Critical)
}

func TestProperty_AttackRoll_CriticalImpliesHit(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := combat.DefaultAttackConfig()
		skill := rapid.IntRange(0, 200).Draw(rt, "skill")
		ac := rapid.IntRange(0, 60).Draw(rt, "ac")
		face := rapid.IntRange(0, 99).Draw(rt, "face")

		r := combat.AttackRoll(skill, ac, cfg, fixedSrc{face})
		assert.Equal(rt, r.Roll <= r.Chance, r.Hit)
		if r.Critical {
			assert.True(rt, r.Hit)
		}
		assert.GreaterOrEqual(rt, r.Chance, cfg.MinChance)
		assert.LessOrEqual(rt, r.Chance, cfg.MaxChance)
	})
}

func TestCalculateDamage_SubstitutesStrength(t *testing.T) {
	// STR 6 turns 1d8+STR into 1d8+1; face 8 gives 9.
	dmg, err := combat.CalculateDamage("1d8+STR", 6, false, 2, roller(7))
	require.NoError(t, err)
	assert.Equal(t, 9, dmg)

	dmg, err = combat.CalculateDamage("1d8+STR", 6, true, 2, roller(7))
	require.NoError(t, err)
	assert.Equal(t, 18, dmg)

	dmg, err = combat.CalculateDamage("1d8+STR", 6, true, 1.5, roller(0))
	require.NoError(t, err)
	assert.Equal(t, 3, dmg)
}

func TestCalculateDamage_FloorsAtZero(t *testing.T) {
	dmg, err := combat.CalculateDamage("1d4-10", 5, false, 2, roller(0))
	require.NoError(t, err)
	assert.Zero(t, dmg)
}

func TestCalculateDamage_BadFormula(t *testing.T) {
	_, err := combat.CalculateDamage("d", 5, false, 2, roller(0))
	assert.ErrorIs(t, err, gameerr.ErrParse)
}

func TestProperty_CalculateDamage_StrengthSixInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		face := rapid.IntRange(0, 7).Draw(rt, "face")
		dmg, err := combat.CalculateDamage("1d8+STR", 6, false, 2, roller(face))
		require.NoError(rt, err)
		assert.GreaterOrEqual(rt, dmg, 2)
		assert.LessOrEqual(rt, dmg, 9)
	})
}
