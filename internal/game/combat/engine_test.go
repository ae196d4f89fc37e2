package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func newPlayer(t *testing.T, special character.Special) *character.Character {
	t.Helper()
	c, err := character.New("Courier", special, character.DefaultRules())
	require.NoError(t, err)
	return c
}

func newEngine(val int, loot combat.LootSource) *combat.Engine {
	return combat.NewEngine(combat.DefaultConfig(), roller(val), loot, zap.NewNop())
}

func kinds(events []combat.RoundEvent) []combat.EventKind {
	out := make([]combat.EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestDefaultConfig_Validates(t *testing.T) {
	require.NoError(t, combat.DefaultConfig().Validate())
	cfg := combat.DefaultConfig()
	cfg.UnarmedAPCost = 0
	assert.Error(t, cfg.Validate())
}

func TestEngine_TwoKillsInOneRoundEndCombat(t *testing.T) {
	// AGI 10 gives 10 AP: two pistol shots at 4 AP each.
	c := newPlayer(t, character.Uniform(5).With(character.Agility, 10))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 1), enemy("Radroach", 1)}))
	eng := newEngine(0, nil)

	events, err := eng.PlayerAttack(c, &st, 0)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventAttack, combat.EventKill}, kinds(events))
	assert.True(t, st.Active)
	require.Len(t, st.Enemies, 1)
	assert.Equal(t, "Radroach", st.Enemies[0].Name)

	// The dead raider is gone, so the old second slot is no longer a target.
	_, err = eng.PlayerAttack(c, &st, 1)
	assert.ErrorIs(t, err, gameerr.ErrInvalidTarget)
	assert.Equal(t, 6, c.CurrentAP)

	events, err = eng.PlayerAttack(c, &st, 0)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventAttack, combat.EventKill, combat.EventVictory}, kinds(events))
	assert.False(t, st.Active)
	assert.Empty(t, st.Enemies)
	assert.Zero(t, st.Round)
	assert.Equal(t, 100, c.Experience)
}

func TestEngine_PlayerAttack_NotEnoughAP(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 30)}))
	require.True(t, c.UseAP(c.CurrentAP-1))

	_, err := newEngine(0, nil).PlayerAttack(c, &st, 0)
	assert.ErrorIs(t, err, combat.ErrInsufficientAP)
	assert.Equal(t, 1, c.CurrentAP)
	assert.Equal(t, 30, st.Enemies[0].CurrentHP)
}

func TestEngine_PlayerAttack_NotInCombat(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	_, err := newEngine(0, nil).PlayerAttack(c, &st, 0)
	assert.ErrorIs(t, err, combat.ErrNotInCombat)
}

func TestEngine_MissThenAutoEnemyTurnWhenOutOfAP(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	require.NoError(t, c.RemoveItem("stimpak", 2))
	require.NoError(t, c.RemoveItem("radaway", 1))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 30)}))

	// Face 100 misses everything; 7 AP minus 4 leaves too little for another shot.
	events, err := newEngine(99, nil).PlayerAttack(c, &st, 0)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventAttack, combat.EventEnemyAttack, combat.EventRound}, kinds(events))
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, c.MaxAP, c.CurrentAP)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
}

func TestEngine_EndTurn_EnemiesActInOrder(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	require.NoError(t, c.Unequip(inventory.StartingArmorID))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("First", 5), enemy("Second", 5)}))
	require.True(t, c.UseAP(3))

	// Face 1 is a critical hit: 1d4 rolls 1, doubled to 2.
	events, err := newEngine(0, nil).EndTurn(c, &st)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "First", events[0].Actor)
	assert.Equal(t, "Second", events[1].Actor)
	assert.Equal(t, 2, events[0].Damage)
	assert.Equal(t, combat.EventRound, events[2].Kind)
	assert.Equal(t, c.MaxHP-4, c.CurrentHP)
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, c.MaxAP, c.CurrentAP)
}

func TestEngine_EndTurn_ArmorReducesDamage(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	e := enemy("Brute", 5)
	e.Damage = "1d4+8"
	require.NoError(t, st.Start([]combat.Enemy{e}))

	// 9 doubled to 18, leather armor DR 5% leaves 17.
	events, err := newEngine(0, nil).EndTurn(c, &st)
	require.NoError(t, err)
	assert.Equal(t, 17, events[0].Damage)
	assert.Equal(t, c.MaxHP-17, c.CurrentHP)
}

func TestEngine_EndTurn_PlayerDeathEndsCombat(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	first, second := enemy("Behemoth", 50), enemy("Raider", 5)
	first.Damage = "10d10+100"
	require.NoError(t, st.Start([]combat.Enemy{first, second}))

	events, err := newEngine(0, nil).EndTurn(c, &st)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventEnemyAttack, combat.EventDefeat}, kinds(events))
	assert.False(t, c.IsAlive())
	assert.Zero(t, c.CurrentHP)
	assert.False(t, st.Active)
}

func TestEngine_EndTurn_BadEnemyFormulaIsSkipped(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	e := enemy("Glitch", 5)
	e.Damage = "lots"
	require.NoError(t, st.Start([]combat.Enemy{e}))

	events, err := newEngine(0, nil).EndTurn(c, &st)
	require.NoError(t, err)
	assert.Zero(t, events[0].Damage)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
	assert.Equal(t, 2, st.Round)
}

func TestEngine_Flee(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 5)}))
	eng := newEngine(0, nil)
	assert.Equal(t, 60, eng.FleeChance(c))

	events, err := eng.Flee(c, &st)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventFlee}, kinds(events))
	assert.False(t, st.Active)
}

func TestEngine_FleeFailureHandsTurnToEnemies(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 5)}))

	events, err := newEngine(99, nil).Flee(c, &st)
	require.NoError(t, err)
	assert.Equal(t, []combat.EventKind{combat.EventFlee, combat.EventEnemyAttack, combat.EventRound}, kinds(events))
	assert.True(t, st.Active)
	assert.Equal(t, 2, st.Round)
}

func TestEngine_UseItem(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	require.NoError(t, c.TakeDamage(20))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 5)}))
	eng := newEngine(99, nil)

	events, err := eng.UseItem(c, &st, "stimpak")
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, combat.EventItem, events[0].Kind)
	assert.Equal(t, c.MaxHP, c.CurrentHP)
	assert.Equal(t, c.MaxAP-2, c.CurrentAP)
	it, ok := c.FindItem("stimpak")
	require.True(t, ok)
	assert.Equal(t, 1, it.Quantity)

	_, err = eng.UseItem(c, &st, inventory.StartingWeaponID)
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = eng.UseItem(c, &st, "jet")
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestEngine_KillAwardsLoot(t *testing.T) {
	catalog, err := inventory.DefaultCatalog()
	require.NoError(t, err)
	c := newPlayer(t, character.Uniform(5))
	caps := c.Caps
	var st combat.State
	e := enemy("Raider", 1)
	e.LootCaps = 12
	e.LootItems = []string{"stimpak", "no_such_thing"}
	require.NoError(t, st.Start([]combat.Enemy{e}))

	events, err := newEngine(0, catalog).PlayerAttack(c, &st, 0)
	require.NoError(t, err)
	assert.Contains(t, kinds(events), combat.EventLoot)
	assert.Equal(t, caps+12, c.Caps)
	it, ok := c.FindItem("stimpak")
	require.True(t, ok)
	assert.Equal(t, 3, it.Quantity)
	assert.False(t, st.Active)
}

func TestEngine_Act_Dispatch(t *testing.T) {
	c := newPlayer(t, character.Uniform(5))
	var st combat.State
	require.NoError(t, st.Start([]combat.Enemy{enemy("Raider", 5)}))
	eng := newEngine(99, nil)

	_, err := eng.Act(c, &st, combat.Action{Type: combat.ActionUnknown})
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	events, err := eng.Act(c, &st, combat.Action{Type: combat.ActionEndTurn})
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	assert.Equal(t, "attack 2", combat.Action{Type: combat.ActionAttack, Target: 1}.String())
}
