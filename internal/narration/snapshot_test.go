package narration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
)

func newGame(t *testing.T) *session.GameState {
	t.Helper()
	c, err := character.New("Vault Dweller", character.Uniform(5), character.DefaultRules())
	require.NoError(t, err)
	g, err := session.New(c, clock.NewManual(epoch))
	require.NoError(t, err)
	return g
}

func TestNewSnapshot_CopiesState(t *testing.T) {
	g := newGame(t)
	for range 12 {
		g.RecordPlayerTurn("look")
		g.RecordNarration("You see dust.")
	}
	require.NoError(t, g.StartCombat([]combat.Enemy{
		{Name: "Radroach", MaxHP: 10, CurrentHP: 0},
		{Name: "Raider", MaxHP: 30, CurrentHP: 25, Damage: "1d6"},
	}))

	s := narration.NewSnapshot(g, 0)
	assert.Len(t, s.History, narration.DefaultHistoryTurns)
	assert.Equal(t, "Vault Dweller", s.Character.Name)
	assert.Equal(t, "10mm Pistol", s.Character.Weapon)
	require.NotNil(t, s.Combat)
	assert.Equal(t, []narration.EnemyView{{Number: 2, Name: "Raider", HP: 25, MaxHP: 30}}, s.Combat.Enemies)

	s.Quests[0] = "changed"
	s.History[0].Text = "changed"
	assert.Equal(t, "Find the Water Chip", g.QuestLog[0])
	assert.NotEqual(t, "changed", g.Conversation.Turns[len(g.Conversation.Turns)-10].Text)
}

func TestSnapshot_Prompt(t *testing.T) {
	g := newGame(t)
	g.RecordPlayerTurn("Where am I?")
	g.RecordNarration("Inside Vault 13.")

	p := narration.NewSnapshot(g, 10).Prompt("I head for the door")
	assert.Contains(t, p, "CHARACTER: Vault Dweller (Level 1)\n")
	assert.Contains(t, p, "HP: 30/30 | AP: 7/7")
	assert.Contains(t, p, "SPECIAL: S:5 P:5 E:5 C:5 I:5 A:5 L:5\n")
	assert.Contains(t, p, "Inventory: 10mm Pistol, Baseball Bat, Leather Armor, Stimpak x2, RadAway\n")
	assert.Contains(t, p, "Location: Vault 13 Entrance | Day 1\n")
	assert.Contains(t, p, "=== CURRENT LOCATION: Vault 13 ===")
	assert.Contains(t, p, ">>> PLAYER: Where am I?\n>>> DM (YOU): Inside Vault 13.\n")
	assert.NotContains(t, p, "IN COMBAT")
	assert.True(t, strings.HasSuffix(p, ">>> DM (YOU):"))
}

func TestRequest_KeyTracksPrompt(t *testing.T) {
	g := newGame(t)
	a := narration.Request{Snapshot: narration.NewSnapshot(g, 10), Input: "look"}
	b := a
	assert.Equal(t, a.Key(), b.Key())
	b.Input = "listen"
	assert.NotEqual(t, a.Key(), b.Key())
}
