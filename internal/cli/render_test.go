package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/ctclostio/MojaveAdventure/internal/cli"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/gameserver"
)

func plainRenderer() *cli.Renderer {
	return cli.NewRenderer(&bytes.Buffer{}, 40)
}

func TestRenderer_EmptyReply(t *testing.T) {
	assert.Empty(t, plainRenderer().Reply(gameserver.Reply{}))
}

func TestRenderer_ReplyOrder(t *testing.T) {
	out := plainRenderer().Reply(gameserver.Reply{
		Narration: "Gunfire echoes.",
		Cached:    true,
		Lines:     []string{"COMBAT STARTED!"},
		Events: []combat.RoundEvent{{
			Kind:      combat.EventAttack,
			Narrative: "You hit Raider for 7 damage.",
			Attack:    &combat.AttackResult{Roll: 23, Chance: 44, Hit: true},
			Damage:    7,
		}},
		GameOver: true,
	})

	narr := strings.Index(out, "Gunfire echoes.")
	cached := strings.Index(out, "(replayed from cache)")
	started := strings.Index(out, "COMBAT STARTED!")
	hit := strings.Index(out, "You hit Raider for 7 damage. [hit (23 vs 44%)]")
	died := strings.Index(out, "You have died.")
	for _, i := range []int{narr, cached, started, hit, died} {
		assert.GreaterOrEqual(t, i, 0)
	}
	assert.Less(t, narr, cached)
	assert.Less(t, cached, started)
	assert.Less(t, started, hit)
	assert.Less(t, hit, died)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderer_EventWithoutRoll(t *testing.T) {
	out := plainRenderer().Event(combat.RoundEvent{Kind: combat.EventVictory, Narrative: "All enemies defeated!"})
	assert.Equal(t, "All enemies defeated!", out)
}

func TestRenderer_Error(t *testing.T) {
	r := plainRenderer()
	assert.Equal(t, "Save error: disk full", r.Error(gameerr.New(gameerr.KindPersistence, "disk full")))
	assert.Equal(t, "boom", r.Error(errors.New("boom")))
}

func TestRenderer_StatusBarFillsWidth(t *testing.T) {
	bar := plainRenderer().StatusBar("Vault Dweller (Lvl 1)")
	assert.Equal(t, 40, lipgloss.Width(bar))
	assert.Contains(t, bar, "Vault Dweller (Lvl 1)")
}
