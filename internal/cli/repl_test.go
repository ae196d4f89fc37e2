package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/cli"
	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/command"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/game/npc"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/gameserver"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
	"github.com/ctclostio/MojaveAdventure/internal/scripting"
)

type echoNarrator struct{ text string }

func (n echoNarrator) Narrate(context.Context, narration.Request) (narration.Response, error) {
	return narration.Response{Text: n.text}, nil
}

type slowNarrator struct{}

func (slowNarrator) Narrate(ctx context.Context, _ narration.Request) (narration.Response, error) {
	<-ctx.Done()
	return narration.Response{}, ctx.Err()
}

func newGame(t *testing.T, n narration.Narrator) *gameserver.Game {
	t.Helper()
	c, err := character.New("Vault Dweller", character.Uniform(5), character.DefaultRules())
	require.NoError(t, err)
	st, err := session.New(c, clock.NewManual(time.Date(2161, 3, 14, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	src := dice.NewSeededSource(42)
	roller := dice.NewLoggedRoller(src, zap.NewNop())
	items, err := inventory.DefaultCatalog()
	require.NoError(t, err)
	enemies, err := npc.DefaultRegistry(scripting.NewEvaluator(0), src)
	require.NoError(t, err)

	g, err := gameserver.New(st, gameserver.Deps{
		Commands: command.DefaultRegistry(),
		Engine:   combat.NewEngine(combat.DefaultConfig(), roller, items, nil),
		Enemies:  enemies,
		Items:    items,
		Roller:   roller,
		Narrator: n,
	}, gameserver.Options{Check: dice.DefaultCheckConfig()})
	require.NoError(t, err)
	return g
}

func run(t *testing.T, g *gameserver.Game, input string, opts cli.Options) string {
	t.Helper()
	var out bytes.Buffer
	repl := cli.NewREPL(g, strings.NewReader(input), &out, nil, opts)
	require.NoError(t, repl.Run(context.Background()))
	return out.String()
}

func TestREPL_PlaysUntilQuit(t *testing.T) {
	g := newGame(t, echoNarrator{text: "A radscorpion skitters past. [ITEM: jet]"})
	out := run(t, g, "inventory\n\nI look around\nquit\nstats\n", cli.Options{})

	assert.Contains(t, out, cli.DefaultTitle)
	assert.Contains(t, out, "Caps:")
	assert.Contains(t, out, "A radscorpion skitters past.")
	assert.NotContains(t, out, "[ITEM: jet]")
	assert.Contains(t, out, "Received: Jet")
	assert.Contains(t, out, "The wasteland will be waiting.")
	assert.NotContains(t, out, "Vault Dweller, level 1", "input after quit must not run")
}

func TestREPL_RejectedActionKeepsPlaying(t *testing.T) {
	g := newGame(t, echoNarrator{text: "Nothing happens."})
	out := run(t, g, "travel nowhere\nattack\nhelp\n", cli.Options{})

	assert.Contains(t, out, `no known location matches "nowhere"`)
	assert.Contains(t, out, "not in combat")
	assert.Contains(t, out, "inventory")
}

func TestREPL_TurnTimeout(t *testing.T) {
	g := newGame(t, slowNarrator{})
	out := run(t, g, "I wait for the caravan\n", cli.Options{TurnTimeout: 20 * time.Millisecond})
	assert.Contains(t, out, "the narrator took longer than 20ms")
}

func TestREPL_CancelledContextStops(t *testing.T) {
	g := newGame(t, echoNarrator{text: "Hi."})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	repl := cli.NewREPL(g, strings.NewReader("stats\n"), &out, nil, cli.Options{})
	require.NoError(t, repl.Run(ctx))
	assert.NotContains(t, out.String(), "Vault Dweller, level 1")
}
