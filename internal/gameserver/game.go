// Package gameserver runs turns: it interprets player input, resolves
// commands and combat against the GameState and brokers narration. Game is
// the single writer of its state.
package gameserver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/command"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/game/npc"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
	"github.com/ctclostio/MojaveAdventure/internal/storage"
)

// DefaultSaveName is used by "save" without an argument.
const DefaultSaveName = "quicksave"

// SaveStore persists encoded game states by name. file.Store and
// postgres.SaveRepository satisfy it.
type SaveStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]storage.SaveInfo, error)
	Delete(ctx context.Context, name string) error
}

// Reply is what one turn produced, for the front end to render.
type Reply struct {
	// Lines are system messages in display order.
	Lines []string
	// Narration is the narrator's text with command tags removed.
	Narration string
	// Cached reports that Narration came from the response cache.
	Cached bool
	Events []combat.RoundEvent
	Checks []dice.CheckResult
	// Prompt is set by the context command.
	Prompt   string
	Help     string
	Quit     bool
	GameOver bool

	mutated bool
}

func (r *Reply) say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Deps are the collaborators a Game needs. Extractor and Store may be nil.
type Deps struct {
	Commands  *command.Registry
	Engine    *combat.Engine
	Enemies   *npc.Registry
	Items     *inventory.Catalog
	Roller    *dice.Roller
	Narrator  narration.Narrator
	Extractor narration.Extractor
	Store     SaveStore
	Logger    *zap.Logger
}

// Options tune a Game.
type Options struct {
	// HistoryTurns is how many conversation turns the narrator sees.
	HistoryTurns int
	// Autosave names the save written after every turn that changed the
	// game. Empty disables autosave.
	Autosave string
	Check    dice.CheckConfig
}

// Game owns a GameState and serializes every access to it. A turn holds
// the lock from input to the last mutation, including the narration call.
type Game struct {
	mu    sync.Mutex
	state *session.GameState

	commands   *command.Registry
	characterH *CharacterHandler
	combatH    *CombatHandler
	worldH     *WorldHandler
	narrationH *NarrationHandler
	store      SaveStore
	autosave   string
	logger     *zap.Logger
}

// New creates a Game for state.
//
// Precondition: state and every Deps field except Extractor, Store and
// Logger must be non-nil; opts.Check must pass Validate.
// Postcondition: Returns a validation error naming the first missing
// collaborator.
func New(state *session.GameState, deps Deps, opts Options) (*Game, error) {
	for _, req := range []struct {
		name string
		ok   bool
	}{
		{"state", state != nil},
		{"commands", deps.Commands != nil},
		{"engine", deps.Engine != nil},
		{"enemies", deps.Enemies != nil},
		{"items", deps.Items != nil},
		{"roller", deps.Roller != nil},
		{"narrator", deps.Narrator != nil},
	} {
		if !req.ok {
			return nil, gameerr.Validationf("gameserver: %s is required", req.name)
		}
	}
	if err := opts.Check.Validate(); err != nil {
		return nil, gameerr.Wrap(gameerr.KindValidation, err, "gameserver: skill check config")
	}
	if opts.Autosave != "" {
		if err := storage.ValidateSaveName(opts.Autosave); err != nil {
			return nil, err
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Game{
		state:      state,
		commands:   deps.Commands,
		characterH: NewCharacterHandler(deps.Engine),
		combatH:    NewCombatHandler(deps.Engine, logger),
		worldH:     NewWorldHandler(),
		narrationH: NewNarrationHandler(deps.Narrator, deps.Extractor, deps.Enemies, deps.Items, deps.Roller, opts.Check, opts.HistoryTurns, logger),
		store:      deps.Store,
		autosave:   opts.Autosave,
		logger:     logger,
	}, nil
}

// Turn runs one line of player input.
//
// Postcondition: On error the state is as it was before the call, except
// that a failed autosave is only logged. Known commands run locally;
// anything else goes to the narrator, whose commands are applied after it
// replies. A cancelled ctx abandons the narration before any mutation.
func (g *Game) Turn(ctx context.Context, line string) (Reply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if strings.TrimSpace(line) == "" {
		return Reply{}, gameerr.Validationf("say or do something")
	}
	in, err := g.commands.Interpret(line)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if in.IsNarration() {
		reply, err = g.narrationH.Narrate(ctx, g.state, in.Line)
	} else {
		reply, err = g.dispatch(ctx, in)
	}
	if err != nil {
		return Reply{}, err
	}

	if reply.mutated && g.autosave != "" && g.store != nil {
		if err := g.saveLocked(ctx, g.autosave); err != nil {
			g.logger.Warn("autosave failed", zap.String("save", g.autosave), zap.Error(err))
		}
	}
	reply.GameOver = !g.state.Character.IsAlive()
	return reply, nil
}

func (g *Game) dispatch(ctx context.Context, in command.Invocation) (Reply, error) {
	st := g.state
	switch in.Command.Handler {
	case command.HandlerInventory:
		return g.characterH.Inventory(st), nil
	case command.HandlerStats:
		return g.characterH.Stats(st), nil
	case command.HandlerEquip:
		return g.characterH.Equip(st, in.RawArgs)
	case command.HandlerUnequip:
		return g.characterH.Unequip(st, in.RawArgs)
	case command.HandlerUse:
		if st.InCombat() {
			return g.combatH.Act(st, in)
		}
		return g.characterH.Use(st, in.RawArgs)
	case command.HandlerLevelUp:
		return g.characterH.LevelUp(st, in.Arg(0))
	case command.HandlerAttack, command.HandlerFlee, command.HandlerEndTurn:
		return g.combatH.Act(st, in)
	case command.HandlerWorldbook:
		return g.worldH.Worldbook(st), nil
	case command.HandlerQuests:
		return g.worldH.Quests(st), nil
	case command.HandlerTravel:
		return g.worldH.Travel(st, in.RawArgs)
	case command.HandlerRetry:
		return g.narrationH.Retry(ctx, st)
	case command.HandlerSave:
		name := in.Arg(0)
		if name == "" {
			name = DefaultSaveName
		}
		if err := g.saveLocked(ctx, name); err != nil {
			return Reply{}, err
		}
		g.logger.Info("game saved", zap.String("save", name))
		var r Reply
		r.say("Game saved as %q.", name)
		return r, nil
	case command.HandlerContext:
		return Reply{Prompt: g.narrationH.Prompt(st, "...")}, nil
	case command.HandlerHelp:
		return Reply{Help: g.commands.HelpText()}, nil
	case command.HandlerQuit:
		return Reply{Quit: true}, nil
	}
	return Reply{}, gameerr.Validationf("gameserver: no handler for %q", in.Command.Name)
}

// Save writes the game under name.
func (g *Game) Save(ctx context.Context, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.saveLocked(ctx, name); err != nil {
		return err
	}
	g.logger.Info("game saved", zap.String("save", name))
	return nil
}

func (g *Game) saveLocked(ctx context.Context, name string) error {
	if err := storage.ValidateSaveName(name); err != nil {
		return err
	}
	if g.store == nil {
		return gameerr.New(gameerr.KindPersistence, "gameserver: no save store configured")
	}
	data, err := session.Marshal(g.state)
	if err != nil {
		return err
	}
	if err := g.store.Save(ctx, name, data); err != nil {
		return err
	}
	g.logger.Debug("save written", zap.String("save", name), zap.Int("bytes", len(data)))
	return nil
}

// View runs fn with the state locked. fn must not retain or mutate it.
func (g *Game) View(fn func(*session.GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.state)
}

// Status returns the one-line character summary.
func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.state.Character.Summary()
	if g.state.InCombat() {
		s += fmt.Sprintf(" | COMBAT round %d", g.state.Combat.Round)
	}
	return s + " | " + g.state.Location
}
