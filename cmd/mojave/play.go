package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/cli"
	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/lifecycle"
	"github.com/ctclostio/MojaveAdventure/internal/storage"
)

const shutdownSaveTimeout = 10 * time.Second

var (
	specialFlag string
	saveAsFlag  string
	forceFlag   bool
	widthFlag   int
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a character and start playing",
	Long: `Create a character and start a new game at the Vault 13 entrance.

SPECIAL scores are given in order S,P,E,C,I,A,L and must add up to the
configured total. Without --special the points are spread evenly.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var playCmd = &cobra.Command{
	Use:   "play [save]",
	Short: "Continue a saved game",
	Long:  `Load a save (the autosave when none is named) and continue playing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlay,
}

func init() {
	newCmd.Flags().StringVar(&specialFlag, "special", "", "SPECIAL scores as S,P,E,C,I,A,L")
	newCmd.Flags().StringVar(&saveAsFlag, "save-as", "", "save name for the new game (defaults to the autosave name)")
	newCmd.Flags().BoolVar(&forceFlag, "force", false, "overwrite an existing save with the same name")
	for _, c := range []*cobra.Command{newCmd, playCmd} {
		c.Flags().IntVar(&widthFlag, "width", cli.DefaultWidth, "wrap width for narration")
	}
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := setup(ctx)
	if err != nil {
		return err
	}

	rules := env.cfg.CharacterRules()
	special, err := parseSpecial(specialFlag, rules.SpecialTotal)
	if err != nil {
		env.close()
		return err
	}
	c, err := character.Create(args[0], special, rules)
	if err != nil {
		env.close()
		return err
	}
	st, err := session.New(c, clock.New())
	if err != nil {
		env.close()
		return err
	}
	if err := env.applySeed(st); err != nil {
		env.close()
		return err
	}

	name := saveAsFlag
	if name == "" {
		name = env.cfg.Storage.Autosave
	}
	if name != "" {
		if err := storage.ValidateSaveName(name); err != nil {
			env.close()
			return err
		}
		if _, err := env.store.Load(ctx, name); err == nil && !forceFlag {
			env.close()
			return gameerr.Newf(gameerr.KindConflict, "save %q already exists; use --force or --save-as", name)
		}
	}
	return play(ctx, env, st, name)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	name := env.cfg.Storage.Autosave
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" {
		env.close()
		return errors.New("name a save to load; autosave is disabled")
	}
	st, err := env.loadState(ctx, name)
	if err != nil {
		env.close()
		return fmt.Errorf("loading %q: %w", name, err)
	}
	env.logger.Info("game loaded", zap.String("save", name), zap.String("character", st.Character.Name))
	return play(ctx, env, st, name)
}

// play runs the session until the player quits or the process is
// interrupted, then saves under saveName and closes connections.
func play(ctx context.Context, env *environment, st *session.GameState, saveName string) error {
	game, err := env.newGame(ctx, st)
	if err != nil {
		env.close()
		return err
	}
	if saveName != "" {
		if err := game.Save(ctx, saveName); err != nil {
			env.close()
			return err
		}
	}

	lc := lifecycle.New(env.logger)
	for _, c := range env.closers {
		lc.Add(c.name, lifecycle.Closer(c.fn))
	}
	repl := cli.NewREPL(game, os.Stdin, os.Stdout, env.logger, cli.Options{
		Width:       widthFlag,
		TurnTimeout: env.cfg.Narrator.Timeout,
	})
	lc.Add("play", &lifecycle.FuncService{
		StartFn: repl.Run,
		StopFn: func() {
			if saveName == "" {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
			defer cancel()
			if err := game.Save(ctx, saveName); err != nil {
				env.logger.Error("final save failed", zap.String("save", saveName), zap.Error(err))
			}
		},
	})
	return lc.Run(ctx)
}

// parseSpecial reads "S,P,E,C,I,A,L". An empty string spreads total
// evenly, giving the remainder to the first attributes.
func parseSpecial(s string, total int) (character.Special, error) {
	vals := make([]int, len(character.Attributes))
	if strings.TrimSpace(s) == "" {
		for i := range vals {
			vals[i] = total / len(vals)
			if i < total%len(vals) {
				vals[i]++
			}
		}
	} else {
		parts := strings.Split(s, ",")
		if len(parts) != len(vals) {
			return character.Special{}, gameerr.Validationf("--special needs %d comma-separated scores, got %d", len(vals), len(parts))
		}
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return character.Special{}, gameerr.Validationf("--special: %q is not a number", p)
			}
			vals[i] = v
		}
	}

	var sp character.Special
	for i, a := range character.Attributes {
		sp = sp.With(a, vals[i])
	}
	return sp, nil
}
