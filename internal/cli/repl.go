package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/gameserver"
)

// DefaultTitle heads the screen when play starts.
const DefaultTitle = "MOJAVE ADVENTURE"

// Options tune the play loop.
type Options struct {
	Title string
	Width int
	// TurnTimeout bounds each turn, narration included. Zero means no limit.
	TurnTimeout time.Duration
}

// REPL reads player input line by line and prints each turn's reply.
type REPL struct {
	game    *gameserver.Game
	in      io.Reader
	out     io.Writer
	render  *Renderer
	title   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewREPL creates a play loop for game reading from in and writing to out.
//
// Precondition: game, in and out must be non-nil.
func NewREPL(game *gameserver.Game, in io.Reader, out io.Writer, logger *zap.Logger, opts Options) *REPL {
	if logger == nil {
		logger = zap.NewNop()
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	return &REPL{
		game:    game,
		in:      in,
		out:     out,
		render:  NewRenderer(out, opts.Width),
		title:   title,
		timeout: opts.TurnTimeout,
		logger:  logger,
	}
}

// Run plays until the player quits, the character dies, input ends or ctx
// is cancelled. A rejected action prints one line and play continues.
//
// Postcondition: Returns nil on a normal exit and the read error otherwise.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, r.render.Banner(r.title))
	fmt.Fprintln(r.out, r.render.line("Type 'help' for commands, or just say what you do."))
	fmt.Fprintln(r.out, r.render.StatusBar(r.game.Status()))

	sc := bufio.NewScanner(r.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(r.out, r.render.Prompt())
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rep, err := r.turn(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Debug("turn rejected", zap.String("input", line), zap.Error(err))
			fmt.Fprintln(r.out, r.render.Error(err))
			continue
		}
		fmt.Fprint(r.out, r.render.Reply(rep))
		if rep.Quit {
			fmt.Fprintln(r.out, r.render.line("The wasteland will be waiting."))
			return nil
		}
		if rep.GameOver {
			return nil
		}
		fmt.Fprintln(r.out, r.render.StatusBar(r.game.Status()))
	}
}

func (r *REPL) turn(ctx context.Context, line string) (gameserver.Reply, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	rep, err := r.game.Turn(ctx, line)
	if errors.Is(err, context.DeadlineExceeded) {
		return rep, fmt.Errorf("the narrator took longer than %s; try again: %w", r.timeout, err)
	}
	return rep, err
}
