package gameserver

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/game/npc"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/game/story"
	"github.com/ctclostio/MojaveAdventure/internal/game/world"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
)

// NarrationHandler sends free text to the narrator and applies the tags in
// its reply.
type NarrationHandler struct {
	narrator  narration.Narrator
	extractor narration.Extractor
	enemies   *npc.Registry
	items     *inventory.Catalog
	roller    *dice.Roller
	check     dice.CheckConfig
	history   int
	logger    *zap.Logger
}

// NewNarrationHandler creates a NarrationHandler. extractor may be nil.
//
// Precondition: narrator, enemies, items, roller and logger must be non-nil.
func NewNarrationHandler(
	narrator narration.Narrator,
	extractor narration.Extractor,
	enemies *npc.Registry,
	items *inventory.Catalog,
	roller *dice.Roller,
	check dice.CheckConfig,
	history int,
	logger *zap.Logger,
) *NarrationHandler {
	return &NarrationHandler{
		narrator:  narrator,
		extractor: extractor,
		enemies:   enemies,
		items:     items,
		roller:    roller,
		check:     check,
		history:   history,
		logger:    logger,
	}
}

// Prompt renders what the narrator would see if the player said input now.
func (h *NarrationHandler) Prompt(st *session.GameState, input string) string {
	return narration.NewSnapshot(st, h.history).Prompt(input)
}

// Narrate asks the narrator to respond to input.
//
// Postcondition: When the narrator fails or ctx is done by the time it
// answers, the error is returned and st is untouched. Otherwise both turns
// are recorded and the reply's commands are applied in order.
func (h *NarrationHandler) Narrate(ctx context.Context, st *session.GameState, input string) (Reply, error) {
	req := narration.Request{Snapshot: narration.NewSnapshot(st, h.history), Input: input}
	resp, err := h.call(ctx, req)
	if err != nil {
		return Reply{}, err
	}
	st.RecordPlayerTurn(input)
	return h.apply(ctx, st, resp, false), nil
}

// Retry asks the narrator for a different answer to the last player input.
// The previous narration is replaced; its commands were already applied and
// stay applied.
//
// Postcondition: Returns a validation error when the player has not said
// anything yet.
func (h *NarrationHandler) Retry(ctx context.Context, st *session.GameState) (Reply, error) {
	input, ok := st.LastPlayerInput()
	if !ok {
		return Reply{}, gameerr.Validationf("there is nothing to retry yet")
	}
	snap := narration.NewSnapshot(st, h.history)
	snap.History = dropLastExchange(snap.History)

	resp, err := h.call(ctx, narration.Request{Snapshot: snap, Input: input, Fresh: true})
	if err != nil {
		return Reply{}, err
	}
	return h.apply(ctx, st, resp, true), nil
}

func (h *NarrationHandler) call(ctx context.Context, req narration.Request) (narration.Response, error) {
	resp, err := h.narrator.Narrate(ctx, req)
	if err != nil {
		return narration.Response{}, err
	}
	if err := ctx.Err(); err != nil {
		return narration.Response{}, err
	}
	return resp, nil
}

// dropLastExchange removes the trailing narrator reply and the player turn
// that prompted it.
func dropLastExchange(turns []story.Turn) []story.Turn {
	n := len(turns)
	if n > 0 && turns[n-1].Speaker == story.SpeakerDM {
		n--
	}
	if n > 0 && turns[n-1].Speaker == story.SpeakerPlayer {
		n--
	}
	return turns[:n]
}

func (h *NarrationHandler) apply(ctx context.Context, st *session.GameState, resp narration.Response, revise bool) Reply {
	text, cmds := narration.ExtractCommands(resp.Text)
	if !revise || !st.ReviseNarration(text) {
		st.RecordNarration(text)
	}
	r := Reply{Narration: text, Cached: resp.Cached, mutated: true}

	if h.extractor != nil && text != "" {
		x, err := h.extractor.Extract(ctx, text)
		if err != nil {
			h.logger.Warn("entity extraction failed", zap.Error(err))
		} else if !x.Empty() {
			m := st.Worldbook.ApplyExtraction(x)
			h.logger.Debug("worldbook updated",
				zap.Int("locations", m.NewLocations),
				zap.Int("npcs", m.NewNPCs),
				zap.Int("events", m.Events),
			)
		}
	}

	for _, cmd := range cmds {
		if err := h.run(st, cmd, &r); err != nil {
			h.logger.Warn("narration command skipped", zap.Stringer("command", cmd), zap.Error(err))
		}
	}
	return r
}

func (h *NarrationHandler) run(st *session.GameState, cmd narration.Command, r *Reply) error {
	switch c := cmd.(type) {
	case narration.StartCombat:
		enemies, err := h.enemies.Spawn(c.Archetype, c.Level, c.Count)
		if err != nil {
			return err
		}
		if err := st.StartCombat(enemies); err != nil {
			return err
		}
		r.say("COMBAT STARTED!")
		for i, e := range enemies {
			r.say("  %d. %s (HP %d, AC %d)", i+1, e.Name, e.MaxHP, e.ArmorClass)
		}
	case narration.GrantItem:
		it, err := h.items.Grant(c.ItemID)
		if err != nil {
			return err
		}
		if err := st.GrantItem(it); err != nil {
			return err
		}
		r.say("Received: %s", it.Name)
	case narration.SetLocation:
		if st.InCombat() {
			return session.ErrTravelInCombat
		}
		loc, ok := st.Worldbook.FindLocation(c.Location)
		if !ok {
			id := world.GenerateID(c.Location)
			if id == "" {
				return gameerr.Newf(gameerr.KindUnknownLocation, "location %q has no usable name", c.Location)
			}
			if err := st.Worldbook.AddLocation(world.Location{ID: id, Name: placeName(c.Location)}); err != nil {
				return err
			}
			loc, _ = st.Worldbook.Location(id)
		}
		if err := st.ChangeLocation(loc.ID); err != nil {
			return err
		}
		r.say("Location: %s", loc.Name)
	case narration.RequestCheck:
		skill, ok := st.Character.EffectiveSkills().Get(c.Skill)
		if !ok {
			return gameerr.Validationf("unknown skill %q", c.Skill)
		}
		res := h.roller.Check(skill, c.DC, h.check)
		r.Checks = append(r.Checks, res)
		r.say("%s check (DC %d): %s", c.Skill, c.DC, res)
	case narration.Unknown:
		return gameerr.Newf(gameerr.KindParse, "unrecognised tag %s: %s", c.Raw, c.Reason)
	}
	return nil
}

// placeName turns "shady_sands" or "shady sands" into "Shady Sands".
func placeName(raw string) string {
	words := strings.Fields(strings.ReplaceAll(raw, "_", " "))
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[n:]
	}
	return strings.Join(words, " ")
}
