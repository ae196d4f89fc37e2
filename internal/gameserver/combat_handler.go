package gameserver

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/command"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
)

// CombatHandler handles attack, use, flee and end-turn while an encounter
// runs.
type CombatHandler struct {
	engine *combat.Engine
	logger *zap.Logger
}

// NewCombatHandler creates a CombatHandler.
//
// Precondition: engine and logger must be non-nil.
func NewCombatHandler(engine *combat.Engine, logger *zap.Logger) *CombatHandler {
	return &CombatHandler{engine: engine, logger: logger}
}

// Act resolves a combat command.
//
// Postcondition: Rejected actions (no combat, bad target, not enough AP)
// return an error and leave the state untouched. When the encounter ends
// the outcome is recorded as a worldbook event.
func (h *CombatHandler) Act(st *session.GameState, in command.Invocation) (Reply, error) {
	if !st.InCombat() {
		return Reply{}, combat.ErrNotInCombat
	}
	action, err := command.CombatAction(in)
	if err != nil {
		return Reply{}, err
	}
	if action.Type == combat.ActionUseItem {
		action.ItemID = resolveItem(st.Character, in.RawArgs)
	}

	foes := livingNames(st.Combat.Enemies)
	events, err := h.engine.Act(st.Character, &st.Combat, action)
	if err != nil {
		return Reply{}, err
	}
	h.logger.Debug("combat action",
		zap.Stringer("action", action),
		zap.Int("events", len(events)),
		zap.Int("round", st.Combat.Round),
	)

	r := Reply{Events: events, mutated: true}
	if !st.InCombat() {
		st.Worldbook.AddEvent("combat", outcome(events, foes), "")
	}
	return r, nil
}

func livingNames(enemies []combat.Enemy) string {
	names := make([]string, 0, len(enemies))
	for i := range enemies {
		if enemies[i].IsAlive() {
			names = append(names, enemies[i].Name)
		}
	}
	return strings.Join(names, ", ")
}

func outcome(events []combat.RoundEvent, foes string) string {
	for _, ev := range events {
		switch ev.Kind {
		case combat.EventVictory:
			return "Defeated " + foes
		case combat.EventDefeat:
			return "Was defeated by " + foes
		}
	}
	return "Escaped from " + foes
}
