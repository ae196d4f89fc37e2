package command

import (
	"strconv"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// CombatAction converts a combat invocation into an engine action. Targets
// are typed 1-based and returned 0-based.
func CombatAction(in Invocation) (combat.Action, error) {
	if in.Command == nil {
		return combat.Action{}, gameerr.Validationf("not a command")
	}
	switch in.Command.Handler {
	case HandlerAttack:
		target := 1
		if arg := in.Arg(0); arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return combat.Action{}, gameerr.Newf(gameerr.KindInvalidTarget, "invalid target %q: use the enemy's number", arg)
			}
			target = n
		}
		return combat.Action{Type: combat.ActionAttack, Target: target - 1}, nil
	case HandlerUse:
		return combat.Action{Type: combat.ActionUseItem, ItemID: ItemID(in.RawArgs)}, nil
	case HandlerFlee:
		return combat.Action{Type: combat.ActionFlee}, nil
	case HandlerEndTurn:
		return combat.Action{Type: combat.ActionEndTurn}, nil
	default:
		return combat.Action{}, gameerr.Validationf("%s is not a combat action", in.Command.Name)
	}
}

// ItemID normalizes a typed item name to catalog ID form: "Combat Knife"
// becomes "combat_knife".
func ItemID(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.Join(strings.Fields(raw), " ")), " ", "_")
}
