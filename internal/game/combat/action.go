package combat

import "fmt"

// ActionType identifies what the player does on their turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionAttack             // costs the weapon's AP
	ActionUseItem            // costs Config.UseItemAPCost
	ActionFlee               // agility check; failure hands the turn to the enemies
	ActionEndTurn            // forfeits remaining AP
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionUseItem:
		return "use"
	case ActionFlee:
		return "flee"
	case ActionEndTurn:
		return "end turn"
	default:
		return "unknown"
	}
}

// Action is one player action. Target is a zero-based roster index for
// attacks; ItemID names the consumable for ActionUseItem.
type Action struct {
	Type   ActionType
	Target int
	ItemID string
}

// String renders the action the way the play loop echoes it.
func (a Action) String() string {
	switch a.Type {
	case ActionAttack:
		return fmt.Sprintf("attack %d", a.Target+1)
	case ActionUseItem:
		return "use " + a.ItemID
	}
	return a.Type.String()
}
