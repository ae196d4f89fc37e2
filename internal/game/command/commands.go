// Package command provides the play-loop command registry, parser and
// built-in command definitions. Input that names no command is free text
// for the narrator.
package command

// Categories for organizing commands.
const (
	CategoryCharacter = "character"
	CategoryCombat    = "combat"
	CategoryWorld     = "world"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to game operations.
const (
	HandlerInventory = "inventory"
	HandlerStats     = "stats"
	HandlerEquip     = "equip"
	HandlerUnequip   = "unequip"
	HandlerUse       = "use"
	HandlerLevelUp   = "levelup"
	HandlerAttack    = "attack"
	HandlerFlee      = "flee"
	HandlerEndTurn   = "end"
	HandlerWorldbook = "worldbook"
	HandlerQuests    = "quests"
	HandlerTravel    = "travel"
	HandlerRetry     = "retry"
	HandlerSave      = "save"
	HandlerContext   = "context"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "attack <n>". It is empty for
	// commands that take no arguments.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler names the game operation the command runs.
	Handler string
	// MinArgs is the number of arguments the command requires.
	MinArgs int
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Character commands
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "Show carried items and caps", Category: CategoryCharacter, Handler: HandlerInventory},
		{Name: "stats", Aliases: []string{"sheet", "status"}, Help: "Show your character sheet", Category: CategoryCharacter, Handler: HandlerStats},
		{Name: "equip", Aliases: []string{"eq", "wield", "wear"}, Usage: "equip <item>", Help: "Equip a weapon or armor", Category: CategoryCharacter, Handler: HandlerEquip, MinArgs: 1},
		{Name: "unequip", Aliases: []string{"ueq", "remove"}, Usage: "unequip <item>", Help: "Unequip a weapon or armor", Category: CategoryCharacter, Handler: HandlerUnequip, MinArgs: 1},
		{Name: "use", Aliases: []string{"u"}, Usage: "use <item>", Help: "Use a consumable (costs AP in combat)", Category: CategoryCharacter, Handler: HandlerUse, MinArgs: 1},
		{Name: "levelup", Aliases: []string{"lvl"}, Usage: "levelup [attribute]", Help: "Spend a pending level, optionally raising one SPECIAL attribute", Category: CategoryCharacter, Handler: HandlerLevelUp},

		// Combat commands
		{Name: "attack", Aliases: []string{"a", "att"}, Usage: "attack [n]", Help: "Attack enemy n (default 1)", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "flee", Aliases: []string{"run"}, Help: "Try to escape combat (agility check)", Category: CategoryCombat, Handler: HandlerFlee},
		{Name: "end", Aliases: []string{"pass", "wait"}, Help: "End your turn; enemies act", Category: CategoryCombat, Handler: HandlerEndTurn},

		// World commands
		{Name: "worldbook", Aliases: []string{"wb"}, Help: "List known locations, people and events", Category: CategoryWorld, Handler: HandlerWorldbook},
		{Name: "quests", Aliases: []string{"q", "journal"}, Help: "Show the quest log", Category: CategoryWorld, Handler: HandlerQuests},
		{Name: "travel", Aliases: []string{"go"}, Usage: "travel <location>", Help: "Travel to a known location", Category: CategoryWorld, Handler: HandlerTravel, MinArgs: 1},
		{Name: "retry", Aliases: []string{"reroll"}, Help: "Ask the narrator to redo its last reply", Category: CategoryWorld, Handler: HandlerRetry},

		// System commands
		{Name: "save", Usage: "save [name]", Help: "Save the game", Category: CategorySystem, Handler: HandlerSave},
		{Name: "context", Aliases: []string{"debug"}, Help: "Show the context sent to the narrator", Category: CategorySystem, Handler: HandlerContext},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsCombatCommand reports whether the handler only applies during combat.
func IsCombatCommand(handler string) bool {
	switch handler {
	case HandlerAttack, HandlerFlee, HandlerEndTurn:
		return true
	default:
		return false
	}
}
