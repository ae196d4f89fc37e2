package narration

import (
	"fmt"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/game/story"
)

// DefaultHistoryTurns is how many conversation turns a snapshot carries.
const DefaultHistoryTurns = 10

// CharacterView is the part of the character the narrator may see.
type CharacterView struct {
	Name      string
	Level     int
	HP, MaxHP int
	AP, MaxAP int
	Caps      int
	Rads      int
	Special   character.Special
	Skills    character.Skills
	Inventory []string
	Weapon    string
	Armor     string
}

// EnemyView is a living enemy as the narrator sees it. Number is the
// 1-based index the player types to attack it.
type EnemyView struct {
	Number    int
	Name      string
	HP, MaxHP int
}

// CombatView describes the encounter in progress.
type CombatView struct {
	Round   int
	Enemies []EnemyView
}

// Snapshot is a read-only copy of the game state handed to the narrator.
// It shares no memory with the GameState it was taken from.
type Snapshot struct {
	Character CharacterView
	Combat    *CombatView
	Location  string
	Day       int
	Quests    []string
	// Worldbook is the rendered worldbook context.
	Worldbook string
	History   []story.Turn
}

// NewSnapshot captures g with the last historyTurns conversation turns.
// A non-positive historyTurns uses DefaultHistoryTurns.
func NewSnapshot(g *session.GameState, historyTurns int) Snapshot {
	if historyTurns <= 0 {
		historyTurns = DefaultHistoryTurns
	}
	c := g.Character
	cv := CharacterView{
		Name:    c.Name,
		Level:   c.Level,
		HP:      c.CurrentHP,
		MaxHP:   c.MaxHP,
		AP:      c.CurrentAP,
		MaxAP:   c.MaxAP,
		Caps:    c.Caps,
		Rads:    c.Rads,
		Special: c.EffectiveSpecial(),
		Skills:  c.EffectiveSkills(),
	}
	for _, it := range c.Inventory {
		name := it.Name
		if it.Quantity > 1 {
			name = fmt.Sprintf("%s x%d", it.Name, it.Quantity)
		}
		cv.Inventory = append(cv.Inventory, name)
	}
	if it, ok := c.FindItem(c.EquippedWeapon); ok {
		cv.Weapon = it.Name
	}
	if it, ok := c.FindItem(c.EquippedArmor); ok {
		cv.Armor = it.Name
	}

	s := Snapshot{
		Character: cv,
		Location:  g.Location,
		Day:       g.Day,
		Quests:    append([]string(nil), g.QuestLog...),
		Worldbook: g.Worldbook.BuildContext(),
		History:   g.Conversation.Window(historyTurns),
	}
	if g.Combat.Active {
		cb := &CombatView{Round: g.Combat.Round}
		for i, e := range g.Combat.Enemies {
			if e.IsAlive() {
				cb.Enemies = append(cb.Enemies, EnemyView{Number: i + 1, Name: e.Name, HP: e.CurrentHP, MaxHP: e.MaxHP})
			}
		}
		s.Combat = cb
	}
	return s
}

// Prompt renders the snapshot followed by the player's input.
func (s Snapshot) Prompt(input string) string {
	var b strings.Builder
	c := s.Character
	sp := c.Special
	fmt.Fprintf(&b, "CHARACTER: %s (Level %d)\n", c.Name, c.Level)
	fmt.Fprintf(&b, "HP: %d/%d | AP: %d/%d | Caps: %d | Rads: %d\n", c.HP, c.MaxHP, c.AP, c.MaxAP, c.Caps, c.Rads)
	fmt.Fprintf(&b, "SPECIAL: S:%d P:%d E:%d C:%d I:%d A:%d L:%d\n",
		sp.Strength, sp.Perception, sp.Endurance, sp.Charisma, sp.Intelligence, sp.Agility, sp.Luck)
	fmt.Fprintf(&b, "Skills: Small Guns:%d Speech:%d Lockpick:%d Science:%d Sneak:%d\n",
		c.Skills.SmallGuns, c.Skills.Speech, c.Skills.Lockpick, c.Skills.Science, c.Skills.Sneak)
	if c.Weapon != "" || c.Armor != "" {
		fmt.Fprintf(&b, "Equipped: %s / %s\n", orNone(c.Weapon), orNone(c.Armor))
	}
	if len(c.Inventory) > 0 {
		fmt.Fprintf(&b, "Inventory: %s\n", strings.Join(c.Inventory, ", "))
	}
	if s.Combat != nil {
		fmt.Fprintf(&b, "IN COMBAT (round %d):\n", s.Combat.Round)
		for _, e := range s.Combat.Enemies {
			fmt.Fprintf(&b, "  %d. %s [%d/%d HP]\n", e.Number, e.Name, e.HP, e.MaxHP)
		}
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Location: %s | Day %d\n", s.Location, s.Day)
	if len(s.Quests) > 0 {
		fmt.Fprintf(&b, "Quests: %s\n", strings.Join(s.Quests, "; "))
	}
	b.WriteByte('\n')
	if s.Worldbook != "" {
		b.WriteString(s.Worldbook)
		b.WriteByte('\n')
	}
	conv := story.Conversation{Turns: s.History, MaxTurns: len(s.History)}
	b.WriteString(conv.PromptSection(len(s.History)))
	fmt.Fprintf(&b, ">>> PLAYER: %s\n\n>>> DM (YOU):", input)
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
