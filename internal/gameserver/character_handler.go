package gameserver

import (
	"fmt"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/command"
	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// CharacterHandler handles the character sheet, inventory, equipment and
// level-up commands.
type CharacterHandler struct {
	engine *combat.Engine
}

// NewCharacterHandler creates a CharacterHandler. The engine supplies the
// armor class base shown on the sheet.
func NewCharacterHandler(engine *combat.Engine) *CharacterHandler {
	return &CharacterHandler{engine: engine}
}

// Inventory lists carried items with the equipped ones marked.
func (h *CharacterHandler) Inventory(st *session.GameState) Reply {
	c := st.Character
	var r Reply
	if len(c.Inventory) == 0 {
		r.say("You carry nothing.")
	}
	for _, it := range c.Inventory {
		line := it.Name
		if it.Quantity > 1 {
			line = fmt.Sprintf("%s x%d", it.Name, it.Quantity)
		}
		switch it.ID {
		case c.EquippedWeapon:
			line += " [weapon]"
		case c.EquippedArmor:
			line += " [armor]"
		}
		r.say("%-28s %s", line, it.Kind)
	}
	r.say("Caps: %d | Weight: %.1f", c.Caps, c.CarryWeight())
	return r
}

// Stats renders the character sheet.
func (h *CharacterHandler) Stats(st *session.GameState) Reply {
	c := st.Character
	sp := c.EffectiveSpecial()
	sk := c.EffectiveSkills()
	var r Reply
	r.say("%s, level %d (%d XP, %d to next level)", c.Name, c.Level, c.Experience, c.XPToNextLevel())
	r.say("HP %d/%d | AP %d/%d | AC %d | DR %d%% | Rads %d", c.CurrentHP, c.MaxHP, c.CurrentAP, c.MaxAP,
		c.ArmorClass(h.engine.Config().BaseArmorClass), c.DamageReduction(), c.Rads)
	r.say("%s", sp.String())
	r.say("Small Guns %d | Big Guns %d | Energy %d | Melee %d | Unarmed %d",
		sk.SmallGuns, sk.BigGuns, sk.EnergyWeapons, sk.MeleeWeapons, sk.Unarmed)
	r.say("Lockpick %d | Sneak %d | Science %d | Repair %d | Speech %d | Barter %d",
		sk.Lockpick, sk.Sneak, sk.Science, sk.Repair, sk.Speech, sk.Barter)
	r.say("First Aid %d | Doctor %d | Outdoorsman %d", sk.FirstAid, sk.Doctor, sk.Outdoorsman)
	for _, b := range c.Buffs {
		r.say("%s: %+d %s (%d rounds)", b.Source, b.Amount, b.Stat.Abbrev(), b.RoundsLeft)
	}
	if c.CanLevelUp() {
		r.say("Level up available! Type 'levelup <attribute>'.")
	}
	return r
}

// Equip equips a carried weapon or armor, by ID or name.
func (h *CharacterHandler) Equip(st *session.GameState, raw string) (Reply, error) {
	c := st.Character
	id := resolveItem(c, raw)
	if err := c.Equip(id); err != nil {
		return Reply{}, err
	}
	it, _ := c.FindItem(id)
	r := Reply{mutated: true}
	r.say("You equip the %s.", it.Name)
	return r, nil
}

// Unequip empties the slot holding the named item.
func (h *CharacterHandler) Unequip(st *session.GameState, raw string) (Reply, error) {
	c := st.Character
	id := resolveItem(c, raw)
	if err := c.Unequip(id); err != nil {
		return Reply{}, err
	}
	r := Reply{mutated: true}
	r.say("Unequipped.")
	return r, nil
}

// Use applies a consumable outside combat, where it costs no AP.
func (h *CharacterHandler) Use(st *session.GameState, raw string) (Reply, error) {
	msg, err := st.Character.UseConsumable(resolveItem(st.Character, raw))
	if err != nil {
		return Reply{}, err
	}
	r := Reply{mutated: true}
	r.say("%s", msg)
	return r, nil
}

// LevelUp spends pending levels, raising attr by one when given.
func (h *CharacterHandler) LevelUp(st *session.GameState, attr string) (Reply, error) {
	var boost character.Attribute
	if attr != "" {
		a, ok := character.ParseAttribute(attr)
		if !ok {
			return Reply{}, gameerr.Validationf("unknown attribute %q: use a SPECIAL name like strength or agi", attr)
		}
		boost = a
	}
	gained, err := st.Character.LevelUp(boost)
	if err != nil {
		return Reply{}, err
	}
	c := st.Character
	r := Reply{mutated: true}
	r.say("Level up! You are now level %d (+%d). HP %d, AP %d.", c.Level, gained, c.MaxHP, c.MaxAP)
	if boost != "" {
		r.say("%s is now %d.", strings.ToUpper(boost.Abbrev()), c.Special.Get(boost))
	}
	return r, nil
}

// resolveItem maps what the player typed to an inventory ID, matching the
// ID form first and then the display name.
func resolveItem(c *character.Character, raw string) string {
	id := command.ItemID(raw)
	if _, ok := c.FindItem(id); ok {
		return id
	}
	for _, it := range c.Inventory {
		if strings.EqualFold(it.Name, strings.TrimSpace(raw)) {
			return it.ID
		}
	}
	return id
}
