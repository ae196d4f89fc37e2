package combat

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
)

// EventKind classifies a RoundEvent.
type EventKind int

const (
	EventAttack EventKind = iota
	EventKill
	EventLoot
	EventItem
	EventEnemyAttack
	EventFlee
	EventRound
	EventBuffExpired
	EventVictory
	EventDefeat
)

// RoundEvent records what happened when one action was resolved.
type RoundEvent struct {
	Kind      EventKind
	Actor     string
	Target    string
	Attack    *AttackResult // nil when no attack roll was made
	Damage    int
	Narrative string
}

func narrate(kind EventKind, format string, args ...any) RoundEvent {
	return RoundEvent{Kind: kind, Narrative: fmt.Sprintf(format, args...)}
}

// enemyPhase lets each living enemy act once in roster order, then advances
// the round. Combat ends as soon as the player drops.
func (e *Engine) enemyPhase(c *character.Character, st *State) []RoundEvent {
	var events []RoundEvent
	ac := c.ArmorClass(e.cfg.BaseArmorClass)
	dr := c.DamageReduction()

	for i := range st.Enemies {
		en := &st.Enemies[i]
		if !en.IsAlive() {
			continue
		}
		ar := AttackRoll(en.Skill, ac, e.cfg.Attack, e.roller)
		ev := RoundEvent{Kind: EventEnemyAttack, Actor: en.Name, Target: c.Name, Attack: &ar}
		if !ar.Hit {
			ev.Narrative = fmt.Sprintf("%s misses you.", en.Name)
			events = append(events, ev)
			continue
		}

		raw, err := CalculateDamage(en.Damage, en.Strength, ar.Critical, character.DefaultCriticalMultiplier, e.roller)
		if err != nil {
			e.logger.Warn("enemy damage formula rejected",
				zap.String("enemy", en.Name),
				zap.String("damage", en.Damage),
				zap.Error(err),
			)
			ev.Narrative = fmt.Sprintf("%s lunges but fumbles.", en.Name)
			events = append(events, ev)
			continue
		}
		dmg := raw * (100 - min(dr, 100)) / 100
		_ = c.TakeDamage(dmg)
		ev.Damage = dmg
		if ar.Critical {
			ev.Narrative = fmt.Sprintf("%s lands a CRITICAL hit for %d damage!", en.Name, dmg)
		} else {
			ev.Narrative = fmt.Sprintf("%s hits you for %d damage.", en.Name, dmg)
		}
		events = append(events, ev)

		if !c.IsAlive() {
			events = append(events, narrate(EventDefeat, "You have been defeated."))
			st.End()
			return events
		}
	}

	st.NextRound()
	c.RestoreAP()
	for _, src := range c.TickBuffs() {
		events = append(events, narrate(EventBuffExpired, "%s wears off.", src))
	}
	events = append(events, narrate(EventRound, "Round %d. AP restored to %d.", st.Round, c.CurrentAP))
	return events
}

// collectLoot hands a dead enemy's caps and items to the player.
func (e *Engine) collectLoot(c *character.Character, en Enemy) []RoundEvent {
	var got []string
	if en.LootCaps > 0 {
		if err := c.AddCaps(en.LootCaps); err == nil {
			got = append(got, fmt.Sprintf("%d caps", en.LootCaps))
		}
	}
	if e.loot != nil {
		for _, id := range en.LootItems {
			it, err := e.loot.Grant(id)
			if err == nil {
				err = c.AddItem(it)
			}
			if err != nil {
				e.logger.Warn("loot item skipped", zap.String("enemy", en.Name), zap.String("item", id), zap.Error(err))
				continue
			}
			got = append(got, it.Name)
		}
	}
	if len(got) == 0 {
		return nil
	}
	ev := narrate(EventLoot, "%s dropped %s.", en.Name, strings.Join(got, ", "))
	ev.Actor = en.Name
	return []RoundEvent{ev}
}

// settle removes the dead and ends combat once the roster is empty.
func settle(st *State, events []RoundEvent) []RoundEvent {
	st.RemoveDeadEnemies()
	if st.Active && len(st.Enemies) == 0 {
		st.End()
		events = append(events, narrate(EventVictory, "Victory! All enemies defeated."))
	}
	return events
}
