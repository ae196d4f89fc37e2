package combat

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Sentinel errors reported by the Engine.
var (
	ErrNotInCombat    = gameerr.New(gameerr.KindValidation, "not in combat")
	ErrInsufficientAP = gameerr.New(gameerr.KindValidation, "not enough AP")
)

// Config holds the round tunables.
type Config struct {
	Attack         AttackConfig
	BaseArmorClass int
	UnarmedAPCost  int
	UseItemAPCost  int
	FleeBaseChance int
	FleePerAgility int
}

// DefaultConfig returns the standard rules: AC 10 + AGI + armor, 3 AP
// unarmed, 2 AP per item, 40% + 4% per AGI to flee.
func DefaultConfig() Config {
	return Config{
		Attack:         DefaultAttackConfig(),
		BaseArmorClass: 10,
		UnarmedAPCost:  3,
		UseItemAPCost:  2,
		FleeBaseChance: 40,
		FleePerAgility: 4,
	}
}

// Validate reports every out-of-range value.
func (c Config) Validate() error {
	errs := []error{c.Attack.Validate()}
	if c.UnarmedAPCost < 1 {
		errs = append(errs, fmt.Errorf("combat: unarmed AP cost must be >= 1, got %d", c.UnarmedAPCost))
	}
	if c.UseItemAPCost < 0 {
		errs = append(errs, fmt.Errorf("combat: use-item AP cost must be >= 0, got %d", c.UseItemAPCost))
	}
	if c.FleeBaseChance < 0 || c.FleePerAgility < 0 {
		errs = append(errs, fmt.Errorf("combat: flee chances must be >= 0"))
	}
	return errors.Join(errs...)
}

// LootSource mints items for enemy drops. *inventory.Catalog satisfies it.
type LootSource interface {
	Grant(id string) (inventory.Item, error)
}

// Engine resolves player and enemy actions against a State. It holds no
// encounter state of its own; callers serialize access to the State.
type Engine struct {
	cfg    Config
	roller Roller
	loot   LootSource
	logger *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: cfg passes Validate; roller must not be nil. loot may be nil,
// in which case enemies drop caps only.
func NewEngine(cfg Config, roller Roller, loot LootSource, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, roller: roller, loot: loot, logger: logger}
}

// Config returns the engine's tunables.
func (e *Engine) Config() Config {
	return e.cfg
}

// Act dispatches a.
func (e *Engine) Act(c *character.Character, st *State, a Action) ([]RoundEvent, error) {
	switch a.Type {
	case ActionAttack:
		return e.PlayerAttack(c, st, a.Target)
	case ActionUseItem:
		return e.UseItem(c, st, a.ItemID)
	case ActionFlee:
		return e.Flee(c, st)
	case ActionEndTurn:
		return e.EndTurn(c, st)
	}
	return nil, gameerr.Validationf("unknown combat action %q", a.Type.String())
}

// PlayerAttack attacks the enemy at the zero-based target index with the
// equipped weapon.
//
// Postcondition: On error nothing changed and no AP was spent. On success the
// attack's AP is spent, a killed enemy's XP and loot are awarded and it is
// removed from the roster, and combat ends if no enemy is left. When the
// player can no longer afford an action the enemies take their turn.
func (e *Engine) PlayerAttack(c *character.Character, st *State, target int) ([]RoundEvent, error) {
	if !st.Active {
		return nil, ErrNotInCombat
	}
	en, err := st.Target(target)
	if err != nil {
		return nil, err
	}
	expr, err := DamageExpression(c.EquippedDamage(), c.EffectiveSpecial().Strength)
	if err != nil {
		return nil, fmt.Errorf("combat: weapon damage: %w", err)
	}
	cost := c.WeaponAPCost(e.cfg.UnarmedAPCost)
	if !c.UseAP(cost) {
		return nil, fmt.Errorf("combat: attack needs %d AP, have %d: %w", cost, c.CurrentAP, ErrInsufficientAP)
	}

	ar := AttackRoll(c.WeaponSkill(), en.ArmorClass, e.cfg.Attack, e.roller)
	ev := RoundEvent{Kind: EventAttack, Actor: c.Name, Target: en.Name, Attack: &ar}
	e.logger.Debug("player attack",
		zap.String("target", en.Name),
		zap.Int("roll", ar.Roll),
		zap.Int("chance", ar.Chance),
		zap.Bool("hit", ar.Hit),
	)
	if !ar.Hit {
		ev.Narrative = fmt.Sprintf("You miss %s.", en.Name)
		return e.afterPlayerAction(c, st, []RoundEvent{ev}), nil
	}

	dmg, _ := RollDamage(expr, ar.Critical, c.CriticalMultiplier(), e.roller)
	_ = en.TakeDamage(dmg)
	ev.Damage = dmg
	if ar.Critical {
		ev.Narrative = fmt.Sprintf("CRITICAL HIT! %d damage to %s.", dmg, en.Name)
	} else {
		ev.Narrative = fmt.Sprintf("You hit %s for %d damage.", en.Name, dmg)
	}
	events := []RoundEvent{ev}

	if !en.IsAlive() {
		dead := *en
		if err := c.AddExperience(dead.XPReward); err != nil {
			return events, err
		}
		kill := narrate(EventKill, "%s is defeated! +%d XP", dead.Name, dead.XPReward)
		kill.Actor = dead.Name
		events = append(events, kill)
		events = append(events, e.collectLoot(c, dead)...)
		events = settle(st, events)
	}
	return e.afterPlayerAction(c, st, events), nil
}

// UseItem applies a consumable mid-fight for Config.UseItemAPCost AP.
//
// Postcondition: On error neither the item nor AP was spent.
func (e *Engine) UseItem(c *character.Character, st *State, id string) ([]RoundEvent, error) {
	if !st.Active {
		return nil, ErrNotInCombat
	}
	it, ok := c.FindItem(id)
	if !ok {
		return nil, gameerr.Newf(gameerr.KindNotFound, "you don't have %q", id)
	}
	if it.Kind != inventory.KindConsumable {
		return nil, gameerr.Validationf("%s cannot be used", it.Name)
	}
	cost := e.cfg.UseItemAPCost
	if c.CurrentAP < cost {
		return nil, fmt.Errorf("combat: using an item needs %d AP, have %d: %w", cost, c.CurrentAP, ErrInsufficientAP)
	}
	msg, err := c.UseConsumable(id)
	if err != nil {
		return nil, err
	}
	c.UseAP(cost)
	ev := RoundEvent{Kind: EventItem, Actor: c.Name, Narrative: msg}
	return e.afterPlayerAction(c, st, []RoundEvent{ev}), nil
}

// Flee attempts to escape with an agility check. On failure the enemies take
// their turn.
func (e *Engine) Flee(c *character.Character, st *State) ([]RoundEvent, error) {
	if !st.Active {
		return nil, ErrNotInCombat
	}
	chance := e.FleeChance(c)
	roll := e.roller.Intn(100) + 1
	e.logger.Debug("flee attempt", zap.Int("roll", roll), zap.Int("chance", chance))
	if roll <= chance {
		st.End()
		c.RestoreAP()
		return []RoundEvent{narrate(EventFlee, "You escape! (%d vs %d%%)", roll, chance)}, nil
	}
	events := []RoundEvent{narrate(EventFlee, "You fail to get away. (%d vs %d%%)", roll, chance)}
	return append(events, e.enemyPhase(c, st)...), nil
}

// FleeChance returns the clamped escape percentage for c.
func (e *Engine) FleeChance(c *character.Character) int {
	chance := e.cfg.FleeBaseChance + e.cfg.FleePerAgility*c.EffectiveSpecial().Agility
	return min(max(chance, e.cfg.Attack.MinChance), e.cfg.Attack.MaxChance)
}

// EndTurn forfeits the player's remaining AP: each living enemy acts once in
// roster order, then the round advances and AP is restored.
func (e *Engine) EndTurn(c *character.Character, st *State) ([]RoundEvent, error) {
	if !st.Active {
		return nil, ErrNotInCombat
	}
	return e.enemyPhase(c, st), nil
}

// CanAct reports whether c can afford any action this round.
func (e *Engine) CanAct(c *character.Character) bool {
	cheapest := c.WeaponAPCost(e.cfg.UnarmedAPCost)
	if hasConsumable(c) {
		cheapest = min(cheapest, e.cfg.UseItemAPCost)
	}
	return c.CurrentAP >= cheapest
}

func (e *Engine) afterPlayerAction(c *character.Character, st *State, events []RoundEvent) []RoundEvent {
	if !st.Active || e.CanAct(c) {
		return events
	}
	return append(events, e.enemyPhase(c, st)...)
}

func hasConsumable(c *character.Character) bool {
	for _, it := range c.Inventory {
		if it.Kind == inventory.KindConsumable {
			return true
		}
	}
	return false
}
