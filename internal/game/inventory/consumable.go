package inventory

import "fmt"

// EffectKind names what a consumable does when used.
type EffectKind string

// Consumable effects.
const (
	EffectHeal            EffectKind = "heal"
	EffectRemoveRadiation EffectKind = "remove_radiation"
	EffectStatBuff        EffectKind = "stat_buff"
)

// Effect is a tagged consumable effect. Stat and Duration apply to stat_buff only.
type Effect struct {
	Kind     EffectKind `json:"kind" yaml:"kind"`
	Amount   int        `json:"amount" yaml:"amount"`
	Stat     string     `json:"stat,omitempty" yaml:"stat,omitempty"`
	Duration int        `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Heal returns a healing effect.
func Heal(amount int) Effect {
	return Effect{Kind: EffectHeal, Amount: amount}
}

// RemoveRadiation returns a radiation-purging effect.
func RemoveRadiation(amount int) Effect {
	return Effect{Kind: EffectRemoveRadiation, Amount: amount}
}

// StatBuff returns a temporary attribute boost lasting duration combat rounds.
func StatBuff(stat string, amount, duration int) Effect {
	return Effect{Kind: EffectStatBuff, Stat: stat, Amount: amount, Duration: duration}
}

// Validate checks the effect's invariants.
func (e Effect) Validate() error {
	switch e.Kind {
	case EffectHeal, EffectRemoveRadiation:
		if e.Amount <= 0 {
			return fmt.Errorf("%s amount must be > 0, got %d", e.Kind, e.Amount)
		}
	case EffectStatBuff:
		if e.Stat == "" {
			return fmt.Errorf("stat_buff requires a stat")
		}
		if e.Amount == 0 {
			return fmt.Errorf("stat_buff amount must be non-zero")
		}
		if e.Duration < 1 {
			return fmt.Errorf("stat_buff duration must be >= 1, got %d", e.Duration)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Consumable is the payload of a consumable item.
type Consumable struct {
	Effect Effect `json:"effect" yaml:"effect"`
}
