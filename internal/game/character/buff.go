package character

// Buff is a temporary attribute modifier from a consumable.
type Buff struct {
	Source     string    `json:"source"`
	Stat       Attribute `json:"stat"`
	Amount     int       `json:"amount"`
	RoundsLeft int       `json:"rounds_left"`
}

// EffectiveSpecial returns Special with active buffs applied, each score
// clamped to [MinStat, MaxStat].
func (c *Character) EffectiveSpecial() Special {
	s := c.Special
	for _, b := range c.Buffs {
		v := min(max(s.Get(b.Stat)+b.Amount, MinStat), MaxStat)
		s = s.With(b.Stat, v)
	}
	return s
}

// EffectiveSkills derives skills from EffectiveSpecial.
func (c *Character) EffectiveSkills() Skills {
	if len(c.Buffs) == 0 {
		return c.Skills
	}
	return DeriveSkills(c.EffectiveSpecial())
}

// TickBuffs advances every buff by one round and returns the sources of
// buffs that expired.
func (c *Character) TickBuffs() []string {
	var expired []string
	kept := c.Buffs[:0]
	for _, b := range c.Buffs {
		b.RoundsLeft--
		if b.RoundsLeft <= 0 {
			expired = append(expired, b.Source)
			continue
		}
		kept = append(kept, b)
	}
	c.Buffs = kept
	return expired
}
