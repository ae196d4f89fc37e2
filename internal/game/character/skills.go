package character

import "strings"

// Skills are the eighteen proficiencies derived from Special. They are never
// edited directly; DeriveSkills recomputes them whenever Special changes.
type Skills struct {
	SmallGuns     int `json:"small_guns"`
	BigGuns       int `json:"big_guns"`
	EnergyWeapons int `json:"energy_weapons"`
	Unarmed       int `json:"unarmed"`
	MeleeWeapons  int `json:"melee_weapons"`
	Throwing      int `json:"throwing"`
	FirstAid      int `json:"first_aid"`
	Doctor        int `json:"doctor"`
	Sneak         int `json:"sneak"`
	Lockpick      int `json:"lockpick"`
	Steal         int `json:"steal"`
	Traps         int `json:"traps"`
	Science       int `json:"science"`
	Repair        int `json:"repair"`
	Speech        int `json:"speech"`
	Barter        int `json:"barter"`
	Gambling      int `json:"gambling"`
	Outdoorsman   int `json:"outdoorsman"`
}

// DeriveSkills computes every skill from s.
func DeriveSkills(s Special) Skills {
	return Skills{
		SmallGuns:     5 + s.Agility*4,
		BigGuns:       s.Agility * 2,
		EnergyWeapons: s.Agility * 2,
		Unarmed:       30 + (s.Agility+s.Strength)*2,
		MeleeWeapons:  20 + (s.Agility+s.Strength)*2,
		Throwing:      s.Agility * 4,
		FirstAid:      (s.Perception + s.Intelligence) * 2,
		Doctor:        5 + s.Perception + s.Intelligence,
		Sneak:         5 + s.Agility*3,
		Lockpick:      10 + s.Perception + s.Agility,
		Steal:         s.Agility * 3,
		Traps:         10 + s.Perception + s.Agility,
		Science:       s.Intelligence * 4,
		Repair:        s.Intelligence * 3,
		Speech:        s.Charisma * 5,
		Barter:        s.Charisma * 4,
		Gambling:      s.Luck * 5,
		Outdoorsman:   s.Endurance + s.Intelligence,
	}
}

// SkillNames lists the skill keys accepted by Get.
var SkillNames = []string{
	"small_guns", "big_guns", "energy_weapons", "unarmed", "melee_weapons", "throwing",
	"first_aid", "doctor", "sneak", "lockpick", "steal", "traps",
	"science", "repair", "speech", "barter", "gambling", "outdoorsman",
}

// Get returns the skill named name. Spaces and hyphens are treated as underscores.
func (k Skills) Get(name string) (int, bool) {
	key := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(name)))
	switch key {
	case "small_guns":
		return k.SmallGuns, true
	case "big_guns":
		return k.BigGuns, true
	case "energy_weapons":
		return k.EnergyWeapons, true
	case "unarmed":
		return k.Unarmed, true
	case "melee_weapons", "melee":
		return k.MeleeWeapons, true
	case "throwing":
		return k.Throwing, true
	case "first_aid":
		return k.FirstAid, true
	case "doctor":
		return k.Doctor, true
	case "sneak":
		return k.Sneak, true
	case "lockpick":
		return k.Lockpick, true
	case "steal":
		return k.Steal, true
	case "traps":
		return k.Traps, true
	case "science":
		return k.Science, true
	case "repair":
		return k.Repair, true
	case "speech":
		return k.Speech, true
	case "barter":
		return k.Barter, true
	case "gambling":
		return k.Gambling, true
	case "outdoorsman":
		return k.Outdoorsman, true
	}
	return 0, false
}
