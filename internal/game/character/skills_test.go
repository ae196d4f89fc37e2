package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/ctclostio/MojaveAdventure/internal/game/character"
)

func TestDeriveSkills_Formulas(t *testing.T) {
	s := character.Special{Strength: 6, Perception: 7, Endurance: 4, Charisma: 3, Intelligence: 8, Agility: 5, Luck: 2}
	k := character.DeriveSkills(s)
	assert.Equal(t, 25, k.SmallGuns)
	assert.Equal(t, 10, k.BigGuns)
	assert.Equal(t, 10, k.EnergyWeapons)
	assert.Equal(t, 52, k.Unarmed)
	assert.Equal(t, 42, k.MeleeWeapons)
	assert.Equal(t, 20, k.Throwing)
	assert.Equal(t, 30, k.FirstAid)
	assert.Equal(t, 20, k.Doctor)
	assert.Equal(t, 20, k.Sneak)
	assert.Equal(t, 22, k.Lockpick)
	assert.Equal(t, 15, k.Steal)
	assert.Equal(t, 22, k.Traps)
	assert.Equal(t, 32, k.Science)
	assert.Equal(t, 24, k.Repair)
	assert.Equal(t, 15, k.Speech)
	assert.Equal(t, 12, k.Barter)
	assert.Equal(t, 10, k.Gambling)
	assert.Equal(t, 12, k.Outdoorsman)
}

func TestDeriveSkills_PureFunctionOfSpecial(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stat := rapid.IntRange(1, 10)
		s := character.Special{
			Strength: stat.Draw(rt, "s"), Perception: stat.Draw(rt, "p"), Endurance: stat.Draw(rt, "e"),
			Charisma: stat.Draw(rt, "c"), Intelligence: stat.Draw(rt, "i"), Agility: stat.Draw(rt, "a"),
			Luck: stat.Draw(rt, "l"),
		}
		assert.Equal(rt, character.DeriveSkills(s), character.DeriveSkills(s))
		k := character.DeriveSkills(s)
		for _, name := range character.SkillNames {
			v, ok := k.Get(name)
			assert.True(rt, ok, name)
			assert.GreaterOrEqual(rt, v, 0)
		}
	})
}

func TestSkills_GetNormalisesNames(t *testing.T) {
	k := character.DeriveSkills(character.Uniform(5))
	v, ok := k.Get("Small Guns")
	assert.True(t, ok)
	assert.Equal(t, k.SmallGuns, v)
	v, ok = k.Get("first-aid")
	assert.True(t, ok)
	assert.Equal(t, k.FirstAid, v)
	_, ok = k.Get("juggling")
	assert.False(t, ok)
}

func TestParseAttribute(t *testing.T) {
	a, ok := character.ParseAttribute("AGI")
	assert.True(t, ok)
	assert.Equal(t, character.Agility, a)
	a, ok = character.ParseAttribute("strength")
	assert.True(t, ok)
	assert.Equal(t, character.Strength, a)
	_, ok = character.ParseAttribute("wisdom")
	assert.False(t, ok)
}
