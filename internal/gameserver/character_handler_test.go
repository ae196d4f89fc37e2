package gameserver_test

import (
	"context"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

func (s *GameSuite) TestEquipByDisplayName() {
	r := s.turn("equip Baseball Bat")
	s.Equal("You equip the Baseball Bat.", r.Lines[0])
	s.Equal("baseball_bat", s.state.Character.EquippedWeapon)

	found := false
	for _, line := range s.turn("inv").Lines {
		if strings.HasPrefix(line, "Baseball Bat [weapon]") {
			found = true
		}
	}
	s.True(found)
}

func (s *GameSuite) TestEquipUnknownItem() {
	_, err := s.game.Turn(context.Background(), "equip plasma rifle")
	s.ErrorIs(err, gameerr.ErrNotFound)
}

func (s *GameSuite) TestLevelUpNeedsExperience() {
	_, err := s.game.Turn(context.Background(), "levelup str")
	s.ErrorIs(err, gameerr.ErrValidation)

	s.Require().NoError(s.state.Character.AddExperience(s.state.Character.XPToNextLevel()))
	r := s.turn("levelup strength")
	s.Equal(2, s.state.Character.Level)
	s.Equal(6, s.state.Character.Special.Strength)
	s.Contains(r.Lines[1], "is now 6")
}

func (s *GameSuite) TestStatsSheet() {
	r := s.turn("stats")
	s.Contains(r.Lines[0], "Vault Dweller, level 1")
}
