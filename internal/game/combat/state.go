package combat

import (
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// State is the encounter in progress, owned by the game session.
//
// Invariant: !Active implies Round == 0 and Enemies is empty.
type State struct {
	Active  bool    `json:"active"`
	Round   int     `json:"round"`
	Enemies []Enemy `json:"enemies"`
}

// Start activates combat with a copy of enemies, replacing any prior roster.
//
// Precondition: len(enemies) > 0.
// Postcondition: Active, Round == 1.
func (s *State) Start(enemies []Enemy) error {
	if len(enemies) == 0 {
		return gameerr.Validationf("combat needs at least one enemy")
	}
	roster := make([]Enemy, len(enemies))
	copy(roster, enemies)
	s.Active = true
	s.Round = 1
	s.Enemies = roster
	return nil
}

// End clears the roster and resets the round counter.
func (s *State) End() {
	s.Active = false
	s.Round = 0
	s.Enemies = nil
}

// NextRound advances the round counter while combat is active.
func (s *State) NextRound() {
	if s.Active {
		s.Round++
	}
}

// RemoveDeadEnemies drops enemies with CurrentHP <= 0 and returns them.
//
// Postcondition: Enemies holds exactly the living enemies in their previous
// relative order.
func (s *State) RemoveDeadEnemies() []Enemy {
	var dead []Enemy
	living := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.IsAlive() {
			living = append(living, e)
			continue
		}
		dead = append(dead, e)
	}
	s.Enemies = living
	return dead
}

// Target returns the enemy at the zero-based index.
//
// Postcondition: Returns an InvalidTarget error when the index is out of
// range, the enemy is dead, or combat is inactive.
func (s *State) Target(index int) (*Enemy, error) {
	if !s.Active {
		return nil, gameerr.New(gameerr.KindInvalidTarget, "there is nothing to attack")
	}
	if index < 0 || index >= len(s.Enemies) {
		return nil, gameerr.Newf(gameerr.KindInvalidTarget, "no enemy at position %d", index+1)
	}
	e := &s.Enemies[index]
	if !e.IsAlive() {
		return nil, gameerr.Newf(gameerr.KindInvalidTarget, "%s is already down", e.Name)
	}
	return e, nil
}

// LivingEnemies returns a copy of the enemies still standing, in roster order.
func (s *State) LivingEnemies() []Enemy {
	var out []Enemy
	for _, e := range s.Enemies {
		if e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// AllEnemiesDead reports whether no enemy is standing.
func (s *State) AllEnemiesDead() bool {
	for i := range s.Enemies {
		if s.Enemies[i].IsAlive() {
			return false
		}
	}
	return true
}

// TotalXP sums the rewards of the enemies already down.
func (s *State) TotalXP() int {
	total := 0
	for _, e := range s.Enemies {
		if !e.IsAlive() {
			total += e.XPReward
		}
	}
	return total
}

// Reconcile restores invariants on a state read from storage.
func (s *State) Reconcile() {
	if s.Active {
		for i := range s.Enemies {
			e := &s.Enemies[i]
			e.CurrentHP = min(e.CurrentHP, e.MaxHP)
		}
		s.RemoveDeadEnemies()
	}
	if !s.Active || len(s.Enemies) == 0 {
		s.End()
		return
	}
	s.Round = max(s.Round, 1)
}
