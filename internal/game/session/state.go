// Package session holds the GameState aggregate: the character, the
// encounter in progress, the worldbook and the conversation, with mutators
// that keep them consistent.
package session

import (
	"slices"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/inventory"
	"github.com/ctclostio/MojaveAdventure/internal/game/story"
	"github.com/ctclostio/MojaveAdventure/internal/game/world"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Starting values for a new game.
const (
	StartingLocation = "Vault 13 Entrance"
	StartingQuest    = "Find the Water Chip"
	StartingWorldID  = "vault_13"
)

// ErrCombatActive is returned when an encounter starts while another is in
// progress.
var ErrCombatActive = gameerr.New(gameerr.KindConflict, "session: combat already active")

// ErrTravelInCombat is returned when the location changes mid-encounter.
var ErrTravelInCombat = gameerr.New(gameerr.KindConflict, "you can't travel in the middle of a fight")

// GameState is everything a save file holds.
//
// Invariant: Day >= 1; Character is non-nil; Worldbook and Conversation are
// non-nil.
type GameState struct {
	Version      int                  `json:"version"`
	Character    *character.Character `json:"character"`
	Combat       combat.State         `json:"combat"`
	Conversation *story.Conversation  `json:"conversation"`
	// Story is the flat log of older saves. It is migrated into
	// Conversation on load and then dropped.
	Story           *story.Log       `json:"story,omitempty"`
	Location        string           `json:"location"`
	QuestLog        []string         `json:"quest_log"`
	CompletedQuests []string         `json:"completed_quests,omitempty"`
	Worldbook       *world.Worldbook `json:"worldbook"`
	Day             int              `json:"day"`

	clock clock.Clock
}

// New starts a game for c at the Vault 13 entrance with the water chip
// quest. A nil clk uses the system clock.
//
// Postcondition: Returns a validation error when c is nil.
func New(c *character.Character, clk clock.Clock) (*GameState, error) {
	if c == nil {
		return nil, gameerr.Validationf("session: character is required")
	}
	if clk == nil {
		clk = clock.New()
	}
	wb := world.Default(clk)
	if err := wb.SetCurrentLocation(StartingWorldID); err != nil {
		return nil, err
	}
	return &GameState{
		Version:      Version,
		Character:    c,
		Conversation: story.NewConversation(),
		Location:     StartingLocation,
		QuestLog:     []string{StartingQuest},
		Worldbook:    wb,
		Day:          1,
		clock:        clk,
	}, nil
}

// SetClock replaces the clock used for turn and worldbook timestamps.
func (g *GameState) SetClock(clk clock.Clock) {
	g.clock = clk
	g.Worldbook.SetClock(clk)
}

func (g *GameState) clk() clock.Clock {
	if g.clock == nil {
		g.clock = clock.New()
	}
	return g.clock
}

// StartCombat begins an encounter against enemies.
//
// Postcondition: Returns ErrCombatActive while an encounter is running, or a
// validation error for an empty roster; state is unchanged on error.
func (g *GameState) StartCombat(enemies []combat.Enemy) error {
	if g.Combat.Active {
		return ErrCombatActive
	}
	if err := g.Combat.Start(enemies); err != nil {
		return err
	}
	names := make([]string, len(enemies))
	for i, e := range enemies {
		names[i] = e.Name
	}
	g.Worldbook.AddEvent("combat", "Combat started against "+strings.Join(names, ", "), "")
	return nil
}

// InCombat reports whether an encounter is running.
func (g *GameState) InCombat() bool {
	return g.Combat.Active
}

// GrantItem adds it to the character's inventory.
func (g *GameState) GrantItem(it inventory.Item) error {
	return g.Character.AddItem(it)
}

// ChangeLocation travels to a known worldbook location, counting a visit and
// updating the location display.
//
// Postcondition: Returns ErrTravelInCombat during an encounter and an
// unknown-location error when id is not in the worldbook; nothing changes on
// error.
func (g *GameState) ChangeLocation(id string) error {
	if g.Combat.Active {
		return ErrTravelInCombat
	}
	if err := g.Worldbook.VisitLocation(id); err != nil {
		return err
	}
	loc, _ := g.Worldbook.Location(id)
	g.Location = loc.Name
	return nil
}

// RecordPlayerTurn appends the player's input to the conversation.
func (g *GameState) RecordPlayerTurn(text string) {
	g.Conversation.AddPlayerTurn(text, g.clk().Now())
}

// RecordNarration appends the narrator's reply to the conversation.
func (g *GameState) RecordNarration(text string) {
	g.Conversation.AddDMTurn(text, g.clk().Now())
}

// ReviseNarration swaps the latest narrator reply for text. It reports false
// and changes nothing when the narrator has not spoken yet.
func (g *GameState) ReviseNarration(text string) bool {
	return g.Conversation.ReplaceLastDMTurn(text, g.clk().Now())
}

// LastPlayerInput returns the most recent thing the player said.
func (g *GameState) LastPlayerInput() (string, bool) {
	turns := g.Conversation.Turns
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Speaker == story.SpeakerPlayer {
			return turns[i].Text, true
		}
	}
	return "", false
}

// AddQuest puts a quest in the log.
//
// Postcondition: Returns a validation error for a blank quest and a
// conflict error when it is already active.
func (g *GameState) AddQuest(quest string) error {
	quest = strings.TrimSpace(quest)
	if quest == "" {
		return gameerr.Validationf("session: quest must not be empty")
	}
	if slices.Contains(g.QuestLog, quest) {
		return gameerr.Newf(gameerr.KindConflict, "session: quest %q already active", quest)
	}
	g.QuestLog = append(g.QuestLog, quest)
	return nil
}

// CompleteQuest moves an active quest to the completed list.
func (g *GameState) CompleteQuest(quest string) error {
	i := slices.Index(g.QuestLog, strings.TrimSpace(quest))
	if i < 0 {
		return gameerr.Newf(gameerr.KindNotFound, "session: no active quest %q", quest)
	}
	g.CompletedQuests = append(g.CompletedQuests, g.QuestLog[i])
	g.QuestLog = slices.Delete(g.QuestLog, i, i+1)
	return nil
}

// AdvanceDay moves the calendar forward.
func (g *GameState) AdvanceDay(days int) error {
	if days < 1 {
		return gameerr.Validationf("session: days must be positive, got %d", days)
	}
	g.Day += days
	return nil
}

// Reconcile restores every invariant after decoding.
func (g *GameState) Reconcile(rules character.Rules) {
	g.Character.SetRules(rules)
	g.Character.Reconcile()
	g.Combat.Reconcile()
	if g.Worldbook == nil {
		g.Worldbook = world.Default(g.clk())
	}
	g.Worldbook.Reconcile()
	g.Worldbook.SetClock(g.clk())
	if g.Conversation.Empty() && !g.Story.Empty() {
		g.Conversation = story.FromLog(g.Story)
	}
	if g.Conversation == nil {
		g.Conversation = story.NewConversation()
	}
	g.Conversation.Reconcile()
	g.Story = nil
	if g.QuestLog == nil {
		g.QuestLog = []string{}
	}
	if g.Day < 1 {
		g.Day = 1
	}
	if g.Location == "" {
		g.Location = StartingLocation
		if loc, ok := g.Worldbook.Current(); ok {
			g.Location = loc.Name
		}
	}
}
