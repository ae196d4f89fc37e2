package session

import (
	"encoding/json"
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/game/character"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Version is the save format written by Marshal. Version 0 marks saves that
// predate versioning; they carry a flat story log instead of a conversation.
const Version = 2

// Marshal encodes the game as indented JSON stamped with Version.
func Marshal(g *GameState) ([]byte, error) {
	g.Version = Version
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "session: encoding save")
	}
	return data, nil
}

// Unmarshal decodes a save, migrating older formats and repairing
// invariants with rules. A nil clk uses the system clock.
//
// Postcondition: Returns a persistence error for malformed JSON, a missing
// character or a save written by a newer version.
func Unmarshal(data []byte, rules character.Rules, clk clock.Clock) (*GameState, error) {
	var g GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "session: decoding save")
	}
	if g.Version > Version {
		return nil, gameerr.Newf(gameerr.KindPersistence, "session: save version %d is newer than supported version %d", g.Version, Version)
	}
	if g.Character == nil {
		return nil, gameerr.New(gameerr.KindPersistence, "session: save has no character")
	}
	if err := character.ValidateName(g.Character.Name); err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "session: save character")
	}
	if clk == nil {
		clk = clock.New()
	}
	g.clock = clk
	g.Reconcile(rules)
	g.Version = Version
	return &g, nil
}

// String describes the save briefly, for listings.
func (g *GameState) String() string {
	return fmt.Sprintf("%s, day %d, %s", g.Character.Summary(), g.Day, g.Location)
}
