package world

import (
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
)

//go:embed content/seed.yaml
var builtinContent embed.FS

// Seed is the YAML representation of a starting worldbook.
type Seed struct {
	CurrentLocation string      `yaml:"current_location"`
	Locations       []*Location `yaml:"locations"`
	NPCs            []*NPC      `yaml:"npcs"`
}

// LoadSeedFromFile reads and validates a seed YAML file.
//
// Precondition: path must point to a valid YAML seed file.
// Postcondition: Returns a validated Seed or a non-nil error.
func LoadSeedFromFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	return LoadSeedFromBytes(data)
}

// LoadSeedFromBytes parses and validates a seed from YAML bytes.
//
// Postcondition: Returns a Seed whose entries are valid, IDs unique and
// current location known, or a non-nil error.
func LoadSeedFromBytes(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating seed: %w", err)
	}
	return &s, nil
}

// Validate checks entries, ID uniqueness and the current location.
func (s *Seed) Validate() error {
	locs := make(map[string]bool, len(s.Locations))
	for i, l := range s.Locations {
		if l == nil {
			return fmt.Errorf("locations[%d] is empty", i)
		}
		if err := l.Validate(); err != nil {
			return err
		}
		if locs[l.ID] {
			return fmt.Errorf("duplicate location ID %q", l.ID)
		}
		locs[l.ID] = true
	}
	npcs := make(map[string]bool, len(s.NPCs))
	for i, n := range s.NPCs {
		if n == nil {
			return fmt.Errorf("npcs[%d] is empty", i)
		}
		if err := n.Validate(); err != nil {
			return err
		}
		if npcs[n.ID] {
			return fmt.Errorf("duplicate npc ID %q", n.ID)
		}
		npcs[n.ID] = true
	}
	if s.CurrentLocation != "" && !locs[s.CurrentLocation] {
		return fmt.Errorf("current location %q is not a seeded location", s.CurrentLocation)
	}
	return nil
}

// Build returns a fresh worldbook populated from the seed. Entries are
// copied, so one seed can build many worldbooks.
func (s *Seed) Build(clk clock.Clock) *Worldbook {
	w := New(clk)
	for _, l := range s.Locations {
		loc := *l
		loc.Notes = append([]string(nil), l.Notes...)
		if l.State != nil {
			loc.State = make(map[string]string, len(l.State))
			for k, v := range l.State {
				loc.State[k] = v
			}
		}
		w.Locations[loc.ID] = &loc
	}
	for _, n := range s.NPCs {
		npc := *n
		npc.Personality = append([]string(nil), n.Personality...)
		npc.Knowledge = append([]string(nil), n.Knowledge...)
		npc.Notes = append([]string(nil), n.Notes...)
		npc.Disposition = clampDisposition(npc.Disposition)
		w.NPCs[npc.ID] = &npc
	}
	w.CurrentLocation = s.CurrentLocation
	return w
}

var builtinSeed = sync.OnceValues(func() (*Seed, error) {
	data, err := builtinContent.ReadFile("content/seed.yaml")
	if err != nil {
		return nil, err
	}
	return LoadSeedFromBytes(data)
})

// BuiltinSeed returns the seed shipped with the binary.
func BuiltinSeed() (*Seed, error) {
	return builtinSeed()
}

// Default returns a worldbook built from the shipped seed: Vault 13 as the
// current location. It panics only if the embedded seed is malformed.
func Default(clk clock.Clock) *Worldbook {
	s, err := builtinSeed()
	if err != nil {
		panic(fmt.Sprintf("world: embedded seed: %v", err))
	}
	return s.Build(clk)
}
