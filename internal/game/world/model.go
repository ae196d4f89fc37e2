// Package world provides the worldbook: the persistent record of locations,
// NPCs and events that grounds narration in what the player has already seen.
package world

import (
	"fmt"
	"time"
)

// Disposition bounds. Negative is hostile, positive is friendly.
const (
	MinDisposition = -100
	MaxDisposition = 100
)

// Location is a place in the wasteland.
type Location struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description" yaml:"description"`
	Type         string            `json:"location_type,omitempty" yaml:"location_type"`
	Atmosphere   string            `json:"atmosphere,omitempty" yaml:"atmosphere"`
	Visited      bool              `json:"visited"`
	FirstVisited *time.Time        `json:"first_visited,omitempty"`
	LastVisited  *time.Time        `json:"last_visited,omitempty"`
	VisitCount   int               `json:"visit_count"`
	Notes        []string          `json:"notes,omitempty" yaml:"notes"`
	State        map[string]string `json:"state,omitempty" yaml:"state"`
}

// Validate checks that the location satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty and VisitCount is
// non-negative.
func (l *Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location id must not be empty")
	}
	if l.Name == "" {
		return fmt.Errorf("location %q: name must not be empty", l.ID)
	}
	if l.VisitCount < 0 {
		return fmt.Errorf("location %q: visit count must not be negative", l.ID)
	}
	return nil
}

// NPC is a named character the player can meet.
type NPC struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Role        string   `json:"role,omitempty" yaml:"role"`
	Faction     string   `json:"faction,omitempty" yaml:"faction"`
	Personality []string `json:"personality,omitempty" yaml:"personality"`
	Location    string   `json:"current_location,omitempty" yaml:"location"`
	Met         bool     `json:"met"`
	Disposition int      `json:"disposition" yaml:"disposition"`
	Knowledge   []string `json:"knowledge,omitempty" yaml:"knowledge"`
	Notes       []string `json:"notes,omitempty" yaml:"notes"`
	Alive       bool     `json:"alive" yaml:"alive"`
}

// Validate checks that the NPC satisfies basic invariants.
func (n *NPC) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("npc id must not be empty")
	}
	if n.Name == "" {
		return fmt.Errorf("npc %q: name must not be empty", n.ID)
	}
	return nil
}

// Attitude describes the disposition in words.
func (n *NPC) Attitude() string {
	switch {
	case n.Disposition <= -50:
		return "hostile"
	case n.Disposition < -10:
		return "unfriendly"
	case n.Disposition <= 10:
		return "neutral"
	case n.Disposition < 50:
		return "friendly"
	default:
		return "devoted"
	}
}

// Event records something that happened. Events are append-only.
type Event struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"event_type"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	NPCs        []string  `json:"entities,omitempty"`
}

func clampDisposition(d int) int {
	return max(MinDisposition, min(MaxDisposition, d))
}
