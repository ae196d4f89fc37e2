package world

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Worldbook tracks every location, NPC and event the game knows about.
//
// Invariant: CurrentLocation is empty or a key of Locations; every NPC
// disposition lies in [MinDisposition, MaxDisposition].
type Worldbook struct {
	Locations       map[string]*Location `json:"locations"`
	NPCs            map[string]*NPC      `json:"npcs"`
	Events          []Event              `json:"events"`
	CurrentLocation string               `json:"current_location,omitempty"`

	clock clock.Clock
}

// New returns an empty worldbook. A nil clk uses the system clock.
func New(clk clock.Clock) *Worldbook {
	return &Worldbook{
		Locations: make(map[string]*Location),
		NPCs:      make(map[string]*NPC),
		clock:     clk,
	}
}

// SetClock replaces the clock used for visit and event timestamps.
func (w *Worldbook) SetClock(clk clock.Clock) {
	w.clock = clk
}

func (w *Worldbook) now() time.Time {
	if w.clock == nil {
		w.clock = clock.New()
	}
	return w.clock.Now()
}

// AddLocation inserts or replaces a location by ID.
//
// Postcondition: Returns a validation error and leaves the worldbook
// unchanged when loc is invalid.
func (w *Worldbook) AddLocation(loc Location) error {
	if err := loc.Validate(); err != nil {
		return gameerr.Wrap(gameerr.KindValidation, err, "world: add location")
	}
	w.Locations[loc.ID] = &loc
	return nil
}

// AddNPC inserts or replaces an NPC by ID. Disposition is clamped.
func (w *Worldbook) AddNPC(n NPC) error {
	if err := n.Validate(); err != nil {
		return gameerr.Wrap(gameerr.KindValidation, err, "world: add npc")
	}
	n.Disposition = clampDisposition(n.Disposition)
	w.NPCs[n.ID] = &n
	return nil
}

// AddEvent appends an event stamped with a fresh ID and the current time.
// An empty location records the event at the current location.
func (w *Worldbook) AddEvent(eventType, description, location string, npcs ...string) Event {
	if location == "" {
		location = w.CurrentLocation
	}
	e := Event{
		ID:          uuid.NewString(),
		Timestamp:   w.now(),
		Type:        eventType,
		Description: description,
		Location:    location,
	}
	if len(npcs) > 0 {
		e.NPCs = append([]string(nil), npcs...)
	}
	w.Events = append(w.Events, e)
	return e
}

// Location returns the location with the given ID.
func (w *Worldbook) Location(id string) (*Location, bool) {
	l, ok := w.Locations[id]
	return l, ok
}

// NPC returns the NPC with the given ID.
func (w *Worldbook) NPC(id string) (*NPC, bool) {
	n, ok := w.NPCs[id]
	return n, ok
}

// Current returns the current location, if one is set.
func (w *Worldbook) Current() (*Location, bool) {
	if w.CurrentLocation == "" {
		return nil, false
	}
	return w.Location(w.CurrentLocation)
}

// FindLocation resolves a free-text query to a location.
//
// A case-insensitive exact match on ID or name wins over a substring match.
// Among several matches of the same rank the lexicographically smallest ID
// is returned.
func (w *Worldbook) FindLocation(query string) (*Location, bool) {
	id, ok := find(query, w.LocationIDs(), func(id string) string { return w.Locations[id].Name })
	if !ok {
		return nil, false
	}
	return w.Locations[id], true
}

// FindNPC resolves a free-text query to an NPC with the same precedence as
// FindLocation.
func (w *Worldbook) FindNPC(query string) (*NPC, bool) {
	id, ok := find(query, w.NPCIDs(), func(id string) string { return w.NPCs[id].Name })
	if !ok {
		return nil, false
	}
	return w.NPCs[id], true
}

// find scans ids in sorted order, so the first hit of a rank is the
// smallest ID.
func find(query string, ids []string, name func(string) string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	substring := ""
	for _, id := range ids {
		lid, lname := strings.ToLower(id), strings.ToLower(name(id))
		if lid == q || lname == q {
			return id, true
		}
		if substring == "" && (strings.Contains(lid, q) || strings.Contains(lname, q)) {
			substring = id
		}
	}
	return substring, substring != ""
}

// LocationIDs returns all location IDs in sorted order.
func (w *Worldbook) LocationIDs() []string {
	return sortedKeys(w.Locations)
}

// NPCIDs returns all NPC IDs in sorted order.
func (w *Worldbook) NPCIDs() []string {
	return sortedKeys(w.NPCs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetCurrentLocation moves the player to a known location without counting
// a visit.
//
// Postcondition: Returns an unknown-location error and leaves the worldbook
// unchanged when id is not a known location.
func (w *Worldbook) SetCurrentLocation(id string) error {
	if _, ok := w.Locations[id]; !ok {
		return gameerr.Newf(gameerr.KindUnknownLocation, "world: unknown location %q", id)
	}
	w.CurrentLocation = id
	return nil
}

// VisitLocation records a visit and makes id the current location.
func (w *Worldbook) VisitLocation(id string) error {
	loc, ok := w.Locations[id]
	if !ok {
		return gameerr.Newf(gameerr.KindUnknownLocation, "world: unknown location %q", id)
	}
	now := w.now()
	if loc.FirstVisited == nil {
		loc.FirstVisited = &now
	}
	loc.LastVisited = &now
	loc.Visited = true
	loc.VisitCount++
	w.CurrentLocation = id
	return nil
}

// AdjustDisposition shifts an NPC's disposition by delta and returns the
// clamped result.
func (w *Worldbook) AdjustDisposition(id string, delta int) (int, error) {
	n, ok := w.NPCs[id]
	if !ok {
		return 0, gameerr.Newf(gameerr.KindNotFound, "world: unknown npc %q", id)
	}
	n.Disposition = clampDisposition(n.Disposition + delta)
	return n.Disposition, nil
}

// MeetNPC marks an NPC as met.
func (w *Worldbook) MeetNPC(id string) error {
	n, ok := w.NPCs[id]
	if !ok {
		return gameerr.Newf(gameerr.KindNotFound, "world: unknown npc %q", id)
	}
	n.Met = true
	return nil
}

// NPCsAt returns the living NPCs at a location, sorted by ID.
func (w *Worldbook) NPCsAt(location string) []*NPC {
	var out []*NPC
	for _, id := range w.NPCIDs() {
		if n := w.NPCs[id]; n.Alive && n.Location == location {
			out = append(out, n)
		}
	}
	return out
}

// RecentEvents returns up to n events, newest first.
func (w *Worldbook) RecentEvents(n int) []Event {
	return w.latest(n, func(Event) bool { return true })
}

// LocationEvents returns up to n events at a location, newest first.
func (w *Worldbook) LocationEvents(location string, n int) []Event {
	return w.latest(n, func(e Event) bool { return e.Location == location })
}

func (w *Worldbook) latest(n int, keep func(Event) bool) []Event {
	var out []Event
	for i := len(w.Events) - 1; i >= 0 && len(out) < n; i-- {
		if keep(w.Events[i]) {
			out = append(out, w.Events[i])
		}
	}
	return out
}

// GenerateID derives an entity ID from a display name: lower case, spaces
// become underscores, anything else that is not a letter, digit or
// underscore is dropped.
func GenerateID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '_', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Reconcile repairs invariants after decoding: nil maps, out-of-range
// dispositions, negative visit counts and a dangling current location.
func (w *Worldbook) Reconcile() {
	if w.Locations == nil {
		w.Locations = make(map[string]*Location)
	}
	if w.NPCs == nil {
		w.NPCs = make(map[string]*NPC)
	}
	for id, l := range w.Locations {
		if l == nil {
			delete(w.Locations, id)
			continue
		}
		l.ID = id
		l.VisitCount = max(l.VisitCount, 0)
	}
	for id, n := range w.NPCs {
		if n == nil {
			delete(w.NPCs, id)
			continue
		}
		n.ID = id
		n.Disposition = clampDisposition(n.Disposition)
	}
	if _, ok := w.Locations[w.CurrentLocation]; !ok {
		w.CurrentLocation = ""
	}
}

// StateHash returns a stable digest of the worldbook, used to key cached
// narration.
func (w *Worldbook) StateHash() string {
	// Map keys are encoded in sorted order, which keeps the digest stable.
	data, err := json.Marshal(w)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// String summarises the worldbook size.
func (w *Worldbook) String() string {
	return fmt.Sprintf("worldbook(%d locations, %d npcs, %d events)", len(w.Locations), len(w.NPCs), len(w.Events))
}
