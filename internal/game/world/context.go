package world

import (
	"fmt"
	"strings"
)

// Context sizes used by BuildContext.
const (
	contextLocationEvents = 3
	contextRecentEvents   = 5
)

// BuildContext renders the worldbook as prompt text for the narrator: a
// block for the current location followed by what else the player knows.
// An empty worldbook renders as the empty string.
func (w *Worldbook) BuildContext() string {
	var b strings.Builder

	if loc, ok := w.Current(); ok {
		fmt.Fprintf(&b, "=== CURRENT LOCATION: %s ===\n", loc.Name)
		if loc.Type != "" {
			fmt.Fprintf(&b, "Type: %s\n", loc.Type)
		}
		fmt.Fprintf(&b, "Description: %s\n", loc.Description)
		if loc.VisitCount > 0 {
			fmt.Fprintf(&b, "Visits: %d\n", loc.VisitCount)
		}
		if loc.Atmosphere != "" {
			fmt.Fprintf(&b, "Atmosphere: %s\n", loc.Atmosphere)
		}
		if npcs := w.NPCsAt(loc.ID); len(npcs) > 0 {
			b.WriteString("NPCs present:\n")
			for _, n := range npcs {
				fmt.Fprintf(&b, "  - %s", n.Name)
				if n.Role != "" {
					fmt.Fprintf(&b, " (%s)", n.Role)
				}
				fmt.Fprintf(&b, ", %s\n", n.Attitude())
			}
		}
		if events := w.LocationEvents(loc.ID, contextLocationEvents); len(events) > 0 {
			b.WriteString("Recent events here:\n")
			for _, e := range events {
				fmt.Fprintf(&b, "  - %s\n", e.Description)
			}
		}
		if len(loc.Notes) > 0 {
			b.WriteString("Notes:\n")
			for _, n := range loc.Notes {
				fmt.Fprintf(&b, "  - %s\n", n)
			}
		}
		b.WriteString("===\n")
	}

	var known []string
	for _, id := range w.LocationIDs() {
		if l := w.Locations[id]; l.Visited && id != w.CurrentLocation {
			known = append(known, l.Name)
		}
	}
	if len(known) > 0 {
		fmt.Fprintf(&b, "Known locations: %s\n", strings.Join(known, ", "))
	}

	var met []string
	for _, id := range w.NPCIDs() {
		n := w.NPCs[id]
		if !n.Met {
			continue
		}
		status := n.Attitude()
		if !n.Alive {
			status = "dead"
		}
		met = append(met, fmt.Sprintf("%s (%s)", n.Name, status))
	}
	if len(met) > 0 {
		fmt.Fprintf(&b, "Known NPCs: %s\n", strings.Join(met, ", "))
	}

	if events := w.RecentEvents(contextRecentEvents); len(events) > 0 {
		b.WriteString("Recent events:\n")
		for _, e := range events {
			fmt.Fprintf(&b, "  - [%s] %s\n", e.Type, e.Description)
		}
	}
	return b.String()
}
