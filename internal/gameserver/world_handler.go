package gameserver

import (
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/game/session"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// recentEventCount is how many events the worldbook command lists.
const recentEventCount = 5

// WorldHandler handles the worldbook, quest log and travel commands.
type WorldHandler struct{}

// NewWorldHandler creates a WorldHandler.
func NewWorldHandler() *WorldHandler {
	return &WorldHandler{}
}

// Worldbook lists known locations, the NPCs the player has met and the
// latest events.
func (h *WorldHandler) Worldbook(st *session.GameState) Reply {
	wb := st.Worldbook
	var r Reply
	r.say("Locations:")
	for _, id := range wb.LocationIDs() {
		loc, _ := wb.Location(id)
		mark := ""
		switch {
		case id == wb.CurrentLocation:
			mark = " (here)"
		case !loc.Visited:
			mark = " (unvisited)"
		}
		r.say("  %s%s", loc.Name, mark)
	}

	var met []string
	for _, id := range wb.NPCIDs() {
		n, _ := wb.NPC(id)
		if !n.Met {
			continue
		}
		status := n.Attitude()
		if !n.Alive {
			status = "dead"
		}
		met = append(met, n.Name+" ("+status+")")
	}
	if len(met) > 0 {
		r.say("People: %s", strings.Join(met, ", "))
	}

	if events := wb.RecentEvents(recentEventCount); len(events) > 0 {
		r.say("Recent events:")
		for _, ev := range events {
			r.say("  [%s] %s", ev.Type, ev.Description)
		}
	}
	return r
}

// Quests shows active and completed quests.
func (h *WorldHandler) Quests(st *session.GameState) Reply {
	var r Reply
	if len(st.QuestLog) == 0 {
		r.say("No active quests.")
	}
	for _, q := range st.QuestLog {
		r.say("[ ] %s", q)
	}
	for _, q := range st.CompletedQuests {
		r.say("[x] %s", q)
	}
	return r
}

// Travel moves to a known location named by ID, name or part of a name.
//
// Postcondition: Returns an unknown-location error for places the
// worldbook does not hold, and a conflict error during combat.
func (h *WorldHandler) Travel(st *session.GameState, query string) (Reply, error) {
	if st.InCombat() {
		return Reply{}, session.ErrTravelInCombat
	}
	loc, ok := st.Worldbook.FindLocation(query)
	if !ok {
		return Reply{}, gameerr.Newf(gameerr.KindUnknownLocation, "no known location matches %q", query)
	}
	if err := st.ChangeLocation(loc.ID); err != nil {
		return Reply{}, err
	}
	r := Reply{mutated: true}
	r.say("You travel to %s.", loc.Name)
	if loc.Description != "" {
		r.say("%s", loc.Description)
	}
	return r, nil
}
