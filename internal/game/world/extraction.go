package world

import "slices"

// Extraction is the set of entities a narration extractor found in a piece
// of narration. Field names follow the extractor's JSON contract.
type Extraction struct {
	Locations []ExtractedLocation `json:"locations"`
	NPCs      []ExtractedNPC      `json:"npcs"`
	Events    []ExtractedEvent    `json:"events"`
}

// ExtractedLocation is a location mentioned in narration.
type ExtractedLocation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"location_type"`
}

// ExtractedNPC is a character mentioned in narration.
type ExtractedNPC struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Personality []string `json:"personality"`
	Location    string   `json:"location,omitempty"`
}

// ExtractedEvent is something that happened in narration.
type ExtractedEvent struct {
	Type        string   `json:"event_type"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Entities    []string `json:"entities"`
}

// Empty reports whether nothing was extracted.
func (x Extraction) Empty() bool {
	return len(x.Locations) == 0 && len(x.NPCs) == 0 && len(x.Events) == 0
}

// MergeResult counts what ApplyExtraction created.
type MergeResult struct {
	NewLocations int
	NewNPCs      int
	Events       int
}

// ApplyExtraction merges extracted entities into the worldbook. Entity IDs
// come from GenerateID. Known entities keep their visit history and
// disposition; only blank fields are filled and new personality traits
// appended. Entries whose name yields an empty ID are skipped.
func (w *Worldbook) ApplyExtraction(x Extraction) MergeResult {
	var res MergeResult

	for _, el := range x.Locations {
		id := GenerateID(el.Name)
		if id == "" {
			continue
		}
		if loc, ok := w.Locations[id]; ok {
			if loc.Description == "" {
				loc.Description = el.Description
			}
			if loc.Type == "" {
				loc.Type = el.Type
			}
			continue
		}
		w.Locations[id] = &Location{ID: id, Name: el.Name, Description: el.Description, Type: el.Type}
		res.NewLocations++
	}

	for _, en := range x.NPCs {
		id := GenerateID(en.Name)
		if id == "" {
			continue
		}
		where := w.CurrentLocation
		if en.Location != "" {
			where = GenerateID(en.Location)
		}
		if n, ok := w.NPCs[id]; ok {
			if n.Role == "" {
				n.Role = en.Role
			}
			for _, p := range en.Personality {
				if !slices.Contains(n.Personality, p) {
					n.Personality = append(n.Personality, p)
				}
			}
			if en.Location != "" {
				n.Location = where
			}
			continue
		}
		w.NPCs[id] = &NPC{
			ID:          id,
			Name:        en.Name,
			Role:        en.Role,
			Personality: slices.Clone(en.Personality),
			Location:    where,
			Alive:       true,
		}
		res.NewNPCs++
	}

	for _, ev := range x.Events {
		if ev.Description == "" {
			continue
		}
		var ids []string
		for _, name := range ev.Entities {
			if id := GenerateID(name); id != "" {
				ids = append(ids, id)
			}
		}
		w.AddEvent(ev.Type, ev.Description, GenerateID(ev.Location), ids...)
		res.Events++
	}
	return res
}
