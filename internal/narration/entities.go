package narration

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/game/world"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Extractor finds worldbook entities in a piece of narration.
type Extractor interface {
	Extract(ctx context.Context, narration string) (world.Extraction, error)
}

// ParseEntities reads the JSON object spanning the first '{' and the last
// '}' of text, so models that wrap their answer in prose still parse.
//
// Postcondition: Returns a parse error when no object is present or it is
// not valid extraction JSON.
func ParseEntities(text string) (world.Extraction, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return world.Extraction{}, gameerr.New(gameerr.KindParse, "narration: no JSON object in extractor output")
	}
	var x world.Extraction
	if err := json.Unmarshal([]byte(text[start:end+1]), &x); err != nil {
		return world.Extraction{}, gameerr.Wrap(gameerr.KindParse, err, "narration: extractor output")
	}
	return x, nil
}

// ExtractionPrompt asks a model to list the entities in narration as JSON.
func ExtractionPrompt(narration string) string {
	return extractionPreamble + "\nNow extract from this narrative:\n" + strings.ReplaceAll(narration, `"`, `\"`) + "\n\nOutput JSON:"
}

const extractionPreamble = `You are an expert entity extractor for a Fallout RPG game. Extract all NPCs, locations, and events from the narrative text.

Output ONLY valid JSON in this exact format (no other text):
{
  "locations": [
    {"name": "Location Name", "description": "Brief description", "location_type": "settlement|ruin|vault|wasteland"}
  ],
  "npcs": [
    {"name": "NPC Name", "role": "merchant|guard|settler|raider|other", "personality": ["trait1", "trait2"], "location": "Location Name or null"}
  ],
  "events": [
    {"event_type": "npc_met|combat|discovery|dialogue", "description": "What happened", "location": "Location Name or null", "entities": ["entity1", "entity2"]}
  ]
}

Rules:
- Only extract NEW information not already known
- Capitalize proper nouns (names of people and places)
- Personality traits should be single descriptive words
- If no entities of a type, use empty array []

Example:
Narrative: "You arrive at Megaton, a settlement built around an unexploded atomic bomb. Sheriff Lucas Simms, a stern lawman, greets you warily."
Output:
{
  "locations": [
    {"name": "Megaton", "description": "Settlement built around unexploded atomic bomb", "location_type": "settlement"}
  ],
  "npcs": [
    {"name": "Sheriff Lucas Simms", "role": "guard", "personality": ["stern", "wary"], "location": "Megaton"}
  ],
  "events": [
    {"event_type": "npc_met", "description": "Met Sheriff Lucas Simms", "location": "Megaton", "entities": ["Sheriff Lucas Simms"]}
  ]
}
`

// DefaultSystemPrompt instructs the narrator, including the tags it may use
// to change the game.
const DefaultSystemPrompt = `You are the Dungeon Master of a text adventure set in the Fallout universe, in the wasteland of southern California in 2161.
Narrate in second person, in two or three short paragraphs. Stay consistent with the character sheet, the worldbook and the conversation history. Never invent stats, items or caps the player does not have. Never speak or act for the player.

You may change the game only with these tags, placed anywhere in your reply:
[COMBAT: <archetype> <level> [count]]  start a fight, e.g. [COMBAT: raider 2 3]. Archetypes: raider, radroach, super_mutant, or any creature name.
[ITEM: <item_id>]                      give the player an item, e.g. [ITEM: stimpak]
[LOCATION: <location>]                 move the player to a location from the worldbook
[CHECK: <skill> DC <n>]                ask for a skill check, e.g. [CHECK: lockpick DC 15]
Do not narrate combat results yourself; the game resolves them.`
