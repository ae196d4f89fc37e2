package narration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
)

func TestParseEntities_ToleratesSurroundingProse(t *testing.T) {
	out := `Sure! Here is the extraction:
{
  "locations": [{"name": "Megaton", "description": "Built around a bomb", "location_type": "settlement"}],
  "npcs": [{"name": "Lucas Simms", "role": "guard", "personality": ["stern"], "location": "Megaton"}],
  "events": [{"event_type": "npc_met", "description": "Met Simms", "location": null, "entities": ["Lucas Simms"]}]
}
Let me know if you need more.`

	x, err := narration.ParseEntities(out)
	require.NoError(t, err)
	require.Len(t, x.Locations, 1)
	assert.Equal(t, "settlement", x.Locations[0].Type)
	require.Len(t, x.NPCs, 1)
	assert.Equal(t, []string{"stern"}, x.NPCs[0].Personality)
	require.Len(t, x.Events, 1)
	assert.Empty(t, x.Events[0].Location)
	assert.Equal(t, []string{"Lucas Simms"}, x.Events[0].Entities)
}

func TestParseEntities_Rejects(t *testing.T) {
	for _, out := range []string{"no json here", "} backwards {", `{"locations": "nope"}`} {
		_, err := narration.ParseEntities(out)
		assert.ErrorIs(t, err, gameerr.ErrParse, out)
	}
}

func TestExtractionPrompt_EscapesQuotes(t *testing.T) {
	p := narration.ExtractionPrompt(`He said "run"`)
	assert.Contains(t, p, `He said \"run\"`)
	assert.Contains(t, p, `"location_type"`)
}
