package story

import "strings"

// Log is the flat story log written by older saves: one "Player: ..." or
// "DM: ..." line per entry.
type Log struct {
	Context    []string `json:"context"`
	MaxContext int      `json:"max_context"`
}

// Empty reports whether the log holds no entries.
func (l *Log) Empty() bool {
	return l == nil || len(l.Context) == 0
}

// FromLog converts a legacy story log into a conversation. Entries without
// a speaker prefix are attributed to the narrator. The result keeps at most
// DefaultMaxTurns of the newest entries.
func FromLog(l *Log) *Conversation {
	c := NewConversation()
	if l.Empty() {
		return c
	}
	for i, entry := range l.Context {
		t := Turn{Number: i, Speaker: SpeakerDM, Text: entry}
		if msg, ok := strings.CutPrefix(entry, "Player: "); ok {
			t.Speaker, t.Text = SpeakerPlayer, msg
		} else if msg, ok := strings.CutPrefix(entry, "DM: "); ok {
			t.Text = msg
		}
		c.Turns = append(c.Turns, t)
	}
	c.NextTurn = len(l.Context)
	c.trim()
	return c
}
