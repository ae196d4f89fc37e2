// Package story keeps the running dialogue between the player and the
// narrator, bounded so that prompts stay small.
package story

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxTurns bounds a conversation. Older turns are dropped first.
const DefaultMaxTurns = 20

// Speaker identifies who produced a turn.
type Speaker string

// Speakers.
const (
	SpeakerPlayer Speaker = "player"
	SpeakerDM     Speaker = "dm"
)

// Turn is one message in the conversation.
type Turn struct {
	Number    int       `json:"turn_number"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// String renders the turn as "Player: ..." or "DM: ...".
func (t Turn) String() string {
	if t.Speaker == SpeakerPlayer {
		return "Player: " + t.Text
	}
	return "DM: " + t.Text
}

// PromptLine renders the turn with the boundary marker used in prompts.
func (t Turn) PromptLine() string {
	if t.Speaker == SpeakerPlayer {
		return ">>> PLAYER: " + t.Text
	}
	return ">>> DM (YOU): " + t.Text
}

// Conversation is an ordered, bounded history of turns.
//
// Invariant: len(Turns) <= MaxTurns; turn numbers strictly increase and are
// below NextTurn.
type Conversation struct {
	Turns    []Turn `json:"turns"`
	MaxTurns int    `json:"max_turns"`
	NextTurn int    `json:"current_turn"`
}

// NewConversation returns an empty conversation bounded to DefaultMaxTurns.
func NewConversation() *Conversation {
	return &Conversation{MaxTurns: DefaultMaxTurns}
}

// AddPlayerTurn appends a player message.
func (c *Conversation) AddPlayerTurn(text string, at time.Time) {
	c.add(SpeakerPlayer, text, at)
}

// AddDMTurn appends a narrator message.
func (c *Conversation) AddDMTurn(text string, at time.Time) {
	c.add(SpeakerDM, text, at)
}

func (c *Conversation) add(s Speaker, text string, at time.Time) {
	c.Turns = append(c.Turns, Turn{Number: c.NextTurn, Speaker: s, Text: text, Timestamp: at})
	c.NextTurn++
	c.trim()
}

func (c *Conversation) trim() {
	if c.MaxTurns <= 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if over := len(c.Turns) - c.MaxTurns; over > 0 {
		c.Turns = append([]Turn(nil), c.Turns[over:]...)
	}
}

// Window returns a copy of the last n turns, oldest first.
func (c *Conversation) Window(n int) []Turn {
	if n <= 0 || len(c.Turns) == 0 {
		return nil
	}
	start := max(len(c.Turns)-n, 0)
	return append([]Turn(nil), c.Turns[start:]...)
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	return len(c.Turns)
}

// Empty reports whether no turns are retained. A nil conversation is empty.
func (c *Conversation) Empty() bool {
	return c == nil || len(c.Turns) == 0
}

// Clear drops every turn and resets numbering.
func (c *Conversation) Clear() {
	c.Turns = nil
	c.NextTurn = 0
}

// RemoveLastDMTurn drops the most recent narrator turn, reporting whether
// one existed.
func (c *Conversation) RemoveLastDMTurn() bool {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Speaker == SpeakerDM {
			c.Turns = append(c.Turns[:i], c.Turns[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceLastDMTurn swaps the most recent narrator turn for text, appended
// as a new turn. It reports false and changes nothing when there is no
// narrator turn to replace.
func (c *Conversation) ReplaceLastDMTurn(text string, at time.Time) bool {
	if !c.RemoveLastDMTurn() {
		return false
	}
	c.AddDMTurn(text, at)
	return true
}

// PromptSection renders the last n turns as a history block for the
// narrator prompt. It returns "" when there is nothing to show.
func (c *Conversation) PromptSection(n int) string {
	turns := c.Window(n)
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("=== CONVERSATION HISTORY ===\n")
	b.WriteString("(You are the DM. The player is the other speaker.)\n")
	b.WriteString("(>>> marks turn boundaries for clarity)\n\n")
	for _, t := range turns {
		b.WriteString(t.PromptLine())
		b.WriteByte('\n')
	}
	b.WriteString("\n=== END HISTORY ===\n\n")
	return b.String()
}

// Reconcile repairs a decoded conversation: a missing bound, too many turns
// or a turn counter that lags behind the retained turns.
func (c *Conversation) Reconcile() {
	c.trim()
	for i := range c.Turns {
		if c.Turns[i].Speaker != SpeakerPlayer {
			c.Turns[i].Speaker = SpeakerDM
		}
	}
	if n := len(c.Turns); n > 0 {
		c.NextTurn = max(c.NextTurn, c.Turns[n-1].Number+1)
	}
}

// Summary describes the conversation size.
func (c *Conversation) Summary() string {
	return fmt.Sprintf("Conversation: %d turns, current turn: %d", len(c.Turns), c.NextTurn)
}
