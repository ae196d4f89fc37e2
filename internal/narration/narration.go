// Package narration is the boundary to the AI narrator: the read-only game
// snapshot it sees, the tags it may embed to change the game, the entity
// extraction that feeds the worldbook, and the caching and Anthropic
// backends.
package narration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Narrator produces the narration for one player turn.
type Narrator interface {
	Narrate(ctx context.Context, req Request) (Response, error)
}

// Request is one narration call: the game as it stood when the player acted
// and what they typed.
type Request struct {
	Snapshot Snapshot
	Input    string
	// Fresh asks for a new reply even when one is cached.
	Fresh bool
}

// Prompt renders the request as the user prompt sent to the model.
func (r Request) Prompt() string {
	return r.Snapshot.Prompt(r.Input)
}

// Key identifies the request for caching: a digest of the rendered prompt.
func (r Request) Key() string {
	sum := sha256.Sum256([]byte(r.Prompt()))
	return hex.EncodeToString(sum[:])
}

// Response is the narrator's raw reply, tags included.
type Response struct {
	Text   string
	Cached bool
}
