package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/gameserver"
)

// Renderer turns turn replies into styled terminal text.
type Renderer struct {
	width int
	st    styles
}

// NewRenderer creates a Renderer for output written to w. A non-positive
// width uses DefaultWidth.
func NewRenderer(w io.Writer, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{width: width, st: newStyles(w, width)}
}

// Reply renders everything a turn produced, narration first.
//
// Postcondition: Returns "" for an empty reply; otherwise the text ends in
// a newline.
func (r *Renderer) Reply(rep gameserver.Reply) string {
	var b strings.Builder
	if rep.Narration != "" {
		b.WriteString(r.st.narration.Render(rep.Narration))
		b.WriteString("\n")
		if rep.Cached {
			b.WriteString(r.st.cached.Render("(replayed from cache)"))
			b.WriteString("\n")
		}
	}
	for _, line := range rep.Lines {
		b.WriteString(r.line(line))
		b.WriteString("\n")
	}
	for _, ev := range rep.Events {
		b.WriteString(r.Event(ev))
		b.WriteString("\n")
	}
	if rep.Prompt != "" {
		b.WriteString(r.st.dim.Render("--- narrator context ---\n" + rep.Prompt))
		b.WriteString("\n")
	}
	if rep.Help != "" {
		b.WriteString(r.st.system.Render(rep.Help))
		b.WriteString("\n")
	}
	if rep.GameOver {
		b.WriteString(r.st.critical.Render("You have died. Your journey ends here."))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) line(s string) string {
	if s == "COMBAT STARTED!" {
		return r.st.critical.Render(s)
	}
	return r.st.system.Render(s)
}

// Event renders one combat event followed by its attack roll, if any.
func (r *Renderer) Event(ev combat.RoundEvent) string {
	style := r.st.combat
	switch ev.Kind {
	case combat.EventAttack, combat.EventEnemyAttack:
		switch {
		case ev.Attack != nil && ev.Attack.Critical:
			style = r.st.critical
		case ev.Damage > 0:
			style = r.st.hit
		}
	case combat.EventKill, combat.EventVictory, combat.EventLoot, combat.EventItem:
		style = r.st.success
	case combat.EventDefeat:
		style = r.st.critical
	case combat.EventFlee:
		style = r.st.failure
	}
	out := style.Render(ev.Narrative)
	if ev.Attack != nil {
		out += r.st.dim.Render(" [" + ev.Attack.String() + "]")
	}
	return out
}

// Error renders a rejected action as one line.
func (r *Renderer) Error(err error) string {
	var ge *gameerr.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case gameerr.KindPersistence:
			return r.st.errorText.Render("Save error: " + err.Error())
		case gameerr.KindNotFound, gameerr.KindUnknownLocation, gameerr.KindInvalidTarget:
			return r.st.failure.Render(err.Error())
		}
	}
	return r.st.errorText.Render(err.Error())
}

// StatusBar renders status across the full width.
func (r *Renderer) StatusBar(status string) string {
	bar := " " + status
	if gap := r.width - lipgloss.Width(bar); gap > 0 {
		bar += strings.Repeat(" ", gap)
	}
	return r.st.statusBar.Render(bar)
}

// Banner renders the title shown when play starts.
func (r *Renderer) Banner(title string) string {
	return r.st.banner.Render(title)
}

// Prompt renders the input prompt.
func (r *Renderer) Prompt() string {
	return r.st.prompt.Render("> ")
}
