package npc

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ctclostio/MojaveAdventure/internal/game/combat"
	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/scripting"
)

//go:embed content/*.yaml
var builtinContent embed.FS

// Spawn limits.
const (
	MaxLevel = 50
	MaxCount = 8
)

// FallbackID is the archetype used for names the registry does not know.
const FallbackID = "generic"

// Registry holds archetype templates keyed by ID and alias.
type Registry struct {
	templates map[string]*Template
	aliases   map[string]string
	eval      *scripting.Evaluator
	src       dice.Source
}

// NewRegistry indexes templates. Formulas run in eval; loot is rolled with src.
//
// Postcondition: Returns a conflict error when two templates share an ID or
// alias.
func NewRegistry(templates []*Template, eval *scripting.Evaluator, src dice.Source) (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template, len(templates)),
		aliases:   make(map[string]string),
		eval:      eval,
		src:       src,
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("npc: %w", err)
		}
		id := normalize(t.ID)
		if _, dup := r.templates[id]; dup {
			return nil, gameerr.Newf(gameerr.KindConflict, "npc: archetype %q registered twice", t.ID)
		}
		r.templates[id] = t
	}
	for id, t := range r.templates {
		for _, a := range t.Aliases {
			a = normalize(a)
			if _, clash := r.templates[a]; clash {
				return nil, gameerr.Newf(gameerr.KindConflict, "npc: alias %q shadows an archetype", a)
			}
			if prev, dup := r.aliases[a]; dup && prev != id {
				return nil, gameerr.Newf(gameerr.KindConflict, "npc: alias %q used by %q and %q", a, prev, id)
			}
			r.aliases[a] = id
		}
	}
	return r, nil
}

// DefaultRegistry loads the archetypes shipped with the binary.
func DefaultRegistry(eval *scripting.Evaluator, src dice.Source) (*Registry, error) {
	templates, err := LoadTemplatesFS(builtinContent, "content")
	if err != nil {
		return nil, fmt.Errorf("npc: %w", err)
	}
	return NewRegistry(templates, eval, src)
}

// Get returns the template for an ID or alias.
func (r *Registry) Get(id string) (*Template, bool) {
	key := normalize(id)
	if t, ok := r.templates[key]; ok {
		return t, true
	}
	if target, ok := r.aliases[key]; ok {
		return r.templates[target], true
	}
	return nil, false
}

// IDs returns the registered archetype IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spawn creates count enemies of archetype id at level. An unknown archetype
// spawns FallbackID stats under the requested name, so narration can invent
// creatures without breaking combat.
//
// Precondition: 1 <= level <= MaxLevel; 1 <= count <= MaxCount.
// Postcondition: Returns enemies at full HP with loot rolled, or a
// validation error for bad arguments or formulas that yield unusable stats.
func (r *Registry) Spawn(id string, level, count int) ([]combat.Enemy, error) {
	if level < 1 || level > MaxLevel {
		return nil, gameerr.Validationf("enemy level must be in [1,%d], got %d", MaxLevel, level)
	}
	if count < 1 || count > MaxCount {
		return nil, gameerr.Validationf("enemy count must be in [1,%d], got %d", MaxCount, count)
	}

	t, ok := r.Get(id)
	name := ""
	if !ok {
		if strings.TrimSpace(id) == "" {
			return nil, gameerr.Validationf("enemy archetype must not be empty")
		}
		t, ok = r.Get(FallbackID)
		if !ok {
			return nil, gameerr.Newf(gameerr.KindNotFound, "unknown enemy archetype %q", id)
		}
		name = titleCase(id) + " (Level {level})"
	}

	base, err := r.build(t, level)
	if err != nil {
		return nil, err
	}
	if name != "" {
		base.Name = strings.ReplaceAll(name, "{level}", fmt.Sprint(base.Level))
		base.Archetype = normalize(id)
	}

	enemies := make([]combat.Enemy, count)
	for i := range enemies {
		e := base
		if t.Loot != nil {
			loot := GenerateLoot(*t.Loot, r.src)
			e.LootCaps, e.LootItems = loot.Caps, loot.Items
		}
		enemies[i] = e
	}
	return enemies, nil
}

func (r *Registry) build(t *Template, requested int) (combat.Enemy, error) {
	f := t.Formulas
	vars := map[string]int{LevelVar: requested}

	level := requested
	if strings.TrimSpace(f.Level) != "" {
		v, err := r.eval.Int(f.Level, vars)
		if err != nil {
			return combat.Enemy{}, r.formulaErr(t, "level", err)
		}
		level = v
	}

	var hp, ac, ap, xp, skill, strength int
	for _, in := range []struct {
		field string
		expr  string
		dst   *int
		min   int
	}{
		{"hp", f.HP, &hp, 1},
		{"ac", f.ArmorClass, &ac, 0},
		{"ap", f.AP, &ap, 1},
		{"xp", f.XP, &xp, 0},
		{"skill", f.Skill, &skill, 0},
		{"strength", f.Strength, &strength, 1},
	} {
		v, err := r.eval.Int(in.expr, vars)
		if err != nil {
			return combat.Enemy{}, r.formulaErr(t, in.field, err)
		}
		if v < in.min {
			return combat.Enemy{}, gameerr.Validationf("archetype %q: %s evaluated to %d, want >= %d", t.ID, in.field, v, in.min)
		}
		*in.dst = v
	}
	damage, err := r.eval.String(f.Damage, vars)
	if err != nil {
		return combat.Enemy{}, r.formulaErr(t, "damage", err)
	}
	if _, err := combat.DamageExpression(damage, strength); err != nil {
		return combat.Enemy{}, gameerr.Wrap(gameerr.KindValidation, err, fmt.Sprintf("archetype %q: damage %q", t.ID, damage))
	}

	return combat.Enemy{
		Name:       t.DisplayName(level),
		Archetype:  t.ID,
		Level:      level,
		MaxHP:      hp,
		CurrentHP:  hp,
		ArmorClass: ac,
		Damage:     damage,
		AP:         ap,
		XPReward:   xp,
		Skill:      skill,
		Strength:   strength,
	}, nil
}

func (r *Registry) formulaErr(t *Template, field string, err error) error {
	return gameerr.Wrap(gameerr.KindValidation, err, fmt.Sprintf("archetype %q: %s formula", t.ID, field))
}

func normalize(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "_")
}

func titleCase(id string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(id), "_", " "))
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[n:])
	}
	return strings.Join(words, " ")
}
