// Package npc provides enemy archetype templates whose stats scale with level
// through Lua formulas, and the registry that spawns combat enemies from them.
package npc

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LevelVar is the global bound to the requested level in every formula.
const LevelVar = "level"

// Formulas are Lua expressions over LevelVar. Damage must evaluate to a dice
// expression string (STR allowed); the rest evaluate to numbers. Level is
// optional and defaults to the requested level.
type Formulas struct {
	Level      string `yaml:"level"`
	HP         string `yaml:"hp"`
	ArmorClass string `yaml:"ac"`
	Damage     string `yaml:"damage"`
	AP         string `yaml:"ap"`
	XP         string `yaml:"xp"`
	Skill      string `yaml:"skill"`
	Strength   string `yaml:"strength"`
}

// Template defines a reusable enemy archetype loaded from YAML.
//
// Name may contain "{level}", replaced with the spawned enemy's level.
type Template struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Aliases     []string   `yaml:"aliases"`
	Formulas    Formulas   `yaml:"formulas"`
	Loot        *LootTable `yaml:"loot"`
}

type templateFile struct {
	Archetypes []*Template `yaml:"archetypes"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, every required
// formula is present and the loot table is valid.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	for _, f := range []struct{ field, expr string }{
		{"hp", t.Formulas.HP},
		{"ac", t.Formulas.ArmorClass},
		{"damage", t.Formulas.Damage},
		{"ap", t.Formulas.AP},
		{"xp", t.Formulas.XP},
		{"skill", t.Formulas.Skill},
		{"strength", t.Formulas.Strength},
	} {
		if strings.TrimSpace(f.expr) == "" {
			return fmt.Errorf("npc template %q: formulas.%s must not be empty", t.ID, f.field)
		}
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			return fmt.Errorf("npc template %q: %w", t.ID, err)
		}
	}
	return nil
}

// DisplayName renders Name for an enemy of the given level.
func (t *Template) DisplayName(level int) string {
	return strings.ReplaceAll(t.Name, "{level}", fmt.Sprint(level))
}

// LoadTemplatesFromBytes parses an archetypes document from raw YAML bytes.
//
// Postcondition: Returns validated templates, or an error on the first
// parse or validate failure.
func LoadTemplatesFromBytes(data []byte) ([]*Template, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing archetype YAML: %w", err)
	}
	for i, t := range f.Archetypes {
		if t == nil {
			return nil, fmt.Errorf("archetype[%d] is empty", i)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Archetypes, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	return LoadTemplatesFS(os.DirFS(dir), ".")
}

// LoadTemplatesFS reads all *.yaml files under root in fsys.
func LoadTemplatesFS(fsys fs.FS, root string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading archetype dir %q: %w", root, err)
	}

	var templates []*Template
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		name := path.Join(root, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}

		tmpls, err := LoadTemplatesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, err)
		}
		templates = append(templates, tmpls...)
	}
	return templates, nil
}
