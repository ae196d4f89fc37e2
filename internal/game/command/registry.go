package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
)

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or a conflict error on name/alias
// collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, gameerr.Newf(gameerr.KindConflict, "duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, gameerr.Newf(gameerr.KindConflict, "command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, gameerr.Newf(gameerr.KindConflict, "alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, gameerr.Newf(gameerr.KindConflict, "duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias, case-insensitively.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	input = strings.ToLower(input)
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Interpret parses line and resolves its first word. Unknown first words
// make the whole line narration, and so do words past a command that takes
// no arguments ("i search the desk").
//
// Postcondition: Returns a validation error showing the usage when a
// command is missing required arguments.
func (r *Registry) Interpret(line string) (Invocation, error) {
	p := Parse(line)
	in := Invocation{Line: strings.TrimSpace(line)}
	cmd, ok := r.Resolve(p.Command)
	if !ok || (cmd.Usage == "" && len(p.Args) > 0) {
		return in, nil
	}
	if len(p.Args) < cmd.MinArgs {
		return in, gameerr.Validationf("usage: %s", cmd.Usage)
	}
	in.Command, in.Args, in.RawArgs = cmd, p.Args, p.RawArgs
	return in, nil
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}

// HelpText renders every command grouped by category, categories and
// commands in sorted order.
func (r *Registry) HelpText() string {
	cats := r.CommandsByCategory()
	names := make([]string, 0, len(cats))
	for c := range cats {
		names = append(names, c)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, c := range names {
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(c[:1])+c[1:])
		for _, cmd := range cats[c] {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			fmt.Fprintf(&b, "  %-22s %s\n", usage, cmd.Help)
		}
	}
	return b.String()
}
