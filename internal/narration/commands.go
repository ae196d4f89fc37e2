package narration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Command is a game change requested by a tag in narration. The concrete
// types are StartCombat, GrantItem, SetLocation, RequestCheck and Unknown.
type Command interface {
	fmt.Stringer
	command()
}

// StartCombat asks for an encounter: [COMBAT: raider 2 3].
type StartCombat struct {
	Archetype string
	Level     int
	Count     int
}

// GrantItem gives the player an item: [ITEM: stimpak].
type GrantItem struct {
	ItemID string
}

// SetLocation moves the player: [LOCATION: shady_sands].
type SetLocation struct {
	Location string
}

// RequestCheck asks for a skill check: [CHECK: lockpick DC 15].
type RequestCheck struct {
	Skill string
	DC    int
}

// Unknown is a tag that could not be understood. It is never applied.
type Unknown struct {
	Raw    string
	Reason string
}

func (StartCombat) command()  {}
func (GrantItem) command()    {}
func (SetLocation) command()  {}
func (RequestCheck) command() {}
func (Unknown) command()      {}

func (c StartCombat) String() string {
	return fmt.Sprintf("[COMBAT: %s %d %d]", c.Archetype, c.Level, c.Count)
}

func (c GrantItem) String() string { return "[ITEM: " + c.ItemID + "]" }

func (c SetLocation) String() string { return "[LOCATION: " + c.Location + "]" }

func (c RequestCheck) String() string {
	return fmt.Sprintf("[CHECK: %s DC %d]", c.Skill, c.DC)
}

func (c Unknown) String() string { return c.Raw + " (" + c.Reason + ")" }

// Tag names.
const (
	TagCombat   = "COMBAT"
	TagItem     = "ITEM"
	TagLocation = "LOCATION"
	TagCheck    = "CHECK"
)

var (
	tagPattern   = regexp.MustCompile(`(?i)\[\s*(` + TagCombat + `|` + TagItem + `|` + TagLocation + `|` + TagCheck + `)\s*:\s*([^\[\]]*)\]`)
	checkPattern = regexp.MustCompile(`(?i)^([a-z][a-z _-]*?)\s+dc\s*(\d+)$`)
	spaceRun     = regexp.MustCompile(`[ \t]{2,}`)
	blankRun     = regexp.MustCompile(`\n{3,}`)
)

// ExtractCommands removes every COMBAT, ITEM, LOCATION and CHECK tag from
// text and returns the remaining narration with the commands in order of
// appearance. Tag names are case-insensitive. A malformed tag becomes
// Unknown and is removed all the same; bracketed text under any other name,
// such as "[Note: the door is locked]", is narration and stays.
func ExtractCommands(text string) (string, []Command) {
	var cmds []Command
	clean := tagPattern.ReplaceAllStringFunc(text, func(raw string) string {
		m := tagPattern.FindStringSubmatch(raw)
		cmds = append(cmds, parseTag(raw, strings.ToUpper(m[1]), strings.TrimSpace(m[2])))
		return ""
	})
	return tidy(clean), cmds
}

func parseTag(raw, name, args string) Command {
	if args == "" {
		return Unknown{Raw: raw, Reason: "missing arguments"}
	}
	switch name {
	case TagCombat:
		return parseCombat(raw, args)
	case TagItem:
		return GrantItem{ItemID: normalizeID(args)}
	case TagLocation:
		return SetLocation{Location: args}
	case TagCheck:
		m := checkPattern.FindStringSubmatch(args)
		if m == nil {
			return Unknown{Raw: raw, Reason: "want <skill> DC <n>"}
		}
		dc, err := strconv.Atoi(m[2])
		if err != nil {
			return Unknown{Raw: raw, Reason: "bad DC"}
		}
		return RequestCheck{Skill: strings.TrimSpace(m[1]), DC: dc}
	default:
		return Unknown{Raw: raw, Reason: "unknown tag " + name}
	}
}

// parseCombat reads "<archetype words> <level> [count]".
func parseCombat(raw, args string) Command {
	fields := strings.Fields(args)
	var nums []int
	for len(fields) > 0 && len(nums) < 2 {
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			break
		}
		nums = append([]int{n}, nums...)
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 {
		return Unknown{Raw: raw, Reason: "missing archetype"}
	}
	if len(nums) == 0 {
		return Unknown{Raw: raw, Reason: "missing level"}
	}
	c := StartCombat{Archetype: normalizeID(strings.Join(fields, " ")), Level: nums[0], Count: 1}
	if len(nums) == 2 {
		c.Count = nums[1]
	}
	if c.Level < 1 || c.Count < 1 {
		return Unknown{Raw: raw, Reason: "level and count must be positive"}
	}
	return c
}

func normalizeID(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.Join(strings.Fields(s), " ")), " ", "_")
}

// tidy collapses the gaps left behind by removed tags.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(l, " "))
	}
	out := blankRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}
