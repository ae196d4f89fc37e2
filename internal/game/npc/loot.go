package npc

import (
	"fmt"

	"github.com/ctclostio/MojaveAdventure/internal/game/dice"
)

// CapsDrop defines the range of bottle caps an enemy carries.
type CapsDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootTable defines what an archetype may be carrying.
type LootTable struct {
	Caps  *CapsDrop  `yaml:"caps"`
	Items []ItemDrop `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Postcondition: Returns nil iff all caps and item constraints hold; an empty
// loot table is valid.
func (lt *LootTable) Validate() error {
	if lt.Caps != nil {
		if lt.Caps.Min < 0 {
			return fmt.Errorf("loot table: caps min must be >= 0, got %d", lt.Caps.Min)
		}
		if lt.Caps.Min > lt.Caps.Max {
			return fmt.Errorf("loot table: caps min (%d) must be <= max (%d)", lt.Caps.Min, lt.Caps.Max)
		}
	}
	for i, item := range lt.Items {
		if item.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// LootResult holds what one enemy will drop: caps plus one item ID per unit.
type LootResult struct {
	Caps  int
	Items []string
}

// GenerateLoot rolls lt with src.
//
// Precondition: lt must have passed Validate.
// Postcondition: Caps is in [Caps.Min, Caps.Max] when caps are set; each
// item that passes its chance roll contributes between MinQty and MaxQty IDs.
func GenerateLoot(lt LootTable, src dice.Source) LootResult {
	var result LootResult

	if lt.Caps != nil && lt.Caps.Max > 0 {
		result.Caps = lt.Caps.Min
		if spread := lt.Caps.Max - lt.Caps.Min; spread > 0 {
			result.Caps += src.Intn(spread + 1)
		}
	}

	for _, item := range lt.Items {
		if src.Intn(100) >= int(item.Chance*100) {
			continue
		}
		qty := item.MinQty
		if spread := item.MaxQty - item.MinQty; spread > 0 {
			qty += src.Intn(spread + 1)
		}
		for range qty {
			result.Items = append(result.Items, item.ItemID)
		}
	}

	return result
}
