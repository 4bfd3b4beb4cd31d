package model

import "fmt"

// GameSpec describes one fixed-pick number game. The table below is
// established at startup and never mutated.
type GameSpec struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Picks      int    `json:"picks"`
	MinNumber  int    `json:"min_number"`
	MaxNumber  int    `json:"max_number"`
	BonusCount int    `json:"bonus_count"`
	// Prefix is the digit Mizuho uses in per-draw CSV filenames (A10<prefix>NNNN.CSV).
	Prefix string `json:"-"`
}

var GameSpecs = map[string]GameSpec{
	"miniloto": {
		Key:        "miniloto",
		Label:      "Mini Loto",
		Picks:      5,
		MinNumber:  1,
		MaxNumber:  31,
		BonusCount: 1,
		Prefix:     "1",
	},
	"loto6": {
		Key:        "loto6",
		Label:      "Loto 6",
		Picks:      6,
		MinNumber:  1,
		MaxNumber:  43,
		BonusCount: 1,
		Prefix:     "2",
	},
	"loto7": {
		Key:        "loto7",
		Label:      "Loto 7",
		Picks:      7,
		MinNumber:  1,
		MaxNumber:  37,
		BonusCount: 2,
		Prefix:     "3",
	},
}

func GetGameSpec(game string) (GameSpec, error) {
	spec, ok := GameSpecs[game]
	if !ok {
		return GameSpec{}, fmt.Errorf("unsupported game: %s", game)
	}
	return spec, nil
}

// ListGameSpecs returns the supported games in display order.
func ListGameSpecs() []GameSpec {
	return []GameSpec{
		GameSpecs["miniloto"],
		GameSpecs["loto6"],
		GameSpecs["loto7"],
	}
}
