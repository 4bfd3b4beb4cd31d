package model

import "fmt"

// TraditionalType describes one sequential-number (group + serial) lottery
// family as published on the Mizuho takarakuji site.
type TraditionalType struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	// JpLabel is the label the source site uses for this family.
	JpLabel string `json:"jp_label"`
}

var TraditionalTypes = map[string]TraditionalType{
	"zenkoku": {
		Key:     "zenkoku",
		Label:   "Zenkoku",
		JpLabel: "全国自治",
	},
	"jumbo": {
		Key:     "jumbo",
		Label:   "Jumbo",
		JpLabel: "ジャンボ",
	},
	"tokyo": {
		Key:     "tokyo",
		Label:   "Tokyo",
		JpLabel: "東京都",
	},
	"kinki": {
		Key:     "kinki",
		Label:   "Kinki",
		JpLabel: "近畿",
	},
	"chiiki": {
		Key:     "chiiki",
		Label:   "Regional Medical",
		JpLabel: "地域医療等振興自治",
	},
	"kct": {
		Key:     "kct",
		Label:   "Kanto/Chubu/Tohoku",
		JpLabel: "関東・中部・東北自治",
	},
	"nishinihon": {
		Key:     "nishinihon",
		Label:   "Nishinihon",
		JpLabel: "西日本",
	},
}

func GetTraditionalType(typeKey string) (TraditionalType, error) {
	lotteryType, ok := TraditionalTypes[typeKey]
	if !ok {
		return TraditionalType{}, fmt.Errorf("unsupported traditional type: %s", typeKey)
	}
	return lotteryType, nil
}

// ListTraditionalTypes returns the supported families in display order.
func ListTraditionalTypes() []TraditionalType {
	keys := []string{"zenkoku", "jumbo", "tokyo", "kinki", "chiiki", "kct", "nishinihon"}
	types := make([]TraditionalType, 0, len(keys))
	for _, key := range keys {
		types = append(types, TraditionalTypes[key])
	}
	return types
}
