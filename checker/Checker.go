package checker

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"takarakuji-service/model"
	"takarakuji-service/utils"
)

// LosingRank is the sentinel rank for a ticket that won nothing. Winning
// ranks keep the upstream Japanese labels (1等, 2等, ...).
const LosingRank = "No win"

// ValidationError means the user's ticket input was malformed. The reason is
// specific and displayable; the caller re-prompts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

var ticketSplitPattern = regexp.MustCompile(`[\s,;/]+`)

// ParseTicketNumbers turns one line of free-text ticket input into a sorted,
// validated number set for the given game bounds.
func ParseTicketNumbers(rawInput string, expectedCount, minNumber, maxNumber int) ([]int, error) {
	trimmed := utils.NormalizeCell(rawInput)
	if trimmed == "" {
		return nil, validationErrorf("No ticket numbers entered.")
	}

	tokens := ticketSplitPattern.Split(trimmed, -1)
	filtered := tokens[:0]
	for _, token := range tokens {
		if token != "" {
			filtered = append(filtered, token)
		}
	}
	if len(filtered) != expectedCount {
		return nil, validationErrorf("Exactly %d numbers are required.", expectedCount)
	}

	numbers := make([]int, 0, expectedCount)
	seen := make(map[int]bool, expectedCount)
	var outOfRange []int
	for _, token := range filtered {
		value, err := utils.ExtractNumber(token)
		if err != nil {
			// Tokens too large for an int are out of range for every game.
			if errors.Is(err, strconv.ErrRange) {
				return nil, validationErrorf("Numbers must be between %d and %d. Invalid: [%s]", minNumber, maxNumber, token)
			}
			return nil, validationErrorf("Cannot read a number from %q.", token)
		}
		if seen[value] {
			return nil, validationErrorf("The ticket contains duplicate numbers.")
		}
		seen[value] = true
		if value < minNumber || value > maxNumber {
			outOfRange = append(outOfRange, value)
		}
		numbers = append(numbers, value)
	}
	if len(outOfRange) > 0 {
		return nil, validationErrorf("Numbers must be between %d and %d. Invalid: %v", minNumber, maxNumber, outOfRange)
	}

	sort.Ints(numbers)
	return numbers, nil
}

// rankRule maps a main-hit count plus a minimum bonus-hit count to a rank.
// Rules are evaluated in order; the first match wins.
type rankRule struct {
	MainHits int
	MinBonus int
	Rank     string
}

// rankTables holds one ordered rule list per supported game, so adding a
// game variant is a data change rather than a new branch.
var rankTables = map[string][]rankRule{
	"miniloto": {
		{MainHits: 5, MinBonus: 0, Rank: "1等"},
		{MainHits: 4, MinBonus: 1, Rank: "2等"},
		{MainHits: 4, MinBonus: 0, Rank: "3等"},
		{MainHits: 3, MinBonus: 0, Rank: "4等"},
	},
	"loto6": {
		{MainHits: 6, MinBonus: 0, Rank: "1等"},
		{MainHits: 5, MinBonus: 1, Rank: "2等"},
		{MainHits: 5, MinBonus: 0, Rank: "3等"},
		{MainHits: 4, MinBonus: 0, Rank: "4等"},
		{MainHits: 3, MinBonus: 0, Rank: "5等"},
	},
	"loto7": {
		{MainHits: 7, MinBonus: 0, Rank: "1等"},
		{MainHits: 6, MinBonus: 1, Rank: "2等"},
		{MainHits: 6, MinBonus: 0, Rank: "3等"},
		{MainHits: 5, MinBonus: 0, Rank: "4等"},
		{MainHits: 4, MinBonus: 0, Rank: "5等"},
		{MainHits: 3, MinBonus: 1, Rank: "6等"},
	},
}

// determineRank resolves the rank for a hit combination. A game key missing
// from the table is a caller bug, not user input, hence the panic.
func determineRank(game string, mainHits, bonusHits int) string {
	rules, ok := rankTables[game]
	if !ok {
		panic(fmt.Sprintf("checker: unsupported game %q", game))
	}
	for _, rule := range rules {
		if mainHits == rule.MainHits && bonusHits >= rule.MinBonus {
			return rule.Rank
		}
	}
	return LosingRank
}

// CheckTicket matches one validated ticket against one draw.
func CheckTicket(spec model.GameSpec, draw model.DrawResult, ticketNumbers []int) model.TicketCheckResult {
	matchedMain := intersection(ticketNumbers, draw.MainNumbers)
	matchedBonus := intersection(ticketNumbers, draw.BonusNumbers)
	rank := determineRank(spec.Key, len(matchedMain), len(matchedBonus))
	winning := rank != LosingRank

	winners, amount := "-", "-"
	if winning {
		winners, amount = findPayout(draw, rank)
	}

	return model.TicketCheckResult{
		TicketNumbers: ticketNumbers,
		MatchedMain:   matchedMain,
		MatchedBonus:  matchedBonus,
		Rank:          rank,
		Winning:       winning,
		PayoutWinners: winners,
		PayoutAmount:  amount,
	}
}

func findPayout(draw model.DrawResult, rank string) (string, string) {
	for _, tier := range draw.PrizeTiers {
		if tier.Rank == rank {
			return tier.Winners, tier.Amount
		}
	}
	return "-", "-"
}

func intersection(first, second []int) []int {
	inSecond := make(map[int]bool, len(second))
	for _, v := range second {
		inSecond[v] = true
	}
	var common []int
	for _, v := range first {
		if inSecond[v] {
			common = append(common, v)
		}
	}
	sort.Ints(common)
	if common == nil {
		common = []int{}
	}
	return common
}
