package checker

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"takarakuji-service/model"
	"takarakuji-service/utils"

	"github.com/dustin/go-humanize"
)

// notApplicableMarker appears in amount cells for tiers with no prize money.
const notApplicableMarker = "該当なし"

// amountTokenPattern covers the yen unit grammar: a mantissa followed by
// 億 (100,000,000), 万 (10,000) or 円 (1). Units combine, e.g. 1億2000万円.
var amountTokenPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(億|万|円)`)

var unitScale = map[string]float64{
	"億": 100_000_000,
	"万": 10_000,
	"円": 1,
}

// ParseAmountToYen converts a display amount to integer yen. It returns nil
// for empty text, the not-applicable marker, or text outside the unit
// grammar — "no amount" is distinct from zero.
func ParseAmountToYen(rawAmount string) *int64 {
	text := utils.NormalizeDigits(rawAmount)
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if text == "" || strings.Contains(text, notApplicableMarker) {
		return nil
	}
	text = strings.ReplaceAll(text, ",", "")

	tokens := amountTokenPattern.FindAllStringSubmatch(text, -1)
	if len(tokens) == 0 {
		return nil
	}
	total := 0.0
	for _, token := range tokens {
		mantissa, err := strconv.ParseFloat(token[1], 64)
		if err != nil {
			return nil
		}
		total += mantissa * unitScale[token[2]]
	}
	yen := int64(math.Round(total))
	return &yen
}

// sumPayout totals the matched prize amounts. The total is never silently
// wrong: if nothing parsed it is reported as unknown, and a partial total
// always discloses how many amounts were unresolved.
func sumPayout(matches []model.TraditionalTicketMatch) (*int64, string) {
	if len(matches) == 0 {
		zero := int64(0)
		return &zero, "0円"
	}

	var total int64
	parsedCount := 0
	unknownCount := 0
	for _, match := range matches {
		yen := ParseAmountToYen(match.Amount)
		if yen == nil {
			unknownCount++
			continue
		}
		total += *yen
		parsedCount++
	}

	if parsedCount == 0 {
		return nil, "Unknown"
	}
	if unknownCount > 0 {
		return &total, fmt.Sprintf("%s円 (excluding %d prizes with unparsed amounts)", humanize.Comma(total), unknownCount)
	}
	return &total, humanize.Comma(total) + "円"
}

// SummarizeNumberPayouts totals the winning rows of a number-game batch,
// disclosing rows whose tier amount text could not be parsed.
func SummarizeNumberPayouts(results []model.TicketCheckResult) string {
	var total int64
	unknownCount := 0
	for _, result := range results {
		if !result.Winning {
			continue
		}
		yen := ParseAmountToYen(result.PayoutAmount)
		if yen == nil {
			unknownCount++
			continue
		}
		total += *yen
	}
	return formatPayoutSummary(total, unknownCount)
}

// SummarizeTraditionalPayouts totals the winning rows of a traditional
// batch. Rows whose own total was indeterminate count as unresolved.
func SummarizeTraditionalPayouts(results []model.TraditionalTicketCheckResult) string {
	var total int64
	unknownCount := 0
	for _, result := range results {
		if !result.Winning {
			continue
		}
		if result.TotalPayoutYen == nil {
			unknownCount++
			continue
		}
		total += *result.TotalPayoutYen
	}
	return formatPayoutSummary(total, unknownCount)
}

func formatPayoutSummary(total int64, unknownCount int) string {
	if unknownCount > 0 {
		return fmt.Sprintf("%s円 + %d prizes with unresolved amounts", humanize.Comma(total), unknownCount)
	}
	return humanize.Comma(total) + "円"
}
