package checker

import (
	"regexp"
	"strconv"
	"strings"

	"takarakuji-service/model"
	"takarakuji-service/utils"
)

// Condition labels fixed by the upstream prize tables.
const (
	anyGroupLabel           = "各組共通"
	adjacentNumberLabel     = "前後の番号"
	differentGroupSameLabel = "組違い同番号"
)

var (
	groupTailPattern  = regexp.MustCompile(`組下(\d+)ケタ(\d+)組`)
	tailDigitsPattern = regexp.MustCompile(`下(\d+)ケタ`)
	exactGroupPattern = regexp.MustCompile(`^(\d+)組$`)
	baseRankPattern   = regexp.MustCompile(`\d+等`)
)

type conditionKind int

const (
	conditionUnknown conditionKind = iota
	conditionAnyGroup
	conditionGroupTail
	conditionTailDigits
	conditionExactGroup
	conditionAdjacentNumber
	conditionDifferentGroupSameNumber
)

// groupCondition is the classified form of a prize row's free-text group
// condition. Classification happens once per row; matching dispatches on the
// kind instead of re-parsing the text.
type groupCondition struct {
	Kind      conditionKind
	BaseRank  string // adjacent-number and different-group variants
	TailWidth int    // group-tail and tail-digit variants
	Group     string // exact-group and group-tail variants
}

// classifyGroupCondition sorts a condition text into the closed variant set.
// Text that fits no known phrasing classifies as unknown and never matches;
// upstream phrasing is not exhaustively enumerable, so this stays permissive.
func classifyGroupCondition(text string) groupCondition {
	normalized := utils.CompactText(text)
	if normalized == "" {
		return groupCondition{Kind: conditionUnknown}
	}
	if strings.Contains(normalized, adjacentNumberLabel) {
		return groupCondition{Kind: conditionAdjacentNumber, BaseRank: extractBaseRank(normalized)}
	}
	if strings.Contains(normalized, differentGroupSameLabel) {
		return groupCondition{Kind: conditionDifferentGroupSameNumber, BaseRank: extractBaseRank(normalized)}
	}
	if strings.Contains(normalized, anyGroupLabel) {
		return groupCondition{Kind: conditionAnyGroup}
	}
	if match := groupTailPattern.FindStringSubmatch(normalized); match != nil {
		width, _ := strconv.Atoi(match[1])
		return groupCondition{Kind: conditionGroupTail, TailWidth: width, Group: match[2]}
	}
	if match := tailDigitsPattern.FindStringSubmatch(normalized); match != nil {
		width, _ := strconv.Atoi(match[1])
		return groupCondition{Kind: conditionTailDigits, TailWidth: width}
	}
	if match := exactGroupPattern.FindStringSubmatch(normalized); match != nil {
		return groupCondition{Kind: conditionExactGroup, Group: match[1]}
	}
	return groupCondition{Kind: conditionUnknown}
}

func extractBaseRank(conditionText string) string {
	return baseRankPattern.FindString(conditionText)
}

// ParseTraditionalTicket extracts the digits of a group field and a serial
// number field. Both must contain digits.
func ParseTraditionalTicket(groupRaw, numberRaw string) (string, string, error) {
	group := utils.DigitsOnly(groupRaw)
	number := utils.DigitsOnly(numberRaw)
	if group == "" {
		return "", "", validationErrorf("Group number is missing.")
	}
	if number == "" {
		return "", "", validationErrorf("Ticket number is missing.")
	}
	return group, number, nil
}

// CheckTraditionalTicket matches one (group, serial number) ticket against
// every prize row of a draw. A ticket may match several rows at once; all
// matches are collected in draw order.
func CheckTraditionalTicket(draw model.TraditionalDrawResult, ticketGroup, ticketNumber string) model.TraditionalTicketCheckResult {
	matches := []model.TraditionalTicketMatch{}
	for _, row := range draw.PrizeRows {
		if traditionalRowMatches(draw, row, ticketGroup, ticketNumber) {
			matches = append(matches, model.TraditionalTicketMatch{
				Rank:            row.Rank,
				Amount:          row.Amount,
				GroupCondition:  row.Group,
				NumberCondition: row.Number,
			})
		}
	}

	totalYen, totalDisplay := sumPayout(matches)
	return model.TraditionalTicketCheckResult{
		TicketGroup:        ticketGroup,
		TicketNumber:       ticketNumber,
		Winning:            len(matches) > 0,
		TotalPayoutYen:     totalYen,
		TotalPayoutDisplay: totalDisplay,
		Matches:            matches,
	}
}

func traditionalRowMatches(draw model.TraditionalDrawResult, row model.TraditionalPrizeRow, ticketGroup, ticketNumber string) bool {
	cond := classifyGroupCondition(row.Group)
	switch cond.Kind {
	case conditionAdjacentNumber:
		return matchAdjacentPrize(draw, cond.BaseRank, ticketGroup, ticketNumber)
	case conditionDifferentGroupSameNumber:
		return matchDifferentGroupSameNumber(draw, cond.BaseRank, ticketGroup, ticketNumber)
	case conditionUnknown:
		return false
	default:
		return matchGroup(cond, ticketGroup) && matchNumber(cond, row.Number, ticketNumber)
	}
}

// matchGroup decides whether the ticket's group satisfies a classified group
// condition. The special cross-row variants never match here.
func matchGroup(cond groupCondition, ticketGroup string) bool {
	switch cond.Kind {
	case conditionAnyGroup, conditionTailDigits:
		return true
	case conditionGroupTail:
		return tailEquals(ticketGroup, cond.Group, cond.TailWidth)
	case conditionExactGroup:
		ticketValue, err := strconv.Atoi(ticketGroup)
		if err != nil {
			return false
		}
		condValue, err := strconv.Atoi(cond.Group)
		if err != nil {
			return false
		}
		return ticketValue == condValue
	default:
		return false
	}
}

// matchNumber decides whether the ticket's serial number satisfies the row's
// number condition under the classified group condition. Tail-digit rows
// compare only the trailing digits; everything else is an exact match after
// zero-padding both sides to the longer width.
func matchNumber(cond groupCondition, rowNumber, ticketNumber string) bool {
	winningDigits := utils.DigitsOnly(rowNumber)
	if winningDigits == "" {
		return false
	}
	if cond.Kind == conditionTailDigits {
		return tailEquals(ticketNumber, winningDigits, cond.TailWidth)
	}
	return exactNumberMatch(ticketNumber, winningDigits)
}

// matchAdjacentPrize implements the 前後の番号 rule: the ticket wins if some
// base-rank row matches its group and the numeric values differ by exactly
// one. Adjacency is numeric and does not wrap around at the width boundary.
func matchAdjacentPrize(draw model.TraditionalDrawResult, baseRank, ticketGroup, ticketNumber string) bool {
	if baseRank == "" {
		return false
	}
	for _, row := range draw.PrizeRows {
		if utils.CompactText(row.Rank) != baseRank {
			continue
		}
		if !matchGroup(classifyGroupCondition(row.Group), ticketGroup) {
			continue
		}
		winNumber := utils.DigitsOnly(row.Number)
		if winNumber == "" {
			continue
		}
		width := len(ticketNumber)
		if len(winNumber) > width {
			width = len(winNumber)
		}
		ticketValue, err1 := strconv.ParseInt(zeroPad(ticketNumber, width), 10, 64)
		winValue, err2 := strconv.ParseInt(zeroPad(winNumber, width), 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		delta := ticketValue - winValue
		if delta == 1 || delta == -1 {
			return true
		}
	}
	return false
}

// matchDifferentGroupSameNumber implements the 組違い同番号 rule: same serial
// number as a base-rank winner, but a group that does not satisfy that row's
// group condition.
func matchDifferentGroupSameNumber(draw model.TraditionalDrawResult, baseRank, ticketGroup, ticketNumber string) bool {
	if baseRank == "" {
		return false
	}
	for _, row := range draw.PrizeRows {
		if utils.CompactText(row.Rank) != baseRank {
			continue
		}
		winNumber := utils.DigitsOnly(row.Number)
		if winNumber == "" || !exactNumberMatch(ticketNumber, winNumber) {
			continue
		}
		if !matchGroup(classifyGroupCondition(row.Group), ticketGroup) {
			return true
		}
	}
	return false
}

func exactNumberMatch(ticketNumber, winningNumber string) bool {
	width := len(ticketNumber)
	if len(winningNumber) > width {
		width = len(winningNumber)
	}
	return zeroPad(ticketNumber, width) == zeroPad(winningNumber, width)
}

// tailEquals compares the trailing width digits of both values after
// zero-padding each to at least width.
func tailEquals(left, right string, width int) bool {
	if width <= 0 {
		return false
	}
	paddedLeft := zeroPad(left, width)
	paddedRight := zeroPad(right, width)
	return paddedLeft[len(paddedLeft)-width:] == paddedRight[len(paddedRight)-width:]
}

func zeroPad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}
