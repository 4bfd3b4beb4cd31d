package mizuho

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"

	"takarakuji-service/model"
	"takarakuji-service/utils"
)

// Markers fixed by the upstream CSV format. Mizuho does not version the
// format, so these are matched byte-exact after normalization.
const (
	BonusMarker    = "ボーナス数字"
	CarryoverLabel = "キャリーオーバー"
	SalesLabel     = "販売実績額"
	PaymentLabel   = "支払期間"
	SectionMarker  = "A01"

	applicationDigitsNote = "申込数字"
)

var (
	rankLabelPattern = regexp.MustCompile(`^\d+等$`)
	drawTitlePattern = regexp.MustCompile(`第0*(\d+)回`)
	digitRunPattern  = regexp.MustCompile(`\d+`)
)

// ParseLotoDrawCSV parses one number-game draw document.
//
// Row 0 is a section marker, row 1 title/date/venue, row 2 the payment
// period, row 3 the drawn numbers with the bonus marker separating main from
// bonus. Later rows are prize tiers (<digits>等), the carryover row and the
// sales row.
func ParseLotoDrawCSV(game string, content string, sourceURL string) (model.DrawResult, error) {
	rows := parseCSVRows(content)
	if len(rows) < 4 {
		return model.DrawResult{}, dataErrorf("invalid loto CSV format")
	}

	header := rows[1]
	drawTitle := cellAt(header, 0)
	drawDateJp := cellAt(header, 2)
	venue := cellAt(header, 3)
	drawNumber, err := parseDrawNumberFromTitle(drawTitle)
	if err != nil {
		return model.DrawResult{}, err
	}
	paymentPeriod := cellAt(rows[2], 1)

	numbersLine := rows[3]
	bonusIndex := -1
	for i, cell := range numbersLine {
		if cell == BonusMarker {
			bonusIndex = i
			break
		}
	}
	if bonusIndex < 0 {
		return model.DrawResult{}, dataErrorf("bonus number column not found in CSV")
	}
	mainNumbers, err := parseNumberTokens(numbersLine[1:bonusIndex])
	if err != nil {
		return model.DrawResult{}, err
	}
	bonusNumbers, err := parseNumberTokens(numbersLine[bonusIndex+1:])
	if err != nil {
		return model.DrawResult{}, err
	}

	var prizeTiers []model.PrizeTier
	carryover := "-"
	salesAmount := "-"

	for _, row := range rows[4:] {
		if len(row) == 0 {
			continue
		}
		label := utils.CompactText(row[0])
		if label == "" {
			continue
		}
		if label == CarryoverLabel && len(row) > 1 {
			carryover = row[1]
			continue
		}
		if label == SalesLabel && len(row) > 1 {
			salesAmount = row[1]
			continue
		}

		if rankLabelPattern.MatchString(label) && len(row) >= 3 {
			// Trailing rows restating how many 申込数字 must match are
			// informational, not a tier.
			if strings.Contains(row[1], applicationDigitsNote) {
				continue
			}
			prizeTiers = append(prizeTiers, model.PrizeTier{
				Rank:    label,
				Winners: row[len(row)-2],
				Amount:  row[len(row)-1],
			})
		}
	}

	if len(prizeTiers) == 0 {
		return model.DrawResult{}, dataErrorf("no prize tiers parsed from loto CSV")
	}

	return model.DrawResult{
		Game:          game,
		DrawNumber:    drawNumber,
		DrawTitle:     drawTitle,
		DrawDateJp:    drawDateJp,
		Venue:         venue,
		MainNumbers:   mainNumbers,
		BonusNumbers:  bonusNumbers,
		PaymentPeriod: paymentPeriod,
		Carryover:     carryover,
		SalesAmount:   salesAmount,
		PrizeTiers:    prizeTiers,
		SourceURL:     sourceURL,
	}, nil
}

// ParseTraditionalCSV splits the per-type document into A01 sections, one
// draw each. Rows before the first marker are discarded; trailing sections
// with fewer than two rows are incomplete in the source and dropped silently.
func ParseTraditionalCSV(lotteryType string, content string, sourceURL string) ([]model.TraditionalDrawResult, error) {
	rows := parseCSVRows(content)
	var sections [][][]string
	var current [][]string

	for _, row := range rows {
		if cellAt(row, 0) == SectionMarker {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}

	var draws []model.TraditionalDrawResult
	for _, section := range sections {
		if len(section) < 2 {
			continue
		}
		header := section[0]
		drawTitle := cellAt(header, 0)
		drawOrder, err := parseDrawNumberFromTitle(drawTitle)
		if err != nil {
			return nil, err
		}

		paymentPeriod := ""
		var prizeRows []model.TraditionalPrizeRow

		for _, row := range section[1:] {
			if len(row) == 0 {
				continue
			}
			if row[0] == PaymentLabel {
				paymentPeriod = cellAt(row, 1)
				continue
			}
			if row[0] == "" {
				continue
			}
			prizeRows = append(prizeRows, model.TraditionalPrizeRow{
				Rank:   cellAt(row, 0),
				Amount: cellAt(row, 1),
				Group:  cellAt(row, 2),
				Number: cellAt(row, 3),
			})
		}

		draws = append(draws, model.TraditionalDrawResult{
			LotteryType:   lotteryType,
			DrawOrder:     drawOrder,
			DrawTitle:     drawTitle,
			DrawSubtitle:  cellAt(header, 1),
			DrawDateJp:    cellAt(header, 2),
			Venue:         cellAt(header, 3),
			PaymentPeriod: paymentPeriod,
			PrizeRows:     prizeRows,
			SourceURL:     sourceURL,
		})
	}
	return draws, nil
}

// parseCSVRows reads delimited rows, normalizes every cell and drops rows
// that are empty after normalization.
func parseCSVRows(content string) [][]string {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		cleaned := make([]string, len(record))
		empty := true
		for i, cell := range record {
			cleaned[i] = utils.NormalizeCell(cell)
			if cleaned[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, cleaned)
		}
	}
	return rows
}

func cellAt(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// parseDrawNumberFromTitle extracts the 第N回 draw number; every draw title
// is expected to carry it.
func parseDrawNumberFromTitle(drawTitle string) (int, error) {
	normalized := utils.NormalizeDigits(drawTitle)
	match := drawTitlePattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0, dataErrorf("cannot parse draw number from title: %s", drawTitle)
	}
	number, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, dataErrorf("cannot parse draw number from title: %s", drawTitle)
	}
	return number, nil
}

func parseNumberTokens(tokens []string) ([]int, error) {
	numbers := make([]int, 0, len(tokens))
	for _, token := range tokens {
		normalized := utils.NormalizeDigits(token)
		digits := digitRunPattern.FindString(normalized)
		if digits == "" {
			return nil, dataErrorf("cannot parse number from CSV cell: %s", token)
		}
		value, err := strconv.Atoi(digits)
		if err != nil {
			return nil, dataErrorf("cannot parse number from CSV cell: %s", token)
		}
		numbers = append(numbers, value)
	}
	return numbers, nil
}
