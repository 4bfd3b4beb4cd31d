package checker

import (
	"testing"

	"takarakuji-service/model"

	"github.com/stretchr/testify/assert"
)

func TestParseAmountToYen(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		none  bool
	}{
		{input: "1000万円", want: 10_000_000},
		{input: "１０００万円", want: 10_000_000},
		{input: "250万円", want: 2_500_000},
		{input: "3万円", want: 30_000},
		{input: "100円", want: 100},
		{input: "1億円", want: 100_000_000},
		{input: "1億2000万円", want: 120_000_000},
		{input: "1.5億円", want: 150_000_000},
		{input: "2億 5000万 500円", want: 250_000_500},
		{input: "1,000,000円", want: 1_000_000},
		{input: "該当なし", none: true},
		{input: "", none: true},
		{input: "たくさん", none: true},
	}

	a := assert.New(t)
	for _, test := range tests {
		got := ParseAmountToYen(test.input)
		if test.none {
			a.Nil(got, test.input)
			continue
		}
		if a.NotNil(got, test.input) {
			a.Equal(test.want, *got, test.input)
		}
	}
}

func TestSumPayoutDisclosure(t *testing.T) {
	a := assert.New(t)

	// Every amount unparseable: the total is wholly indeterminate.
	total, display := sumPayout([]model.TraditionalTicketMatch{
		{Rank: "敢闘賞", Amount: "記念品"},
	})
	a.Nil(total)
	a.Equal("Unknown", display)

	// Mixed: the known subtotal is disclosed with the unresolved count.
	total, display = sumPayout([]model.TraditionalTicketMatch{
		{Rank: "１等", Amount: "1000万円"},
		{Rank: "敢闘賞", Amount: "記念品"},
	})
	if a.NotNil(total) {
		a.EqualValues(10_000_000, *total)
	}
	a.Contains(display, "10,000,000円")
	a.Contains(display, "1")

	// Fully parsed: a plain comma-formatted total.
	total, display = sumPayout([]model.TraditionalTicketMatch{
		{Rank: "１等", Amount: "1000万円"},
		{Rank: "４等", Amount: "1万円"},
	})
	if a.NotNil(total) {
		a.EqualValues(10_010_000, *total)
	}
	a.Equal("10,010,000円", display)
}

func TestSummarizeNumberPayouts(t *testing.T) {
	a := assert.New(t)

	results := []model.TicketCheckResult{
		{Winning: true, PayoutAmount: "1000円"},
		{Winning: true, PayoutAmount: "-"},
		{Winning: false, PayoutAmount: "-"},
		{Winning: true, PayoutAmount: "5万円"},
	}
	a.Equal("51,000円 + 1 prizes with unresolved amounts", SummarizeNumberPayouts(results))

	a.Equal("0円", SummarizeNumberPayouts(nil))
}

func TestSummarizeTraditionalPayouts(t *testing.T) {
	a := assert.New(t)

	known := int64(2_500_000)
	results := []model.TraditionalTicketCheckResult{
		{Winning: true, TotalPayoutYen: &known},
		{Winning: true, TotalPayoutYen: nil},
		{Winning: false},
	}
	a.Equal("2,500,000円 + 1 prizes with unresolved amounts", SummarizeTraditionalPayouts(results))
}
