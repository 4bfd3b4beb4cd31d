package model

// PrizeTier is one row of a number-game prize table. Winner count and amount
// are kept as the source's display text.
type PrizeTier struct {
	Rank    string `json:"rank"`
	Winners string `json:"winners"`
	Amount  string `json:"amount"`
}

// DrawResult is one parsed number-game draw.
type DrawResult struct {
	Game          string      `json:"game"`
	DrawNumber    int         `json:"draw_number"`
	DrawTitle     string      `json:"draw_title"`
	DrawDateJp    string      `json:"draw_date_jp"`
	Venue         string      `json:"venue"`
	MainNumbers   []int       `json:"main_numbers"`
	BonusNumbers  []int       `json:"bonus_numbers"`
	PaymentPeriod string      `json:"payment_period"`
	Carryover     string      `json:"carryover"`
	SalesAmount   string      `json:"sales_amount"`
	PrizeTiers    []PrizeTier `json:"prize_tiers"`
	SourceURL     string      `json:"source_url"`
}
