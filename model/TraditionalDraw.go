package model

// TraditionalPrizeRow is one prize line of a traditional draw. Group and
// number carry the source's free-text conditions, classified at check time.
type TraditionalPrizeRow struct {
	Rank   string `json:"rank"`
	Amount string `json:"amount"`
	Group  string `json:"group"`
	Number string `json:"number"`
}

// TraditionalDrawResult is one draw occurrence out of a traditional-game CSV.
// A single source document yields many of these, one per A01 section.
type TraditionalDrawResult struct {
	LotteryType   string                `json:"lottery_type"`
	DrawOrder     int                   `json:"draw_order"`
	DrawTitle     string                `json:"draw_title"`
	DrawSubtitle  string                `json:"draw_subtitle"`
	DrawDateJp    string                `json:"draw_date_jp"`
	Venue         string                `json:"venue"`
	PaymentPeriod string                `json:"payment_period"`
	PrizeRows     []TraditionalPrizeRow `json:"prize_rows"`
	SourceURL     string                `json:"source_url"`
}
