package model

// TicketCheckResult is the outcome of checking one number-game ticket
// against one draw. Built per request, never persisted.
type TicketCheckResult struct {
	TicketNumbers []int  `json:"ticket_numbers"`
	MatchedMain   []int  `json:"matched_main"`
	MatchedBonus  []int  `json:"matched_bonus"`
	Rank          string `json:"rank"`
	Winning       bool   `json:"winning"`
	PayoutWinners string `json:"payout_winners"`
	PayoutAmount  string `json:"payout_amount"`
}

// TraditionalTicketMatch is one prize row a traditional ticket qualified for.
type TraditionalTicketMatch struct {
	Rank            string `json:"rank"`
	Amount          string `json:"amount"`
	GroupCondition  string `json:"group_condition"`
	NumberCondition string `json:"number_condition"`
}

// TraditionalTicketCheckResult is the outcome of checking one (group, serial
// number) ticket. TotalPayoutYen is nil when no matched amount could be
// parsed; TotalPayoutDisplay always discloses unresolved amounts.
type TraditionalTicketCheckResult struct {
	TicketGroup        string                   `json:"ticket_group"`
	TicketNumber       string                   `json:"ticket_number"`
	Winning            bool                     `json:"winning"`
	TotalPayoutYen     *int64                   `json:"total_payout_yen"`
	TotalPayoutDisplay string                   `json:"total_payout_display"`
	Matches            []TraditionalTicketMatch `json:"matches"`
}
