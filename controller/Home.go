package controller

import (
	"errors"
	"strconv"

	"takarakuji-service/checker"
	"takarakuji-service/config"
	"takarakuji-service/mizuho"
	"takarakuji-service/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var Validate = validator.New()

// Client is the shared draw source client. Tests point it at an
// httptest-backed base URL.
var Client *mizuho.Client

func InitClient() {
	Client = mizuho.NewClient(config.MizuhoBaseURL, config.FetchTimeout)
}

func Index(c *fiber.Ctx) error {
	c.Accepts("text/plain", "application/json")
	return c.JSON(fiber.Map{"status": 200,
		"message": "Takarakuji result checking API",
	})
}

func ServiceStatusCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": 200, "message": "This API service is running!"})
}

// GetGames lists the supported number games and traditional families.
func GetGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": 200, "data": fiber.Map{
		"games":             model.ListGameSpecs(),
		"traditional_types": model.ListTraditionalTypes(),
	}})
}

// GetLatestDraw returns the newest published draw for a number game.
func GetLatestDraw(c *fiber.Ctx) error {
	game := c.Params("game")
	draw, err := Client.GetLatestDraw(c.UserContext(), game)
	if err != nil {
		return respondError(c, err, "GetLatestDraw", game)
	}
	return c.JSON(fiber.Map{"status": 200, "data": draw})
}

// GetDrawByNumber returns one draw of a number game by its draw number.
func GetDrawByNumber(c *fiber.Ctx) error {
	game := c.Params("game")
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil || number <= 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": "Draw number must be a positive integer"})
	}
	draw, err := Client.GetDraw(c.UserContext(), game, number)
	if err != nil {
		return respondError(c, err, "GetDrawByNumber", game)
	}
	return c.JSON(fiber.Map{"status": 200, "data": draw})
}

// GetTraditionalDraws returns the parsed sections of one traditional-type
// document, newest first. An optional limit query truncates the list.
func GetTraditionalDraws(c *fiber.Ctx) error {
	lotteryType := c.Params("type")
	limit := c.QueryInt("limit", 0)
	draws, err := Client.GetTraditionalDraws(c.UserContext(), lotteryType, limit)
	if err != nil {
		return respondError(c, err, "GetTraditionalDraws", lotteryType)
	}
	return c.JSON(fiber.Map{"status": 200, "data": draws})
}

type checkRequest struct {
	Game       string   `json:"game" validate:"required"`
	DrawNumber int      `json:"draw_number" validate:"omitempty,gt=0"`
	Tickets    []string `json:"tickets" validate:"required,min=1"`
}

type ticketRowResult struct {
	Index  int                      `json:"index"`
	Input  string                   `json:"input"`
	Error  string                   `json:"error,omitempty"`
	Result *model.TicketCheckResult `json:"result,omitempty"`
}

// CheckTickets validates and checks a batch of number-game tickets against
// one draw (latest when no draw number is given). Row results keep the input
// order; a malformed row is reported inline without failing the batch.
func CheckTickets(c *fiber.Ctx) error {
	payload := new(checkRequest)
	if err := c.BodyParser(payload); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": "Please provide all required data", "details": err.Error()})
	}
	if err := Validate.Struct(payload); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": "Provided data are not valid"})
	}
	spec, err := model.GetGameSpec(payload.Game)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": err.Error()})
	}

	var draw model.DrawResult
	if payload.DrawNumber > 0 {
		draw, err = Client.GetDraw(c.UserContext(), payload.Game, payload.DrawNumber)
	} else {
		draw, err = Client.GetLatestDraw(c.UserContext(), payload.Game)
	}
	if err != nil {
		return respondError(c, err, "CheckTickets", payload.Game)
	}

	rows := make([]ticketRowResult, 0, len(payload.Tickets))
	winners := make([]model.TicketCheckResult, 0, len(payload.Tickets))
	for i, raw := range payload.Tickets {
		row := ticketRowResult{Index: i, Input: raw}
		numbers, err := checker.ParseTicketNumbers(raw, spec.Picks, spec.MinNumber, spec.MaxNumber)
		if err != nil {
			row.Error = err.Error()
		} else {
			result := checker.CheckTicket(spec, draw, numbers)
			row.Result = &result
			winners = append(winners, result)
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{"status": 200, "data": fiber.Map{
		"draw":           draw,
		"results":        rows,
		"payout_summary": checker.SummarizeNumberPayouts(winners),
	}})
}

type traditionalTicketInput struct {
	Group  string `json:"group"`
	Number string `json:"number"`
}

type traditionalCheckRequest struct {
	LotteryType string                   `json:"lottery_type" validate:"required"`
	DrawOrder   int                      `json:"draw_order" validate:"omitempty,gt=0"`
	Tickets     []traditionalTicketInput `json:"tickets" validate:"required,min=1"`
}

type traditionalRowResult struct {
	Index  int                                 `json:"index"`
	Group  string                              `json:"group"`
	Number string                              `json:"number"`
	Error  string                              `json:"error,omitempty"`
	Result *model.TraditionalTicketCheckResult `json:"result,omitempty"`
}

// CheckTraditionalTickets validates and checks a batch of (group, serial
// number) tickets against one traditional draw.
func CheckTraditionalTickets(c *fiber.Ctx) error {
	payload := new(traditionalCheckRequest)
	if err := c.BodyParser(payload); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": "Please provide all required data", "details": err.Error()})
	}
	if err := Validate.Struct(payload); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": "Provided data are not valid"})
	}

	var draw model.TraditionalDrawResult
	var err error
	if payload.DrawOrder > 0 {
		draw, err = Client.GetTraditionalDraw(c.UserContext(), payload.LotteryType, payload.DrawOrder)
	} else {
		draw, err = Client.GetLatestTraditionalDraw(c.UserContext(), payload.LotteryType)
	}
	if err != nil {
		return respondError(c, err, "CheckTraditionalTickets", payload.LotteryType)
	}

	rows := make([]traditionalRowResult, 0, len(payload.Tickets))
	winners := make([]model.TraditionalTicketCheckResult, 0, len(payload.Tickets))
	for i, ticket := range payload.Tickets {
		row := traditionalRowResult{Index: i, Group: ticket.Group, Number: ticket.Number}
		group, number, err := checker.ParseTraditionalTicket(ticket.Group, ticket.Number)
		if err != nil {
			row.Error = err.Error()
		} else {
			result := checker.CheckTraditionalTicket(draw, group, number)
			row.Result = &result
			winners = append(winners, result)
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{"status": 200, "data": fiber.Map{
		"draw":           draw,
		"results":        rows,
		"payout_summary": checker.SummarizeTraditionalPayouts(winners),
	}})
}

// respondError maps core error kinds onto HTTP statuses: malformed user
// input is 400, an unreachable or malformed upstream is 502.
func respondError(c *fiber.Ctx, err error, operation, subject string) error {
	var dataErr *mizuho.DataError
	if errors.As(err, &dataErr) {
		config.Logger.Error().Str("operation", operation).Str("subject", subject).Err(err).Msg("upstream data error")
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{"status": 502, "message": "Lottery source data is unavailable or malformed", "details": err.Error()})
	}
	var validationErr *checker.ValidationError
	if errors.As(err, &validationErr) {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{"status": 400, "message": validationErr.Reason})
	}
	c.SendStatus(fiber.StatusBadRequest)
	return c.JSON(fiber.Map{"status": 400, "message": err.Error()})
}
