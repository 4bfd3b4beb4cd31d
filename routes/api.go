package routes

import (
	"time"

	"takarakuji-service/controller"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func InitRoutes() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	v1 := app.Group("/api/v1/")
	v1.Get("/", controller.Index)
	v1.All("/service-status", controller.ServiceStatusCheck)
	v1.Get("/games", controller.GetGames)
	v1.Get("/draws/:game/latest", controller.GetLatestDraw)
	v1.Get("/draws/:game/:number", controller.GetDrawByNumber)
	v1.Post("/check", controller.CheckTickets)
	v1.Get("/traditional/:type", controller.GetTraditionalDraws)
	v1.Post("/traditional/check", controller.CheckTraditionalTickets)
	return app
}
