package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func SetupRoutes(app *fiber.App, handler *Handler) {
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Post("/webhook/whatsapp", handler.Webhook)
}
