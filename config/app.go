package config

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"fiber/kp/app/model"
)

func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	return app
}

// errorHandler memetakan APIError ke status HTTP-nya; sisanya jadi 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Code).JSON(model.ErrorResponse{Error: apiErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(model.ErrorResponse{Error: fiberErr.Message})
	}

	Log.Error("unhandled error: " + err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: "Terjadi kesalahan pada server"})
}
