package handlers

import "github.com/gofiber/fiber/v2"

// One envelope shape for every endpoint, so clients never probe for the
// payload location.

func respond(c *fiber.Ctx, status int, data any, message string) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}
