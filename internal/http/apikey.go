package http

import (
	"github.com/gofiber/fiber/v2"
)

type apiKeyBody struct {
	APIKey string `json:"apiKey"`
}

func (h *handlers) getAPIKey(c *fiber.Ctx) error {
	key, err := h.svcs.Keys.Active(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"apiKey": key})
}

func (h *handlers) saveAPIKey(c *fiber.Ctx) error {
	var body apiKeyBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Keys.Save(c.UserContext(), body.APIKey); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "API key saved successfully"})
}

func (h *handlers) updateAPIKey(c *fiber.Ctx) error {
	var body apiKeyBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Keys.Update(c.UserContext(), body.APIKey); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "API key updated successfully"})
}
