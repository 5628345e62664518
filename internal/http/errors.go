package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/service"
)

// fail maps service and store errors onto status codes. Missing entities
// get a bare 404.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.Status(fiber.StatusNotFound)
		return nil
	case service.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCloudDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(field, msg string) error {
	return &service.ValidationError{Field: field, Message: msg}
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(name, "must be a positive integer")
	}
	return id, nil
}

func dateParam(name, raw string) (domain.Date, error) {
	if raw == "" {
		return domain.Date{}, badRequest(name, "is required")
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, badRequest(name, "must be YYYY-MM-DD")
	}
	return d, nil
}

func window(c *fiber.Ctx) (start, end domain.Date, err error) {
	if start, err = dateParam("startDate", c.Query("startDate")); err != nil {
		return
	}
	end, err = dateParam("endDate", c.Query("endDate"))
	return
}

func maxRate(c *fiber.Ctx) (float64, error) {
	raw := c.Query("maxCorrosionRate")
	if raw == "" {
		return 0, badRequest("maxCorrosionRate", "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequest("maxCorrosionRate", "must be a number")
	}
	return v, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("body", err.Error())
	}
	return nil
}
