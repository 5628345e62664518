package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/service"
)

func (h *handlers) corrosionData(c *fiber.Ctx) error {
	rows, err := h.svcs.Distribution.Build(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func (h *handlers) trackAll(c *fiber.Ctx) error {
	start, end, err := window(c)
	if err != nil {
		return fail(c, err)
	}
	limit, err := maxRate(c)
	if err != nil {
		return fail(c, err)
	}
	rows, err := h.svcs.Tracking.TrackAll(c.UserContext(), start, end, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func (h *handlers) trackSubset(c *fiber.Ctx) error {
	start, end, err := window(c)
	if err != nil {
		return fail(c, err)
	}
	if !c.Context().QueryArgs().Has("tmlIds") {
		return fail(c, badRequest("tmlIds", "is required"))
	}
	rows, err := h.svcs.Tracking.TrackSubset(c.UserContext(), start, end, service.ParseTmlIDs(c.Query("tmlIds")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func (h *handlers) exportTracking(c *fiber.Ctx) error {
	start, end, err := window(c)
	if err != nil {
		return fail(c, err)
	}
	limit, err := maxRate(c)
	if err != nil {
		return fail(c, err)
	}
	rows, err := h.svcs.Tracking.TrackAll(c.UserContext(), start, end, limit)
	if err != nil {
		return fail(c, err)
	}
	data, err := service.TrackingCSV(rows)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="tracking_%s_%s.csv"`, start, end))
	return c.Send(data)
}

func (h *handlers) publishReport(c *fiber.Ctx) error {
	start, end, err := window(c)
	if err != nil {
		return fail(c, err)
	}
	limit, err := maxRate(c)
	if err != nil {
		return fail(c, err)
	}
	rep, err := h.svcs.Reports.Publish(c.UserContext(), start, end, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rep)
}
