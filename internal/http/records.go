package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

func (h *handlers) listTmls(c *fiber.Ctx) error {
	items, err := h.svcs.Repos.FindAllTmls(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) tmlsByCircuit(c *fiber.Ctx) error {
	items, err := h.svcs.Repos.FindTmlsByCircuit(c.UserContext(), c.Params("circuitId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) getTml(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	t, err := h.svcs.Repos.FindTmlByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func (h *handlers) createTml(c *fiber.Ctx) error {
	var t domain.Tml
	if err := parseBody(c, &t); err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.CreateTml(c.UserContext(), &t); err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func (h *handlers) updateTml(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var t domain.Tml
	if err := parseBody(c, &t); err != nil {
		return fail(c, err)
	}
	t.ID = id
	if err := h.svcs.Records.UpdateTml(c.UserContext(), &t); err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func (h *handlers) deleteTml(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.DeleteTml(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusOK)
	return nil
}

func (h *handlers) listMeasurements(c *fiber.Ctx) error {
	items, err := h.svcs.Repos.FindAllMeasurements(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) measurementDates(c *fiber.Ctx) error {
	dates, err := h.svcs.Repos.FindDistinctMeasurementDates(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dates)
}

func (h *handlers) measurementsByTml(c *fiber.Ctx) error {
	id, err := idParam(c, "tmlId")
	if err != nil {
		return fail(c, err)
	}
	items, err := h.svcs.Repos.FindMeasurementsByTml(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) measurementsByDate(c *fiber.Ctx) error {
	d, err := dateParam("date", c.Params("date"))
	if err != nil {
		return fail(c, err)
	}
	items, err := h.svcs.Repos.FindMeasurementsByDate(c.UserContext(), d)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) getMeasurement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	m, err := h.svcs.Repos.FindMeasurementByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

func (h *handlers) createMeasurement(c *fiber.Ctx) error {
	var m domain.Measurement
	if err := parseBody(c, &m); err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.CreateMeasurement(c.UserContext(), &m); err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

func (h *handlers) updateMeasurement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var m domain.Measurement
	if err := parseBody(c, &m); err != nil {
		return fail(c, err)
	}
	m.ID = id
	if err := h.svcs.Records.UpdateMeasurement(c.UserContext(), &m); err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

func (h *handlers) deleteMeasurement(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.DeleteMeasurement(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusOK)
	return nil
}

func (h *handlers) listClassifications(c *fiber.Ctx) error {
	items, err := h.svcs.Repos.FindAllClassifications(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) classificationsByType(c *fiber.Ctx) error {
	items, err := h.svcs.Repos.FindClassificationsByType(c.UserContext(), c.Params("type"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *handlers) getClassification(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	cl, err := h.svcs.Repos.FindClassificationByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cl)
}

func (h *handlers) createClassification(c *fiber.Ctx) error {
	var cl domain.Classification
	if err := parseBody(c, &cl); err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.CreateClassification(c.UserContext(), &cl); err != nil {
		return fail(c, err)
	}
	return c.JSON(cl)
}

func (h *handlers) updateClassification(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var cl domain.Classification
	if err := parseBody(c, &cl); err != nil {
		return fail(c, err)
	}
	cl.ID = id
	if err := h.svcs.Records.UpdateClassification(c.UserContext(), &cl); err != nil {
		return fail(c, err)
	}
	return c.JSON(cl)
}

func (h *handlers) deleteClassification(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.svcs.Records.DeleteClassification(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	c.Status(fiber.StatusOK)
	return nil
}
