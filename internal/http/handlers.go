package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/service"
)

// Register mounts every resource under /api.
func Register(app *fiber.App, svcs *service.Services) {
	h := &handlers{svcs: svcs}
	api := app.Group("/api")

	t := api.Group("/tmls")
	t.Get("/", h.listTmls)
	t.Get("/circuit/:circuitId", h.tmlsByCircuit)
	t.Get("/:id", h.getTml)
	t.Post("/", h.createTml)
	t.Put("/:id", h.updateTml)
	t.Delete("/:id", h.deleteTml)

	m := api.Group("/measurements")
	m.Get("/", h.listMeasurements)
	m.Get("/dates", h.measurementDates)
	m.Get("/tml/:tmlId", h.measurementsByTml)
	m.Get("/date/:date", h.measurementsByDate)
	m.Get("/:id", h.getMeasurement)
	m.Post("/", h.createMeasurement)
	m.Put("/:id", h.updateMeasurement)
	m.Delete("/:id", h.deleteMeasurement)

	c := api.Group("/classifications")
	c.Get("/", h.listClassifications)
	c.Get("/type/:type", h.classificationsByType)
	c.Get("/:id", h.getClassification)
	c.Post("/", h.createClassification)
	c.Put("/:id", h.updateClassification)
	c.Delete("/:id", h.deleteClassification)

	api.Get("/corrosion-data", h.corrosionData)

	g := api.Group("/gemini")
	g.Get("/api-key", h.getAPIKey)
	g.Post("/api-key", h.saveAPIKey)
	g.Put("/api-key", h.updateAPIKey)

	api.Get("/temporal/tracking", h.trackAll)
	api.Get("/tracking/temporal", h.trackAll)
	api.Get("/temporal/tracking-specific", h.trackSubset)
	api.Get("/temporal/tracking/export", h.exportTracking)
	api.Post("/reports/tracking", h.publishReport)
}

type handlers struct {
	svcs *service.Services
}
