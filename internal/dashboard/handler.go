package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moneytrack/moneytrack-backend/internal/envelope"
)

type Handler struct {
	Data Provider
}

func NewHandler(data Provider) *Handler {
	return &Handler{Data: data}
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"stats": h.Data.Stats()})
}

func (h *Handler) SalesChart(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"chartData": h.Data.SalesChart()})
}

func (h *Handler) PerformanceChart(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"chartData": h.Data.PerformanceChart()})
}

func (h *Handler) PageVisits(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"pageVisits": h.Data.PageVisits()})
}

func (h *Handler) SocialTraffic(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"socialTraffic": h.Data.SocialTraffic()})
}

func (h *Handler) RecentActivity(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"activities": h.Data.RecentActivity()})
}

func (h *Handler) Overview(c *fiber.Ctx) error {
	return envelope.OK(c, fiber.Map{"overview": h.Data.Overview()})
}
