package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/models"
	"github.com/terraincognita07/kira/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func parseDateParam(raw string) (string, error) {
	return services.ParseDayDate(raw)
}

// parseOptionalDateParam treats a blank query value as absent.
func parseOptionalDateParam(raw string) (string, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	date, err := services.ParseDayDate(raw)
	if err != nil {
		return "", false, err
	}
	return date, true, nil
}

func parseRangeParam(c *fiber.Ctx) (insights.Range, error) {
	return insights.ParseRange(c.Query("range"))
}

func emptyRecords() []models.DailyRecord {
	return []models.DailyRecord{}
}
