package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/services"
)

// GetInsights reports on the selected range ending today, counting
// observations over individual days.
func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	selected, err := parseRangeParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	window := insights.TrailingWindow(selected, services.DateAtLocation(handler.now(), handler.location))

	var entries []insights.Entry
	if user, ok := currentUser(c); ok {
		records, err := handler.dayService.ListDailyRecordsInWindow(user.ID, window)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Str("range", string(selected)).Msg("load insight records failed")
		} else {
			entries = insights.FromDailyRecords(records)
		}
	}

	return c.JSON(insights.BuildDailyReport(entries, selected, window))
}
