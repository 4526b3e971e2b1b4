package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/services"
)

type calendarResponse struct {
	Month string                 `json:"month"`
	Days  []services.CalendarDay `json:"days"`
}

// GetCalendar lays out the month grid. Anonymous callers get the grid with
// no tracked data.
func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	now := services.DateAtLocation(handler.now(), handler.location)
	month, err := services.ParseCalendarMonth(c.Query("month"), now)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	var entries []insights.Entry
	if user, ok := currentUser(c); ok {
		from, to := services.CalendarGridRange(month)
		records, err := handler.dayService.ListDailyRecordsBetween(user.ID, from, to)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", user.ID).Msg("load calendar records failed")
		} else {
			entries = insights.FromDailyRecords(records)
		}
	}

	return c.JSON(calendarResponse{
		Month: month.Format("2006-01"),
		Days:  services.BuildCalendarDays(month, entries, handler.todayKey()),
	})
}
