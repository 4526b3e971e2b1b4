package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/demo"
	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/services"
)

func (handler *Handler) GetDemoIndex(c *fiber.Ctx) error {
	if handler.demo == nil {
		return c.JSON(demo.Metadata{Months: []string{}, LoadedMonths: []string{}})
	}
	if _, err := handler.demo.Index(c.UserContext()); err != nil {
		log.Warn().Err(err).Msg("demo index unavailable")
	}
	return c.JSON(handler.demo.Metadata())
}

// GetDemoCalendar loads the requested month with its neighbours and lays out
// the grid from whatever partitions are in the working set.
func (handler *Handler) GetDemoCalendar(c *fiber.Ctx) error {
	month, err := handler.demoMonth(c, c.Query("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	var entries []insights.Entry
	if handler.demo != nil {
		if err := handler.demo.LoadAround(c.UserContext(), month); err != nil {
			log.Warn().Err(err).Str("month", demo.MonthKey(month)).Msg("demo calendar load incomplete")
		}
		start := services.CalendarGridStart(month)
		entries = handler.demo.Entries(insights.Window{Start: start, End: start.AddDate(0, 0, 42)})
	}

	return c.JSON(calendarResponse{
		Month: demo.MonthKey(month),
		Days:  services.BuildCalendarDays(month, entries, handler.todayKey()),
	})
}

func (handler *Handler) GetDemoDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if handler.demo == nil {
		return c.JSON(nil)
	}

	day, _ := insights.ParseDate(date)
	if err := handler.demo.LoadAround(c.UserContext(), day); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("demo day load incomplete")
	}

	entry, ok := handler.demo.EntryForDate(date)
	if !ok {
		return c.JSON(nil)
	}
	return c.JSON(entry)
}

// GetDemoInsights reports on the window that starts at the anchor and spans
// the selected range.
func (handler *Handler) GetDemoInsights(c *fiber.Ctx) error {
	selected, err := parseRangeParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}
	anchor, err := handler.demoAnchor(c, c.Query("anchor"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid anchor")
	}

	window := insights.WindowFrom(selected, anchor)
	var entries []insights.Entry
	if handler.demo != nil {
		if err := handler.demo.LoadRange(c.UserContext(), window); err != nil {
			log.Warn().Err(err).Str("range", string(selected)).Msg("demo insights load incomplete")
		}
		entries = handler.demo.Entries(window)
	}

	return c.JSON(insights.BuildReport(entries, selected, window))
}

// demoMonth parses a "YYYY-MM" value; a blank value selects the earliest
// month in the demo index, or the current month when there is none.
func (handler *Handler) demoMonth(c *fiber.Ctx, raw string) (time.Time, error) {
	if value := strings.TrimSpace(raw); value != "" {
		return demo.ParseMonthKey(value)
	}

	if handler.demo != nil {
		index, err := handler.demo.Index(c.UserContext())
		if err != nil {
			log.Warn().Err(err).Msg("demo index unavailable")
		} else if len(index.Months) > 0 {
			return demo.ParseMonthKey(index.Months[0])
		}
	}

	now := services.DateAtLocation(handler.now(), handler.location)
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// demoAnchor parses an explicit "YYYY-MM" anchor as the first of that month.
// Without one the window starts at the earliest sampled date.
func (handler *Handler) demoAnchor(c *fiber.Ctx, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" && handler.demo != nil {
		index, err := handler.demo.Index(c.UserContext())
		if err == nil && index.DateRange != nil {
			if earliest, err := insights.ParseDate(index.DateRange.Min); err == nil {
				return earliest, nil
			}
		}
	}
	return handler.demoMonth(c, raw)
}
