package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/models"
	"github.com/terraincognita07/kira/internal/services"
)

type dayInput struct {
	Flow     string   `json:"flow"`
	Mood     string   `json:"mood"`
	Energy   string   `json:"energy"`
	Sleep    *float64 `json:"sleep"`
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes"`
}

type dayResponse struct {
	models.DailyRecord
	NotesHTML string `json:"notes_html,omitempty"`
}

func (handler *Handler) newDayResponse(record *models.DailyRecord) dayResponse {
	response := dayResponse{DailyRecord: *record}
	rendered, err := handler.notes.Render(record.Notes)
	if err != nil {
		log.Warn().Err(err).Str("date", record.Date).Msg("render day notes failed")
		return response
	}
	response.NotesHTML = rendered
	return response
}

// GetDays lists records, optionally bounded by from and to (both inclusive).
func (handler *Handler) GetDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(emptyRecords())
	}

	from, _, err := parseOptionalDateParam(c.Query("from"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, hasTo, err := parseOptionalDateParam(c.Query("to"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if hasTo {
		if to, err = services.NextDayKey(to); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid to date")
		}
	}

	records, err := handler.dayService.ListDailyRecordsBetween(user.ID, from, to)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("list daily records failed")
		return c.JSON(emptyRecords())
	}
	if records == nil {
		records = emptyRecords()
	}
	return c.JSON(records)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	date, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	user, ok := currentUser(c)
	if !ok {
		return c.JSON(nil)
	}

	record, err := handler.dayService.GetDailyRecord(user.ID, date)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Str("date", date).Msg("load daily record failed")
		return c.JSON(nil)
	}
	if record == nil {
		return c.JSON(nil)
	}
	return c.JSON(handler.newDayResponse(record))
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	date, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var payload dayInput
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input, err := services.NormalizeDailyRecordInput(services.DailyRecordInput{
		Flow:     payload.Flow,
		Mood:     payload.Mood,
		Energy:   payload.Energy,
		Sleep:    payload.Sleep,
		Symptoms: payload.Symptoms,
		Notes:    payload.Notes,
	})
	switch {
	case errors.Is(err, services.ErrInvalidDayFlow):
		return apiError(c, fiber.StatusBadRequest, "invalid flow value")
	case errors.Is(err, services.ErrInvalidDayMood):
		return apiError(c, fiber.StatusBadRequest, "invalid mood value")
	case errors.Is(err, services.ErrInvalidDayEnergy):
		return apiError(c, fiber.StatusBadRequest, "invalid energy value")
	case errors.Is(err, services.ErrInvalidDaySleep):
		return apiError(c, fiber.StatusBadRequest, "invalid sleep value")
	case err != nil:
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	record, err := handler.dayService.UpsertDailyRecord(user.ID, date, input)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Str("date", date).Msg("save daily record failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save day")
	}
	return c.JSON(handler.newDayResponse(&record))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	date, err := parseDateParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.dayService.DeleteDailyRecord(user.ID, date); err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Str("date", date).Msg("delete daily record failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete day")
	}
	return c.JSON(fiber.Map{"ok": true})
}
