package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/models"
	"github.com/terraincognita07/kira/internal/services"
)

type cycleInput struct {
	StartDate string   `json:"startDate"`
	Symptoms  []string `json:"symptoms"`
	Notes     string   `json:"notes"`
}

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON([]models.CycleRecord{})
	}

	cycles, err := handler.cycleService.ListCycles(user.ID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("list cycles failed")
		return c.JSON([]models.CycleRecord{})
	}
	if cycles == nil {
		cycles = []models.CycleRecord{}
	}
	return c.JSON(cycles)
}

func (handler *Handler) AddCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload cycleInput
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	cycle, err := handler.cycleService.AddCycle(user.ID, services.CycleInput{
		StartDate: payload.StartDate,
		Symptoms:  payload.Symptoms,
		Notes:     payload.Notes,
	})
	if errors.Is(err, services.ErrInvalidDayDate) {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("add cycle failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to save cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

// GetCycleStats projects the next period from logged period days and cycle
// starts. Anonymous callers get null.
func (handler *Handler) GetCycleStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(nil)
	}

	records, err := handler.dayService.ListDailyRecords(user.ID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("load cycle stats records failed")
		return c.JSON(nil)
	}
	cycles, err := handler.cycleService.ListCycles(user.ID)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("load cycle stats cycles failed")
		return c.JSON(nil)
	}

	today := services.DateAtLocation(handler.now(), handler.location)
	return c.JSON(services.BuildCycleStats(records, cycles, today))
}
