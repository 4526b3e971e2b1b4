package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/kira/internal/services"
)

const (
	exportFormatJSON = "json"
	exportFormatCSV  = "csv"
)

func (handler *Handler) GetExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	exportRange, err := parseExportRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := handler.exportService.BuildSummary(user.ID, exportRange)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("export summary failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to load export")
	}
	return c.JSON(summary)
}

// Export downloads the user's records as JSON (default) or CSV.
func (handler *Handler) Export(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format", exportFormatJSON)))
	if format != exportFormatJSON && format != exportFormatCSV {
		return apiError(c, fiber.StatusBadRequest, "invalid export format")
	}
	exportRange, err := parseExportRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	filename := fmt.Sprintf("kira-export-%s.%s", handler.todayKey(), format)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	if format == exportFormatJSON {
		entries, err := handler.exportService.BuildJSONEntries(user.ID, exportRange)
		if err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("json export failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to export data")
		}
		return c.JSON(entries)
	}

	rows, err := handler.exportService.BuildCSVRows(user.ID, exportRange)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("csv export failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

func parseExportRangeQuery(c *fiber.Ctx) (services.ExportRange, error) {
	exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return services.ExportRange{}, errors.New("invalid from date")
	case errors.Is(err, services.ErrExportToDateInvalid):
		return services.ExportRange{}, errors.New("invalid to date")
	case errors.Is(err, services.ErrExportRangeInvalid):
		return services.ExportRange{}, errors.New("invalid date range")
	}
	return exportRange, err
}
