package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kira/internal/db"
	"github.com/terraincognita07/kira/internal/demo"
	"github.com/terraincognita07/kira/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	now          func() time.Time

	authService   *services.AuthService
	dayService    *services.DayService
	cycleService  *services.CycleService
	exportService *services.ExportService
	demo          *demo.Loader
	notes         *notesRenderer
	loginLimiter  *attemptLimiter
}

// NewHandler wires repositories and services over database. demoLoader may be
// nil, in which case demo endpoints serve empty data.
func NewHandler(database *gorm.DB, secret string, location *time.Location, cookieSecure bool, demoLoader *demo.Loader) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:     []byte(secret),
		location:      location,
		cookieSecure:  cookieSecure,
		now:           time.Now,
		authService:   services.NewAuthService(repositories.Users),
		dayService:    services.NewDayService(repositories.DailyRecords),
		cycleService:  services.NewCycleService(repositories.Cycles),
		exportService: services.NewExportService(repositories.DailyRecords),
		demo:          demoLoader,
		notes:         newNotesRenderer(),
		loginLimiter:  newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

func (handler *Handler) todayKey() string {
	return services.TodayKey(handler.now(), handler.location)
}
