package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)

	days := api.Group("/days")
	days.Get("", handler.OptionalAuth, handler.GetDays)
	days.Get("/:date", handler.OptionalAuth, handler.GetDay)
	days.Post("/:date", handler.AuthRequired, handler.UpsertDay)
	days.Delete("/:date", handler.AuthRequired, handler.DeleteDay)

	cycles := api.Group("/cycles")
	cycles.Get("", handler.OptionalAuth, handler.GetCycles)
	cycles.Post("", handler.AuthRequired, handler.AddCycle)
	cycles.Get("/stats", handler.OptionalAuth, handler.GetCycleStats)

	api.Get("/calendar", handler.OptionalAuth, handler.GetCalendar)
	api.Get("/insights", handler.OptionalAuth, handler.GetInsights)
	api.Get("/export/summary", handler.AuthRequired, handler.GetExportSummary)
	api.Get("/export", handler.AuthRequired, handler.Export)

	demoGroup := api.Group("/demo")
	demoGroup.Get("/index", handler.GetDemoIndex)
	demoGroup.Get("/calendar", handler.GetDemoCalendar)
	demoGroup.Get("/days/:date", handler.GetDemoDay)
	demoGroup.Get("/insights", handler.GetDemoInsights)
}
