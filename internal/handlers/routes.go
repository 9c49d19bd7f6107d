package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/types"
)

// Set groups the route handlers
type Set struct {
	Settings *SettingsHandler
	Roster   *RosterHandler
	Tracking *TrackingHandler
	Progress *ProgressHandler
	History  *HistoryHandler
}

// Register mounts the owner routes on api. Every route except the range
// expansion runs auth first.
func Register(api fiber.Router, auth fiber.Handler, h Set) {
	api.Get("/settings/:table", auth, h.Settings.GetSettings)
	api.Post("/settings/:table", auth, h.Settings.PostSettings)

	api.Get("/heroes", auth, h.Roster.ListHeroes)
	api.Get("/heroes/:name", auth, h.Roster.GetHero)
	api.Post("/heroes", auth, h.Roster.PostHero)
	api.Delete("/heroes/:id", auth, h.Roster.DeleteHero)

	api.Get("/tracking/:kind", auth, h.Tracking.GetFlags)
	api.Post("/tracking/:kind", auth, h.Tracking.PostFlags)

	api.Get("/progress/base", auth, h.Progress.GetBaseOverview)
	api.Get("/progress/research", auth, h.Progress.GetResearchOverview)
	api.Get("/progress/teams", auth, h.Progress.GetTeamOverview)
	api.Put("/teams/:team/type", auth, h.Progress.PutTeamType)

	api.Get("/series/expand", h.Progress.GetExpandedNames)
	api.Get("/series/:base", auth, h.Progress.GetSeries)

	api.Get("/history", auth, h.History.GetHistory)
}

// NotFound is the catch-all 404 handler
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   "[404] Resource Not Found",
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ErrorHandler handles errors globally
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fe *fiber.Error
	var ce *types.CustomError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
