package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/utils"
)

// HistoryHandler serves the write log
type HistoryHandler struct {
	History *services.History
}

// GetHistory handles GET /api/history?limit=...
// @Summary Recent writes
// @Description The caller's most recent settings writes, newest first
// @Tags History
// @Produce json
// @Param limit query int false "Maximum entries (default 20, max 200)"
// @Success 200 {array} services.HistoryEntry
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /history [get]
func (h *HistoryHandler) GetHistory(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	entries, err := h.History.Recent(c.UserContext(), owner, c.QueryInt("limit"))
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}
