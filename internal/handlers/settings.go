package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/types"
	"github.com/localnerve/basetrack/internal/utils"
)

// SettingsHandler handles the key-value settings routes
type SettingsHandler struct {
	Stores map[string]*services.SettingsStore
}

// SettingsWriteRequest is the body of a settings write. When Snapshot is
// present only rows that differ from it are written.
type SettingsWriteRequest struct {
	Rows     types.FlexList[services.SettingInput] `json:"rows"`
	Snapshot *services.SettingsSnapshot              `json:"snapshot,omitempty"`
}

// NewSettingsHandler indexes the stores by table name
func NewSettingsHandler(stores ...*services.SettingsStore) *SettingsHandler {
	h := &SettingsHandler{Stores: make(map[string]*services.SettingsStore, len(stores))}
	for _, s := range stores {
		h.Stores[s.Table()] = s
	}
	return h
}

func tableNotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, fmt.Sprintf("Settings table '%s' not found", c.Params("table")))
}

// GetSettings handles GET /api/settings/:table?keys=...
// @Summary Get settings
// @Description Read setting values in request order. Keys never stored have a null value.
// @Tags Settings
// @Produce json
// @Param table path string true "Settings table" Enums(building_levels, team_settings, research_levels)
// @Param keys query string true "Comma-separated list of keys"
// @Success 200 {array} services.SettingValue
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /settings/{table} [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	s, ok := h.Stores[c.Params("table")]
	if !ok {
		return tableNotFound(c)
	}

	snap, err := s.BulkRead(c.UserContext(), owner, parseList(c, "keys"))
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(snap)
}

// PostSettings handles POST /api/settings/:table
// @Summary Write settings
// @Description Upsert setting values. With a snapshot, unchanged rows are skipped.
// @Tags Settings
// @Accept json
// @Produce json
// @Param table path string true "Settings table" Enums(building_levels, team_settings, research_levels)
// @Param body body SettingsWriteRequest true "Rows to write"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /settings/{table} [post]
func (h *SettingsHandler) PostSettings(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	s, ok := h.Stores[c.Params("table")]
	if !ok {
		return tableNotFound(c)
	}

	var req SettingsWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("Invalid request body: %v", err))
	}

	if req.Snapshot != nil {
		n, err := s.DiffAndUpsert(c.UserContext(), owner, req.Rows.Slice(), req.Snapshot)
		if err != nil {
			return utils.DataErrorResponse(c, err)
		}
		return utils.MutationSuccessResponse(c, int64(n))
	}

	if err := s.BulkUpsert(c.UserContext(), owner, req.Rows.Slice()); err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, int64(len(req.Rows)))
}
