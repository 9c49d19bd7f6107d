package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/types"
	"github.com/localnerve/basetrack/internal/utils"
)

// TrackingHandler handles the in-progress and queued-next flag routes
type TrackingHandler struct {
	Buildings *services.TrackingStore
	Research  *services.TrackingStore
}

// FlagSets is the response of a tracking read
type FlagSets struct {
	InProgress []string `json:"inProgress"`
	QueuedNext []string `json:"queuedNext"`
}

// TrackingWriteRequest is the body of a tracking save
type TrackingWriteRequest struct {
	Category string                           `json:"category"`
	Rows     types.FlexList[services.FlagRow] `json:"rows"`
}

func (h *TrackingHandler) store(kind string) *services.TrackingStore {
	switch kind {
	case "buildings":
		return h.Buildings
	case "research":
		return h.Research
	}
	return nil
}

// GetFlags handles GET /api/tracking/:kind?category=...
// @Summary Get tracking flags
// @Description Names currently in progress and queued next
// @Tags Tracking
// @Produce json
// @Param kind path string true "Trackable kind" Enums(buildings, research)
// @Param category query string false "Research category, required for research"
// @Success 200 {object} FlagSets
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tracking/{kind} [get]
func (h *TrackingHandler) GetFlags(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	s := h.store(c.Params("kind"))
	if s == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Tracking kind '%s' not found", c.Params("kind")))
	}

	inProgress, queued, err := s.LoadFlagSets(c.UserContext(), owner, c.Query("category"))
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(FlagSets{
		InProgress: inProgress.Sorted(),
		QueuedNext: queued.Sorted(),
	})
}

// PostFlags handles POST /api/tracking/:kind
// @Summary Save tracking flags
// @Description Upsert the submitted grid rows in one batch. Names not submitted are unchanged.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param kind path string true "Trackable kind" Enums(buildings, research)
// @Param body body TrackingWriteRequest true "Grid rows"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /tracking/{kind} [post]
func (h *TrackingHandler) PostFlags(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	s := h.store(c.Params("kind"))
	if s == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Tracking kind '%s' not found", c.Params("kind")))
	}

	var req TrackingWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("Invalid request body: %v", err))
	}

	n, err := s.SaveFromGrid(c.UserContext(), owner, req.Category, req.Rows.Slice())
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, int64(n))
}
