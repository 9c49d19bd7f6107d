package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/catalog"
	"github.com/localnerve/basetrack/internal/progress"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/utils"
)

// ProgressHandler handles the dashboard and series routes
type ProgressHandler struct {
	Dashboard *services.Dashboard
	Series    *services.SeriesResolver
	Catalog   *catalog.Catalog
}

// TeamTypeRequest is the body of a team type change
type TeamTypeRequest struct {
	Type string `json:"type"`
}

// SeriesLevels is the response of a series read
type SeriesLevels struct {
	Base   string   `json:"base"`
	Keys   []string `json:"keys"`
	Levels []int    `json:"levels"`
	Max    int      `json:"max"`
	Sum    int      `json:"sum"`
}

// ExpandedNames is the response of a range expansion
type ExpandedNames struct {
	Names []string `json:"names"`
}

// GetBaseOverview handles GET /api/progress/base
// @Summary Base progress
// @Description Building and series levels rated against the HQ
// @Tags Progress
// @Produce json
// @Success 200 {object} services.BaseOverview
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /progress/base [get]
func (h *ProgressHandler) GetBaseOverview(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	overview, err := h.Dashboard.BaseOverview(c.UserContext(), owner)
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(overview)
}

// GetResearchOverview handles GET /api/progress/research
// @Summary Research progress
// @Description Completion per research category and overall
// @Tags Progress
// @Produce json
// @Success 200 {object} services.ResearchOverview
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /progress/research [get]
func (h *ProgressHandler) GetResearchOverview(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	overview, err := h.Dashboard.ResearchOverview(c.UserContext(), owner)
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(overview)
}

// GetTeamOverview handles GET /api/progress/teams
// @Summary Team overview
// @Description Total roster power and each team's type, power and strongest heroes
// @Tags Progress
// @Produce json
// @Success 200 {object} services.TeamOverview
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /progress/teams [get]
func (h *ProgressHandler) GetTeamOverview(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	overview, err := h.Dashboard.TeamOverview(c.UserContext(), owner)
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(overview)
}

// PutTeamType handles PUT /api/teams/:team/type
// @Summary Set a team's type
// @Tags Progress
// @Accept json
// @Produce json
// @Param team path int true "Team number"
// @Param body body TeamTypeRequest true "Team type"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /teams/{team}/type [put]
func (h *ProgressHandler) PutTeamType(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}
	team, err := strconv.Atoi(c.Params("team"))
	if err != nil {
		return badRequest(c, fmt.Sprintf("Invalid team '%s'", c.Params("team")))
	}

	var req TeamTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("Invalid request body: %v", err))
	}

	if err := h.Dashboard.SetTeamType(c.UserContext(), owner, team, req.Type); err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}

// GetExpandedNames handles GET /api/series/expand?names=...
// @Summary Expand range notation
// @Description Expand names like "Barracks 1-4" into one name per building
// @Tags Series
// @Produce json
// @Param names query string true "Comma-separated names"
// @Success 200 {object} ExpandedNames
// @Router /series/expand [get]
func (h *ProgressHandler) GetExpandedNames(c *fiber.Ctx) error {
	names := progress.ExpandRange(parseAll(c, "names")...)
	if names == nil {
		names = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(ExpandedNames{Names: names})
}

// GetSeries handles GET /api/series/:base?suffixes=...
// @Summary Series levels
// @Description Levels of each building in a series with their max and sum.
// @Description Without suffixes the catalog series for the base is used.
// @Tags Series
// @Produce json
// @Param base path string true "Series base name or alias"
// @Param suffixes query string false "Comma-separated suffix numbers"
// @Success 200 {object} SeriesLevels
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /series/{base} [get]
func (h *ProgressHandler) GetSeries(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	base := h.Series.Resolve(pathParam(c, "base"))
	suffixes, err := parseInts(parseList(c, "suffixes"))
	if err != nil {
		return badRequest(c, fmt.Sprintf("Invalid suffixes: %v", err))
	}
	if len(suffixes) == 0 {
		s, ok := h.Catalog.SeriesFor(base)
		if !ok {
			return utils.NotFoundResponse(c, fmt.Sprintf("Series '%s' not found", base))
		}
		base, suffixes = s.Base, s.Suffixes
	}

	levels, err := h.Series.Levels(c.UserContext(), owner, base, suffixes)
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(SeriesLevels{
		Base:   base,
		Keys:   progress.SeriesKeys(base, suffixes),
		Levels: levels,
		Max:    progress.Max(levels),
		Sum:    progress.Sum(levels),
	})
}
