package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/services"
	"github.com/localnerve/basetrack/internal/utils"
)

// RosterHandler handles the hero roster routes
type RosterHandler struct {
	Roster *services.RosterRepository
}

// HeroRequest is the body of a hero upsert
type HeroRequest struct {
	Name string `json:"name"`
	services.HeroFields
}

// ListHeroes handles GET /api/heroes?order=...
// @Summary List heroes
// @Description List the caller's heroes. Numeric orders are descending with unset values last.
// @Tags Heroes
// @Produce json
// @Param order query string false "Sort order" Enums(power, level, name)
// @Success 200 {array} models.Hero
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /heroes [get]
func (h *RosterHandler) ListHeroes(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	heroes, err := h.Roster.ListForOwner(c.UserContext(), owner, c.Query("order"))
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(heroes)
}

// GetHero handles GET /api/heroes/:name
// @Summary Get a hero
// @Description Get one of the caller's heroes by exact name
// @Tags Heroes
// @Produce json
// @Param name path string true "Hero name"
// @Success 200 {object} models.Hero
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /heroes/{name} [get]
func (h *RosterHandler) GetHero(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	hero, err := h.Roster.FindByName(c.UserContext(), owner, pathParam(c, "name"))
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(hero)
}

// PostHero handles POST /api/heroes
// @Summary Create or update a hero
// @Description Upsert a hero by name. Type and role default from the hero catalog.
// @Tags Heroes
// @Accept json
// @Produce json
// @Param body body HeroRequest true "Hero fields"
// @Success 200 {object} models.Hero
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /heroes [post]
func (h *RosterHandler) PostHero(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	var req HeroRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("Invalid request body: %v", err))
	}

	hero, err := h.Roster.UpsertByName(c.UserContext(), owner, req.Name, req.HeroFields)
	if err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(hero)
}

// DeleteHero handles DELETE /api/heroes/:id
// @Summary Delete a hero
// @Tags Heroes
// @Produce json
// @Param id path string true "Hero id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /heroes/{id} [delete]
func (h *RosterHandler) DeleteHero(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return forbidden(c, err)
	}

	if err := h.Roster.DeleteByID(c.UserContext(), owner, pathParam(c, "id")); err != nil {
		return utils.DataErrorResponse(c, err)
	}
	return utils.MutationSuccessResponse(c, 1)
}
