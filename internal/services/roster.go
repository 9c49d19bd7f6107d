package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/basetrack/internal/models"
	"github.com/localnerve/basetrack/internal/types"
)

// Roster list orders
const (
	OrderNone  = ""
	OrderPower = "power"
	OrderLevel = "level"
	OrderName  = "name"
)

var heroColumns = []string{
	"id", "name", "level", "weapon_level", "armor_level", "chip_level", "radar_level",
	"power", "stars", "weapon_stars", "type", "role", "team", "updated_at",
}

// HeroFields carries the editable hero attributes. Nil fields are left
// unchanged on update and stored as zero values on insert.
type HeroFields struct {
	Level       *types.FlexInt   `json:"level,omitempty"`
	WeaponLevel *types.FlexInt   `json:"weaponLevel,omitempty"`
	ArmorLevel  *types.FlexInt   `json:"armorLevel,omitempty"`
	ChipLevel   *types.FlexInt   `json:"chipLevel,omitempty"`
	RadarLevel  *types.FlexInt   `json:"radarLevel,omitempty"`
	Power       *types.FlexFloat `json:"power,omitempty"`
	Stars       *string          `json:"stars,omitempty"`
	WeaponStars *string          `json:"weaponStars,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Role        *string          `json:"role,omitempty"`
	Team        *string          `json:"team,omitempty"`
}

func (f HeroFields) row() types.Row {
	r := types.Row{}
	setInt := func(col string, v *types.FlexInt) {
		if v != nil {
			r[col] = v.Int()
		}
	}
	setText := func(col string, v *string, blankIsAbsent bool) {
		if v == nil {
			return
		}
		text := strings.TrimSpace(*v)
		if blankIsAbsent && text == "" {
			return
		}
		r[col] = text
	}

	setInt("level", f.Level)
	setInt("weapon_level", f.WeaponLevel)
	setInt("armor_level", f.ArmorLevel)
	setInt("chip_level", f.ChipLevel)
	setInt("radar_level", f.RadarLevel)
	if f.Power != nil {
		r["power"] = f.Power.Float64()
	}
	setText("stars", f.Stars, false)
	setText("weapon_stars", f.WeaponStars, false)
	setText("type", f.Type, true)
	setText("role", f.Role, true)
	setText("team", f.Team, false)
	return r
}

// RosterRepository manages an owner's heroes, filling type and role from
// the hero catalog when the caller leaves them out
type RosterRepository struct {
	gate  *AccessGate
	now   func() time.Time
	newID func() string
}

// NewRosterRepository builds a repository over the gate
func NewRosterRepository(gate *AccessGate) *RosterRepository {
	return &RosterRepository{
		gate:  gate,
		now:   utcNow,
		newID: uuid.NewString,
	}
}

// ListForOwner returns the owner's heroes. Numeric orders are descending with nulls last.
func (r *RosterRepository) ListForOwner(ctx context.Context, ownerID, order string) ([]models.Hero, error) {
	q := types.Query{Columns: heroColumns}
	switch order {
	case OrderNone:
	case OrderPower, OrderLevel:
		q.Order = []types.Order{
			{Column: order, Desc: true, NullsLast: true},
			{Column: "name"},
		}
	case OrderName:
		q.Order = []types.Order{{Column: "name"}}
	default:
		return nil, types.NewValidationError("list", order, "order must be one of power, level, name")
	}

	rows, err := r.gate.ScopedSelect(ctx, models.TableHeroes, ownerID, q)
	if err != nil {
		return nil, err
	}
	heroes := make([]models.Hero, len(rows))
	for i, row := range rows {
		heroes[i] = heroFromRow(row)
	}
	return heroes, nil
}

// FindByName returns the owner's hero with the exact name
func (r *RosterRepository) FindByName(ctx context.Context, ownerID, name string) (*models.Hero, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("find", name, "hero name is required")
	}
	rows, err := r.gate.ScopedSelect(ctx, models.TableHeroes, ownerID, types.Query{
		Columns: heroColumns,
		Filters: []types.Filter{types.Eq("name", name)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.NewNotFoundError("find", models.TableHeroes, name)
	}
	hero := heroFromRow(rows[0])
	return &hero, nil
}

// UpsertByName updates the owner's hero called name, or creates it
func (r *RosterRepository) UpsertByName(ctx context.Context, ownerID, name string, fields HeroFields) (*models.Hero, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("upsert", name, "hero name is required")
	}
	if err := requireOwner("upsert", models.TableHeroes, ownerID); err != nil {
		return nil, err
	}

	existing, err := r.FindByName(ctx, ownerID, name)
	if err != nil && !types.IsKind(err, types.KindNotFound) {
		return nil, err
	}

	values := fields.row()
	r.backfill(ctx, name, values, existing)
	values["updated_at"] = r.now()

	if existing != nil {
		n, err := r.gate.ScopedUpdate(ctx, models.TableHeroes, ownerID, values, []types.Filter{
			types.Eq("id", existing.ID),
		})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, types.NewNotFoundError("update", models.TableHeroes, name)
		}
	} else {
		insert := types.Row{
			"id":           r.newID(),
			"name":         name,
			"level":        0,
			"weapon_level": 0,
			"armor_level":  0,
			"chip_level":   0,
			"radar_level":  0,
			"power":        0.0,
			"stars":        "",
			"weapon_stars": "",
			"type":         "",
			"role":         "",
			"team":         "",
		}
		for k, v := range values {
			insert[k] = v
		}
		if err := r.gate.ScopedInsert(ctx, models.TableHeroes, ownerID, []types.Row{insert}); err != nil {
			return nil, err
		}
	}

	return r.FindByName(ctx, ownerID, name)
}

// backfill fills type and role from the catalog when neither the caller
// nor the stored row supplies them
func (r *RosterRepository) backfill(ctx context.Context, name string, values types.Row, existing *models.Hero) {
	needType := values.IsNull("type") && (existing == nil || existing.Type == "")
	needRole := values.IsNull("role") && (existing == nil || existing.Role == "")
	if !needType && !needRole {
		return
	}

	rows, err := r.gate.SharedSelect(ctx, models.TableHeroCatalog, types.Query{
		Columns: []string{"type", "role"},
		Filters: []types.Filter{types.Eq("name", name)},
		Limit:   1,
	})
	if err != nil {
		log.Printf("Hero catalog lookup for %q failed, saving without defaults: %v", name, err)
		return
	}
	if len(rows) == 0 {
		return
	}
	if t := rows[0].String("type"); needType && t != "" {
		values["type"] = t
	}
	if role := rows[0].String("role"); needRole && role != "" {
		values["role"] = role
	}
}

// DeleteByID removes the owner's hero with id
func (r *RosterRepository) DeleteByID(ctx context.Context, ownerID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.NewValidationError("delete", id, "hero id is required")
	}
	n, err := r.gate.ScopedDelete(ctx, models.TableHeroes, ownerID, []types.Filter{types.Eq("id", id)})
	if err != nil {
		return err
	}
	if n == 0 {
		return types.NewNotFoundError("delete", models.TableHeroes, id)
	}
	return nil
}

func heroFromRow(r types.Row) models.Hero {
	h := models.Hero{
		ID:          r.String("id"),
		Name:        r.String("name"),
		Level:       r.Int("level"),
		WeaponLevel: r.Int("weapon_level"),
		ArmorLevel:  r.Int("armor_level"),
		ChipLevel:   r.Int("chip_level"),
		RadarLevel:  r.Int("radar_level"),
		Power:       r.Float("power"),
		Stars:       r.String("stars"),
		WeaponStars: r.String("weapon_stars"),
		Type:        r.String("type"),
		Role:        r.String("role"),
		Team:        r.String("team"),
	}
	if t := r.Time("updated_at"); t != nil {
		h.UpdatedAt = *t
	}
	return h
}
