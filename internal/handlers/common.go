// common.go
//
// A progress tracking data service for base buildings, hero rosters and research
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of basetrack.
// basetrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// basetrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with basetrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/middleware"
	"github.com/localnerve/basetrack/internal/utils"
)

var errNoOwner = errors.New("user not found in context")

// ownerID extracts the owner id set by the auth middleware
func ownerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middleware.OwnerIDKey).(string)
	if !ok || id == "" {
		return "", errNoOwner
	}
	return id, nil
}

// forbidden sends the response for a request that reached a handler without an owner
func forbidden(c *fiber.Ctx, err error) error {
	return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "data.authorization.user")
}

// parseList extracts values from query parameters named key,
// supporting both multiple keys and comma-separated values.
// Order of first appearance is kept and duplicates are dropped.
func parseList(c *fiber.Ctx, key string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, v := range parseAll(c, key) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// parseAll is parseList without deduplication
func parseAll(c *fiber.Ctx, key string) []string {
	var values []string
	args := c.Context().QueryArgs()
	for _, raw := range args.PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// parseInts converts a list of decimal strings
func parseInts(values []string) ([]int, error) {
	ints := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		ints = append(ints, n)
	}
	return ints, nil
}

// pathParam returns a decoded route parameter
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(raw)
}

// badRequest sends a 400 for malformed input
func badRequest(c *fiber.Ctx, message string) error {
	return utils.ErrorResponse(c, message, fiber.StatusBadRequest, "validation_failure")
}
