package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/types"
)

// OwnerIDKey is the request locals key holding the authenticated owner id
const OwnerIDKey = "ownerID"

// AccessTokenCookie is read when no Authorization header is sent
const AccessTokenCookie = "access_token"

// TokenVerifier resolves an access token to an owner id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthUser validates the request's access token and stores the owner id in locals
func AuthUser(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, verifier, "data.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, verifier TokenVerifier, errorType string) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		token = c.Cookies(AccessTokenCookie)
	}
	if token == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Access token not found in Authorization header or \"" + AccessTokenCookie + "\" cookie",
			Type:    errorType,
		}
	}

	ownerID, err := verifier.Verify(token)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	c.Locals(OwnerIDKey, ownerID)

	return c.Next()
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
