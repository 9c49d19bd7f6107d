package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/basetrack/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// StatusForKind maps a data error kind to an HTTP status
func StatusForKind(kind types.Kind) int {
	switch kind {
	case types.KindValidationFailure:
		return fiber.StatusBadRequest
	case types.KindNotFound:
		return fiber.StatusNotFound
	case types.KindConflictViolation, types.KindStaleWrite:
		return fiber.StatusConflict
	case types.KindTransportFailure:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// DataErrorResponse sends the error envelope for a service error, naming
// the failed entities
func DataErrorResponse(c *fiber.Ctx, err error) error {
	kind := types.KindOf(err)
	status := StatusForKind(kind)
	resp := ErrorResponseStruct{
		Status:     status,
		Message:    err.Error(),
		Ok:         false,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		URL:        c.OriginalURL(),
		Type:       string(kind),
		StaleWrite: kind == types.KindStaleWrite,
	}

	var bulk *types.BulkWriteError
	var de *types.DataError
	switch {
	case errors.As(err, &bulk):
		resp.Failed = bulk.FailedEntities()
	case errors.As(err, &de) && de.Entity != "":
		resp.Failed = []string{de.Entity}
	}
	return c.Status(status).JSON(resp)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, string(types.KindNotFound))
}

// MutationSuccessResponse sends a success response for mutations (POST/PUT/DELETE)
func MutationSuccessResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:      "Success",
		Ok:           true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		AffectedRows: affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status     int      `json:"status"`
	Message    string   `json:"message"`
	Ok         bool     `json:"ok"`
	Timestamp  string   `json:"timestamp"`
	URL        string   `json:"url"`
	Type       string   `json:"type,omitempty"`
	StaleWrite bool     `json:"staleWrite,omitempty"`
	Failed     []string `json:"failed,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}
