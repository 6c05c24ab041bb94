package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "warranty-console/pkg/errors"
	"warranty-console/pkg/listview"
)

type HTTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Body    interface{} `json:"body,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Success: true, Message: message, Body: body})
}

// ErrorResponse writes {success:false, message}. Internal causes are
// logged, never returned to the client.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"success": false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, validationMessage(e))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Validation failed: " + strings.Join(msgs, "; "),
		})
	}

	if errors.Is(err, listview.ErrNothingToExport) || errors.Is(err, listview.ErrNoFieldsSelected) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
	}

	if code, ok := apperrors.StatusOf(err); ok {
		if code >= http.StatusInternalServerError {
			logger.Warn("request failed", zap.Int("code", code), zap.Error(err))
		}
		return c.JSON(code, map[string]interface{}{
			"success": false,
			"message": rootMessage(err),
		})
	}

	logger.Error("unexpected error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"message": "Internal server error",
	})
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if", "rejection_reason_if_rejected", "rejection_reason_if_unverified":
		return fmt.Sprintf("'%s' is required", e.Field())
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s]", e.Field(), e.Param())
	}
	return fmt.Sprintf("'%s' failed the '%s' check", e.Field(), e.Tag())
}

// rootMessage returns the innermost sentinel message so that wrapping
// context stays out of the response.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
