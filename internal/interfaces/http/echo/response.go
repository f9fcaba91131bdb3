package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizdash/import-service/internal/application/importing"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// importFailure maps engine errors onto the API error envelope.
func importFailure(c echo.Context, err error) error {
	var perr *importing.ParseError
	switch {
	case errors.As(err, &perr):
		return fail(c, http.StatusUnprocessableEntity, "unreadable_file", perr.Error())
	case errors.Is(err, importing.ErrUnknownEntity):
		return fail(c, http.StatusNotFound, "unknown_entity", err.Error())
	case errors.Is(err, importing.ErrSessionNotFound):
		return fail(c, http.StatusNotFound, "session_not_found", "import session not found or expired")
	case errors.Is(err, importing.ErrSessionBusy):
		return fail(c, http.StatusConflict, "session_busy", err.Error())
	case errors.Is(err, importing.ErrInvalidTransition):
		return fail(c, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, importing.ErrInvalidImportSource):
		return fail(c, http.StatusBadRequest, "invalid_source", "source_path must name a readable .xlsx or .csv file")
	case errors.Is(err, importing.ErrLoadReferences):
		return fail(c, http.StatusServiceUnavailable, "references_unavailable", "failed to load reference data")
	default:
		c.Logger().Error(err)
		return fail(c, http.StatusInternalServerError, "internal_error", "import request failed")
	}
}
