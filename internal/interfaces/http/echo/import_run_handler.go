package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/bizdash/import-service/internal/application/importrun"
)

type ImportRunHandler struct {
	useCase app.GetImportRun
}

func NewImportRunHandler(useCase app.GetImportRun) *ImportRunHandler {
	return &ImportRunHandler{useCase: useCase}
}

func (h *ImportRunHandler) GetImportRun(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetImportRunInput{
		ID: c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidRunID) {
			return fail(c, http.StatusBadRequest, "invalid_run_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrRunNotFound) {
			return fail(c, http.StatusNotFound, "not_found", "import run not found")
		}
		return fail(c, http.StatusInternalServerError, "internal_error", "failed to get import run")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
