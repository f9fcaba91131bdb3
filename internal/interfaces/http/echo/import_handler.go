package echo

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizdash/import-service/internal/application/importing"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportHandler struct {
	registry   *importing.Registry
	fromSource importing.StartFromSource
	maxUpload  int64
}

type importFromSourceRequest struct {
	SourcePath string `json:"source_path"`
}

func NewImportHandler(registry *importing.Registry, fromSource importing.StartFromSource, maxUpload int64) *ImportHandler {
	return &ImportHandler{registry: registry, fromSource: fromSource, maxUpload: maxUpload}
}

// Upload starts a session from a multipart "file" field.
func (h *ImportHandler) Upload(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}
	if !importing.SupportedFile(header.Filename) {
		return fail(c, http.StatusBadRequest, "invalid_file_type", "file must be .xlsx or .csv")
	}
	if h.maxUpload > 0 && header.Size > h.maxUpload {
		return fail(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Sprintf("file exceeds %d bytes", h.maxUpload))
	}

	src, err := header.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "missing_file", "uploaded file cannot be opened")
	}
	defer src.Close()

	out, err := importer.Start(c.Request().Context(), header.Filename, src)
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) FromSource(c echo.Context) error {
	var req importFromSourceRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.fromSource.Execute(c.Request().Context(), importing.StartFromSourceInput{
		Entity:     c.Param("entity"),
		SourcePath: req.SourcePath,
	})
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) GetSession(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}
	out, err := importer.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Confirm(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}
	out, err := importer.Confirm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return importFailure(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) Cancel(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}
	if err := importer.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return importFailure(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *ImportHandler) Discard(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}
	if err := importer.Discard(c.Request().Context(), c.Param("id")); err != nil {
		return importFailure(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ImportHandler) Template(c echo.Context) error {
	importer, err := h.registry.Get(c.Param("entity"))
	if err != nil {
		return importFailure(c, err)
	}

	var buf bytes.Buffer
	if err := importer.Template(c.Request().Context(), &buf); err != nil {
		return importFailure(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", importer.Entity()+"-template.xlsx"))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
