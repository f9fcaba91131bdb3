package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	e "github.com/labstack/echo/v4"

	"github.com/bizdash/import-service/internal/application/importing"
	app "github.com/bizdash/import-service/internal/application/importrun"
	httpecho "github.com/bizdash/import-service/internal/interfaces/http/echo"
)

type fakeImporter struct {
	startErr   error
	sessionErr error
	confirmErr error
	cancelErr  error
	discardErr error

	gotFile string
	gotBody string
}

func (f *fakeImporter) Entity() string { return "contracts" }

func (f *fakeImporter) Start(_ context.Context, fileName string, r io.Reader) (importing.PreviewReport, error) {
	f.gotFile = fileName
	b, _ := io.ReadAll(r)
	f.gotBody = string(b)
	if f.startErr != nil {
		return importing.PreviewReport{}, f.startErr
	}
	return importing.PreviewReport{SessionID: "s-1", Entity: "contracts", State: importing.StatePreviewing, Total: 2, Valid: 1, Invalid: 1}, nil
}

func (f *fakeImporter) Session(_ context.Context, id string) (importing.PreviewReport, error) {
	if f.sessionErr != nil {
		return importing.PreviewReport{}, f.sessionErr
	}
	return importing.PreviewReport{SessionID: id, Entity: "contracts"}, nil
}

func (f *fakeImporter) Confirm(_ context.Context, id string) (importing.ImportReport, error) {
	if f.confirmErr != nil {
		return importing.ImportReport{}, f.confirmErr
	}
	return importing.ImportReport{SessionID: id, RunID: "run-1", Succeeded: 1}, nil
}

func (f *fakeImporter) Cancel(context.Context, string) error  { return f.cancelErr }
func (f *fakeImporter) Discard(context.Context, string) error { return f.discardErr }

func (f *fakeImporter) Template(_ context.Context, w io.Writer) error {
	_, err := w.Write([]byte("xlsx-bytes"))
	return err
}

type fakeFromSource struct {
	got importing.StartFromSourceInput
	err error
}

func (f *fakeFromSource) Execute(_ context.Context, in importing.StartFromSourceInput) (importing.PreviewReport, error) {
	f.got = in
	if f.err != nil {
		return importing.PreviewReport{}, f.err
	}
	return importing.PreviewReport{SessionID: "s-2", Entity: in.Entity}, nil
}

type fakeGetImportRun struct {
	out app.GetImportRunOutput
	err error
}

func (f *fakeGetImportRun) Execute(context.Context, app.GetImportRunInput) (app.GetImportRunOutput, error) {
	return f.out, f.err
}

func newTestServer(imp *fakeImporter, fromSource *fakeFromSource, runs *fakeGetImportRun) *e.Echo {
	server := e.New()
	registry := importing.NewRegistry(imp)
	httpecho.RegisterRoutes(server, httpecho.NewImportHandler(registry, fromSource, 1024), httpecho.NewImportRunHandler(runs))
	return server
}

func multipartRequest(t *testing.T, target, fileName, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(e.HeaderContentType, w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestUploadReturnsPreview(t *testing.T) {
	t.Parallel()

	imp := &fakeImporter{}
	server := newTestServer(imp, &fakeFromSource{}, &fakeGetImportRun{})

	req := multipartRequest(t, "/api/v1/imports/contracts", "contracts.csv", "Title\nA\n")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if imp.gotFile != "contracts.csv" || imp.gotBody != "Title\nA\n" {
		t.Fatalf("unexpected upload forwarded: %q %q", imp.gotFile, imp.gotBody)
	}

	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object")
	}
	if data["session_id"] != "s-1" || data["valid"] != float64(1) || data["invalid"] != float64(1) {
		t.Fatalf("unexpected preview payload: %v", data)
	}
}

func TestUploadRejectsBadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		file     string
		content  string
		status   int
		wantCode string
	}{
		{"unknown entity", "/api/v1/imports/invoices", "a.xlsx", "x", http.StatusNotFound, "unknown_entity"},
		{"unsupported extension", "/api/v1/imports/contracts", "a.pdf", "x", http.StatusBadRequest, "invalid_file_type"},
		{"too large", "/api/v1/imports/contracts", "a.csv", strings.Repeat("x", 2048), http.StatusRequestEntityTooLarge, "file_too_large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(&fakeImporter{}, &fakeFromSource{}, &fakeGetImportRun{})
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, multipartRequest(t, tt.target, tt.file, tt.content))

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, code)
			}
		})
	}
}

func TestUploadMissingFile(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeImporter{}, &fakeFromSource{}, &fakeGetImportRun{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/contracts", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if code := errorCode(t, rec); code != "missing_file" {
		t.Fatalf("expected missing_file, got %q", code)
	}
}

func TestUploadUnreadableFile(t *testing.T) {
	t.Parallel()

	imp := &fakeImporter{startErr: &importing.ParseError{File: "a.xlsx", Err: errors.New("zip: not a valid zip file")}}
	server := newTestServer(imp, &fakeFromSource{}, &fakeGetImportRun{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, multipartRequest(t, "/api/v1/imports/contracts", "a.xlsx", "junk"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}
	if code := errorCode(t, rec); code != "unreadable_file" {
		t.Fatalf("expected unreadable_file, got %q", code)
	}
}

func TestFromSource(t *testing.T) {
	t.Parallel()

	fromSource := &fakeFromSource{}
	server := newTestServer(&fakeImporter{}, fromSource, &fakeGetImportRun{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/partners/from-source",
		strings.NewReader(`{"source_path":"incoming/partners.xlsx"}`))
	req.Header.Set(e.HeaderContentType, e.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if fromSource.got.Entity != "partners" || fromSource.got.SourcePath != "incoming/partners.xlsx" {
		t.Fatalf("unexpected input: %+v", fromSource.got)
	}
}

func TestFromSourceInvalidSource(t *testing.T) {
	t.Parallel()

	fromSource := &fakeFromSource{err: importing.ErrInvalidImportSource}
	server := newTestServer(&fakeImporter{}, fromSource, &fakeGetImportRun{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/contracts/from-source",
		strings.NewReader(`{"source_path":"../etc/passwd"}`))
	req.Header.Set(e.HeaderContentType, e.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_source" {
		t.Fatalf("expected invalid_source, got %q", code)
	}
}

func TestSessionEndpointsMapErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		path     string
		imp      *fakeImporter
		status   int
		wantCode string
	}{
		{"get missing", http.MethodGet, "/sessions/s-1", &fakeImporter{sessionErr: importing.ErrSessionNotFound}, http.StatusNotFound, "session_not_found"},
		{"confirm twice", http.MethodPost, "/sessions/s-1/confirm", &fakeImporter{confirmErr: importing.ErrInvalidTransition}, http.StatusConflict, "invalid_transition"},
		{"confirm busy", http.MethodPost, "/sessions/s-1/confirm", &fakeImporter{confirmErr: importing.ErrSessionBusy}, http.StatusConflict, "session_busy"},
		{"references down", http.MethodPost, "/sessions/s-1/confirm", &fakeImporter{confirmErr: importing.ErrLoadReferences}, http.StatusServiceUnavailable, "references_unavailable"},
		{"discard missing", http.MethodDelete, "/sessions/s-1", &fakeImporter{discardErr: importing.ErrSessionNotFound}, http.StatusNotFound, "session_not_found"},
		{"cancel idle", http.MethodPost, "/sessions/s-1/cancel", &fakeImporter{cancelErr: importing.ErrInvalidTransition}, http.StatusConflict, "invalid_transition"},
		{"internal", http.MethodGet, "/sessions/s-1", &fakeImporter{sessionErr: errors.New("redis down")}, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(tt.imp, &fakeFromSource{}, &fakeGetImportRun{})
			req := httptest.NewRequest(tt.method, "/api/v1/imports/contracts"+tt.path, nil)
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, code)
			}
		})
	}
}

func TestSessionEndpointsSuccess(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeImporter{}, &fakeFromSource{}, &fakeGetImportRun{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/imports/contracts/sessions/s-1/confirm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected status %d, got %d", http.StatusOK, rec.Code)
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["run_id"] != "run-1" || data["succeeded"] != float64(1) {
		t.Fatalf("unexpected import report: %v", data)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/imports/contracts/sessions/s-1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("discard: expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/imports/contracts/sessions/s-1/cancel", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("cancel: expected status %d, got %d", http.StatusAccepted, rec.Code)
	}
}

func TestTemplateDownload(t *testing.T) {
	t.Parallel()

	server := newTestServer(&fakeImporter{}, &fakeFromSource{}, &fakeGetImportRun{})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/imports/contracts/template", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get(e.HeaderContentType); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(e.HeaderContentDisposition); !strings.Contains(cd, "contracts-template.xlsx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if rec.Body.String() != "xlsx-bytes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
