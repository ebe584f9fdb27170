package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/internal/admin"
	"shopgate/internal/domain"
	"shopgate/internal/middleware"
	"shopgate/internal/upstream"
)

type stubResourceAPI struct {
	lastValues    map[string]string
	lastFiles     map[string]upstream.File
	lastMultipart bool
}

func (s *stubResourceAPI) ListResource(ctx context.Context, token, path, envelope string) ([]map[string]any, error) {
	return []map[string]any{{"_id": "r1", "code": "SAVE20"}}, nil
}

func (s *stubResourceAPI) CreateResource(ctx context.Context, token, path string, values map[string]string, files map[string]upstream.File, multipart bool) error {
	s.lastValues, s.lastFiles, s.lastMultipart = values, files, multipart
	return nil
}

func (s *stubResourceAPI) UpdateResource(ctx context.Context, token, path, id string, values map[string]string, files map[string]upstream.File, multipart bool) error {
	s.lastValues, s.lastFiles, s.lastMultipart = values, files, multipart
	return nil
}

func (s *stubResourceAPI) DeleteResource(ctx context.Context, token, path, id string) error {
	return nil
}

func newAdminTestRouter(api *stubResourceAPI) chi.Router {
	logger, _ := zap.NewDevelopment()
	router := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	NewAdminHandler(admin.Panels(api, logger), logger).RegisterRoutes(router, passthrough, passthrough)
	return router
}

func adminRequest(method, target string, body []byte, contentType string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	sess := domain.Session{
		ID:    "sess-admin",
		Token: "upstream-token",
		User:  domain.User{ID: "u9", Role: domain.RoleAdmin},
	}
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func TestAdminUnknownResourceIs404(t *testing.T) {
	router := newAdminTestRouter(&stubResourceAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/warehouses", nil, ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminListWrapsRecordsInTheResourceName(t *testing.T) {
	router := newAdminTestRouter(&stubResourceAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodGet, "/api/admin/coupons", nil, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp["coupons"]) != 1 || resp["coupons"][0]["code"] != "SAVE20" {
		t.Errorf("unexpected records %v", resp)
	}
}

func TestAdminCreateRejectsMissingFields(t *testing.T) {
	api := &stubResourceAPI{}
	router := newAdminTestRouter(api)

	body, _ := json.Marshal(map[string]string{"code": "SAVE20"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/coupons", body, "application/json"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if api.lastValues != nil {
		t.Error("validation failure must not reach the upstream")
	}
}

func TestAdminCreateAcceptsMultipartWithAttachment(t *testing.T) {
	api := &stubResourceAPI{}
	router := newAdminTestRouter(api)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("name", "Kitchen")
	part, _ := form.CreateFormFile("img", "kitchen.png")
	part.Write([]byte("png-bytes"))
	form.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodPost, "/api/admin/categories", buf.Bytes(), form.FormDataContentType()))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !api.lastMultipart {
		t.Error("expected a multipart submission")
	}
	if file, ok := api.lastFiles["img"]; !ok || file.Name != "kitchen.png" {
		t.Errorf("attachment not forwarded, got %+v", api.lastFiles)
	}
}

func TestAdminUpdateWithoutAttachmentOmitsTheFilePart(t *testing.T) {
	api := &stubResourceAPI{}
	router := newAdminTestRouter(api)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("name", "Kitchenware")
	form.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodPut, "/api/admin/categories/c1", buf.Bytes(), form.FormDataContentType()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(api.lastFiles) != 0 {
		t.Errorf("unreplaced file must be omitted, got %+v", api.lastFiles)
	}
	if !api.lastMultipart {
		t.Error("file-bearing resources still submit multipart forms")
	}
}

func TestAdminDelete(t *testing.T) {
	router := newAdminTestRouter(&stubResourceAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, adminRequest(http.MethodDelete, "/api/admin/products/p1", nil, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
