package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shopgate/internal/admin"
	"shopgate/internal/middleware"
	"shopgate/internal/upstream"
)

// maxUploadBytes bounds multipart form memory for image attachments.
const maxUploadBytes = 32 << 20

// AdminHandler serves the dashboard panels through one parameterized route
// set instead of a handler per resource.
type AdminHandler struct {
	panels map[string]*admin.Panel
	logger *zap.Logger
}

func NewAdminHandler(panels map[string]*admin.Panel, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{panels: panels, logger: logger}
}

// RegisterRoutes registers the admin routes behind auth plus the admin check.
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/{resource}", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *AdminHandler) panel(w http.ResponseWriter, r *http.Request) (*admin.Panel, bool) {
	name := chi.URLParam(r, "resource")
	panel, ok := h.panels[name]
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "unknown resource")
		return nil, false
	}
	return panel, true
}

// List fetches all records of the resource.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	panel, ok := h.panel(w, r)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFromContext(r.Context())

	records, err := panel.List(r.Context(), sess.Token)
	if err != nil {
		respondUpstreamError(w, h.logger, err, "failed to list "+panel.Schema().Name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{panel.Schema().Name: records})
}

// Create adds a record. Multipart resources accept file parts; everything
// else is JSON.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	panel, ok := h.panel(w, r)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFromContext(r.Context())

	values, files, err := h.decodeResourceForm(r, panel)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := panel.Create(r.Context(), sess.Token, values, files); err != nil {
		if errors.Is(err, admin.ErrMissingFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondUpstreamError(w, h.logger, err, "failed to create "+panel.Schema().Name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "created"})
}

// Update saves the submitted fields of a record. A file field without a
// replacement upload is omitted so the upstream keeps the stored image.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	panel, ok := h.panel(w, r)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	values, files, err := h.decodeResourceForm(r, panel)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := panel.Update(r.Context(), sess.Token, id, values, files); err != nil {
		if errors.Is(err, admin.ErrMissingFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondUpstreamError(w, h.logger, err, "failed to update "+panel.Schema().Name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

// Delete removes a record. No confirmation step.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	panel, ok := h.panel(w, r)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := panel.Delete(r.Context(), sess.Token, id); err != nil {
		if errors.Is(err, admin.ErrMissingFields) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondUpstreamError(w, h.logger, err, "failed to delete "+panel.Schema().Name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// decodeResourceForm reads the submitted fields as either a multipart form
// (for resources carrying attachments) or a flat JSON object.
func (h *AdminHandler) decodeResourceForm(r *http.Request, panel *admin.Panel) (map[string]string, map[string]upstream.File, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.decodeMultipartForm(r, panel)
	}

	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		return nil, nil, err
	}
	return values, nil, nil
}

func (h *AdminHandler) decodeMultipartForm(r *http.Request, panel *admin.Panel) (map[string]string, map[string]upstream.File, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}

	values := make(map[string]string)
	for field, fieldValues := range r.MultipartForm.Value {
		if len(fieldValues) > 0 {
			values[field] = fieldValues[0]
		}
	}

	files := make(map[string]upstream.File)
	for _, field := range panel.Schema().Fields {
		if !field.File {
			continue
		}
		headers := r.MultipartForm.File[field.Name]
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		files[field.Name] = upstream.File{Name: headers[0].Filename, Content: content}
	}
	return values, files, nil
}
