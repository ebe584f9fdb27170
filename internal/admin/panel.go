// Package admin implements the dashboard CRUD panels as one generic
// component parameterized by resource schema, instantiated per resource
// instead of hand-duplicating the list/add/edit/delete pattern four times.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"shopgate/internal/upstream"
)

// ErrMissingFields signals a local pre-submission validation failure; no
// request is issued.
var ErrMissingFields = errors.New("required fields are missing")

// Field describes one attribute of a managed resource.
type Field struct {
	Name     string
	Required bool
	File     bool // binary attachment, submitted as a multipart part
}

// Schema parameterizes a panel: the upstream route segment, the list
// response envelope key, and the field set with its validation rules.
type Schema struct {
	Name     string
	Path     string
	Envelope string
	Fields   []Field
}

// Multipart reports whether the resource carries file fields. Such resources
// always submit multipart forms, even when no replacement file is attached.
func (s Schema) Multipart() bool {
	for _, f := range s.Fields {
		if f.File {
			return true
		}
	}
	return false
}

// API is the slice of the upstream client the panels need.
type API interface {
	ListResource(ctx context.Context, token, path, envelope string) ([]map[string]any, error)
	CreateResource(ctx context.Context, token, path string, values map[string]string, files map[string]upstream.File, multipart bool) error
	UpdateResource(ctx context.Context, token, path, id string, values map[string]string, files map[string]upstream.File, multipart bool) error
	DeleteResource(ctx context.Context, token, path, id string) error
}

// Panel is one admin list/add/edit/delete surface.
type Panel struct {
	schema Schema
	api    API
	logger *zap.Logger
}

func NewPanel(schema Schema, api API, logger *zap.Logger) *Panel {
	return &Panel{schema: schema, api: api, logger: logger}
}

// Schema exposes the panel's resource description.
func (p *Panel) Schema() Schema {
	return p.schema
}

// List fetches all records and replaces the caller's collection.
func (p *Panel) List(ctx context.Context, token string) ([]map[string]any, error) {
	return p.api.ListResource(ctx, token, p.schema.Path, p.schema.Envelope)
}

// Create validates the required fields locally, then submits. Value fields
// must be non-blank; required file fields must carry an attachment.
func (p *Panel) Create(ctx context.Context, token string, values map[string]string, files map[string]upstream.File) error {
	var missing []string
	for _, f := range p.schema.Fields {
		if !f.Required {
			continue
		}
		if f.File {
			if _, ok := files[f.Name]; !ok {
				missing = append(missing, f.Name)
			}
		} else if strings.TrimSpace(values[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	if err := p.api.CreateResource(ctx, token, p.schema.Path, values, files, p.schema.Multipart()); err != nil {
		return err
	}
	p.logger.Info("Resource created", zap.String("resource", p.schema.Name))
	return nil
}

// Update submits only the fields present in the edit buffer. A file field
// the user did not replace is omitted from the form entirely, so the
// upstream keeps the stored image.
func (p *Panel) Update(ctx context.Context, token, id string, values map[string]string, files map[string]upstream.File) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id", ErrMissingFields)
	}
	if err := p.api.UpdateResource(ctx, token, p.schema.Path, id, values, files, p.schema.Multipart()); err != nil {
		return err
	}
	p.logger.Info("Resource updated", zap.String("resource", p.schema.Name), zap.String("id", id))
	return nil
}

// Delete removes a record and lets the caller refetch. No confirmation step.
func (p *Panel) Delete(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id", ErrMissingFields)
	}
	if err := p.api.DeleteResource(ctx, token, p.schema.Path, id); err != nil {
		return err
	}
	p.logger.Info("Resource deleted", zap.String("resource", p.schema.Name), zap.String("id", id))
	return nil
}
