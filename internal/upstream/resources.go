package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Generic resource operations backing the admin panels. Every admin resource
// exposes the same conventional route set: /{path}/get, /{path}/add,
// /{path}/update/{id}, /{path}/delete/{id}. The list envelope key varies per
// resource, so the caller names it.

// ListResource fetches all records of a resource as raw objects.
func (c *Client) ListResource(ctx context.Context, token, path, envelope string) ([]map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/"+path+"/get", token, nil, &raw); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	payload, ok := raw[envelope]
	if !ok {
		return nil, fmt.Errorf("list %s: response has no %q field", path, envelope)
	}
	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("list %s: decode %q: %w", path, envelope, err)
	}
	return records, nil
}

// CreateResource adds a record. When multipart is set the values and files
// are encoded as a multipart form, otherwise as JSON.
func (c *Client) CreateResource(ctx context.Context, token, path string, values map[string]string, files map[string]File, multipart bool) error {
	var err error
	if multipart {
		err = c.doMultipart(ctx, http.MethodPost, "/"+path+"/add", token, values, files, nil)
	} else {
		err = c.do(ctx, http.MethodPost, "/"+path+"/add", token, values, nil)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// UpdateResource saves the provided fields of an existing record. A file
// field absent from files is omitted from the form entirely so the upstream
// retains the stored attachment.
func (c *Client) UpdateResource(ctx context.Context, token, path, id string, values map[string]string, files map[string]File, multipart bool) error {
	var err error
	if multipart {
		err = c.doMultipart(ctx, http.MethodPut, "/"+path+"/update/"+id, token, values, files, nil)
	} else {
		err = c.do(ctx, http.MethodPut, "/"+path+"/update/"+id, token, values, nil)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

// DeleteResource removes a record. There is no confirmation step.
func (c *Client) DeleteResource(ctx context.Context, token, path, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/"+path+"/delete/"+id, token, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
