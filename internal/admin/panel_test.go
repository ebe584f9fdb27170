package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopgate/internal/upstream"
)

// mockResourceAPI records the last resource call for assertions.
type mockResourceAPI struct {
	calls         int
	lastPath      string
	lastID        string
	lastValues    map[string]string
	lastFiles     map[string]upstream.File
	lastMultipart bool
	err           error
}

func (m *mockResourceAPI) ListResource(ctx context.Context, token, path, envelope string) ([]map[string]any, error) {
	m.calls++
	m.lastPath = path
	return []map[string]any{{"_id": "r1"}}, m.err
}

func (m *mockResourceAPI) CreateResource(ctx context.Context, token, path string, values map[string]string, files map[string]upstream.File, multipart bool) error {
	m.calls++
	m.lastPath = path
	m.lastValues = values
	m.lastFiles = files
	m.lastMultipart = multipart
	return m.err
}

func (m *mockResourceAPI) UpdateResource(ctx context.Context, token, path, id string, values map[string]string, files map[string]upstream.File, multipart bool) error {
	m.calls++
	m.lastPath = path
	m.lastID = id
	m.lastValues = values
	m.lastFiles = files
	m.lastMultipart = multipart
	return m.err
}

func (m *mockResourceAPI) DeleteResource(ctx context.Context, token, path, id string) error {
	m.calls++
	m.lastPath = path
	m.lastID = id
	return m.err
}

func newTestPanel(t *testing.T, schema Schema) (*Panel, *mockResourceAPI) {
	t.Helper()
	api := &mockResourceAPI{}
	logger, _ := zap.NewDevelopment()
	return NewPanel(schema, api, logger), api
}

func coverFile() map[string]upstream.File {
	return map[string]upstream.File{
		"imgCover": {Name: "cover.jpg", Content: []byte("jpeg-bytes")},
	}
}

func productValues() map[string]string {
	return map[string]string{
		"title":       "Espresso Machine",
		"description": "Brews espresso",
		"price":       "199.99",
		"stock":       "10",
		"category":    "kitchen",
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	panel, api := newTestPanel(t, Products())

	err := panel.Create(context.Background(), "tok", map[string]string{
		"title": "Espresso Machine",
		"price": "199.99",
	}, nil)

	require.ErrorIs(t, err, ErrMissingFields)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "imgCover")
	assert.Zero(t, api.calls, "validation failure must not reach the upstream")
}

func TestCreateRejectsBlankRequiredValues(t *testing.T) {
	panel, api := newTestPanel(t, Users())

	err := panel.Create(context.Background(), "tok", map[string]string{
		"name":     "   ",
		"email":    "ada@example.com",
		"password": "secret",
		"role":     "user",
	}, nil)

	require.ErrorIs(t, err, ErrMissingFields)
	assert.Contains(t, err.Error(), "name")
	assert.Zero(t, api.calls)
}

func TestCreateSubmitsMultipartForResourcesWithAttachments(t *testing.T) {
	panel, api := newTestPanel(t, Products())

	err := panel.Create(context.Background(), "tok", productValues(), coverFile())
	require.NoError(t, err)
	assert.Equal(t, "product", api.lastPath)
	assert.True(t, api.lastMultipart)
	assert.Contains(t, api.lastFiles, "imgCover")
}

func TestCreateSubmitsJSONForPlainResources(t *testing.T) {
	panel, api := newTestPanel(t, Coupons())

	err := panel.Create(context.Background(), "tok", map[string]string{
		"code":     "SAVE20",
		"discount": "20",
		"expires":  "2026-12-31",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "coupon", api.lastPath)
	assert.False(t, api.lastMultipart)
}

func TestUpdateOmitsAnUnreplacedFile(t *testing.T) {
	panel, api := newTestPanel(t, Products())

	err := panel.Update(context.Background(), "tok", "p1", productValues(), nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", api.lastID)
	assert.True(t, api.lastMultipart, "file-bearing resources always submit multipart forms")
	assert.Empty(t, api.lastFiles, "an unreplaced file must be left out of the form")
}

func TestUpdateSubmitsAReplacementFile(t *testing.T) {
	panel, api := newTestPanel(t, Categories())

	err := panel.Update(context.Background(), "tok", "c1", map[string]string{"name": "Kitchen"}, map[string]upstream.File{
		"img": {Name: "kitchen.png", Content: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Contains(t, api.lastFiles, "img")
}

func TestUpdateAndDeleteRequireAnID(t *testing.T) {
	panel, api := newTestPanel(t, Users())

	assert.ErrorIs(t, panel.Update(context.Background(), "tok", "  ", nil, nil), ErrMissingFields)
	assert.ErrorIs(t, panel.Delete(context.Background(), "tok", ""), ErrMissingFields)
	assert.Zero(t, api.calls)
}

func TestCreatePropagatesUpstreamRejections(t *testing.T) {
	panel, api := newTestPanel(t, Coupons())
	api.err = errors.New("duplicate code")

	err := panel.Create(context.Background(), "tok", map[string]string{
		"code":     "SAVE20",
		"discount": "20",
		"expires":  "2026-12-31",
	}, nil)
	assert.ErrorIs(t, err, api.err)
}

func TestPanelsCoverEveryDashboardResource(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	panels := Panels(&mockResourceAPI{}, logger)

	for _, name := range []string{"users", "coupons", "categories", "products"} {
		require.Contains(t, panels, name)
		assert.Equal(t, name, panels[name].Schema().Name)
	}

	assert.False(t, panels["users"].Schema().Multipart())
	assert.False(t, panels["coupons"].Schema().Multipart())
	assert.True(t, panels["categories"].Schema().Multipart())
	assert.True(t, panels["products"].Schema().Multipart())
}
