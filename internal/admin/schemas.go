package admin

import "go.uber.org/zap"

// The four dashboard resources. Users and coupons are plain JSON; categories
// and products carry an image attachment and always submit multipart forms.

func Users() Schema {
	return Schema{
		Name:     "users",
		Path:     "user",
		Envelope: "users",
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "email", Required: true},
			{Name: "password", Required: true},
			{Name: "role", Required: true},
		},
	}
}

func Coupons() Schema {
	return Schema{
		Name:     "coupons",
		Path:     "coupon",
		Envelope: "coupon",
		Fields: []Field{
			{Name: "code", Required: true},
			{Name: "discount", Required: true},
			{Name: "expires", Required: true},
		},
	}
}

func Categories() Schema {
	return Schema{
		Name:     "categories",
		Path:     "category",
		Envelope: "categories",
		Fields: []Field{
			{Name: "name", Required: true},
			{Name: "img", Required: true, File: true},
		},
	}
}

func Products() Schema {
	return Schema{
		Name:     "products",
		Path:     "product",
		Envelope: "products",
		Fields: []Field{
			{Name: "title", Required: true},
			{Name: "description", Required: true},
			{Name: "price", Required: true},
			{Name: "stock", Required: true},
			{Name: "category", Required: true},
			{Name: "imgCover", Required: true, File: true},
		},
	}
}

// Panels builds the full dashboard set keyed by resource name.
func Panels(api API, logger *zap.Logger) map[string]*Panel {
	schemas := []Schema{Users(), Coupons(), Categories(), Products()}
	panels := make(map[string]*Panel, len(schemas))
	for _, schema := range schemas {
		panels[schema.Name] = NewPanel(schema, api, logger)
	}
	return panels
}
