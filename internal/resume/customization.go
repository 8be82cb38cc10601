package resume

// Customization holds the template, accent color, and font selection. It is
// independent of resume content and persisted after every change. Every field
// always has a value, so no merge-patch can leave it in a partial shape.
type Customization struct {
	Template     Template `json:"template"`
	PrimaryColor string   `json:"primaryColor"`
	FontFamily   string   `json:"fontFamily"`
}

// DefaultCustomization is the state created on first visit to the preview.
func DefaultCustomization() Customization {
	return Customization{
		Template:     TemplateModern,
		PrimaryColor: DefaultColors[0],
		FontFamily:   FontOptions[0].Value,
	}
}

// DefaultColors is the suggested accent palette. It is a UI convenience only;
// any hex string is accepted as a primary color.
var DefaultColors = []string{
	"#1e40af",
	"#059669",
	"#dc2626",
	"#7c3aed",
	"#ea580c",
	"#0891b2",
	"#4338ca",
	"#be123c",
}

// FontOption pairs a display name with a CSS font-family value.
type FontOption struct {
	Name  string
	Value string
}

// FontOptions is the suggested font list, likewise a convenience rather than
// a validation constraint.
var FontOptions = []FontOption{
	{Name: "Inter", Value: "Inter, sans-serif"},
	{Name: "Roboto", Value: "Roboto, sans-serif"},
	{Name: "Open Sans", Value: `"Open Sans", sans-serif`},
	{Name: "Lato", Value: "Lato, sans-serif"},
	{Name: "Playfair Display", Value: `"Playfair Display", serif`},
	{Name: "Merriweather", Value: "Merriweather, serif"},
}
