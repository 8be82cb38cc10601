package resume

import "fmt"

// Template identifies one of the four fixed layout variants.
type Template string

const (
	TemplateModern       Template = "modern"
	TemplateProfessional Template = "professional"
	TemplateCreative     Template = "creative"
	TemplateMinimal      Template = "minimal"
)

// Templates returns all variants in their fixed display order.
func Templates() []Template {
	return []Template{TemplateModern, TemplateProfessional, TemplateCreative, TemplateMinimal}
}

// ParseTemplate validates a template identifier.
func ParseTemplate(s string) (Template, error) {
	switch Template(s) {
	case TemplateModern, TemplateProfessional, TemplateCreative, TemplateMinimal:
		return Template(s), nil
	}
	return "", fmt.Errorf("unknown template %q", s)
}

// DisplayName returns the user-facing variant name.
func (t Template) DisplayName() string {
	switch t {
	case TemplateModern:
		return "Modern"
	case TemplateProfessional:
		return "Professional"
	case TemplateCreative:
		return "Creative"
	case TemplateMinimal:
		return "Minimal"
	}
	return string(t)
}

func (t Template) String() string {
	return string(t)
}
