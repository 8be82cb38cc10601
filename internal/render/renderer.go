// Package render turns resume content into fully laid out HTML documents,
// one pongo2 template per layout variant. Rendering is pure: the same data
// and customization always produce byte-identical output.
package render

import (
	"embed"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/inkwellhq/resumepress/internal/resume"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFiles = map[resume.Template]string{
	resume.TemplateModern:       "templates/modern.html",
	resume.TemplateProfessional: "templates/professional.html",
	resume.TemplateCreative:     "templates/creative.html",
	resume.TemplateMinimal:      "templates/minimal.html",
}

// Renderer holds the compiled variant templates.
type Renderer struct {
	templates map[resume.Template]*pongo2.Template
}

// NewRenderer compiles all embedded variant templates. Every variant in
// resume.Templates must have a source file; a gap is a startup error, not a
// render-time one.
func NewRenderer() (*Renderer, error) {
	templates := make(map[resume.Template]*pongo2.Template, len(templateFiles))
	for _, t := range resume.Templates() {
		name, ok := templateFiles[t]
		if !ok {
			return nil, fmt.Errorf("no template source registered for variant %q", t)
		}
		raw, err := templateFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		tpl, err := pongo2.FromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("compile template %s: %w", name, err)
		}
		templates[t] = tpl
	}
	return &Renderer{templates: templates}, nil
}

// Render produces the full HTML document for one variant. Input is never
// mutated.
func (r *Renderer) Render(t resume.Template, data resume.Data, c resume.Customization) ([]byte, error) {
	tpl, ok := r.templates[t]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", t)
	}
	return tpl.ExecuteBytes(buildContext(t, data, c))
}
