package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inkwellhq/resumepress/internal/resume"
)

func testData() resume.Data {
	return resume.Data{
		PersonalInfo: resume.PersonalInfo{
			FullName:          "Jane Q. Doe",
			ProfessionalTitle: "Platform Engineer",
			Email:             "jane@example.com",
			Phone:             "+1 555 0100",
			Location:          "Lisbon, Portugal",
		},
		ProfessionalSummary: "Ten years of keeping large systems boring.",
		WorkExperience: []resume.WorkExperience{
			{
				ID:          "exp-1",
				JobTitle:    "Staff Engineer",
				Company:     "Acme Corp",
				Location:    "Remote",
				StartDate:   "2020-03",
				EndDate:     "",
				Current:     true,
				Description: "Owns the ingestion pipeline.",
			},
			{
				ID:        "exp-2",
				JobTitle:  "Engineer",
				Company:   "Initech",
				StartDate: "2015-01",
				EndDate:   "2020-02",
			},
		},
		Education: []resume.Education{
			{ID: "edu-1", Degree: "BSc Computer Science", Institution: "IST", GraduationDate: "2014-06"},
		},
		Certifications: []resume.Certification{
			{ID: "cert-1", Name: "CKA", Issuer: "CNCF", Date: "2021-09", CredentialID: "CKA-1234"},
		},
		References: []resume.Reference{
			{ID: "ref-1", Name: "Sam Lee", Title: "Director", Company: "Acme Corp", Email: "sam@acme.test", Phone: "+1 555 0199"},
		},
	}
}

func testCustomization() resume.Customization {
	return resume.Customization{
		Template:     resume.TemplateModern,
		PrimaryColor: "#059669",
		FontFamily:   "Lato, sans-serif",
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderAllVariants(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()
	c := testCustomization()

	for _, tpl := range resume.Templates() {
		html, err := r.Render(tpl, data, c)
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		out := string(html)
		for _, want := range []string{
			"Jane Q. Doe",
			"jane@example.com",
			"Staff Engineer",
			"Acme Corp",
			"BSc Computer Science",
			"CKA",
			"Sam Lee",
			"#059669",
			"Lato, sans-serif",
		} {
			if !strings.Contains(out, want) {
				t.Fatalf("%s output missing %q", tpl, want)
			}
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.Render(resume.Template("brutalist"), testData(), testCustomization()); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestRenderOmitsEmptySections(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()
	data.ProfessionalSummary = ""
	data.WorkExperience = nil
	data.Education = nil
	data.Certifications = nil
	data.References = nil

	headings := map[resume.Template][]string{
		resume.TemplateModern:       {"Professional Summary", "Work Experience", "Education", "Certifications", "References"},
		resume.TemplateProfessional: {"Professional Summary", "Work Experience", "Education", "Certifications", "References"},
		resume.TemplateCreative:     {"About Me", "Experience", "Education", "Certifications", "References"},
		resume.TemplateMinimal:      {"Experience", "Education", "Certifications", "References"},
	}

	for tpl, names := range headings {
		html, err := r.Render(tpl, data, testCustomization())
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		out := string(html)
		for _, name := range names {
			if strings.Contains(out, ">"+name+"<") {
				t.Fatalf("%s should omit empty section %q", tpl, name)
			}
		}
		// The identity block always renders.
		if !strings.Contains(out, "Jane Q. Doe") {
			t.Fatalf("%s dropped the identity block", tpl)
		}
	}
}

func TestRenderPresentToken(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()

	for _, tpl := range resume.Templates() {
		html, err := r.Render(tpl, data, testCustomization())
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		out := string(html)
		want := "03/2020 - Present"
		if tpl == resume.TemplateMinimal {
			want = "03/2020 - PRESENT"
		}
		if !strings.Contains(out, want) {
			t.Fatalf("%s output missing date range %q", tpl, want)
		}
		if !strings.Contains(out, "01/2015 - 02/2020") {
			t.Fatalf("%s output missing closed date range", tpl)
		}
	}
}

func TestRenderOmitsMissingPhoto(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()

	html, err := r.Render(resume.TemplateModern, data, testCustomization())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(html), "<img") {
		t.Fatal("photoless resume must not render an img tag")
	}

	data.PersonalInfo.Photo = "https://example.com/jane.jpg"
	html, err = r.Render(resume.TemplateModern, data, testCustomization())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "https://example.com/jane.jpg") {
		t.Fatal("photo url missing from output")
	}
}

func TestRenderPreservesEntryOrder(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()

	html, err := r.Render(resume.TemplateModern, data, testCustomization())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	first := strings.Index(out, "Staff Engineer")
	second := strings.Index(out, "Initech")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("entries out of stored order: %d vs %d", first, second)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()
	c := testCustomization()

	for _, tpl := range resume.Templates() {
		a, err := r.Render(tpl, data, c)
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		b, err := r.Render(tpl, data, c)
		if err != nil {
			t.Fatalf("render %s: %v", tpl, err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("%s render is not byte-identical across runs", tpl)
		}
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	r := newTestRenderer(t)
	data := testData()
	before := data.WorkExperience[0]

	if _, err := r.Render(resume.TemplateCreative, data, testCustomization()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if data.WorkExperience[0] != before {
		t.Fatal("render mutated its input")
	}
}

func TestRenderAppliesTints(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.Render(resume.TemplateCreative, testData(), testCustomization())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "#05966915") {
		t.Fatal("creative variant should use the 15 tint of the accent color")
	}
}
