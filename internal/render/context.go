package render

import (
	"github.com/flosch/pongo2/v6"

	"github.com/inkwellhq/resumepress/internal/resume"
)

// presentTokens adapts the "still employed" end bound to each variant's
// typographic style.
var presentTokens = map[resume.Template]string{
	resume.TemplateModern:       "Present",
	resume.TemplateProfessional: "Present",
	resume.TemplateCreative:     "Present",
	resume.TemplateMinimal:      "PRESENT",
}

type experienceView struct {
	Title       string
	Employer    string
	Location    string
	Dates       string
	Description string
}

type educationView struct {
	Degree      string
	School      string
	Location    string
	Date        string
	Description string
}

type certificationView struct {
	Name         string
	Issuer       string
	Date         string
	CredentialID string
}

type referenceView struct {
	Name    string
	Title   string
	Company string
	Email   string
	Phone   string
}

// buildContext precomputes every display value so the templates stay pure
// layout. Dates are formatted here, the present token is resolved here, and
// entries keep their stored order.
func buildContext(t resume.Template, data resume.Data, c resume.Customization) pongo2.Context {
	present := presentTokens[t]

	experience := make([]experienceView, 0, len(data.WorkExperience))
	for _, exp := range data.WorkExperience {
		experience = append(experience, experienceView{
			Title:       exp.JobTitle,
			Employer:    exp.Company,
			Location:    exp.Location,
			Dates:       resume.DateRange(exp, present),
			Description: exp.Description,
		})
	}

	education := make([]educationView, 0, len(data.Education))
	for _, edu := range data.Education {
		education = append(education, educationView{
			Degree:      edu.Degree,
			School:      edu.Institution,
			Location:    edu.Location,
			Date:        resume.FormatDate(edu.GraduationDate),
			Description: edu.Description,
		})
	}

	certifications := make([]certificationView, 0, len(data.Certifications))
	for _, cert := range data.Certifications {
		certifications = append(certifications, certificationView{
			Name:         cert.Name,
			Issuer:       cert.Issuer,
			Date:         resume.FormatDate(cert.Date),
			CredentialID: cert.CredentialID,
		})
	}

	references := make([]referenceView, 0, len(data.References))
	for _, ref := range data.References {
		references = append(references, referenceView{
			Name:    ref.Name,
			Title:   ref.Title,
			Company: ref.Company,
			Email:   ref.Email,
			Phone:   ref.Phone,
		})
	}

	return pongo2.Context{
		"Name":           data.PersonalInfo.FullName,
		"Title":          data.PersonalInfo.ProfessionalTitle,
		"Email":          data.PersonalInfo.Email,
		"Phone":          data.PersonalInfo.Phone,
		"Location":       data.PersonalInfo.Location,
		"Photo":          data.PersonalInfo.Photo,
		"Summary":        data.ProfessionalSummary,
		"Experience":     experience,
		"Education":      education,
		"Certifications": certifications,
		"References":     references,
		"Color":          c.PrimaryColor,
		// 8-digit hex tints used by the creative header band and icon chips.
		"Tint15": c.PrimaryColor + "15",
		"Tint20": c.PrimaryColor + "20",
		"Font":   c.FontFamily,
	}
}
