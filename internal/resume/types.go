package resume

// PersonalInfo holds the identity block rendered at the top of every template.
// FullName, Email, Phone, and Location are required for a complete resume;
// missing optional fields degrade rendering instead of failing it.
type PersonalInfo struct {
	FullName          string `json:"fullName" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required"`
	Location          string `json:"location" validate:"required"`
	ProfessionalTitle string `json:"professionalTitle,omitempty"`
	Photo             string `json:"photo,omitempty"`
}

// WorkExperience is one entry in the experience section. Dates are stored as
// "YYYY-MM" strings. When Current is true the end bound renders as the
// template's present token regardless of EndDate.
type WorkExperience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one entry in the education section.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	Description    string `json:"description"`
}

// Certification is one entry in the certifications section.
type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	Date         string `json:"date"`
	CredentialID string `json:"credentialId,omitempty"`
}

// Reference is one entry in the references section.
type Reference struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// Data aggregates everything a template renders. Slice order is insertion
// order and doubles as display order; renderers never resort.
type Data struct {
	PersonalInfo        PersonalInfo     `json:"personalInfo"`
	ProfessionalSummary string           `json:"professionalSummary"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Education           []Education      `json:"education"`
	Certifications      []Certification  `json:"certifications"`
	References          []Reference      `json:"references"`
}

// HasPhoto reports whether a photo payload is present.
func (p PersonalInfo) HasPhoto() bool {
	return p.Photo != ""
}
