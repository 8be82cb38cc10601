package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/inkwellhq/resumepress/internal/resume"
)

func backupData() resume.Data {
	return resume.Data{
		PersonalInfo: resume.PersonalInfo{
			FullName:          "Jane Q. Doe",
			ProfessionalTitle: "Platform Engineer",
			Email:             "jane@example.com",
			Phone:             "+1 555 0100",
			Location:          "Lisbon, Portugal",
		},
		ProfessionalSummary: "Keeps systems boring.",
		WorkExperience: []resume.WorkExperience{
			{ID: "exp-1", JobTitle: "Staff Engineer", Company: "Acme Corp", StartDate: "2020-03", Current: true},
		},
		Education: []resume.Education{
			{ID: "edu-1", Degree: "BSc", Institution: "IST", GraduationDate: "2014-06"},
		},
		Certifications: []resume.Certification{
			{ID: "cert-1", Name: "CKA", Issuer: "CNCF", Date: "2021-09"},
		},
		References: []resume.Reference{
			{ID: "ref-1", Name: "Sam Lee", Title: "Director", Company: "Acme Corp"},
		},
	}
}

func TestBackupJSONRoundTrips(t *testing.T) {
	data := backupData()

	raw, err := BackupJSON(data)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	var restored resume.Data
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal backup: %v", err)
	}
	if restored.PersonalInfo.FullName != data.PersonalInfo.FullName {
		t.Fatalf("full name lost: %q", restored.PersonalInfo.FullName)
	}
	if len(restored.WorkExperience) != 1 || restored.WorkExperience[0].ID != "exp-1" {
		t.Fatal("experience entries lost")
	}
}

func TestBackupXLSXSheets(t *testing.T) {
	raw, err := BackupXLSX(backupData())
	if err != nil {
		t.Fatalf("backup: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	for _, sheet := range []string{"Profile", "Experience", "Education", "Certifications", "References"} {
		if idx, err := file.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q", sheet)
		}
	}

	name, err := file.GetCellValue("Profile", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "Jane Q. Doe" {
		t.Fatalf("Profile!B2 = %q", name)
	}

	title, err := file.GetCellValue("Experience", "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if title != "Staff Engineer" {
		t.Fatalf("Experience!A2 = %q", title)
	}
}

func TestBackupExtension(t *testing.T) {
	for _, ok := range []string{"json", "xlsx"} {
		if _, err := BackupExtension(ok); err != nil {
			t.Fatalf("BackupExtension(%q): %v", ok, err)
		}
	}
	_, err := BackupExtension("csv")
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
