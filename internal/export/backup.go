package export

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/inkwellhq/resumepress/internal/resume"
)

// BackupJSON serializes the full resume for data takeout.
func BackupJSON(data resume.Data) ([]byte, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, NewError(KindInternal, "json backup failed", err)
	}
	return raw, nil
}

// BackupXLSX writes the resume into a workbook with one sheet per section.
func BackupXLSX(data resume.Data) ([]byte, error) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, NewError(KindInternal, "xlsx backup failed", err)
	}

	profile := [][]any{
		{"Field", "Value"},
		{"Full Name", data.PersonalInfo.FullName},
		{"Professional Title", data.PersonalInfo.ProfessionalTitle},
		{"Email", data.PersonalInfo.Email},
		{"Phone", data.PersonalInfo.Phone},
		{"Location", data.PersonalInfo.Location},
		{"Summary", data.ProfessionalSummary},
	}

	experience := [][]any{{"Job Title", "Company", "Location", "Start", "End", "Current", "Description"}}
	for _, exp := range data.WorkExperience {
		experience = append(experience, []any{
			exp.JobTitle, exp.Company, exp.Location, exp.StartDate, exp.EndDate, exp.Current, exp.Description,
		})
	}

	education := [][]any{{"Degree", "Institution", "Location", "Graduation", "Description"}}
	for _, edu := range data.Education {
		education = append(education, []any{
			edu.Degree, edu.Institution, edu.Location, edu.GraduationDate, edu.Description,
		})
	}

	certifications := [][]any{{"Name", "Issuer", "Date", "Credential ID"}}
	for _, cert := range data.Certifications {
		certifications = append(certifications, []any{cert.Name, cert.Issuer, cert.Date, cert.CredentialID})
	}

	references := [][]any{{"Name", "Title", "Company", "Email", "Phone"}}
	for _, ref := range data.References {
		references = append(references, []any{ref.Name, ref.Title, ref.Company, ref.Email, ref.Phone})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Profile", profile},
		{"Experience", experience},
		{"Education", education},
		{"Certifications", certifications},
		{"References", references},
	}

	for i, sheet := range sheets {
		if i == 0 {
			file.SetSheetName(file.GetSheetName(0), sheet.name)
		} else {
			if _, err := file.NewSheet(sheet.name); err != nil {
				return nil, NewError(KindInternal, "xlsx backup failed", err)
			}
		}
		if err := writeSheet(file, sheet.name, sheet.rows, headerStyle); err != nil {
			return nil, NewError(KindInternal, "xlsx backup failed", err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, NewError(KindInternal, "xlsx backup failed", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(file *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return file.SetCellStyle(sheet, "A1", last, headerStyle)
}

// BackupExtension validates a requested backup format.
func BackupExtension(ext string) (string, error) {
	switch ext {
	case "json", "xlsx":
		return ext, nil
	}
	return "", NewError(KindValidation, fmt.Sprintf("unsupported backup format %q", ext), nil)
}
