package export

import (
	"regexp"

	"github.com/inkwellhq/resumepress/internal/resume"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// PDFFilename builds the download name for one variant:
// "<FullName with whitespace runs replaced by underscores>_<Variant>_Resume.pdf".
func PDFFilename(fullName string, t resume.Template) string {
	name := whitespacePattern.ReplaceAllString(fullName, "_")
	return name + "_" + t.DisplayName() + "_Resume.pdf"
}

// ArchiveFilename builds the download name for the all-templates bundle.
func ArchiveFilename(fullName string) string {
	name := whitespacePattern.ReplaceAllString(fullName, "_")
	if name == "" {
		name = "Resume"
	}
	return name + "_Resume_Templates.zip"
}

// BackupFilename builds the download name for a data backup file.
func BackupFilename(fullName, ext string) string {
	name := whitespacePattern.ReplaceAllString(fullName, "_")
	if name == "" {
		name = "Resume"
	}
	return name + "_Resume_Data." + ext
}
