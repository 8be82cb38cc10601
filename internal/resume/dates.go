package resume

import "strings"

// FormatDate converts a stored "YYYY-MM" date into its "MM/YYYY" display
// form. The empty string stays empty, and anything that does not split on a
// dash passes through unchanged.
func FormatDate(date string) string {
	if date == "" {
		return ""
	}
	year, month, ok := strings.Cut(date, "-")
	if !ok {
		return date
	}
	return month + "/" + year
}

// DateRange renders the start–end line for a work experience entry. A current
// position uses the supplied present token as its end bound no matter what is
// stored in EndDate.
func DateRange(exp WorkExperience, presentToken string) string {
	end := FormatDate(exp.EndDate)
	if exp.Current {
		end = presentToken
	}
	return FormatDate(exp.StartDate) + " - " + end
}
