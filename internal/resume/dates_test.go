package resume

import "testing"

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2023-04", "04/2023"},
		{"1999-12", "12/1999"},
		{"", ""},
		{"2023", "2023"},
		{"ongoing", "ongoing"},
	}

	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	exp := WorkExperience{StartDate: "2020-01", EndDate: "2023-06"}
	if got := DateRange(exp, "Present"); got != "01/2020 - 06/2023" {
		t.Fatalf("unexpected range: %q", got)
	}
}

func TestDateRangeCurrentOverridesEndDate(t *testing.T) {
	exp := WorkExperience{StartDate: "2020-01", EndDate: "2023-06", Current: true}
	if got := DateRange(exp, "Present"); got != "01/2020 - Present" {
		t.Fatalf("current entry must use the present token, got %q", got)
	}
	if got := DateRange(exp, "PRESENT"); got != "01/2020 - PRESENT" {
		t.Fatalf("token must pass through verbatim, got %q", got)
	}
}
