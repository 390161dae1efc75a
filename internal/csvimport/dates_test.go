package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// ISO
		{"2024-12-15", "2024-12-15"},
		{"2024-1-5", "2024-01-05"},
		{"2024/12/15", "2024-12-15"},
		// US month-first
		{"12/15/2024", "2024-12-15"},
		{"1/5/2024", "2024-01-05"},
		{"12-15-2024", "2024-12-15"},
		{"12.15.2024", "2024-12-15"},
		// two-digit-year pivot
		{"12/15/24", "2024-12-15"},
		{"12/15/70", "1970-12-15"},
		{"12/15/69", "2069-12-15"},
		{"12/15/99", "1999-12-15"},
		// dotted ISO
		{"2024.12.15", "2024-12-15"},
		// month-name first
		{"Dec 15, 2024", "2024-12-15"},
		{"December 15, 2024", "2024-12-15"},
		{"Sept 3, 2024", "2024-09-03"},
		{"dec 15 2024", "2024-12-15"},
		// day first
		{"15 Dec 2024", "2024-12-15"},
		{"3 September 2024", "2024-09-03"},
		// whitespace tolerated
		{"  2024-12-15  ", "2024-12-15"},
		// calendar-invalid dates matched lexically but rejected
		{"2024-02-30", ""},
		{"2023-02-29", ""},
		{"Feb 30, 2024", ""},
		{"13/40/2024", ""},
		// leap day accepted when real
		{"2024-02-29", "2024-02-29"},
		// unrecognized
		{"", ""},
		{"not a date", ""},
		{"Notamonth 5, 2024", ""},
		{"2024-12", ""},
		{"15th of December", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseFlexibleDate(tc.in), "input %q", tc.in)
	}
}

func TestParseFlexibleDatePrecedence(t *testing.T) {
	// a 4-digit leading component is ISO, never US day-first
	assert.Equal(t, "2024-05-06", ParseFlexibleDate("2024/5/6"))
	// a 1-2 digit leading component is US month-first
	assert.Equal(t, "2024-05-06", ParseFlexibleDate("5/6/2024"))
}
