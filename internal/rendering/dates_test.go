package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"already hyphenated", "May 2020 - Aug 2022", "May 2020 - Aug 2022"},
		{"already en-dashed", "May 2020 – Aug 2022", "May 2020 – Aug 2022"},
		{"missing separator", "May 2020 Aug 2022", "May 2020 - Aug 2022"},
		{"open ended present", "Jan 2023 Present", "Jan 2023 Present"},
		{"open ended expected", "Expected May 2026", "Expected May 2026"},
		{"open ended ongoing", "Ongoing since 2021 now", "Ongoing since 2021 now"},
		{"open ended current", "Current role 2024", "Current role 2024"},
		{"open ended graduation", "Graduation May 2025", "Graduation May 2025"},
		{"single date two tokens", "May 2020", "May 2020"},
		{"three tokens", "May 2020 Aug", "May 2020 Aug"},
		{"five tokens", "May 2020 to Aug 2022", "May 2020 to Aug 2022"},
		{"second token not numeric", "May June Aug 2022", "May June Aug 2022"},
		{"fourth token not numeric", "May 2020 Aug last", "May 2020 Aug last"},
		{"case insensitive indicator", "jan 2023 PRESENT", "jan 2023 PRESENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDates(tt.input))
		})
	}
}
