package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "built a web service", "built a web service"},
		{"ampersand", "C & D", `C \& D`},
		{"percent", "cut latency by 40%", `cut latency by 40\%`},
		{"dollar", "saved $2M", `saved \$2M`},
		{"hash", "issue #42", `issue \#42`},
		{"underscore", "snake_case", `snake\_case`},
		{"braces", "map{key}", `map\{key\}`},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"tilde", "~/bin", `\textasciitilde{}/bin`},
		{"mixed", "50% of $10 & more", `50\% of \$10 \& more`},
		{"unicode preserved", "naïve café", "naïve café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.input))
		})
	}
}

// Escaping twice corrupts the output because the backslashes introduced by
// the first pass get escaped again. Callers rely on exactly one application.
func TestEscapeLaTeX_NotIdempotent(t *testing.T) {
	once := EscapeLaTeX("40%")
	twice := EscapeLaTeX(once)

	assert.Equal(t, `40\%`, once)
	assert.NotEqual(t, once, twice)
	assert.Contains(t, twice, `\textbackslash{}`)
}
