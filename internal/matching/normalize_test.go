package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase and trim", input: "  Python  ", expected: "python"},
		{name: "dots stripped", input: "React.js", expected: "react"},
		{name: "suffixed variant", input: "reactjs", expected: "react"},
		{name: "unsuffixed variant", input: "React", expected: "react"},
		{name: "hyphens stripped", input: "scikit-learn", expected: "scikitlearn"},
		{name: "underscores stripped", input: "my_sql", expected: "mysql"},
		{name: "node variant", input: "Node.js", expected: "node"},
		{name: "bare js kept", input: "JS", expected: "js"},
		{name: "short stem kept", input: "exjs", expected: "exjs"},
		{name: "empty input", input: "", expected: ""},
		{name: "dotnet", input: ".NET", expected: "net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTerm(tt.input))
		})
	}
}

func TestNormalizeTermVariantsCollapse(t *testing.T) {
	variants := []string{"React.js", "reactjs", "React", "react"}
	for _, v := range variants {
		assert.Equal(t, "react", NormalizeTerm(v), "variant %q", v)
	}
}
