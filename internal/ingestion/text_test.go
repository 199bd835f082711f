package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "normalizes CRLF",
			input:    "Experience\r\nPython developer\r\n",
			expected: "Experience\nPython developer",
		},
		{
			name:     "normalizes bare CR",
			input:    "Skills\rDocker",
			expected: "Skills\nDocker",
		},
		{
			name:     "trims trailing whitespace per line",
			input:    "Python   \nDocker\t\n",
			expected: "Python\nDocker",
		},
		{
			name:     "collapses blank line runs",
			input:    "Summary\n\n\n\nExperience",
			expected: "Summary\n\nExperience",
		},
		{
			name:     "drops leading and trailing blanks",
			input:    "\n\nSummary\n\n",
			expected: "Summary",
		},
		{
			name:     "whitespace-only lines count as blank",
			input:    "Summary\n   \n\t\nExperience",
			expected: "Summary\n\nExperience",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestExtractPDFText_RejectsGarbage(t *testing.T) {
	_, err := ExtractPDFText([]byte("not a pdf at all"))
	assert.Error(t, err)
}
