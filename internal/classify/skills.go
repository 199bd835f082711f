package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-scanner/internal/taxonomy"
)

// maxSkills caps the number of skills rendered for display.
const maxSkills = 15

// defaultSkills is returned when no taxonomy keyword matches. Consumers
// rely on the skill list never being empty.
var defaultSkills = []string{"Communication", "Teamwork"}

// ExtractSkills scans text against every taxonomy keyword and returns the
// matched terms, title-cased for display, deduplicated in first-match
// order and capped at 15 entries.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	seen := make(map[string]bool)
	for _, cat := range taxonomy.Categories() {
		for _, k := range cat.Keywords {
			if seen[k.Term] {
				continue
			}
			if k.Matches(lower) {
				seen[k.Term] = true
				matched = append(matched, k.Term)
			}
		}
	}

	return displaySkills(matched)
}

// displaySkills renders raw matched keywords for API responses: title-cased,
// at most maxSkills entries, never empty.
func displaySkills(matched []string) []string {
	if len(matched) == 0 {
		skills := make([]string, len(defaultSkills))
		copy(skills, defaultSkills)
		return skills
	}
	if len(matched) > maxSkills {
		matched = matched[:maxSkills]
	}

	// cases.Caser carries state, so build one per call rather than sharing.
	caser := cases.Title(language.English)
	skills := make([]string, len(matched))
	for i, term := range matched {
		skills[i] = caser.String(term)
	}
	return skills
}
