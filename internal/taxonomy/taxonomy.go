// Package taxonomy defines the fixed table of job categories and weighted
// keywords that drives both skill extraction and heuristic classification.
package taxonomy

import (
	"regexp"
	"strings"
)

// Keyword is a single taxonomy entry. Multi-word terms are phrases and
// match by substring containment; single tokens match on word boundaries
// so that "go" does not match inside "algorithm".
type Keyword struct {
	Term   string
	Weight float64

	pattern *regexp.Regexp // compiled word-boundary pattern, nil for phrases
}

// Matches reports whether the keyword occurs in the given text.
// The text must already be lower-cased by the caller.
func (k Keyword) Matches(lower string) bool {
	if k.pattern != nil {
		return k.pattern.MatchString(lower)
	}
	return strings.Contains(lower, k.Term)
}

// Category is a named group of weighted keywords.
type Category struct {
	Name     string
	Keywords []Keyword
}

// MaxWeight returns the largest keyword weight in the category.
func (c Category) MaxWeight() float64 {
	var max float64
	for _, k := range c.Keywords {
		if k.Weight > max {
			max = k.Weight
		}
	}
	return max
}

// kw builds a Keyword, compiling the word-boundary pattern for single
// tokens at init time.
func kw(term string, weight float64) Keyword {
	k := Keyword{Term: term, Weight: weight}
	if !strings.Contains(term, " ") {
		k.pattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return k
}

// Fallback is the category reported when no keyword scores at all.
const Fallback = "General"

// categories is declared in priority order: when two categories reach the
// same heuristic score, the earlier one wins. Reordering changes results.
var categories = []Category{
	{Name: "Data Science", Keywords: []Keyword{
		kw("machine learning", 3.0), kw("data science", 3.0), kw("data scientist", 2.5),
		kw("python", 2.0), kw("pandas", 2.0), kw("numpy", 2.0), kw("tensorflow", 2.5), kw("pytorch", 2.5),
		kw("statistics", 2.0), kw("sql", 1.5), kw("scikit-learn", 2.0), kw("jupyter", 2.0),
		kw("data analysis", 2.0), kw("data visualization", 2.0), kw("neural network", 2.5),
		kw("deep learning", 2.5), kw("nlp", 2.0), kw("natural language processing", 2.0),
	}},
	{Name: "Software Engineering", Keywords: []Keyword{
		kw("software engineer", 3.0), kw("software developer", 3.0), kw("full stack", 2.5),
		kw("javascript", 2.0), kw("typescript", 2.0), kw("react", 2.0), kw("node.js", 2.0), kw("nodejs", 2.0),
		kw("java", 2.0), kw("spring", 2.0), kw("c++", 1.5), kw("c#", 1.5), kw(".net", 2.0),
		kw("go", 2.0), kw("golang", 2.0), kw("rust", 2.0), kw("microservices", 2.0),
		kw("rest api", 1.5), kw("graphql", 2.0), kw("docker", 1.5), kw("kubernetes", 1.5),
		kw("git", 0.5), kw("version control", 0.5), kw("agile", 1.0), kw("scrum", 1.0),
	}},
	{Name: "DevOps / Cloud", Keywords: []Keyword{
		kw("devops", 3.0), kw("cloud engineer", 3.0), kw("sre", 2.5), kw("site reliability", 2.5),
		kw("aws", 2.5), kw("amazon web services", 2.0), kw("azure", 2.5), kw("gcp", 2.5), kw("google cloud", 2.0),
		kw("terraform", 2.5), kw("ansible", 2.5), kw("kubernetes", 2.5), kw("k8s", 2.0),
		kw("ci/cd", 2.5), kw("jenkins", 2.0), kw("github actions", 2.0), kw("gitlab ci", 2.0),
		kw("docker", 2.0), kw("containerization", 2.0), kw("linux", 1.5), kw("bash", 1.5),
		kw("monitoring", 2.0), kw("prometheus", 2.0), kw("grafana", 2.0),
	}},
	{Name: "Product Management", Keywords: []Keyword{
		kw("product manager", 3.0), kw("product management", 3.0), kw("product owner", 2.5),
		kw("roadmap", 2.5), kw("stakeholder", 2.0), kw("product strategy", 2.5),
		kw("metrics", 2.0), kw("kpi", 2.0), kw("user research", 2.5), kw("user experience", 2.0),
		kw("backlog", 2.0), kw("agile", 1.5), kw("scrum", 1.5), kw("kanban", 1.5),
		kw("mvp", 2.0), kw("minimum viable product", 2.0), kw("a/b testing", 2.0),
	}},
	{Name: "UI/UX Design", Keywords: []Keyword{
		kw("ui designer", 3.0), kw("ux designer", 3.0), kw("user experience", 3.0), kw("user interface", 3.0),
		kw("figma", 2.5), kw("sketch", 2.5), kw("adobe xd", 2.5), kw("prototype", 2.5),
		kw("wireframe", 2.5), kw("usability", 2.0), kw("design system", 2.5),
		kw("adobe", 1.5), kw("photoshop", 1.5), kw("illustrator", 1.5),
		kw("interaction design", 2.5), kw("user research", 2.0), kw("persona", 2.0),
	}},
	{Name: "Data Engineering", Keywords: []Keyword{
		kw("data engineer", 3.0), kw("data engineering", 3.0), kw("etl", 2.5),
		kw("spark", 2.5), kw("apache spark", 2.5), kw("airflow", 2.5), kw("kafka", 2.5),
		kw("hadoop", 2.5), kw("data pipeline", 2.5), kw("data warehouse", 2.5),
		kw("snowflake", 2.5), kw("redshift", 2.5), kw("databricks", 2.5),
		kw("big data", 2.0), kw("data lake", 2.0), kw("pyspark", 2.0),
	}},
	{Name: "Cybersecurity", Keywords: []Keyword{
		kw("cybersecurity", 3.0), kw("security engineer", 3.0), kw("information security", 3.0),
		kw("siem", 2.5), kw("soc", 2.5), kw("security operations", 2.5),
		kw("incident response", 2.5), kw("vulnerability", 2.0), kw("penetration testing", 2.5),
		kw("nist", 2.0), kw("owasp", 2.0), kw("splunk", 2.0), kw("iso 27001", 2.0),
		kw("threat detection", 2.5), kw("security audit", 2.0),
	}},
}

// maxPossibleScore is the sum of each category's largest weight, computed
// once; the heuristic confidence band is derived from it.
var maxPossibleScore = func() float64 {
	var sum float64
	for _, c := range categories {
		sum += c.MaxWeight()
	}
	return sum
}()

// Categories returns the taxonomy in declaration order. Callers must not
// modify the returned slice.
func Categories() []Category {
	return categories
}

// MaxPossibleScore returns the sum of per-category maximum weights.
func MaxPossibleScore() float64 {
	return maxPossibleScore
}
