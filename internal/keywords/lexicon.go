package keywords

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/parsing"
)

var toolNames = []string{
	"go", "python", "java", "javascript", "typescript", "rust", "ruby", "php", "scala", "kotlin",
	"swift", "c", "c++", "c#", "f#", "elixir", "haskell", "perl", "bash", "sql", "nosql", "graphql",
	"grpc", "rest", "kubernetes", "docker", "helm", "terraform", "ansible", "pulumi", "jenkins",
	"github actions", "gitlab", "git", "ci/cd", "aws", "azure", "google cloud", "gcp", "lambda",
	"linux", "nginx", "postgresql", "mysql", "sqlite", "mongodb", "redis", "cassandra", "dynamodb",
	"elasticsearch", "kafka", "rabbitmq", "nats", "spark", "hadoop", "airflow", "snowflake",
	"bigquery", "dbt", "tableau", "looker", "excel", "react", "vue", "angular", "svelte", "node.js",
	"next.js", "django", "flask", "fastapi", "spring", "spring boot", "rails", "pytorch", "tensorflow",
	"pandas", "numpy", "prometheus", "grafana", "datadog", "opentelemetry", "jira", "figma",
}

var tools = func() map[string]bool {
	m := make(map[string]bool, len(toolNames))
	for _, name := range toolNames {
		m[parsing.StemPhrase(name)] = true
	}
	return m
}()

// qualificationWords mark phrases describing credentials rather than skills
var qualificationWords = map[string]bool{
	"degree":        true,
	"bachelor":      true,
	"bachelor's":    true,
	"bachelors":     true,
	"master":        true,
	"master's":      true,
	"masters":       true,
	"phd":           true,
	"bs":            true,
	"ms":            true,
	"bsc":           true,
	"msc":           true,
	"mba":           true,
	"certification": true,
	"certified":     true,
	"certificate":   true,
	"license":       true,
	"licensed":      true,
	"years":         true,
	"experience":    true,
	"clearance":     true,
}

// significantMarkers identify sections whose phrases weigh more
var significantMarkers = []string{
	"requirement", "qualification", "skill", "must have", "nice to have", "preferred",
	"responsibilit", "what you'll do", "looking for", "competenc",
}

// qualificationMarkers identify sections whose phrases are credentials
var qualificationMarkers = []string{"qualification", "education", "certification"}

// SignificantSection reports whether a section title marks requirement-like content
func SignificantSection(title string) bool {
	return containsAny(strings.ToLower(title), significantMarkers)
}

func qualificationSection(title string) bool {
	return containsAny(strings.ToLower(title), qualificationMarkers)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
