package service

// Principle is a named rule in the fixed rulebook against which debate
// arguments are matched for citation purposes.
type Principle struct {
	ID          string
	Name        string
	Keywords    []string
	Description string
}

// DefaultRulebook returns the ordered rulebook. Declaration order matters:
// citation ties on relevance keep this order. The slice is rebuilt on every
// call so callers cannot mutate shared state.
func DefaultRulebook() []Principle {
	return []Principle{
		{
			ID:          "security-first",
			Name:        "Security First",
			Keywords:    []string{"security", "vulnerability", "exploit", "encryption", "authentication", "injection"},
			Description: "Security concerns outrank convenience; a known weakness is never an acceptable trade.",
		},
		{
			ID:          "performance-efficiency",
			Name:        "Performance Efficiency",
			Keywords:    []string{"performance", "latency", "throughput", "optimization", "efficiency"},
			Description: "Resource cost and responsiveness are first-class requirements, not afterthoughts.",
		},
		{
			ID:          "simplicity",
			Name:        "Simplicity Over Cleverness",
			Keywords:    []string{"simple", "simplicity", "complexity", "readable", "maintainable"},
			Description: "Prefer the design that the next maintainer can understand without archaeology.",
		},
		{
			ID:          "backward-compatibility",
			Name:        "Backward Compatibility",
			Keywords:    []string{"compatibility", "breaking", "migration", "deprecation", "legacy"},
			Description: "Breaking existing consumers requires explicit justification and a migration path.",
		},
		{
			ID:          "design-for-scale",
			Name:        "Design For Scale",
			Keywords:    []string{"scale", "scalability", "load", "capacity", "growth"},
			Description: "Decisions should hold at an order of magnitude more load than today's.",
		},
		{
			ID:          "reliability",
			Name:        "Reliability And Recovery",
			Keywords:    []string{"reliability", "failure", "resilience", "recovery", "fault"},
			Description: "Assume dependencies fail; design for degraded operation and clean recovery.",
		},
		{
			ID:          "user-impact",
			Name:        "User Impact First",
			Keywords:    []string{"user", "usability", "experience", "accessibility", "workflow"},
			Description: "The effect on the people using the system outweighs internal elegance.",
		},
		{
			ID:          "evidence-over-opinion",
			Name:        "Evidence Over Opinion",
			Keywords:    []string{"benchmark", "measurement", "data", "metrics", "evidence", "profiling"},
			Description: "Claims backed by measurements beat claims backed by seniority.",
		},
	}
}
