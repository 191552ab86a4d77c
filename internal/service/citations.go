package service

import (
	"fmt"
	"sort"
	"strings"

	"arbiterhq.io/arbiter/internal/model"
)

const (
	// relevancePerMatch is the per-matching-argument relevance increment.
	// Deliberately crude: 4+ matching arguments saturate relevance at 1.0.
	// Downstream consumers depend on this exact scale.
	relevancePerMatch = 0.3

	// snippetMaxLen is the evidence excerpt length taken from each matching
	// argument's summary.
	snippetMaxLen = 100
)

// CitationAnalyzer scans a session's accumulated arguments against the
// rulebook and produces ranked, evidence-backed citations. Principles without
// any matching argument are omitted entirely.
type CitationAnalyzer interface {
	Analyze(arguments []model.Argument) []model.Citation
}

type citationAnalyzer struct {
	rulebook []Principle
}

func NewCitationAnalyzer(rulebook []Principle) CitationAnalyzer {
	return &citationAnalyzer{rulebook: rulebook}
}

func (a *citationAnalyzer) Analyze(arguments []model.Argument) []model.Citation {
	citations := []model.Citation{}

	for _, principle := range a.rulebook {
		var matches []model.Argument
		for _, arg := range arguments {
			if argumentMatches(&arg, principle.Keywords) {
				matches = append(matches, arg)
			}
		}
		if len(matches) == 0 {
			continue
		}

		relevance := float64(len(matches)) * relevancePerMatch
		if relevance > 1 {
			relevance = 1
		}

		snippets := make([]model.EvidenceSnippet, 0, len(matches))
		for _, arg := range matches {
			snippets = append(snippets, model.EvidenceSnippet{
				ActorID:    arg.ActorID,
				ArgumentID: arg.ID,
				Excerpt:    excerpt(arg.Summary),
			})
		}

		citations = append(citations, model.Citation{
			PrincipleID:      principle.ID,
			PrincipleName:    principle.Name,
			RelevanceScore:   relevance,
			EvidenceSnippets: snippets,
			Rationale:        fmt.Sprintf("%d argument(s) invoke %s", len(matches), principle.Name),
		})
	}

	// Stable: ties keep rulebook declaration order.
	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].RelevanceScore > citations[j].RelevanceScore
	})

	return citations
}

func argumentMatches(arg *model.Argument, keywords []string) bool {
	text := strings.ToLower(arg.Summary + " " + arg.Reasoning)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func excerpt(summary string) string {
	if len(summary) <= snippetMaxLen {
		return summary
	}
	return summary[:snippetMaxLen] + "..."
}
