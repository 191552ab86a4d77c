package service_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"arbiterhq.io/arbiter/internal/model"
	"arbiterhq.io/arbiter/internal/service"
)

var _ = Describe("CitationAnalyzer", func() {
	var analyzer service.CitationAnalyzer

	arg := func(id int64, actor, summary, reasoning string) model.Argument {
		return model.Argument{
			ID:        id,
			ActorID:   actor,
			Summary:   summary,
			Reasoning: reasoning,
		}
	}

	BeforeEach(func() {
		analyzer = service.NewCitationAnalyzer(service.DefaultRulebook())
	})

	It("returns no citations when no principle matches", func() {
		citations := analyzer.Analyze([]model.Argument{
			arg(1, "alpha", "rename the helper package", "naming consistency"),
		})

		Expect(citations).To(BeEmpty())
	})

	It("cites a principle once per matching argument at 0.3 relevance each", func() {
		citations := analyzer.Analyze([]model.Argument{
			arg(1, "alpha", "this introduces a security vulnerability", ""),
			arg(2, "beta", "authentication must stay server side", ""),
		})

		Expect(citations).To(HaveLen(1))
		Expect(citations[0].PrincipleID).To(Equal("security-first"))
		Expect(citations[0].RelevanceScore).To(BeNumerically("~", 0.6, 1e-9))
		Expect(citations[0].EvidenceSnippets).To(HaveLen(2))
		Expect(citations[0].Rationale).To(ContainSubstring("2 argument(s)"))
	})

	It("caps relevance at 1.0 for four or more matching arguments", func() {
		arguments := make([]model.Argument, 0, 5)
		for i := int64(1); i <= 5; i++ {
			arguments = append(arguments, arg(i, "alpha", "another security concern", ""))
		}

		citations := analyzer.Analyze(arguments)

		Expect(citations).To(HaveLen(1))
		Expect(citations[0].RelevanceScore).To(Equal(1.0))
		Expect(citations[0].EvidenceSnippets).To(HaveLen(5))
	})

	It("matches keywords in reasoning as well as summary", func() {
		citations := analyzer.Analyze([]model.Argument{
			arg(1, "alpha", "prefer option two", "the benchmark data favors it"),
		})

		Expect(citations).To(HaveLen(1))
		Expect(citations[0].PrincipleID).To(Equal("evidence-over-opinion"))
	})

	It("truncates evidence excerpts to 100 characters with an ellipsis", func() {
		long := strings.Repeat("security ", 20)
		citations := analyzer.Analyze([]model.Argument{arg(1, "alpha", long, "")})

		Expect(citations).To(HaveLen(1))
		excerpt := citations[0].EvidenceSnippets[0].Excerpt
		Expect(excerpt).To(HaveLen(103))
		Expect(excerpt).To(HaveSuffix("..."))
		Expect(excerpt[:100]).To(Equal(long[:100]))
	})

	It("keeps short summaries intact", func() {
		citations := analyzer.Analyze([]model.Argument{
			arg(1, "alpha", "fix the security hole", ""),
		})

		Expect(citations[0].EvidenceSnippets[0].Excerpt).To(Equal("fix the security hole"))
	})

	Describe("ordering", func() {
		It("sorts by relevance descending", func() {
			citations := analyzer.Analyze([]model.Argument{
				arg(1, "alpha", "performance and latency matter here", ""),
				arg(2, "beta", "throughput is the real performance constraint", ""),
				arg(3, "gamma", "there is a security angle too", ""),
			})

			Expect(citations).To(HaveLen(2))
			Expect(citations[0].PrincipleID).To(Equal("performance-efficiency"))
			Expect(citations[0].RelevanceScore).To(BeNumerically(">", citations[1].RelevanceScore))
			Expect(citations[1].PrincipleID).To(Equal("security-first"))
		})

		It("breaks relevance ties by rulebook order", func() {
			citations := analyzer.Analyze([]model.Argument{
				arg(1, "alpha", "a security question", ""),
				arg(2, "beta", "a performance question", ""),
			})

			Expect(citations).To(HaveLen(2))
			Expect(citations[0].PrincipleID).To(Equal("security-first"))
			Expect(citations[1].PrincipleID).To(Equal("performance-efficiency"))
		})
	})
})
