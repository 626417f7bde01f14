package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/logger"
	"github.com/vdk888/knowledge/pkg/recommend"
	"github.com/vdk888/knowledge/pkg/storage/inmemory"
)

func conceptNames(cs []Concept) []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

func resultText(r *mcp.CallToolResult) string {
	Expect(r.Content).To(HaveLen(1))
	text, ok := r.Content[0].(*mcp.TextContent)
	Expect(ok).To(BeTrue())
	return text.Text
}

var _ = Describe("tools", func() {
	var (
		ctx    context.Context
		driver *inmemory.Driver
		server *Server
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = inmemory.NewDriver()

		var err error
		server, err = NewServer(Config{
			Store:  driver,
			Engine: recommend.NewEngine(driver, logger.Nop()),
			Logger: logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	conceptID := func(name string) int64 {
		c, err := driver.GetConceptByName(ctx, name)
		Expect(err).NotTo(HaveOccurred())
		Expect(c).NotTo(BeNil())
		return c.ID
	}

	Describe("recommend_concepts", func() {
		It("rejects a non-positive user id", func() {
			result, _, err := server.handleRecommend(ctx, nil, RecommendInput{UserID: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
			Expect(resultText(result)).To(ContainSubstring("user_id"))
		})

		It("recommends at most five concepts to a new user", func() {
			result, output, err := server.handleRecommend(ctx, nil, RecommendInput{UserID: 42})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output.UserID).To(Equal(int64(42)))
			Expect(output.Count).To(Equal(len(output.Recommendations)))
			Expect(output.Count).To(BeNumerically(">", 0))
			Expect(output.Count).To(BeNumerically("<=", recommend.MaxRecommendations))
			Expect(resultText(result)).To(ContainSubstring(`"recommendations"`))
		})

		It("unlocks a dependent once its prerequisite is learned", func() {
			_, err := driver.CreateUserProgress(ctx, knowledge.NewUserProgress{
				UserID:    7,
				ConceptID: conceptID("Algebra"),
				IsLearned: true,
			})
			Expect(err).NotTo(HaveOccurred())

			_, output, err := server.handleRecommend(ctx, nil, RecommendInput{UserID: 7})
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(output.Recommendations))
			for _, r := range output.Recommendations {
				names = append(names, r.Concept.Name)
			}
			Expect(names).NotTo(ContainElement("Algebra"))
		})
	})

	Describe("concept_connections", func() {
		It("classifies the neighbors of Calculus", func() {
			result, output, err := server.handleConnections(ctx, nil, ConnectionsInput{ConceptID: conceptID("Calculus")})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output.Concept.Name).To(Equal("Calculus"))
			Expect(conceptNames(output.Prerequisites)).To(ConsistOf("Algebra"))
			Expect(conceptNames(output.Dependents)).To(ContainElements("Differential Equations", "Vector Calculus"))
			Expect(conceptNames(output.Related)).To(ContainElement("Kinematics"))
		})

		It("reports an unknown concept as a tool error", func() {
			result, _, err := server.handleConnections(ctx, nil, ConnectionsInput{ConceptID: 9999})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
			Expect(resultText(result)).To(ContainSubstring("concept not found: 9999"))
		})
	})
})
