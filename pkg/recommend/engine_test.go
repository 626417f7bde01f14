package recommend_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/recommend"
	"github.com/vdk888/knowledge/pkg/storage/inmemory"
	testutils "github.com/vdk888/knowledge/pkg/utils/test"
)

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		store  *inmemory.Driver
		engine *recommend.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = inmemory.NewDriver()
		engine = recommend.NewEngine(store, slog.New(slog.DiscardHandler))
	})

	learn := func(userID int64, name string) {
		c, err := store.GetConceptByName(ctx, name)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.CreateUserProgress(ctx, knowledge.NewUserProgress{UserID: userID, ConceptID: c.ID, IsLearned: true})
		Expect(err).NotTo(HaveOccurred())
	}

	It("recommends concepts without prerequisites to a new user", func() {
		recs, err := engine.ForUser(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(recs).To(HaveLen(recommend.MaxRecommendations))
		Expect(recNames(recs)).To(ContainElement("Algebra"))
		Expect(recNames(recs)).NotTo(ContainElement("Calculus"))
	})

	It("reflects progress on the next call", func() {
		learn(1, "Algebra")

		recs, err := engine.ForUser(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(recNames(recs)).To(ContainElement("Calculus"))
		Expect(recNames(recs)).NotTo(ContainElement("Algebra"))
		Expect(recs[0].Concept.Domain).To(Equal("Mathematics"))
	})

	It("ignores rows that are not learned", func() {
		c, err := store.GetConceptByName(ctx, "Algebra")
		Expect(err).NotTo(HaveOccurred())
		_, err = store.CreateUserProgress(ctx, knowledge.NewUserProgress{UserID: 1, ConceptID: c.ID})
		Expect(err).NotTo(HaveOccurred())

		recs, err := engine.ForUser(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(recNames(recs)).To(ContainElement("Algebra"))
	})

	It("keeps users apart", func() {
		learn(1, "Algebra")

		recs, err := engine.ForUser(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(recNames(recs)).NotTo(ContainElement("Calculus"))
	})

	It("returns storage errors", func() {
		flaky := testutils.NewFlakyDriver(store)
		flaky.FailOn["GetUserProgress"] = true

		_, err := recommend.NewEngine(flaky, slog.New(slog.DiscardHandler)).ForUser(ctx, 1)
		Expect(err).To(MatchError(testutils.ErrInjected))
	})
})
