package knowledge_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

func validationField(err error) string {
	var ve *knowledge.ValidationError
	Expect(errors.As(err, &ve)).To(BeTrue(), "expected a ValidationError, got %v", err)
	return ve.Field
}

var _ = Describe("NewConcept.Validate", func() {
	valid := func() knowledge.NewConcept {
		return knowledge.NewConcept{
			Name:        "Topology",
			Domain:      "Mathematics",
			Difficulty:  "ADVANCED",
			Description: "Continuity without distance.",
		}
	}

	It("normalizes the difficulty", func() {
		c := valid()
		Expect(c.Validate()).To(Succeed())
		Expect(c.Difficulty).To(Equal(knowledge.DifficultyAdvanced))
	})

	DescribeTable("rejects missing fields",
		func(mutate func(*knowledge.NewConcept), field string) {
			c := valid()
			mutate(&c)
			Expect(validationField(c.Validate())).To(Equal(field))
		},
		Entry("name", func(c *knowledge.NewConcept) { c.Name = "  " }, "name"),
		Entry("domain", func(c *knowledge.NewConcept) { c.Domain = "" }, "domain"),
		Entry("description", func(c *knowledge.NewConcept) { c.Description = "" }, "description"),
		Entry("difficulty", func(c *knowledge.NewConcept) { c.Difficulty = "expert" }, "difficulty"),
	)
})

var _ = Describe("NewConceptRelationship.Validate", func() {
	It("accepts the strength bounds", func() {
		for _, s := range []int{knowledge.MinStrength, knowledge.MaxStrength} {
			r := knowledge.NewConceptRelationship{SourceID: 1, TargetID: 2, RelationshipType: knowledge.RelationshipRelated, Strength: s}
			Expect(r.Validate()).To(Succeed())
		}
	})

	DescribeTable("rejects invalid edges",
		func(r knowledge.NewConceptRelationship, field string) {
			Expect(validationField(r.Validate())).To(Equal(field))
		},
		Entry("missing source", knowledge.NewConceptRelationship{TargetID: 2, RelationshipType: knowledge.RelationshipRelated, Strength: 5}, "sourceId"),
		Entry("missing target", knowledge.NewConceptRelationship{SourceID: 1, RelationshipType: knowledge.RelationshipRelated, Strength: 5}, "targetId"),
		Entry("unknown type", knowledge.NewConceptRelationship{SourceID: 1, TargetID: 2, RelationshipType: "opposite", Strength: 5}, "relationshipType"),
		Entry("strength too low", knowledge.NewConceptRelationship{SourceID: 1, TargetID: 2, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 0}, "strength"),
		Entry("strength too high", knowledge.NewConceptRelationship{SourceID: 1, TargetID: 2, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 11}, "strength"),
	)

	It("reports the opposite endpoint", func() {
		r := knowledge.ConceptRelationship{SourceID: 1, TargetID: 2}
		Expect(r.Other(1)).To(Equal(int64(2)))
		Expect(r.Other(2)).To(Equal(int64(1)))
		Expect(r.Touches(3)).To(BeFalse())
	})
})

var _ = Describe("ProgressUpdate.Apply", func() {
	var (
		now     time.Time
		earlier time.Time
		yes     = true
		no      = false
	)

	BeforeEach(func() {
		now = time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
		earlier = now.Add(-48 * time.Hour)
	})

	It("stamps learnedAt when a concept becomes learned", func() {
		p := knowledge.ProgressUpdate{IsLearned: &yes}.Apply(knowledge.UserProgress{ID: 1}, now)
		Expect(p.IsLearned).To(BeTrue())
		Expect(p.LearnedAt).To(HaveValue(Equal(now)))
	})

	It("keeps the original timestamp when re-marked as learned", func() {
		start := knowledge.UserProgress{ID: 1, IsLearned: true, LearnedAt: &earlier}
		p := knowledge.ProgressUpdate{IsLearned: &yes}.Apply(start, now)
		Expect(p.LearnedAt).To(HaveValue(Equal(earlier)))
	})

	It("clears learnedAt when unlearned", func() {
		start := knowledge.UserProgress{ID: 1, IsLearned: true, LearnedAt: &earlier}
		p := knowledge.ProgressUpdate{IsLearned: &no}.Apply(start, now)
		Expect(p.IsLearned).To(BeFalse())
		Expect(p.LearnedAt).To(BeNil())
	})

	It("leaves the row alone for an empty update", func() {
		start := knowledge.UserProgress{ID: 1, IsLearned: true, LearnedAt: &earlier}
		Expect(knowledge.ProgressUpdate{}.Apply(start, now)).To(Equal(start))
	})

	It("uses an explicit timestamp", func() {
		p := knowledge.ProgressUpdate{IsLearned: &yes, LearnedAt: &earlier}.Apply(knowledge.UserProgress{}, now)
		Expect(p.LearnedAt).To(HaveValue(Equal(earlier)))
	})

	It("builds new rows through the same rules", func() {
		p := knowledge.NewUserProgress{UserID: 1, ConceptID: 2, IsLearned: false}.Build(7, now)
		Expect(p.ID).To(Equal(int64(7)))
		Expect(p.LearnedAt).To(BeNil())
	})
})

var _ = Describe("LearnedSet", func() {
	It("contains only learned concepts", func() {
		set := knowledge.LearnedSet([]knowledge.UserProgress{
			{ConceptID: 1, IsLearned: true},
			{ConceptID: 2, IsLearned: false},
		})
		Expect(set).To(Equal(map[int64]bool{1: true}))
	})
})

var _ = Describe("KnowledgeGraph", func() {
	It("never has nil nodes or links", func() {
		g := knowledge.NewKnowledgeGraph(nil, nil)
		Expect(g.Nodes).NotTo(BeNil())
		Expect(g.Links).NotTo(BeNil())
	})

	It("drops links to missing nodes", func() {
		g := knowledge.NewKnowledgeGraph(
			[]knowledge.Concept{{ID: 1}, {ID: 2}},
			[]knowledge.ConceptRelationship{
				{SourceID: 1, TargetID: 2, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 5},
				{SourceID: 2, TargetID: 9, RelationshipType: knowledge.RelationshipRelated, Strength: 5},
			},
		)

		Expect(g.OrphanLinks()).To(Equal(1))
		Expect(g.Links).To(ConsistOf(knowledge.GraphLink{Source: 1, Target: 2, Type: "prerequisite", Strength: 5}))
	})
})

var _ = Describe("SeedDataset", func() {
	It("is internally consistent", func() {
		ds := knowledge.SeedDataset()
		Expect(ds.Concepts).To(HaveLen(17))
		Expect(ds.Relationships).To(HaveLen(21))

		names := map[string]bool{}
		for _, c := range ds.Concepts {
			c := c
			Expect(c.Validate()).To(Succeed())
			Expect(names).NotTo(HaveKey(c.Name), "duplicate concept %q", c.Name)
			names[c.Name] = true
		}

		for _, r := range ds.Relationships {
			Expect(names).To(HaveKey(r.Source))
			Expect(names).To(HaveKey(r.Target))
			Expect(r.Type.Valid()).To(BeTrue())
			Expect(r.Strength).To(BeNumerically(">=", knowledge.MinStrength))
			Expect(r.Strength).To(BeNumerically("<=", knowledge.MaxStrength))
		}
	})
})
