package testutils

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// DescribeDriverContract registers the behavior every storage.Driver shares.
// newDriver must return an empty driver; it is called before each test.
func DescribeDriverContract(newDriver func(ctx context.Context) storage.Driver) {
	var (
		ctx    context.Context
		driver storage.Driver
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = newDriver(ctx)
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	createConcept := func(name, domain string) *knowledge.Concept {
		c, err := driver.CreateConcept(ctx, knowledge.NewConcept{
			Name:        name,
			Domain:      domain,
			Difficulty:  knowledge.DifficultyBeginner,
			Description: name + " basics",
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	createUser := func(username string) *knowledge.User {
		u, err := driver.CreateUser(ctx, knowledge.NewUser{Username: username, Password: "secret"})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("concepts", func() {
		It("assigns ids and round trips", func() {
			created, err := driver.CreateConcept(ctx, knowledge.NewConcept{
				Name:        "Algebra",
				Domain:      "Mathematics",
				Difficulty:  "Beginner",
				Description: "Symbols and rules",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Difficulty).To(Equal(knowledge.DifficultyBeginner))

			got, err := driver.GetConcept(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
			Expect(got.Name).To(Equal("Algebra"))
			Expect(got.Domain).To(Equal("Mathematics"))
			Expect(got.Description).To(Equal("Symbols and rules"))

			byName, err := driver.GetConceptByName(ctx, "Algebra")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName.ID).To(Equal(created.ID))
		})

		It("returns nil for unknown ids and names", func() {
			got, err := driver.GetConcept(ctx, 9999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())

			byName, err := driver.GetConceptByName(ctx, "Nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName).To(BeNil())
		})

		It("rejects duplicate names with a conflict", func() {
			createConcept("Algebra", "Mathematics")

			_, err := driver.CreateConcept(ctx, knowledge.NewConcept{
				Name: "Algebra", Domain: "Other", Difficulty: knowledge.DifficultyAdvanced, Description: "again",
			})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(storage.ConflictError{}))
			Expect(storage.IsCallerError(err)).To(BeTrue())
		})

		It("rejects invalid difficulty", func() {
			_, err := driver.CreateConcept(ctx, knowledge.NewConcept{
				Name: "Topology", Domain: "Mathematics", Difficulty: "expert", Description: "Shapes",
			})
			var verr *knowledge.ValidationError
			Expect(err).To(BeAssignableToTypeOf(verr))
		})

		It("lists concepts in id order and filters by domain", func() {
			a := createConcept("Algebra", "Mathematics")
			k := createConcept("Kinematics", "Physics")
			c := createConcept("Calculus", "Mathematics")

			all, err := driver.GetConcepts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(all)).To(Equal([]int64{a.ID, k.ID, c.ID}))

			math, err := driver.GetConceptsByDomain(ctx, "Mathematics")
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(math)).To(Equal([]int64{a.ID, c.ID}))

			none, err := driver.GetConceptsByDomain(ctx, "Art")
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})

		It("searches names case-insensitively", func() {
			createConcept("Linear Algebra", "Mathematics")
			createConcept("Algebra", "Mathematics")
			createConcept("Dynamics", "Physics")

			found, err := driver.SearchConcepts(ctx, "ALGEBRA")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(2))

			empty, err := driver.SearchConcepts(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(empty).To(BeEmpty())
		})

		It("returns sorted distinct domains", func() {
			createConcept("Kinematics", "Physics")
			createConcept("Algebra", "Mathematics")
			createConcept("Calculus", "Mathematics")

			domains, err := driver.GetDomains(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(domains).To(Equal([]string{"Mathematics", "Physics"}))
		})
	})

	Describe("relationships", func() {
		It("finds edges in both directions", func() {
			a := createConcept("Algebra", "Mathematics")
			c := createConcept("Calculus", "Mathematics")
			d := createConcept("Differential Equations", "Mathematics")

			first, err := driver.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
				SourceID: a.ID, TargetID: c.ID, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 9,
			})
			Expect(err).NotTo(HaveOccurred())
			second, err := driver.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
				SourceID: c.ID, TargetID: d.ID, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 8,
			})
			Expect(err).NotTo(HaveOccurred())

			rels, err := driver.GetConceptRelationships(ctx, c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rels).To(HaveLen(2))
			Expect(rels[0].ID).To(Equal(first.ID))
			Expect(rels[1].ID).To(Equal(second.ID))

			got, err := driver.GetConceptRelationship(ctx, second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.SourceID).To(Equal(c.ID))
			Expect(got.TargetID).To(Equal(d.ID))
			Expect(got.Strength).To(Equal(8))

			all, err := driver.ListConceptRelationships(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})

		It("rejects strengths outside 1..10", func() {
			a := createConcept("Algebra", "Mathematics")
			c := createConcept("Calculus", "Mathematics")

			_, err := driver.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
				SourceID: a.ID, TargetID: c.ID, RelationshipType: knowledge.RelationshipRelated, Strength: 11,
			})
			Expect(storage.IsCallerError(err)).To(BeTrue())
		})

		It("rejects unknown endpoints", func() {
			a := createConcept("Algebra", "Mathematics")

			_, err := driver.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
				SourceID: a.ID, TargetID: a.ID + 100, RelationshipType: knowledge.RelationshipRelated, Strength: 3,
			})
			Expect(storage.IsCallerError(err)).To(BeTrue())
		})

		It("builds the knowledge graph", func() {
			a := createConcept("Algebra", "Mathematics")
			c := createConcept("Calculus", "Mathematics")
			_, err := driver.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
				SourceID: a.ID, TargetID: c.ID, RelationshipType: knowledge.RelationshipPrerequisite, Strength: 9,
			})
			Expect(err).NotTo(HaveOccurred())

			g, err := driver.GetKnowledgeGraph(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Nodes).To(HaveLen(2))
			Expect(g.Links).To(ConsistOf(knowledge.GraphLink{
				Source: a.ID, Target: c.ID, Type: "prerequisite", Strength: 9,
			}))
		})
	})

	Describe("users", func() {
		It("creates and finds users by username", func() {
			email := "ada@example.com"
			u, err := driver.CreateUser(ctx, knowledge.NewUser{Username: "ada", Password: "pw", Email: &email})
			Expect(err).NotTo(HaveOccurred())

			got, err := driver.GetUserByUsername(ctx, "ada")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(u.ID))
			Expect(*got.Email).To(Equal(email))

			byID, err := driver.GetUser(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(byID.Username).To(Equal("ada"))
		})

		It("rejects duplicate usernames", func() {
			createUser("ada")
			_, err := driver.CreateUser(ctx, knowledge.NewUser{Username: "ada", Password: "pw"})
			Expect(err).To(BeAssignableToTypeOf(storage.ConflictError{}))
		})
	})

	Describe("progress", func() {
		var (
			user    *knowledge.User
			concept *knowledge.Concept
		)

		BeforeEach(func() {
			user = createUser("ada")
			concept = createConcept("Algebra", "Mathematics")
		})

		It("upserts one row per user and concept", func() {
			first, err := driver.CreateUserProgress(ctx, knowledge.NewUserProgress{
				UserID: user.ID, ConceptID: concept.ID, IsLearned: false,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.LearnedAt).To(BeNil())

			second, err := driver.CreateUserProgress(ctx, knowledge.NewUserProgress{
				UserID: user.ID, ConceptID: concept.ID, IsLearned: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(second.IsLearned).To(BeTrue())
			Expect(second.LearnedAt).NotTo(BeNil())

			rows, err := driver.GetUserProgress(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("stamps and clears learnedAt on updates", func() {
			row, err := driver.CreateUserProgress(ctx, knowledge.NewUserProgress{UserID: user.ID, ConceptID: concept.ID})
			Expect(err).NotTo(HaveOccurred())

			learned := true
			updated, err := driver.UpdateUserProgress(ctx, row.ID, knowledge.ProgressUpdate{IsLearned: &learned})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsLearned).To(BeTrue())
			Expect(updated.LearnedAt).NotTo(BeNil())

			at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			updated, err = driver.UpdateUserProgress(ctx, row.ID, knowledge.ProgressUpdate{LearnedAt: &at})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.LearnedAt.Equal(at)).To(BeTrue())

			unlearned := false
			updated, err = driver.UpdateUserProgress(ctx, row.ID, knowledge.ProgressUpdate{IsLearned: &unlearned})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsLearned).To(BeFalse())
			Expect(updated.LearnedAt).To(BeNil())

			got, err := driver.GetUserProgressForConcept(ctx, user.ID, concept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.IsLearned).To(BeFalse())
		})

		It("returns NotFoundError when updating an unknown row", func() {
			learned := true
			_, err := driver.UpdateUserProgress(ctx, 4242, knowledge.ProgressUpdate{IsLearned: &learned})
			Expect(storage.IsNotFound(err)).To(BeTrue())

			rows, err := driver.GetUserProgress(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("rejects progress for an unknown concept", func() {
			_, err := driver.CreateUserProgress(ctx, knowledge.NewUserProgress{
				UserID: user.ID, ConceptID: concept.ID + 100, IsLearned: true,
			})
			Expect(err).To(BeAssignableToTypeOf(&knowledge.ValidationError{}))
			Expect(storage.IsCallerError(err)).To(BeTrue())

			rows, err := driver.GetUserProgress(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("returns nil for a pair without progress", func() {
			got, err := driver.GetUserProgressForConcept(ctx, user.ID, concept.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})
}

func ids(concepts []knowledge.Concept) []int64 {
	out := make([]int64, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, c.ID)
	}
	return out
}
