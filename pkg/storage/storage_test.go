package storage_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
	"github.com/vdk888/knowledge/pkg/storage/inmemory"
)

var _ = Describe("Errors", func() {
	It("formats not found errors", func() {
		Expect(storage.NotFoundError{Entity: "concept", ID: 9999}.Error()).To(Equal("concept not found: 9999"))
		Expect(storage.NotFoundError{}.Error()).To(Equal("record not found"))
	})

	It("recognizes wrapped not found errors", func() {
		err := fmt.Errorf("updating: %w", storage.NotFoundError{Entity: "progress", ID: 3})
		Expect(storage.IsNotFound(err)).To(BeTrue())
		Expect(storage.IsNotFound(errors.New("boom"))).To(BeFalse())
	})

	DescribeTable("classifies caller errors",
		func(err error, caller bool) {
			Expect(storage.IsCallerError(err)).To(Equal(caller))
		},
		Entry("nil", nil, false),
		Entry("not found", storage.NotFoundError{Entity: "progress", ID: 1}, true),
		Entry("conflict", storage.ConflictError{Entity: "concept", Field: "name", Value: "Algebra"}, true),
		Entry("validation", fmt.Errorf("creating: %w", &knowledge.ValidationError{Field: "name", Reason: "must not be empty"}), true),
		Entry("backend fault", fmt.Errorf("query: %w", storage.ErrBackendUnavailable), false),
		Entry("anything else", errors.New("connection reset"), false),
	)
})

var _ = Describe("Seed", func() {
	var (
		ctx    context.Context
		driver *inmemory.Driver
		ds     knowledge.Dataset
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = inmemory.NewDriver(inmemory.WithoutSeed())
		ds = knowledge.SeedDataset()
	})

	It("writes every concept and relationship into an empty store", func() {
		result, err := storage.Seed(ctx, driver, ds)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Concepts).To(Equal(len(ds.Concepts)))
		Expect(result.Relationships).To(Equal(len(ds.Relationships)))

		concepts, err := driver.GetConcepts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(concepts).To(HaveLen(len(ds.Concepts)))

		edges, err := driver.ListConceptRelationships(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(edges).To(HaveLen(len(ds.Relationships)))
	})

	It("resolves relationship endpoints by name", func() {
		_, err := storage.Seed(ctx, driver, ds)
		Expect(err).NotTo(HaveOccurred())

		algebra, err := driver.GetConceptByName(ctx, "Algebra")
		Expect(err).NotTo(HaveOccurred())
		calculus, err := driver.GetConceptByName(ctx, "Calculus")
		Expect(err).NotTo(HaveOccurred())

		edges, err := driver.GetConceptRelationships(ctx, calculus.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(edges).To(ContainElement(SatisfyAll(
			HaveField("SourceID", algebra.ID),
			HaveField("TargetID", calculus.ID),
			HaveField("RelationshipType", knowledge.RelationshipPrerequisite),
		)))
	})

	It("is a no-op the second time", func() {
		_, err := storage.Seed(ctx, driver, ds)
		Expect(err).NotTo(HaveOccurred())

		result, err := storage.Seed(ctx, driver, ds)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(storage.SeedResult{}))

		edges, err := driver.ListConceptRelationships(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(edges).To(HaveLen(len(ds.Relationships)))
	})

	It("fails on a relationship to an unknown concept", func() {
		ds.Relationships = append(ds.Relationships, knowledge.SeedRelationship{
			Source: "Algebra", Target: "Astrology", Type: knowledge.RelationshipRelated, Strength: 1,
		})

		_, err := storage.Seed(ctx, driver, ds)
		Expect(err).To(MatchError(ContainSubstring(`"Algebra" -> "Astrology" references an unknown concept`)))
	})
})
