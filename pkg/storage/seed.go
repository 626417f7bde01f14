package storage

import (
	"context"
	"fmt"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

// SeedResult counts the records written by Seed.
type SeedResult struct {
	Concepts      int
	Relationships int
}

// Seed loads ds into d through the façade. Concepts that already exist by
// name are left alone, and a relationship is only created when at least one
// of its endpoints was created by this call, so seeding twice is a no-op.
func Seed(ctx context.Context, d Driver, ds knowledge.Dataset) (SeedResult, error) {
	var result SeedResult

	ids := make(map[string]int64, len(ds.Concepts))
	created := make(map[string]bool, len(ds.Concepts))

	for _, nc := range ds.Concepts {
		existing, err := d.GetConceptByName(ctx, nc.Name)
		if err != nil {
			return result, fmt.Errorf("looking up concept %q: %w", nc.Name, err)
		}
		if existing != nil {
			ids[nc.Name] = existing.ID
			continue
		}

		c, err := d.CreateConcept(ctx, nc)
		if err != nil {
			return result, fmt.Errorf("creating concept %q: %w", nc.Name, err)
		}
		ids[c.Name] = c.ID
		created[c.Name] = true
		result.Concepts++
	}

	for _, sr := range ds.Relationships {
		if !created[sr.Source] && !created[sr.Target] {
			continue
		}

		source, okSource := ids[sr.Source]
		target, okTarget := ids[sr.Target]
		if !okSource || !okTarget {
			return result, fmt.Errorf("relationship %q -> %q references an unknown concept", sr.Source, sr.Target)
		}

		_, err := d.CreateConceptRelationship(ctx, knowledge.NewConceptRelationship{
			SourceID:         source,
			TargetID:         target,
			RelationshipType: sr.Type,
			Strength:         sr.Strength,
		})
		if err != nil {
			return result, fmt.Errorf("creating relationship %q -> %q: %w", sr.Source, sr.Target, err)
		}
		result.Relationships++
	}

	return result, nil
}
