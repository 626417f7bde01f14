// Package connections classifies the neighbors of a concept by the kind of
// edge that links them.
package connections

import (
	"context"
	"fmt"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// Connections are the resolved neighbors of a concept. Each list follows
// relationship retrieval order and is never nil.
type Connections struct {
	// Prerequisites must be learned before the concept.
	Prerequisites []knowledge.Concept `json:"prerequisites"`

	// Related are linked by a related edge in either direction.
	Related []knowledge.Concept `json:"related"`

	// Dependents list the concept as one of their prerequisites.
	Dependents []knowledge.Concept `json:"dependents"`
}

// Classify fetches every relationship touching conceptID and sorts the
// neighbors it can resolve into prerequisites, related concepts and
// dependents. A neighbor appears in more than one list when distinct edges
// justify it.
func Classify(ctx context.Context, store storage.Driver, conceptID int64) (*Connections, error) {
	rels, err := store.GetConceptRelationships(ctx, conceptID)
	if err != nil {
		return nil, fmt.Errorf("getting relationships of concept %d: %w", conceptID, err)
	}

	resolved, err := resolve(ctx, store, neighbors(rels, conceptID))
	if err != nil {
		return nil, err
	}

	return partition(rels, conceptID, resolved), nil
}

// neighbors returns the distinct ids at the other end of rels, in first-seen order.
func neighbors(rels []knowledge.ConceptRelationship, conceptID int64) []int64 {
	seen := make(map[int64]bool, len(rels))
	ids := make([]int64, 0, len(rels))
	for _, r := range rels {
		if !r.Touches(conceptID) {
			continue
		}
		n := r.Other(conceptID)
		if n == conceptID || seen[n] {
			continue
		}
		seen[n] = true
		ids = append(ids, n)
	}
	return ids
}

// resolve looks up each id. Ids without a concept are skipped.
func resolve(ctx context.Context, store storage.Driver, ids []int64) (map[int64]knowledge.Concept, error) {
	resolved := make(map[int64]knowledge.Concept, len(ids))
	for _, id := range ids {
		c, err := store.GetConcept(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("getting concept %d: %w", id, err)
		}
		if c != nil {
			resolved[id] = *c
		}
	}
	return resolved, nil
}

func partition(rels []knowledge.ConceptRelationship, conceptID int64, resolved map[int64]knowledge.Concept) *Connections {
	out := &Connections{
		Prerequisites: []knowledge.Concept{},
		Related:       []knowledge.Concept{},
		Dependents:    []knowledge.Concept{},
	}

	var (
		isPrereq    = map[int64]bool{}
		isRelated   = map[int64]bool{}
		isDependent = map[int64]bool{}
	)

	add := func(list *[]knowledge.Concept, marks map[int64]bool, id int64) {
		c, ok := resolved[id]
		if !ok || marks[id] {
			return
		}
		marks[id] = true
		*list = append(*list, c)
	}

	for _, r := range rels {
		switch {
		case r.RelationshipType == knowledge.RelationshipPrerequisite && r.TargetID == conceptID:
			add(&out.Prerequisites, isPrereq, r.SourceID)
		case r.RelationshipType == knowledge.RelationshipPrerequisite && r.SourceID == conceptID:
			add(&out.Dependents, isDependent, r.TargetID)
		case r.RelationshipType == knowledge.RelationshipRelated && r.Touches(conceptID):
			add(&out.Related, isRelated, r.Other(conceptID))
		}
	}

	return out
}
