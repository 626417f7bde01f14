package knowledge

import (
	"fmt"
	"time"
)

// RelationshipType is the kind of a directed edge between two concepts.
type RelationshipType string

const (
	// RelationshipPrerequisite points from the prerequisite concept (source)
	// to the concept that depends on it (target).
	RelationshipPrerequisite RelationshipType = "prerequisite"

	// RelationshipRelated marks two concepts as related. Direction carries no meaning.
	RelationshipRelated RelationshipType = "related"
)

const (
	MinStrength = 1
	MaxStrength = 10
)

// Valid reports whether t is a known relationship type.
func (t RelationshipType) Valid() bool {
	return t == RelationshipPrerequisite || t == RelationshipRelated
}

// ConceptRelationship is a directed, typed, weighted edge. Immutable once created.
type ConceptRelationship struct {
	ID               int64            `json:"id"`
	SourceID         int64            `json:"sourceId"`
	TargetID         int64            `json:"targetId"`
	RelationshipType RelationshipType `json:"relationshipType"`
	Strength         int              `json:"strength"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Touches reports whether the edge has conceptID as either endpoint.
func (r ConceptRelationship) Touches(conceptID int64) bool {
	return r.SourceID == conceptID || r.TargetID == conceptID
}

// Other returns the endpoint opposite conceptID.
func (r ConceptRelationship) Other(conceptID int64) int64 {
	if r.SourceID == conceptID {
		return r.TargetID
	}
	return r.SourceID
}

// NewConceptRelationship is the input for creating a relationship.
type NewConceptRelationship struct {
	SourceID         int64            `json:"sourceId"`
	TargetID         int64            `json:"targetId"`
	RelationshipType RelationshipType `json:"relationshipType"`
	Strength         int              `json:"strength"`
}

// Validate checks the edge invariants that do not need the store.
// Concept existence is checked by the store.
func (r NewConceptRelationship) Validate() error {
	if r.SourceID <= 0 {
		return &ValidationError{Field: "sourceId", Reason: "must reference a concept"}
	}
	if r.TargetID <= 0 {
		return &ValidationError{Field: "targetId", Reason: "must reference a concept"}
	}
	if !r.RelationshipType.Valid() {
		return &ValidationError{Field: "relationshipType", Reason: fmt.Sprintf("unknown relationship type %q", r.RelationshipType)}
	}
	if r.Strength < MinStrength || r.Strength > MaxStrength {
		return &ValidationError{Field: "strength", Reason: fmt.Sprintf("must be between %d and %d", MinStrength, MaxStrength)}
	}
	return nil
}

// Build returns the relationship that results from storing r with the given id.
func (r NewConceptRelationship) Build(id int64, createdAt time.Time) ConceptRelationship {
	return ConceptRelationship{
		ID:               id,
		SourceID:         r.SourceID,
		TargetID:         r.TargetID,
		RelationshipType: r.RelationshipType,
		Strength:         r.Strength,
		CreatedAt:        createdAt,
	}
}
