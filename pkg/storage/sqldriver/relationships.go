package sqldriver

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

var relationshipColumns = []string{"id", "source_id", "target_id", "relationship_type", "strength", "created_at"}

func scanRelationship(s scanner) (knowledge.ConceptRelationship, error) {
	var (
		r   knowledge.ConceptRelationship
		typ string
	)
	err := s.Scan(&r.ID, &r.SourceID, &r.TargetID, &typ, &r.Strength, &r.CreatedAt)
	r.RelationshipType = knowledge.RelationshipType(typ)
	return r, err
}

func (d *Driver) selectRelationships() *entsql.Selector {
	return d.builder().Select(relationshipColumns...).From(entsql.Table(tableRelationships))
}

// GetConceptRelationship retrieves a relationship by id.
func (d *Driver) GetConceptRelationship(ctx context.Context, id int64) (*knowledge.ConceptRelationship, error) {
	return queryOne(ctx, d.DB, d.selectRelationships().Where(entsql.EQ("id", id)), scanRelationship)
}

// GetConceptRelationships returns every edge with conceptID at either end.
func (d *Driver) GetConceptRelationships(ctx context.Context, conceptID int64) ([]knowledge.ConceptRelationship, error) {
	sel := d.selectRelationships().
		Where(entsql.Or(
			entsql.EQ("source_id", conceptID),
			entsql.EQ("target_id", conceptID),
		)).
		OrderBy("id")
	return queryAll(ctx, d.DB, sel, scanRelationship)
}

// ListConceptRelationships returns every edge in id order.
func (d *Driver) ListConceptRelationships(ctx context.Context) ([]knowledge.ConceptRelationship, error) {
	return queryAll(ctx, d.DB, d.selectRelationships().OrderBy("id"), scanRelationship)
}

// CreateConceptRelationship stores a new edge between two existing concepts.
func (d *Driver) CreateConceptRelationship(ctx context.Context, nr knowledge.NewConceptRelationship) (*knowledge.ConceptRelationship, error) {
	if err := nr.Validate(); err != nil {
		return nil, err
	}

	endpoints := []struct {
		field string
		id    int64
	}{
		{"sourceId", nr.SourceID},
		{"targetId", nr.TargetID},
	}
	for _, e := range endpoints {
		c, err := d.GetConcept(ctx, e.id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, &knowledge.ValidationError{Field: e.field, Reason: "concept does not exist"}
		}
	}

	createdAt := d.timestamp()
	ib := d.builder().Insert(tableRelationships).
		Columns("source_id", "target_id", "relationship_type", "strength", "created_at").
		Values(nr.SourceID, nr.TargetID, string(nr.RelationshipType), nr.Strength, createdAt)

	id, err := d.insert(ctx, d.DB, ib)
	if err != nil {
		return nil, d.constraintError(err, "inserting relationship", nil,
			&knowledge.ValidationError{Field: "sourceId", Reason: "concept does not exist"})
	}

	r := nr.Build(id, createdAt)
	return &r, nil
}
