package sqldriver

import (
	"context"
	"strings"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

var conceptColumns = []string{"id", "name", "domain", "difficulty", "description", "created_at"}

func scanConcept(s scanner) (knowledge.Concept, error) {
	var (
		c          knowledge.Concept
		difficulty string
	)
	err := s.Scan(&c.ID, &c.Name, &c.Domain, &difficulty, &c.Description, &c.CreatedAt)
	c.Difficulty = knowledge.Difficulty(difficulty)
	return c, err
}

func (d *Driver) selectConcepts() *entsql.Selector {
	return d.builder().Select(conceptColumns...).From(entsql.Table(tableConcepts))
}

// GetConcept retrieves a concept by id.
func (d *Driver) GetConcept(ctx context.Context, id int64) (*knowledge.Concept, error) {
	return queryOne(ctx, d.DB, d.selectConcepts().Where(entsql.EQ("id", id)), scanConcept)
}

// GetConceptByName retrieves a concept by exact name.
func (d *Driver) GetConceptByName(ctx context.Context, name string) (*knowledge.Concept, error) {
	return queryOne(ctx, d.DB, d.selectConcepts().Where(entsql.EQ("name", name)), scanConcept)
}

// GetConcepts returns all concepts in id order.
func (d *Driver) GetConcepts(ctx context.Context) ([]knowledge.Concept, error) {
	return queryAll(ctx, d.DB, d.selectConcepts().OrderBy("id"), scanConcept)
}

// GetConceptsByDomain returns the concepts of one domain in id order.
func (d *Driver) GetConceptsByDomain(ctx context.Context, domain string) ([]knowledge.Concept, error) {
	return queryAll(ctx, d.DB, d.selectConcepts().Where(entsql.EQ("domain", domain)).OrderBy("id"), scanConcept)
}

// SearchConcepts returns concepts whose name contains query, ignoring case.
func (d *Driver) SearchConcepts(ctx context.Context, query string) ([]knowledge.Concept, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []knowledge.Concept{}, nil
	}
	return queryAll(ctx, d.DB, d.selectConcepts().Where(entsql.ContainsFold("name", query)).OrderBy("id"), scanConcept)
}

// CreateConcept stores a new concept. Names are unique.
func (d *Driver) CreateConcept(ctx context.Context, nc knowledge.NewConcept) (*knowledge.Concept, error) {
	if err := nc.Validate(); err != nil {
		return nil, err
	}

	conflict := storage.ConflictError{Entity: "concept", Field: "name", Value: nc.Name}

	existing, err := d.GetConceptByName(ctx, nc.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict
	}

	createdAt := d.timestamp()
	ib := d.builder().Insert(tableConcepts).
		Columns("name", "domain", "difficulty", "description", "created_at").
		Values(nc.Name, nc.Domain, string(nc.Difficulty), nc.Description, createdAt)

	id, err := d.insert(ctx, d.DB, ib)
	if err != nil {
		return nil, d.constraintError(err, "inserting concept", conflict, nil)
	}

	c := nc.Build(id, createdAt)
	return &c, nil
}

// GetDomains returns the distinct concept domains, sorted.
func (d *Driver) GetDomains(ctx context.Context) ([]string, error) {
	sel := d.builder().Select("domain").Distinct().From(entsql.Table(tableConcepts)).OrderBy("domain")
	return queryAll(ctx, d.DB, sel, func(s scanner) (string, error) {
		var domain string
		err := s.Scan(&domain)
		return domain, err
	})
}

// GetKnowledgeGraph returns all concepts and all edges.
func (d *Driver) GetKnowledgeGraph(ctx context.Context) (*knowledge.KnowledgeGraph, error) {
	concepts, err := d.GetConcepts(ctx)
	if err != nil {
		return nil, err
	}

	relationships, err := d.ListConceptRelationships(ctx)
	if err != nil {
		return nil, err
	}

	return knowledge.NewKnowledgeGraph(concepts, relationships), nil
}
