// Package storage defines the storage façade for the concept graph.
//
// Every component above the storage layer depends on [Driver] only. Concrete
// backends live in subpackages: inmemory (the deterministic, always-available
// store), sqldriver with its postgres and sqlite dialects (the durable store),
// and fallback, which wraps a durable driver and re-issues failed calls
// against the in-memory store.
package storage

import (
	"context"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

// Driver is the storage façade. Single-record lookups return (nil, nil) when
// the record does not exist.
type Driver interface {
	UserStore
	ConceptStore
	RelationshipStore
	ProgressStore

	// GetDomains returns the distinct concept domains, sorted.
	GetDomains(ctx context.Context) ([]string, error)

	// GetKnowledgeGraph returns every concept and every relationship as links
	// between concept ids.
	GetKnowledgeGraph(ctx context.Context) (*knowledge.KnowledgeGraph, error)

	// Close releases any resources held by the driver.
	Close() error
}

// UserStore persists users.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*knowledge.User, error)
	GetUserByUsername(ctx context.Context, username string) (*knowledge.User, error)
	CreateUser(ctx context.Context, u knowledge.NewUser) (*knowledge.User, error)
}

// ConceptStore persists concepts. Concepts are never updated or deleted.
type ConceptStore interface {
	GetConcept(ctx context.Context, id int64) (*knowledge.Concept, error)
	GetConceptByName(ctx context.Context, name string) (*knowledge.Concept, error)

	// GetConcepts returns all concepts in id order.
	GetConcepts(ctx context.Context) ([]knowledge.Concept, error)

	GetConceptsByDomain(ctx context.Context, domain string) ([]knowledge.Concept, error)

	// SearchConcepts matches query as a case-insensitive substring of the
	// concept name. An empty query matches nothing.
	SearchConcepts(ctx context.Context, query string) ([]knowledge.Concept, error)

	CreateConcept(ctx context.Context, c knowledge.NewConcept) (*knowledge.Concept, error)
}

// RelationshipStore persists relationships between concepts.
type RelationshipStore interface {
	GetConceptRelationship(ctx context.Context, id int64) (*knowledge.ConceptRelationship, error)

	// GetConceptRelationships returns every edge where conceptID is the source
	// or the target, in id order.
	GetConceptRelationships(ctx context.Context, conceptID int64) ([]knowledge.ConceptRelationship, error)

	// ListConceptRelationships returns every edge in id order.
	ListConceptRelationships(ctx context.Context) ([]knowledge.ConceptRelationship, error)

	CreateConceptRelationship(ctx context.Context, r knowledge.NewConceptRelationship) (*knowledge.ConceptRelationship, error)
}

// ProgressStore persists per-user learning progress.
type ProgressStore interface {
	GetUserProgress(ctx context.Context, userID int64) ([]knowledge.UserProgress, error)
	GetUserProgressForConcept(ctx context.Context, userID, conceptID int64) (*knowledge.UserProgress, error)

	// CreateUserProgress upserts the row for (UserID, ConceptID).
	CreateUserProgress(ctx context.Context, p knowledge.NewUserProgress) (*knowledge.UserProgress, error)

	// UpdateUserProgress applies a partial update. It returns NotFoundError
	// when no row has the given id and never creates one.
	UpdateUserProgress(ctx context.Context, id int64, update knowledge.ProgressUpdate) (*knowledge.UserProgress, error)
}
