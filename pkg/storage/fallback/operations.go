package fallback

import (
	"context"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// Users

func (d *Driver) GetUser(ctx context.Context, id int64) (*knowledge.User, error) {
	return do(ctx, d, "getUser", func(s storage.Driver) (*knowledge.User, error) {
		return s.GetUser(ctx, id)
	})
}

func (d *Driver) GetUserByUsername(ctx context.Context, username string) (*knowledge.User, error) {
	return do(ctx, d, "getUserByUsername", func(s storage.Driver) (*knowledge.User, error) {
		return s.GetUserByUsername(ctx, username)
	})
}

func (d *Driver) CreateUser(ctx context.Context, u knowledge.NewUser) (*knowledge.User, error) {
	return do(ctx, d, "createUser", func(s storage.Driver) (*knowledge.User, error) {
		return s.CreateUser(ctx, u)
	})
}

// Concepts

func (d *Driver) GetConcept(ctx context.Context, id int64) (*knowledge.Concept, error) {
	return do(ctx, d, "getConcept", func(s storage.Driver) (*knowledge.Concept, error) {
		return s.GetConcept(ctx, id)
	})
}

func (d *Driver) GetConceptByName(ctx context.Context, name string) (*knowledge.Concept, error) {
	return do(ctx, d, "getConceptByName", func(s storage.Driver) (*knowledge.Concept, error) {
		return s.GetConceptByName(ctx, name)
	})
}

func (d *Driver) GetConcepts(ctx context.Context) ([]knowledge.Concept, error) {
	return do(ctx, d, "getConcepts", func(s storage.Driver) ([]knowledge.Concept, error) {
		return s.GetConcepts(ctx)
	})
}

func (d *Driver) GetConceptsByDomain(ctx context.Context, domain string) ([]knowledge.Concept, error) {
	return do(ctx, d, "getConceptsByDomain", func(s storage.Driver) ([]knowledge.Concept, error) {
		return s.GetConceptsByDomain(ctx, domain)
	})
}

func (d *Driver) SearchConcepts(ctx context.Context, query string) ([]knowledge.Concept, error) {
	return do(ctx, d, "searchConcepts", func(s storage.Driver) ([]knowledge.Concept, error) {
		return s.SearchConcepts(ctx, query)
	})
}

func (d *Driver) CreateConcept(ctx context.Context, c knowledge.NewConcept) (*knowledge.Concept, error) {
	return do(ctx, d, "createConcept", func(s storage.Driver) (*knowledge.Concept, error) {
		return s.CreateConcept(ctx, c)
	})
}

func (d *Driver) GetDomains(ctx context.Context) ([]string, error) {
	return do(ctx, d, "getDomains", func(s storage.Driver) ([]string, error) {
		return s.GetDomains(ctx)
	})
}

// Relationships

func (d *Driver) GetConceptRelationship(ctx context.Context, id int64) (*knowledge.ConceptRelationship, error) {
	return do(ctx, d, "getConceptRelationship", func(s storage.Driver) (*knowledge.ConceptRelationship, error) {
		return s.GetConceptRelationship(ctx, id)
	})
}

func (d *Driver) GetConceptRelationships(ctx context.Context, conceptID int64) ([]knowledge.ConceptRelationship, error) {
	return do(ctx, d, "getConceptRelationships", func(s storage.Driver) ([]knowledge.ConceptRelationship, error) {
		return s.GetConceptRelationships(ctx, conceptID)
	})
}

func (d *Driver) ListConceptRelationships(ctx context.Context) ([]knowledge.ConceptRelationship, error) {
	return do(ctx, d, "listConceptRelationships", func(s storage.Driver) ([]knowledge.ConceptRelationship, error) {
		return s.ListConceptRelationships(ctx)
	})
}

func (d *Driver) CreateConceptRelationship(ctx context.Context, r knowledge.NewConceptRelationship) (*knowledge.ConceptRelationship, error) {
	return do(ctx, d, "createConceptRelationship", func(s storage.Driver) (*knowledge.ConceptRelationship, error) {
		return s.CreateConceptRelationship(ctx, r)
	})
}

// Progress

func (d *Driver) GetUserProgress(ctx context.Context, userID int64) ([]knowledge.UserProgress, error) {
	return do(ctx, d, "getUserProgress", func(s storage.Driver) ([]knowledge.UserProgress, error) {
		return s.GetUserProgress(ctx, userID)
	})
}

func (d *Driver) GetUserProgressForConcept(ctx context.Context, userID, conceptID int64) (*knowledge.UserProgress, error) {
	return do(ctx, d, "getUserProgressForConcept", func(s storage.Driver) (*knowledge.UserProgress, error) {
		return s.GetUserProgressForConcept(ctx, userID, conceptID)
	})
}

func (d *Driver) CreateUserProgress(ctx context.Context, p knowledge.NewUserProgress) (*knowledge.UserProgress, error) {
	return do(ctx, d, "createUserProgress", func(s storage.Driver) (*knowledge.UserProgress, error) {
		return s.CreateUserProgress(ctx, p)
	})
}

// UpdateUserProgress is routed like every other call. A NotFoundError from the
// durable store is authoritative and is not retried against the in-memory store.
func (d *Driver) UpdateUserProgress(ctx context.Context, id int64, update knowledge.ProgressUpdate) (*knowledge.UserProgress, error) {
	return do(ctx, d, "updateUserProgress", func(s storage.Driver) (*knowledge.UserProgress, error) {
		return s.UpdateUserProgress(ctx, id, update)
	})
}

var _ storage.Driver = (*Driver)(nil)
