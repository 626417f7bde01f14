// Package inmemory provides the deterministic, always-available storage
// driver. It is the default backend when no durable store is configured and
// the fallback target of the fallback driver.
package inmemory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// Driver implements storage.Driver with in-process slices. Ids are assigned
// per entity type starting at 1 and records are never deleted, so a record
// with id n lives at index n-1.
type Driver struct {
	// mu guards every slice below. Each method holds it for its whole body,
	// which makes single operations atomic.
	mu sync.RWMutex

	users         []knowledge.User
	concepts      []knowledge.Concept
	relationships []knowledge.ConceptRelationship
	progress      []knowledge.UserProgress

	now  func() time.Time
	seed bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithoutSeed starts the driver empty instead of loading the seed dataset.
func WithoutSeed() Option {
	return func(d *Driver) {
		d.seed = false
	}
}

// NewDriver creates an in-memory driver pre-populated with
// knowledge.SeedDataset unless WithoutSeed is given.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		now:  time.Now,
		seed: true,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.seed {
		d.load(knowledge.SeedDataset())
	}

	return d
}

// load inserts a dataset stamped with knowledge.SeedTime. Relationships whose
// endpoints are unknown are skipped.
func (d *Driver) load(ds knowledge.Dataset) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make(map[string]int64, len(ds.Concepts))
	for _, c := range ds.Concepts {
		concept := c.Build(int64(len(d.concepts)+1), knowledge.SeedTime)
		d.concepts = append(d.concepts, concept)
		ids[concept.Name] = concept.ID
	}

	for _, r := range ds.Relationships {
		source, okSource := ids[r.Source]
		target, okTarget := ids[r.Target]
		if !okSource || !okTarget {
			continue
		}

		rel := knowledge.NewConceptRelationship{
			SourceID:         source,
			TargetID:         target,
			RelationshipType: r.Type,
			Strength:         r.Strength,
		}
		d.relationships = append(d.relationships, rel.Build(int64(len(d.relationships)+1), knowledge.SeedTime))
	}
}

// GetUser retrieves a user by id.
func (d *Driver) GetUser(_ context.Context, id int64) (*knowledge.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if id < 1 || id > int64(len(d.users)) {
		return nil, nil
	}
	u := d.users[id-1]
	return &u, nil
}

// GetUserByUsername retrieves a user by exact username.
func (d *Driver) GetUserByUsername(_ context.Context, username string) (*knowledge.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// CreateUser stores a new user. Usernames are unique.
func (d *Driver) CreateUser(_ context.Context, nu knowledge.NewUser) (*knowledge.User, error) {
	if err := nu.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Username == nu.Username {
			return nil, storage.ConflictError{Entity: "user", Field: "username", Value: nu.Username}
		}
	}

	u := nu.Build(int64(len(d.users)+1), d.now())
	d.users = append(d.users, u)
	return &u, nil
}

// GetConcept retrieves a concept by id.
func (d *Driver) GetConcept(_ context.Context, id int64) (*knowledge.Concept, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.concept(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// concept must be called with mu held.
func (d *Driver) concept(id int64) (knowledge.Concept, bool) {
	if id < 1 || id > int64(len(d.concepts)) {
		return knowledge.Concept{}, false
	}
	return d.concepts[id-1], true
}

// GetConceptByName retrieves a concept by exact name.
func (d *Driver) GetConceptByName(_ context.Context, name string) (*knowledge.Concept, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.concepts {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

// GetConcepts returns all concepts in id order.
func (d *Driver) GetConcepts(_ context.Context) ([]knowledge.Concept, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]knowledge.Concept{}, d.concepts...), nil
}

// GetConceptsByDomain returns the concepts of one domain in id order.
func (d *Driver) GetConceptsByDomain(_ context.Context, domain string) ([]knowledge.Concept, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := []knowledge.Concept{}
	for _, c := range d.concepts {
		if c.Domain == domain {
			result = append(result, c)
		}
	}
	return result, nil
}

// SearchConcepts returns concepts whose name contains query, ignoring case.
func (d *Driver) SearchConcepts(_ context.Context, query string) ([]knowledge.Concept, error) {
	result := []knowledge.Concept{}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return result, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.concepts {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			result = append(result, c)
		}
	}
	return result, nil
}

// CreateConcept stores a new concept. Names are unique.
func (d *Driver) CreateConcept(_ context.Context, nc knowledge.NewConcept) (*knowledge.Concept, error) {
	if err := nc.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.concepts {
		if c.Name == nc.Name {
			return nil, storage.ConflictError{Entity: "concept", Field: "name", Value: nc.Name}
		}
	}

	c := nc.Build(int64(len(d.concepts)+1), d.now())
	d.concepts = append(d.concepts, c)
	return &c, nil
}

// GetConceptRelationship retrieves a relationship by id.
func (d *Driver) GetConceptRelationship(_ context.Context, id int64) (*knowledge.ConceptRelationship, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if id < 1 || id > int64(len(d.relationships)) {
		return nil, nil
	}
	r := d.relationships[id-1]
	return &r, nil
}

// GetConceptRelationships returns every edge with conceptID at either end.
func (d *Driver) GetConceptRelationships(_ context.Context, conceptID int64) ([]knowledge.ConceptRelationship, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := []knowledge.ConceptRelationship{}
	for _, r := range d.relationships {
		if r.Touches(conceptID) {
			result = append(result, r)
		}
	}
	return result, nil
}

// ListConceptRelationships returns every edge in id order.
func (d *Driver) ListConceptRelationships(_ context.Context) ([]knowledge.ConceptRelationship, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]knowledge.ConceptRelationship{}, d.relationships...), nil
}

// CreateConceptRelationship stores a new edge between two existing concepts.
func (d *Driver) CreateConceptRelationship(_ context.Context, nr knowledge.NewConceptRelationship) (*knowledge.ConceptRelationship, error) {
	if err := nr.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.concept(nr.SourceID); !ok {
		return nil, &knowledge.ValidationError{Field: "sourceId", Reason: "concept does not exist"}
	}
	if _, ok := d.concept(nr.TargetID); !ok {
		return nil, &knowledge.ValidationError{Field: "targetId", Reason: "concept does not exist"}
	}

	r := nr.Build(int64(len(d.relationships)+1), d.now())
	d.relationships = append(d.relationships, r)
	return &r, nil
}

// GetUserProgress returns every progress row of a user in id order.
func (d *Driver) GetUserProgress(_ context.Context, userID int64) ([]knowledge.UserProgress, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := []knowledge.UserProgress{}
	for _, p := range d.progress {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

// GetUserProgressForConcept returns the progress row for (userID, conceptID).
func (d *Driver) GetUserProgressForConcept(_ context.Context, userID, conceptID int64) (*knowledge.UserProgress, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i := d.progressIndex(userID, conceptID)
	if i < 0 {
		return nil, nil
	}
	p := d.progress[i]
	return &p, nil
}

// progressIndex must be called with mu held.
func (d *Driver) progressIndex(userID, conceptID int64) int {
	return slices.IndexFunc(d.progress, func(p knowledge.UserProgress) bool {
		return p.UserID == userID && p.ConceptID == conceptID
	})
}

// CreateUserProgress inserts the row for (UserID, ConceptID), or updates the
// existing one so the pair stays unique. The concept must exist. Users are
// not checked: when this driver serves as a fallback, users live in the
// durable store.
func (d *Driver) CreateUserProgress(_ context.Context, np knowledge.NewUserProgress) (*knowledge.UserProgress, error) {
	if err := np.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.concept(np.ConceptID); !ok {
		return nil, &knowledge.ValidationError{Field: "conceptId", Reason: "concept does not exist"}
	}

	if i := d.progressIndex(np.UserID, np.ConceptID); i >= 0 {
		update := knowledge.ProgressUpdate{IsLearned: &np.IsLearned, LearnedAt: np.LearnedAt}
		d.progress[i] = update.Apply(d.progress[i], d.now())
		p := d.progress[i]
		return &p, nil
	}

	p := np.Build(int64(len(d.progress)+1), d.now())
	d.progress = append(d.progress, p)
	return &p, nil
}

// UpdateUserProgress applies a partial update to an existing row.
func (d *Driver) UpdateUserProgress(_ context.Context, id int64, update knowledge.ProgressUpdate) (*knowledge.UserProgress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id < 1 || id > int64(len(d.progress)) {
		return nil, storage.NotFoundError{Entity: "user progress", ID: id}
	}

	d.progress[id-1] = update.Apply(d.progress[id-1], d.now())
	p := d.progress[id-1]
	return &p, nil
}

// GetDomains returns the distinct concept domains, sorted.
func (d *Driver) GetDomains(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	domains := []string{}
	for _, c := range d.concepts {
		if !slices.Contains(domains, c.Domain) {
			domains = append(domains, c.Domain)
		}
	}
	slices.Sort(domains)
	return domains, nil
}

// GetKnowledgeGraph returns all concepts and all edges.
func (d *Driver) GetKnowledgeGraph(_ context.Context) (*knowledge.KnowledgeGraph, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return knowledge.NewKnowledgeGraph(slices.Clone(d.concepts), d.relationships), nil
}

// Close is a no-op for the in-memory driver.
func (d *Driver) Close() error {
	return nil
}
