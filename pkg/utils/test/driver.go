package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// ErrInjected is returned by FlakyDriver when Fail is set.
var ErrInjected = errors.New("injected storage fault")

// FlakyDriver is a test storage driver that delegates to Inner and can be
// switched into failing every call. It records the operations it received.
type FlakyDriver struct {
	Inner storage.Driver

	// Fail causes every call to return Err (or ErrInjected) without
	// reaching Inner.
	Fail bool

	// FailOn fails only the named operations, e.g. "GetConcepts".
	FailOn map[string]bool

	// Err overrides the error returned on failure.
	Err error

	mu    sync.Mutex
	calls []string
}

// NewFlakyDriver creates a flaky driver around inner.
func NewFlakyDriver(inner storage.Driver) *FlakyDriver {
	return &FlakyDriver{
		Inner:  inner,
		FailOn: make(map[string]bool),
	}
}

// Calls returns the operations received so far.
func (f *FlakyDriver) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FlakyDriver) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, op)
	if !f.Fail && !f.FailOn[op] {
		return nil
	}
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

func (f *FlakyDriver) GetUser(ctx context.Context, id int64) (*knowledge.User, error) {
	if err := f.check("GetUser"); err != nil {
		return nil, err
	}
	return f.Inner.GetUser(ctx, id)
}

func (f *FlakyDriver) GetUserByUsername(ctx context.Context, username string) (*knowledge.User, error) {
	if err := f.check("GetUserByUsername"); err != nil {
		return nil, err
	}
	return f.Inner.GetUserByUsername(ctx, username)
}

func (f *FlakyDriver) CreateUser(ctx context.Context, u knowledge.NewUser) (*knowledge.User, error) {
	if err := f.check("CreateUser"); err != nil {
		return nil, err
	}
	return f.Inner.CreateUser(ctx, u)
}

func (f *FlakyDriver) GetConcept(ctx context.Context, id int64) (*knowledge.Concept, error) {
	if err := f.check("GetConcept"); err != nil {
		return nil, err
	}
	return f.Inner.GetConcept(ctx, id)
}

func (f *FlakyDriver) GetConceptByName(ctx context.Context, name string) (*knowledge.Concept, error) {
	if err := f.check("GetConceptByName"); err != nil {
		return nil, err
	}
	return f.Inner.GetConceptByName(ctx, name)
}

func (f *FlakyDriver) GetConcepts(ctx context.Context) ([]knowledge.Concept, error) {
	if err := f.check("GetConcepts"); err != nil {
		return nil, err
	}
	return f.Inner.GetConcepts(ctx)
}

func (f *FlakyDriver) GetConceptsByDomain(ctx context.Context, domain string) ([]knowledge.Concept, error) {
	if err := f.check("GetConceptsByDomain"); err != nil {
		return nil, err
	}
	return f.Inner.GetConceptsByDomain(ctx, domain)
}

func (f *FlakyDriver) SearchConcepts(ctx context.Context, query string) ([]knowledge.Concept, error) {
	if err := f.check("SearchConcepts"); err != nil {
		return nil, err
	}
	return f.Inner.SearchConcepts(ctx, query)
}

func (f *FlakyDriver) CreateConcept(ctx context.Context, c knowledge.NewConcept) (*knowledge.Concept, error) {
	if err := f.check("CreateConcept"); err != nil {
		return nil, err
	}
	return f.Inner.CreateConcept(ctx, c)
}

func (f *FlakyDriver) GetDomains(ctx context.Context) ([]string, error) {
	if err := f.check("GetDomains"); err != nil {
		return nil, err
	}
	return f.Inner.GetDomains(ctx)
}

func (f *FlakyDriver) GetConceptRelationship(ctx context.Context, id int64) (*knowledge.ConceptRelationship, error) {
	if err := f.check("GetConceptRelationship"); err != nil {
		return nil, err
	}
	return f.Inner.GetConceptRelationship(ctx, id)
}

func (f *FlakyDriver) GetConceptRelationships(ctx context.Context, conceptID int64) ([]knowledge.ConceptRelationship, error) {
	if err := f.check("GetConceptRelationships"); err != nil {
		return nil, err
	}
	return f.Inner.GetConceptRelationships(ctx, conceptID)
}

func (f *FlakyDriver) ListConceptRelationships(ctx context.Context) ([]knowledge.ConceptRelationship, error) {
	if err := f.check("ListConceptRelationships"); err != nil {
		return nil, err
	}
	return f.Inner.ListConceptRelationships(ctx)
}

func (f *FlakyDriver) CreateConceptRelationship(ctx context.Context, r knowledge.NewConceptRelationship) (*knowledge.ConceptRelationship, error) {
	if err := f.check("CreateConceptRelationship"); err != nil {
		return nil, err
	}
	return f.Inner.CreateConceptRelationship(ctx, r)
}

func (f *FlakyDriver) GetUserProgress(ctx context.Context, userID int64) ([]knowledge.UserProgress, error) {
	if err := f.check("GetUserProgress"); err != nil {
		return nil, err
	}
	return f.Inner.GetUserProgress(ctx, userID)
}

func (f *FlakyDriver) GetUserProgressForConcept(ctx context.Context, userID, conceptID int64) (*knowledge.UserProgress, error) {
	if err := f.check("GetUserProgressForConcept"); err != nil {
		return nil, err
	}
	return f.Inner.GetUserProgressForConcept(ctx, userID, conceptID)
}

func (f *FlakyDriver) CreateUserProgress(ctx context.Context, p knowledge.NewUserProgress) (*knowledge.UserProgress, error) {
	if err := f.check("CreateUserProgress"); err != nil {
		return nil, err
	}
	return f.Inner.CreateUserProgress(ctx, p)
}

func (f *FlakyDriver) UpdateUserProgress(ctx context.Context, id int64, update knowledge.ProgressUpdate) (*knowledge.UserProgress, error) {
	if err := f.check("UpdateUserProgress"); err != nil {
		return nil, err
	}
	return f.Inner.UpdateUserProgress(ctx, id, update)
}

func (f *FlakyDriver) GetKnowledgeGraph(ctx context.Context) (*knowledge.KnowledgeGraph, error) {
	if err := f.check("GetKnowledgeGraph"); err != nil {
		return nil, err
	}
	return f.Inner.GetKnowledgeGraph(ctx)
}

func (f *FlakyDriver) Close() error {
	return f.Inner.Close()
}
