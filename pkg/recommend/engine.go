package recommend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

// Engine computes recommendations from a store. Nothing is cached: every
// call reloads the graph and the user's progress.
type Engine struct {
	store  storage.Driver
	logger *slog.Logger
}

// NewEngine creates an engine reading from store.
func NewEngine(store storage.Driver, logger *slog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// ForUser returns the recommendations of userID.
func (e *Engine) ForUser(ctx context.Context, userID int64) ([]Recommendation, error) {
	concepts, err := e.store.GetConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting concepts: %w", err)
	}

	relationships, err := e.store.ListConceptRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting relationships: %w", err)
	}

	progress, err := e.store.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting progress of user %d: %w", userID, err)
	}

	learned := knowledge.LearnedSet(progress)
	recs := Recommend(concepts, relationships, learned)

	e.logger.DebugContext(ctx, "computed recommendations",
		"user_id", userID,
		"learned", len(learned),
		"recommendations", len(recs),
	)

	return recs, nil
}
