package sqldriver

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

var progressColumns = []string{"id", "user_id", "concept_id", "is_learned", "learned_at"}

func scanProgress(s scanner) (knowledge.UserProgress, error) {
	var (
		p         knowledge.UserProgress
		learnedAt sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.ConceptID, &p.IsLearned, &learnedAt); err != nil {
		return p, err
	}
	if learnedAt.Valid {
		at := learnedAt.Time
		p.LearnedAt = &at
	}
	return p, nil
}

func (d *Driver) selectProgress() *entsql.Selector {
	return d.builder().Select(progressColumns...).From(entsql.Table(tableProgress))
}

func (d *Driver) selectProgressPair(userID, conceptID int64) *entsql.Selector {
	return d.selectProgress().Where(entsql.And(
		entsql.EQ("user_id", userID),
		entsql.EQ("concept_id", conceptID),
	))
}

// GetUserProgress returns every progress row of a user in id order.
func (d *Driver) GetUserProgress(ctx context.Context, userID int64) ([]knowledge.UserProgress, error) {
	return queryAll(ctx, d.DB, d.selectProgress().Where(entsql.EQ("user_id", userID)).OrderBy("id"), scanProgress)
}

// GetUserProgressForConcept returns the progress row for (userID, conceptID).
func (d *Driver) GetUserProgressForConcept(ctx context.Context, userID, conceptID int64) (*knowledge.UserProgress, error) {
	return queryOne(ctx, d.DB, d.selectProgressPair(userID, conceptID), scanProgress)
}

// CreateUserProgress inserts the row for (UserID, ConceptID). When the pair
// already exists, the insert is skipped by the unique index and the existing
// row is updated instead.
func (d *Driver) CreateUserProgress(ctx context.Context, np knowledge.NewUserProgress) (*knowledge.UserProgress, error) {
	if err := np.Validate(); err != nil {
		return nil, err
	}

	initial := np.Build(0, d.timestamp())

	query, args := d.builder().Insert(tableProgress).
		Columns("user_id", "concept_id", "is_learned", "learned_at").
		Values(initial.UserID, initial.ConceptID, initial.IsLearned, initial.LearnedAt).
		OnConflict(
			entsql.ConflictColumns("user_id", "concept_id"),
			entsql.DoNothing(),
		).
		Query()

	res, err := d.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, d.constraintError(err, "inserting user progress", nil,
			&knowledge.ValidationError{Field: "userId", Reason: "user or concept does not exist"})
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading affected rows: %w", err)
	}

	if inserted == 1 {
		p, err := d.GetUserProgressForConcept(ctx, np.UserID, np.ConceptID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("inserted user progress for user %d concept %d not found", np.UserID, np.ConceptID)
		}
		return p, nil
	}

	update := knowledge.ProgressUpdate{IsLearned: &np.IsLearned, LearnedAt: np.LearnedAt}
	return d.updateWhere(ctx, d.selectProgressPair(np.UserID, np.ConceptID), update, func() error {
		return fmt.Errorf("user progress for user %d concept %d vanished during upsert", np.UserID, np.ConceptID)
	})
}

// UpdateUserProgress applies a partial update to an existing row.
func (d *Driver) UpdateUserProgress(ctx context.Context, id int64, update knowledge.ProgressUpdate) (*knowledge.UserProgress, error) {
	return d.updateWhere(ctx, d.selectProgress().Where(entsql.EQ("id", id)), update, func() error {
		return storage.NotFoundError{Entity: "user progress", ID: id}
	})
}

// updateWhere loads the row matched by sel, applies update and writes it
// back in one transaction. missing builds the error returned when no row matches.
func (d *Driver) updateWhere(ctx context.Context, sel *entsql.Selector, update knowledge.ProgressUpdate, missing func() error) (*knowledge.UserProgress, error) {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	existing, err := queryOne(ctx, tx, sel, scanProgress)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, missing()
	}

	p := update.Apply(*existing, d.timestamp())

	ub := d.builder().Update(tableProgress).
		Set("is_learned", p.IsLearned).
		Where(entsql.EQ("id", p.ID))
	if p.LearnedAt != nil {
		ub.Set("learned_at", *p.LearnedAt)
	} else {
		ub.SetNull("learned_at")
	}

	query, args := ub.Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("updating user progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing user progress: %w", err)
	}

	return &p, nil
}
