package knowledge

import "time"

// UserProgress is the learned state of one concept for one user.
// At most one row exists per (UserID, ConceptID).
type UserProgress struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	ConceptID int64      `json:"conceptId"`
	IsLearned bool       `json:"isLearned"`
	LearnedAt *time.Time `json:"learnedAt"`
}

// NewUserProgress is the input for creating (or upserting) progress.
type NewUserProgress struct {
	UserID    int64      `json:"userId"`
	ConceptID int64      `json:"conceptId"`
	IsLearned bool       `json:"isLearned"`
	LearnedAt *time.Time `json:"learnedAt,omitempty"`
}

// Validate checks the foreign keys are set. Existence is checked by the store.
func (p NewUserProgress) Validate() error {
	if p.UserID <= 0 {
		return &ValidationError{Field: "userId", Reason: "must reference a user"}
	}
	if p.ConceptID <= 0 {
		return &ValidationError{Field: "conceptId", Reason: "must reference a concept"}
	}
	return nil
}

// ProgressUpdate is a partial update. Nil fields are left unchanged.
type ProgressUpdate struct {
	IsLearned *bool      `json:"isLearned,omitempty"`
	LearnedAt *time.Time `json:"learnedAt,omitempty"`
}

// Apply returns p with the update applied at time now.
//
// LearnedAt is only stamped when IsLearned transitions from false to true and
// is cleared when it transitions back. Re-marking a learned concept keeps the
// original timestamp unless the update carries one explicitly.
func (u ProgressUpdate) Apply(p UserProgress, now time.Time) UserProgress {
	if u.IsLearned != nil {
		switch {
		case *u.IsLearned && !p.IsLearned:
			at := now
			if u.LearnedAt != nil {
				at = *u.LearnedAt
			}
			p.LearnedAt = &at
		case !*u.IsLearned:
			p.LearnedAt = nil
		}
		p.IsLearned = *u.IsLearned
	}

	if u.LearnedAt != nil && p.IsLearned {
		at := *u.LearnedAt
		p.LearnedAt = &at
	}

	return p
}

// Build returns the progress row that results from inserting p.
func (p NewUserProgress) Build(id int64, now time.Time) UserProgress {
	learned := p.IsLearned
	return ProgressUpdate{IsLearned: &learned, LearnedAt: p.LearnedAt}.Apply(UserProgress{
		ID:        id,
		UserID:    p.UserID,
		ConceptID: p.ConceptID,
	}, now)
}

// LearnedSet returns the ids of the learned concepts in rows.
func LearnedSet(rows []UserProgress) map[int64]bool {
	learned := make(map[int64]bool, len(rows))
	for _, p := range rows {
		if p.IsLearned {
			learned[p.ConceptID] = true
		}
	}
	return learned
}
