// Package knowledge defines the entities of the concept graph: concepts, the
// directed relationships between them, and per-user learning progress.
package knowledge

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the coarse level of a concept.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty parses a difficulty case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown difficulty %q", s)}
	}
	return d, nil
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Concept is a unit of learnable knowledge. Concepts are immutable once created.
type Concept struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Domain      string     `json:"domain"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewConcept is the input for creating a concept. The store assigns ID and CreatedAt.
type NewConcept struct {
	Name        string     `json:"name"`
	Domain      string     `json:"domain"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
}

// Validate checks the invariants of a concept before it is stored.
// Difficulty is normalized to lower case.
func (c *NewConcept) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Domain) == "" {
		return &ValidationError{Field: "domain", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}

	d, err := ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return err
	}
	c.Difficulty = d

	return nil
}

// Build returns the concept that results from storing c with the given id.
func (c NewConcept) Build(id int64, createdAt time.Time) Concept {
	return Concept{
		ID:          id,
		Name:        c.Name,
		Domain:      c.Domain,
		Difficulty:  c.Difficulty,
		Description: c.Description,
		CreatedAt:   createdAt,
	}
}
