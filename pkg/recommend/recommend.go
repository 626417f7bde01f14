// Package recommend ranks the concepts a user can learn next.
package recommend

import (
	"fmt"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

// MaxRecommendations caps the output of Recommend.
const MaxRecommendations = 5

// ReasonReady is the reason of a candidate with no related learned concept.
const ReasonReady = "Ready to learn"

// Recommendation is a concept the user can learn next and why.
type Recommendation struct {
	Concept knowledge.Concept `json:"concept"`
	Reason  string            `json:"reason"`
}

// Recommend returns up to MaxRecommendations unlearned concepts whose
// prerequisites are all in learned.
//
// Candidates keep the order of concepts, except that candidates in a domain
// where the user has learned something come first. The result depends only on
// its inputs and their order.
func Recommend(concepts []knowledge.Concept, relationships []knowledge.ConceptRelationship, learned map[int64]bool) []Recommendation {
	names := make(map[int64]string, len(concepts))
	learnedDomains := make(map[string]bool)
	for _, c := range concepts {
		names[c.ID] = c.Name
		if learned[c.ID] {
			learnedDomains[c.Domain] = true
		}
	}

	prereqs := make(map[int64][]int64)
	for _, r := range relationships {
		if r.RelationshipType == knowledge.RelationshipPrerequisite {
			prereqs[r.TargetID] = append(prereqs[r.TargetID], r.SourceID)
		}
	}

	var familiar, fresh []Recommendation
	for _, c := range concepts {
		if learned[c.ID] || !satisfied(prereqs[c.ID], learned) {
			continue
		}

		rec := Recommendation{Concept: c, Reason: reason(c.ID, relationships, learned, names)}
		if learnedDomains[c.Domain] {
			familiar = append(familiar, rec)
		} else {
			fresh = append(fresh, rec)
		}
	}

	out := make([]Recommendation, 0, MaxRecommendations)
	out = append(out, familiar...)
	out = append(out, fresh...)
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func satisfied(prereqs []int64, learned map[int64]bool) bool {
	for _, id := range prereqs {
		if !learned[id] {
			return false
		}
	}
	return true
}

// reason names the first learned concept linked to id by a related edge.
func reason(id int64, relationships []knowledge.ConceptRelationship, learned map[int64]bool, names map[int64]string) string {
	for _, r := range relationships {
		if r.RelationshipType != knowledge.RelationshipRelated || !r.Touches(id) {
			continue
		}
		other := r.Other(id)
		if other == id || !learned[other] {
			continue
		}
		if name, ok := names[other]; ok {
			return fmt.Sprintf("Connected to your %s knowledge", name)
		}
	}
	return ReasonReady
}
