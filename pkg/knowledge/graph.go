package knowledge

// GraphLink is a relationship as consumed by the layout component.
// Source and Target are concept ids.
type GraphLink struct {
	Source   int64  `json:"source"`
	Target   int64  `json:"target"`
	Type     string `json:"type"`
	Strength int    `json:"strength"`
}

// KnowledgeGraph is the full concept graph.
type KnowledgeGraph struct {
	Nodes []Concept   `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// NewKnowledgeGraph assembles a graph from concepts and relationships.
func NewKnowledgeGraph(concepts []Concept, relationships []ConceptRelationship) *KnowledgeGraph {
	g := &KnowledgeGraph{
		Nodes: concepts,
		Links: make([]GraphLink, 0, len(relationships)),
	}
	if g.Nodes == nil {
		g.Nodes = []Concept{}
	}

	for _, r := range relationships {
		g.Links = append(g.Links, GraphLink{
			Source:   r.SourceID,
			Target:   r.TargetID,
			Type:     string(r.RelationshipType),
			Strength: r.Strength,
		})
	}

	return g
}

// OrphanLinks removes links whose endpoints are not in Nodes and returns
// how many were dropped.
func (g *KnowledgeGraph) OrphanLinks() int {
	ids := make(map[int64]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}

	kept := g.Links[:0]
	dropped := 0
	for _, l := range g.Links {
		if ids[l.Source] && ids[l.Target] {
			kept = append(kept, l)
			continue
		}
		dropped++
	}
	g.Links = kept

	return dropped
}
