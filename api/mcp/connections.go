package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vdk888/knowledge/pkg/connections"
	"github.com/vdk888/knowledge/pkg/storage"
)

const (
	connectionsToolName    = "concept_connections"
	connectionsDescription = "List the concepts connected to a concept, grouped into " +
		"prerequisites (must be learned first), dependents (build on it) and related concepts."
)

type ConnectionsInput struct {
	ConceptID int64 `json:"concept_id" jsonschema:"the id of the concept to inspect"`
}

type ConnectionsOutput struct {
	Concept       Concept   `json:"concept"`
	Prerequisites []Concept `json:"prerequisites"`
	Related       []Concept `json:"related"`
	Dependents    []Concept `json:"dependents"`
}

func (s *Server) handleConnections(ctx context.Context, _ *mcp.CallToolRequest, input ConnectionsInput) (*mcp.CallToolResult, ConnectionsOutput, error) {
	logger := s.config.Logger.With("tool", connectionsToolName)

	concept, err := s.config.Store.GetConcept(ctx, input.ConceptID)
	if err != nil {
		logger.Error("failed to load concept", "concept_id", input.ConceptID, "error", err)
		return errorResult("Failed to load concept: %v", err), ConnectionsOutput{}, nil
	}
	if concept == nil {
		return errorResult("%v", storage.NotFoundError{Entity: "concept", ID: input.ConceptID}), ConnectionsOutput{}, nil
	}

	conns, err := connections.Classify(ctx, s.config.Store, input.ConceptID)
	if err != nil {
		logger.Error("failed to classify connections", "concept_id", input.ConceptID, "error", err)
		return errorResult("Failed to classify connections: %v", err), ConnectionsOutput{}, nil
	}

	output := ConnectionsOutput{
		Concept:       toConcept(*concept),
		Prerequisites: toConcepts(conns.Prerequisites),
		Related:       toConcepts(conns.Related),
		Dependents:    toConcepts(conns.Dependents),
	}

	result, err := textResult(output)
	if err != nil {
		logger.Error("failed to marshal connections", "error", err)
		return errorResult("Failed to serialize results: %v", err), ConnectionsOutput{}, nil
	}
	return result, output, nil
}
