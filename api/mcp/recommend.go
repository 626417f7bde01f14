package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vdk888/knowledge/pkg/recommend"
)

const (
	recommendToolName    = "recommend_concepts"
	recommendDescription = "Recommend up to five concepts a user is ready to learn next. " +
		"A concept is ready when every prerequisite is learned. Concepts related to something " +
		"the user already knows are listed first, with the reason naming that concept."
)

type RecommendInput struct {
	UserID int64 `json:"user_id" jsonschema:"the id of the user to recommend concepts for"`
}

type Recommendation struct {
	Concept Concept `json:"concept"`
	Reason  string  `json:"reason"`
}

type RecommendOutput struct {
	UserID          int64            `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

func (s *Server) handleRecommend(ctx context.Context, _ *mcp.CallToolRequest, input RecommendInput) (*mcp.CallToolResult, RecommendOutput, error) {
	logger := s.config.Logger.With("tool", recommendToolName)

	if input.UserID <= 0 {
		return errorResult("user_id must be a positive integer"), RecommendOutput{}, nil
	}

	recs, err := s.config.Engine.ForUser(ctx, input.UserID)
	if err != nil {
		logger.Error("failed to compute recommendations", "user_id", input.UserID, "error", err)
		return errorResult("Failed to compute recommendations: %v", err), RecommendOutput{}, nil
	}

	output := RecommendOutput{
		UserID:          input.UserID,
		Recommendations: toRecommendations(recs),
		Count:           len(recs),
	}

	result, err := textResult(output)
	if err != nil {
		logger.Error("failed to marshal recommendations", "error", err)
		return errorResult("Failed to serialize results: %v", err), RecommendOutput{}, nil
	}
	return result, output, nil
}

func toRecommendations(recs []recommend.Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	for _, r := range recs {
		out = append(out, Recommendation{Concept: toConcept(r.Concept), Reason: r.Reason})
	}
	return out
}
