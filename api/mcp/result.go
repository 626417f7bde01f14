package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vdk888/knowledge/pkg/knowledge"
)

// Concept is the tool-facing view of a concept.
type Concept struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

func toConcept(c knowledge.Concept) Concept {
	return Concept{
		ID:          c.ID,
		Name:        c.Name,
		Domain:      c.Domain,
		Difficulty:  string(c.Difficulty),
		Description: c.Description,
	}
}

func toConcepts(cs []knowledge.Concept) []Concept {
	out := make([]Concept, 0, len(cs))
	for _, c := range cs {
		out = append(out, toConcept(c))
	}
	return out
}

// errorResult reports a tool failure to the client without failing the
// protocol call.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// textResult also serializes structured output into a TextContent block for
// clients that only read text.
func textResult(output any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil
}
