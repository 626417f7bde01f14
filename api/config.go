// Package api provides the HTTP route layer over the concept graph: concept
// and relationship lookups, user progress, recommendations and the MCP tools.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// DisableMCP leaves the /mcp endpoint without tools.
	DisableMCP bool
}
