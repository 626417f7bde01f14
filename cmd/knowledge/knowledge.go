// Package knowledgecmder
package knowledgecmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/vdk888/knowledge/cmd/knowledge/config"
	connectionscmder "github.com/vdk888/knowledge/cmd/knowledge/connections"
	initcmder "github.com/vdk888/knowledge/cmd/knowledge/init"
	recommendcmder "github.com/vdk888/knowledge/cmd/knowledge/recommend"
	seedcmder "github.com/vdk888/knowledge/cmd/knowledge/seed"
	servecmder "github.com/vdk888/knowledge/cmd/knowledge/serve"
	versioncmder "github.com/vdk888/knowledge/cmd/version"
)

const knowledgeLongDesc string = `Knowledge serves a graph of concepts and the prerequisite and related
links between them, and recommends what each user should learn next.

Storage is durable when a database url is configured (postgres:// or
sqlite://). Calls the durable store cannot answer are served from an
in-memory store preloaded with a sample curriculum.

Commands:
  knowledge serve          Run the API server
  knowledge seed           Load the sample curriculum into the durable store
  knowledge recommend      Show recommendations for a user
  knowledge connections    Show how a concept connects to the graph
  knowledge config         Manage persistent configuration`

const knowledgeShortDesc string = "Knowledge - concept graph and recommendations"

func NewKnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "knowledge",
		Short:         knowledgeShortDesc,
		Long:          knowledgeLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding config.toml (default: ./.knowledge or ~/.knowledge)")

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(seedcmder.NewSeedCmd())
	cmd.AddCommand(recommendcmder.NewRecommendCmd())
	cmd.AddCommand(connectionscmder.NewConnectionsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
