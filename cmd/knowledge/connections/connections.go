// Package connectionscmder provides the connections command.
package connectionscmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/cmd/knowledge/cmdutil"
	"github.com/vdk888/knowledge/pkg/cliui"
	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/connections"
	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
	"github.com/vdk888/knowledge/pkg/storage/backend"
)

const connectionsLongDesc string = `Show how a concept connects to the rest of the graph.

The concept is looked up by id, or by name when the argument is not a number.
Its neighbors are grouped into prerequisites, dependents and related concepts.

Examples:
  knowledge connections Calculus
  knowledge connections 2
  knowledge connections "Linear Algebra" --plain`

const connectionsShortDesc string = "Show how a concept connects to the graph"

type connectionsCommander struct {
	databaseURL string
	plain       bool
	logger      *slog.Logger
}

func NewConnectionsCmd() *cobra.Command {
	cmder := &connectionsCommander{}

	cmd := &cobra.Command{
		Use:   "connections <concept>",
		Short: connectionsShortDesc,
		Long:  connectionsLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ResolveConfig(cmd, config.FlagDatabaseURL)
			if err != nil {
				return err
			}
			l, closeLog, err := cmdutil.NewLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			cmder.logger = l

			return cmder.run(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDatabaseURL, &cmder.databaseURL)
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print markdown without terminal styling")

	return cmd
}

func (c *connectionsCommander) run(ctx context.Context, w io.Writer, cfg *config.Config, ref string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := backend.New(ctx, cfg.Storage, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	concept, err := lookup(ctx, store, ref)
	if err != nil {
		return err
	}

	conns, err := connections.Classify(ctx, store, concept.ID)
	if err != nil {
		return err
	}

	doc := Markdown(*concept, conns)
	if !c.plain {
		// RenderMarkdown hands back the raw document when styling fails.
		doc, _ = cliui.RenderMarkdown(doc)
	}

	_, err = io.WriteString(w, doc)
	return err
}

// lookup resolves ref as a concept id, then as a concept name.
func lookup(ctx context.Context, store storage.Driver, ref string) (*knowledge.Concept, error) {
	var (
		concept *knowledge.Concept
		err     error
	)

	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		concept, err = store.GetConcept(ctx, id)
	} else {
		concept, err = store.GetConceptByName(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if concept == nil {
		return nil, fmt.Errorf("concept not found: %s", ref)
	}
	return concept, nil
}

// Markdown renders the connections of concept as a markdown document.
func Markdown(concept knowledge.Concept, conns *connections.Connections) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", concept.Name)
	fmt.Fprintf(&b, "*%s, %s*\n\n", concept.Domain, concept.Difficulty)
	fmt.Fprintf(&b, "%s\n\n", concept.Description)

	section(&b, "Prerequisites", conns.Prerequisites)
	section(&b, "Builds toward", conns.Dependents)
	section(&b, "Related", conns.Related)

	return b.String()
}

func section(b *strings.Builder, title string, concepts []knowledge.Concept) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(concepts) == 0 {
		b.WriteString("_none_\n\n")
		return
	}
	for _, c := range concepts {
		fmt.Fprintf(b, "- **%s** (%s)\n", c.Name, c.Domain)
	}
	b.WriteString("\n")
}
