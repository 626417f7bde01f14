// Package recommendcmder provides the recommend command.
package recommendcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/cmd/knowledge/cmdutil"
	"github.com/vdk888/knowledge/pkg/cliui"
	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/recommend"
	"github.com/vdk888/knowledge/pkg/storage/backend"
	"github.com/vdk888/knowledge/pkg/utils"
)

const descriptionWidth = 72

const recommendLongDesc string = `Show the concepts a user is ready to learn next.

A concept is ready when every one of its prerequisites is learned. Concepts
related to something the user already knows come first.

Examples:
  knowledge recommend --user 1
  knowledge recommend --user 1 --database-url sqlite://knowledge.db`

const recommendShortDesc string = "Show recommendations for a user"

type recommendCommander struct {
	userID      int64
	databaseURL string
	logger      *slog.Logger
}

func NewRecommendCmd() *cobra.Command {
	cmder := &recommendCommander{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: recommendShortDesc,
		Long:  recommendLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmder.userID <= 0 {
				return errors.New("--user must be a positive user id")
			}

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

			return cmder.run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().Int64VarP(&cmder.userID, "user", "u", 0, "User to recommend concepts for")
	config.AddStringFlag(cmd, config.Flags, config.FlagDatabaseURL, &cmder.databaseURL)

	return cmd
}

func (c *recommendCommander) run(ctx context.Context, w io.Writer, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := backend.New(ctx, cfg.Storage, c.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := recommend.NewEngine(store, c.logger).ForUser(ctx, c.userID)
	if err != nil {
		return err
	}

	render(w, c.userID, recs)
	return nil
}

func render(w io.Writer, userID int64, recs []recommend.Recommendation) {
	fmt.Fprintf(w, "\n  %s\n\n", cliui.HeaderStyle.Render(fmt.Sprintf("Recommendations for user %d", userID)))

	if len(recs) == 0 {
		fmt.Fprintf(w, "  %s\n\n", cliui.DimStyle.Render("Nothing is ready to learn."))
		return
	}

	for i, r := range recs {
		fmt.Fprintf(w, "  %s %s %s\n      %s\n      %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.NameStyle.Render(r.Concept.Name),
			cliui.DimStyle.Render(fmt.Sprintf("(%s, %s)", r.Concept.Domain, r.Concept.Difficulty)),
			cliui.ValueStyle.Render(r.Reason),
			cliui.DimStyle.Render(utils.Truncate(r.Concept.Description, descriptionWidth)),
		)
	}
	fmt.Fprintln(w)
}
