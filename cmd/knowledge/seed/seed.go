// Package seedcmder provides the seed command that loads the sample
// curriculum into the durable store.
package seedcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/cmd/knowledge/cmdutil"
	"github.com/vdk888/knowledge/pkg/cliui"
	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
	"github.com/vdk888/knowledge/pkg/storage/backend"
)

const seedLongDesc string = `Load the sample curriculum into the durable store.

Concepts that already exist by name are skipped, so seeding twice is a no-op.
The in-memory store is always preloaded with the same curriculum and needs no
seeding.

Examples:
  knowledge seed --database-url sqlite://knowledge.db
  DATABASE_URL=postgres://localhost:5432/knowledge knowledge seed`

const seedShortDesc string = "Seed the sample curriculum"

type seedCommander struct {
	databaseURL string
}

func NewSeedCmd() *cobra.Command {
	cmder := &seedCommander{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: seedShortDesc,
		Long:  seedLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutil.ResolveConfig(cmd, config.FlagDatabaseURL)
			if err != nil {
				return err
			}
			return cmder.run(cmd.Context(), cmd.OutOrStdout(), cfg.Storage.DatabaseURL)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDatabaseURL, &cmder.databaseURL)

	return cmd
}

func (c *seedCommander) run(ctx context.Context, w io.Writer, databaseURL string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if databaseURL == "" {
		return errors.New("no database url configured: pass --database-url or set DATABASE_URL")
	}

	store, err := backend.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	var result storage.SeedResult
	if err := cliui.Step(w, "Seeding sample curriculum", func() error {
		var seedErr error
		result, seedErr = storage.Seed(ctx, store, knowledge.SeedDataset())
		return seedErr
	}); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n  %s Seeded %s concepts %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strconv.Itoa(result.Concepts)),
		cliui.DimStyle.Render(fmt.Sprintf("(%d relationships)", result.Relationships)),
	)
	return nil
}
