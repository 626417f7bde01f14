// Package servecmder provides the serve command that runs the API server.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/api"
	"github.com/vdk888/knowledge/cmd/knowledge/cmdutil"
	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/eventstream"
	"github.com/vdk888/knowledge/pkg/eventstream/async"
	"github.com/vdk888/knowledge/pkg/eventstream/kafka"
	"github.com/vdk888/knowledge/pkg/eventstream/nop"
	"github.com/vdk888/knowledge/pkg/storage/backend"
)

type serveCommander struct {
	databaseURL     string
	listen          string
	breakerFailures uint
	eventsTopic     string
	eventsBrokers   []string
	logJSON         bool
	logFile         string
	noMCP           bool

	logger *slog.Logger
}

var serveFlags = []string{
	config.FlagDatabaseURL,
	config.FlagListen,
	config.FlagBreakerFailures,
	config.FlagEventsTopic,
	config.FlagEventsBrokers,
	config.FlagLogJSON,
	config.FlagLogFile,
}

const serveLongDesc string = `Run the knowledge API server.

The server answers concept, relationship, progress and recommendation
requests, exposes Prometheus metrics on /metrics and MCP tools on /mcp.

Storage is selected by the database url (flag, KNOWLEDGE_STORAGE_DATABASE_URL,
DATABASE_URL or storage.database_url in config.toml). Without one, or while
the durable store is failing, calls are served from the in-memory store.

Progress changes are published to Kafka when brokers are configured. With
--log-file (or log.file) every record is also appended to that file as JSON.

Examples:
  knowledge serve
  knowledge serve --database-url postgres://localhost:5432/knowledge
  knowledge serve --database-url sqlite://knowledge.db --listen :9000
  knowledge serve --events-brokers localhost:9092
  knowledge serve --log-file .knowledge/serve.log`

const serveShortDesc string = "Run the knowledge API server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmdutil.ResolveConfig(cmd, serveFlags...)
			if err != nil {
				return err
			}

			l, closeLog, err := cmdutil.NewLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.logger = l
			return cmder.run(cmd.Context(), cfg)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagDatabaseURL, &cmder.databaseURL)
	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddUintFlag(cmd, config.Flags, config.FlagBreakerFailures, &cmder.breakerFailures)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.eventsTopic)
	config.AddStringSliceFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddBoolFlag(cmd, config.Flags, config.FlagLogJSON, &cmder.logJSON)
	config.AddStringFlag(cmd, config.Flags, config.FlagLogFile, &cmder.logFile)
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Serve /mcp without tools")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := backend.New(ctx, cfg.Storage, c.logger)
	if err != nil {
		return fmt.Errorf("creating storage: %w", err)
	}
	defer store.Close()

	publisher, err := c.newPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer publisher.Close()

	server, err := api.NewServer(api.Config{
		ListenAddr: cfg.API.Listen,
		DisableMCP: c.noMCP,
	}, store, publisher, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

func (c *serveCommander) newPublisher(cfg config.EventsConfig) (eventstream.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		c.logger.Debug("no event brokers configured, progress events are dropped")
		return nop.NewPublisher(), nil
	}

	p, err := kafka.NewPublisher(kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})
	if err != nil {
		return nil, fmt.Errorf("creating kafka publisher: %w", err)
	}

	pool, err := async.NewPool(&async.Config{
		Publisher: p,
		Logger:    c.logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("creating event pool: %w", err), p.Close())
	}

	c.logger.Info("publishing progress events", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return pool, nil
}
