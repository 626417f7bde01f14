// Package configcmder provides the config command for managing persistent
// knowledge configuration stored in the .knowledge/ directory.
package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdk888/knowledge/pkg/config"
)

const configLongDesc string = `Manage persistent knowledge configuration.

Configuration is stored as config.toml in the .knowledge/ directory and provides
default values for command flags. Environment variables (KNOWLEDGE_*, and
DATABASE_URL for the durable store) override the file, and CLI flags always
take precedence over both.

Keys use dotted notation matching the TOML section structure:
  storage.database_url,
  storage.breaker.enabled, storage.breaker.consecutive_failures,
  storage.breaker.open_timeout,
  api.listen, events.brokers, events.topic, log.debug, log.json

Use subcommands to get, set, or list configuration values:
  knowledge config set <key> <value>    Set a configuration value
  knowledge config get <key>            Get a configuration value
  knowledge config list                 List all configuration values

Examples:
  knowledge config set storage.database_url sqlite://knowledge.db
  knowledge config set events.brokers localhost:9092,localhost:9093
  knowledge config get api.listen
  knowledge config list`

const configShortDesc string = "Manage persistent knowledge configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validateKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
