// Package cli defines the cobra command tree for rentdesk.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/config"
)

var (
	flagFormat string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentdesk",
		Short:         "Dashboard for a tenancy-management API",
		Long:          "A dashboard for tenants, rooms, payments, maintenance and vacate requests. Serve the web dashboard or query the tenancy API from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/rentdesk/config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newTenantsCmd(),
		newRoomsCmd(),
		newPaymentsCmd(),
		newMaintenanceCmd(),
		newVacateCmd(),
		newCompleteMaintenanceCmd(),
		newProcessVacateCmd(),
		newVersionCmd(),
	)

	return root
}

// configPath returns the --config flag or the default path.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file named by --config.
func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newAPIClient creates a client for the configured tenancy API.
func newAPIClient(cfg *config.Config, opts ...client.Option) *client.Client {
	opts = append([]client.Option{client.WithTimeout(cfg.API.Timeout)}, opts...)
	return client.New(cfg.API.BaseURL, cfg.API.APIKey, opts...)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
