// Package commands implements the crm command line.
package commands

import (
	"fmt"
	"os"

	"crm/internal/config"
	"crm/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "CRM backend - customers, products and orders",
	Long: `CRM backend serving customers, products and orders over HTTP.

Commands:
  serve    - Run the HTTP API
  migrate  - Create or update the database schema
  seed     - Fill the database with fake records
  jobs     - Run or schedule the maintenance jobs
  auth     - Manage API client credentials`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase loads the configuration and connects to the configured store.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBLogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
