package commands

import (
	"log"

	"crm/internal/database"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the customers, products, orders and order_products tables
of the store selected by DB_DRIVER and DATABASE_DSN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate() error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Printf("Migrated %s database", cfg.DBDriver)
	return nil
}
