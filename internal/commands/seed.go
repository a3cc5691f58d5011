package commands

import (
	"fmt"

	"crm/internal/database"
	"crm/internal/repositories"
	"crm/internal/seed"
	"crm/internal/services"
	"crm/internal/validation"

	"github.com/spf13/cobra"
)

// Seed flags
var seedOptions seed.Options

// seedCmd fills the store with fake records
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with fake records",
	Long: `Create fake customers, products and orders through the same validation as the API.

Examples:
  crm seed                                   # 20 customers, 10 products, 15 orders
  crm seed --customers 100 --products 40     # More customers and products
  crm seed --seed 42                         # Reproducible data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOptions.Customers, "customers", 20, "Number of customers to create")
	seedCmd.Flags().IntVar(&seedOptions.Products, "products", 10, "Number of products to create")
	seedCmd.Flags().IntVar(&seedOptions.Orders, "orders", 15, "Number of orders to create")
	seedCmd.Flags().Uint64Var(&seedOptions.Seed, "seed", 0, "Random seed (0 picks one)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command) error {
	_, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	validate := validation.New()
	seeder := seed.New(
		services.NewCustomerService(repositories.NewGORMCustomerRepository(db), validate),
		services.NewProductService(repositories.NewGORMProductRepository(db), validate),
		services.NewOrderService(repositories.NewGORMOrderRepository(db), validate, nil),
	)
	summary, err := seeder.Run(cmd.Context(), seedOptions)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "customers: %d\nproducts:  %d\norders:    %d\n", summary.Customers, summary.Products, summary.Orders)
	for _, msg := range summary.Skipped {
		fmt.Fprintf(out, "skipped: %s\n", msg)
	}
	return nil
}
