package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crm/internal/app"
	"crm/internal/database"
	"crm/internal/jobs"
	"crm/internal/models"
	"crm/internal/services"
	"crm/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	// Serve flags
	withJobs     bool
	skipMigrate  bool
	consumeEvent bool
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

Examples:
  crm serve                   # Migrate, then serve on APP_PORT
  crm serve --with-jobs       # Also run the scheduled jobs in-process
  crm serve --consume-events  # Also log order.created events from RabbitMQ`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withJobs, "with-jobs", false, "Run the scheduled jobs in the same process")
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on start")
	serveCmd.Flags().BoolVar(&consumeEvent, "consume-events", false, "Log order events received from RabbitMQ")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if !skipMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Initialize RabbitMQ Client ---
	var publisher services.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if consumeEvent {
			log.Println("Starting RabbitMQ consumer for orders...")
			if err := mqClient.ConsumeOrderEvents(ctx, logOrderEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set; order events are not published")
	}

	application := app.New(cfg, db, publisher)

	if withJobs {
		scheduler, err := jobs.NewScheduler(jobs.Build(cfg.Jobs, jobs.NewClient(cfg.Jobs)))
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- application.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	if err := application.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

func logOrderEvent(event models.OrderCreatedEvent) error {
	log.Printf("Received order.created event %s: order %d, customer %d, total %s",
		event.EventID, event.OrderID, event.CustomerID, event.TotalAmount.StringFixed(2))
	return nil
}
