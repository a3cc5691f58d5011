package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"crm/internal/config"
	"crm/internal/jobs"

	"github.com/spf13/cobra"
)

// jobsCmd groups the maintenance job commands
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run or schedule the maintenance jobs",
	Long: `The jobs call the CRM HTTP API at API_BASE_URL and append to their log files.

Jobs:
  low-stock        - Restock products below LOW_STOCK_THRESHOLD
  heartbeat        - Check that the API answers
  order-reminders  - Log reminders for recent pending orders`,
}

// jobsRunCmd runs one job once
var jobsRunCmd = &cobra.Command{
	Use:       "run <job>",
	Short:     "Run one job now",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"low-stock", "heartbeat", "order-reminders"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return runJob(cfg.Jobs, jobs.NewClient(cfg.Jobs), args[0])
	},
}

// jobsScheduleCmd runs every job on its schedule
var jobsScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run every job on its cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchedule()
	},
}

func init() {
	jobsCmd.AddCommand(jobsRunCmd, jobsScheduleCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJob(cfg config.JobsConfig, api jobs.API, name string) error {
	job, err := jobs.Find(jobs.Build(cfg, api), name)
	if err != nil {
		return err
	}
	log.Printf("Running %s job", job.Name())
	job.Run()
	return nil
}

func runSchedule() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	scheduler, err := jobs.NewScheduler(jobs.Build(cfg.Jobs, jobs.NewClient(cfg.Jobs)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start()
	log.Println("Scheduler started. To exit press CTRL+C")
	<-ctx.Done()

	log.Println("Stopping scheduler...")
	<-scheduler.Stop().Done()
	return nil
}
