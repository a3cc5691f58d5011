package jobs

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"crm/internal/models"
)

const reminderTimestamp = "2006-01-02 15:04:05"

// DefaultReminderWindow is how far back pending orders get a reminder.
const DefaultReminderWindow = 7 * 24 * time.Hour

// OrderRemindersJob logs a reminder for every pending order placed within Window.
type OrderRemindersJob struct {
	API     API
	LogPath string
	Window  time.Duration
	Now     func() time.Time
}

// Name implements Job.
func (j *OrderRemindersJob) Name() string { return "order-reminders" }

// Run implements cron.Job.
func (j *OrderRemindersJob) Run() {
	current := now(j.Now)
	stamp := fmt.Sprintf("[%s]", current.Format(reminderTimestamp))

	window := j.Window
	if window <= 0 {
		window = DefaultReminderWindow
	}
	query := url.Values{}
	query.Set("status", models.OrderStatusPending)
	query.Set("order_date_gte", current.Add(-window).UTC().Format(models.TimestampLayout))

	orders, err := j.API.ListOrders(query)
	if err != nil {
		record(j.Name(), j.LogPath, fmt.Sprintf("%s Error: %v", stamp, err))
		return
	}
	if len(orders) > 0 {
		lines := make([]string, 0, len(orders))
		for _, o := range orders {
			lines = append(lines, fmt.Sprintf("%s Reminder for Order %d - %s", stamp, o.ID, o.Customer.Email))
		}
		record(j.Name(), j.LogPath, lines...)
	}
	log.Printf("Order reminders processed! (%d)", len(orders))
}
