package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/painel-crm/painel-crm/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskEventsExportCSV renders a user's visible events into a CSV file.
	TaskEventsExportCSV = "events:export_csv"
	// TaskExportCleanup removes export files past their retention window.
	TaskExportCleanup = "events:export_cleanup"
)

// ExportCSVPayload carries everything the worker needs to run an export on
// behalf of the requesting session: the job id and an account snapshot for
// backend calls.
type ExportCSVPayload struct {
	JobID     string         `json:"jobId"`
	Account   shared.Account `json:"account"`
	Calendars string         `json:"calendars,omitempty"`
	UserID    int64          `json:"userId,omitempty"`
}

// NewEventsExportTask constructs the export task.
func NewEventsExportTask(payload ExportCSVPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEventsExportCSV, data), nil
}

// NewExportCleanupTask constructs the cleanup task.
func NewExportCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskExportCleanup, nil)
}
