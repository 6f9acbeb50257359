package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/painel-crm/painel-crm/internal/events"
	jobmetrics "github.com/painel-crm/painel-crm/internal/jobs"
	"github.com/painel-crm/painel-crm/internal/shared"
)

// Export job states as stored in Redis.
const (
	StateQueued  = "queued"
	StateRunning = "running"
	StateDone    = "done"
	StateFailed  = "failed"
)

const (
	statusTTL       = 24 * time.Hour
	exportRetention = 7 * 24 * time.Hour
)

func exportKey(jobID string) string {
	return "export:" + jobID
}

// Exporter enqueues CSV export jobs and answers status queries. It is the
// gateway-side half of the export pipeline; ExportProcessor runs in the
// worker.
type Exporter struct {
	client *asynq.Client
	redis  *redis.Client
	logger *slog.Logger
}

// NewExporter builds Exporter instance.
func NewExporter(client *asynq.Client, rdb *redis.Client, logger *slog.Logger) *Exporter {
	return &Exporter{client: client, redis: rdb, logger: logger}
}

// Enqueue registers the job as queued and submits it. The account snapshot
// travels in the payload so the worker can call the backend as the user.
func (e *Exporter) Enqueue(ctx context.Context, acct *shared.Account, req events.ExportRequest) (string, error) {
	jobID := uuid.NewString()
	task, err := NewEventsExportTask(ExportCSVPayload{
		JobID:     jobID,
		Account:   *acct,
		Calendars: req.Calendars,
		UserID:    req.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("jobs: build export task: %w", err)
	}
	if err := writeStatus(ctx, e.redis, events.ExportStatus{ID: jobID, State: StateQueued}); err != nil {
		return "", err
	}
	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault), asynq.TaskID(jobID), asynq.MaxRetry(3)); err != nil {
		return "", fmt.Errorf("jobs: enqueue export: %w", err)
	}
	return jobID, nil
}

// Status reads the job's current state.
func (e *Exporter) Status(ctx context.Context, jobID string) (*events.ExportStatus, error) {
	raw, err := e.redis.Get(ctx, exportKey(jobID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("jobs: read export status: %w", err)
	}
	var status events.ExportStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, fmt.Errorf("jobs: decode export status: %w", err)
	}
	return &status, nil
}

var _ events.Exporter = (*Exporter)(nil)

// ExportProcessor executes export jobs inside the worker process.
type ExportProcessor struct {
	events  *events.Service
	redis   *redis.Client
	dir     string
	metrics *jobmetrics.Metrics
	logger  *slog.Logger
}

// NewExportProcessor builds ExportProcessor instance.
func NewExportProcessor(svc *events.Service, rdb *redis.Client, dir string, metrics *jobmetrics.Metrics, logger *slog.Logger) *ExportProcessor {
	return &ExportProcessor{events: svc, redis: rdb, dir: dir, metrics: metrics, logger: logger}
}

// Handle processes a TaskEventsExportCSV task: list the visible events as
// the requesting user and render them to a CSV file under the export dir.
func (p *ExportProcessor) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ExportCSVPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	tracker := p.metrics.Track("events_export_csv")
	return tracker.End(p.run(ctx, payload))
}

func (p *ExportProcessor) run(ctx context.Context, payload ExportCSVPayload) error {
	_ = writeStatus(ctx, p.redis, events.ExportStatus{ID: payload.JobID, State: StateRunning})

	list, err := p.events.List(ctx, &payload.Account, events.ListFilters{
		Calendars: payload.Calendars,
		UserID:    payload.UserID,
	})
	if err != nil {
		return p.fail(ctx, payload.JobID, err)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return p.fail(ctx, payload.JobID, err)
	}
	name := "eventos_" + payload.JobID + ".csv"
	path := filepath.Join(p.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return p.fail(ctx, payload.JobID, err)
	}
	if err := events.WriteCSV(f, list); err != nil {
		_ = f.Close()
		return p.fail(ctx, payload.JobID, err)
	}
	if err := f.Close(); err != nil {
		return p.fail(ctx, payload.JobID, err)
	}

	p.logger.Info("events export complete",
		slog.String("job_id", payload.JobID),
		slog.Int("events", len(list)))
	return writeStatus(ctx, p.redis, events.ExportStatus{
		ID:    payload.JobID,
		State: StateDone,
		File:  name,
		Count: len(list),
	})
}

func (p *ExportProcessor) fail(ctx context.Context, jobID string, err error) error {
	p.logger.Error("events export failed", slog.String("job_id", jobID), slog.Any("error", err))
	_ = writeStatus(ctx, p.redis, events.ExportStatus{ID: jobID, State: StateFailed, Error: err.Error()})
	return err
}

// Cleanup processes TaskExportCleanup tasks: drop export files older than
// the retention window.
func (p *ExportProcessor) Cleanup(ctx context.Context, t *asynq.Task) error {
	tracker := p.metrics.Track("events_export_cleanup")
	return tracker.End(p.cleanup())
}

func (p *ExportProcessor) cleanup() error {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cutoff := time.Now().Add(-exportRetention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(p.dir, entry.Name()))
		}
	}
	return nil
}

func writeStatus(ctx context.Context, rdb *redis.Client, status events.ExportStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, exportKey(status.ID), data, statusTTL).Err(); err != nil {
		return fmt.Errorf("jobs: write export status: %w", err)
	}
	return nil
}
