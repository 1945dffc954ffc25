package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cashdrawer/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueReports = "jobs:report"

	JobTypeReport = "report"

	// MaxJobAttempts is how many times a job runs before it is moved to the DLQ.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes the payload of one job type. A returned error makes the
// pool retry the job, up to MaxJobAttempts.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReport asks the pool to render (and mail) the closing report of a
// drawer session. Returns the job id.
func (d *Dispatcher) EnqueueReport(ctx context.Context, sessionID uint) (string, error) {
	return d.enqueue(ctx, QueueReports, JobTypeReport, ReportJobPayload{SessionID: sessionID})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	job := Job{ID: uuid.NewString(), Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return "", err
	}
	if err := d.rdb.LPush(ctx, queue, encoded).Err(); err != nil {
		return "", err
	}
	return job.ID, nil
}

// StartWorkerPool launches numWorkers goroutines consuming the report queue.
// Each goroutine blocks on BRPOP: zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers map[string]Handler) {
	queues := []string{QueueReports}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		deadLetter(ctx, rdb, queue, malformedJob(raw, "malformed envelope: "+err.Error(), time.Now()))
		return
	}
	logger := log.With().Str("job_id", job.ID).Str("type", job.Type).Str("queue", queue).Logger()

	h, ok := handlers[job.Type]
	if !ok {
		logger.Error().Msg("no handler for job type")
		deadLetter(ctx, rdb, queue, failedJob(job, "no handler registered", time.Now()))
		return
	}

	job.Attempts++
	logger.Info().Int("attempt", job.Attempts).Msg("processing job")
	err := h.Process(ctx, job.Payload)
	if err == nil {
		metrics.ObserveReportJob("ok")
		return
	}

	if job.Attempts >= MaxJobAttempts {
		metrics.ObserveReportJob("dead_lettered")
		deadLetter(ctx, rdb, queue, failedJob(job,
			fmt.Sprintf("max attempts (%d) exceeded: %v", MaxJobAttempts, err), time.Now()))
		return
	}

	metrics.ObserveReportJob("retried")
	logger.Warn().Err(err).Int("attempt", job.Attempts).Msg("job failed, requeueing")
	encoded, mErr := json.Marshal(job)
	if mErr != nil {
		logger.Error().Err(mErr).Msg("failed to re-encode job")
		return
	}
	if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
		logger.Error().Err(pErr).Msg("failed to requeue job")
	}
}
