package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix + queue names the list of jobs the pool gave up on. Nothing
// consumes it; /health reports its size and the sessions involved.
const DLQPrefix = "dlq:"

// FailedReport is one dead-lettered job.
type FailedReport struct {
	JobID     string          `json:"job_id,omitempty"`
	JobType   string          `json:"job_type"`
	SessionID uint            `json:"session_id,omitempty"` // 0 when the payload could not be read
	Payload   json.RawMessage `json:"payload,omitempty"`
	Raw       string          `json:"raw,omitempty"` // undecodable envelope, kept verbatim
	Reason    string          `json:"reason"`
	Attempts  int             `json:"attempts"`
	FailedAt  time.Time       `json:"failed_at"`
}

func failedJob(job Job, reason string, at time.Time) FailedReport {
	entry := FailedReport{
		JobID:    job.ID,
		JobType:  job.Type,
		Payload:  job.Payload,
		Reason:   reason,
		Attempts: job.Attempts,
		FailedAt: at.UTC(),
	}
	if job.Type == JobTypeReport {
		var p ReportJobPayload
		if json.Unmarshal(job.Payload, &p) == nil {
			entry.SessionID = p.SessionID
		}
	}
	return entry
}

func malformedJob(raw, reason string, at time.Time) FailedReport {
	return FailedReport{JobType: "unknown", Raw: raw, Reason: reason, FailedAt: at.UTC()}
}

func deadLetter(ctx context.Context, rdb *redis.Client, queue string, entry FailedReport) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}
	key := DLQPrefix + queue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: failed to push entry")
		return
	}
	log.Warn().
		Str("job_id", entry.JobID).
		Uint("session_id", entry.SessionID).
		Str("reason", entry.Reason).
		Int("attempts", entry.Attempts).
		Msg("dlq: closing report job abandoned")
}

// FailedReports returns how many report jobs are dead-lettered and the
// sessions of the newest limit entries, newest first.
func FailedReports(ctx context.Context, rdb *redis.Client, limit int64) (int64, []uint, error) {
	key := DLQPrefix + QueueReports
	pipe := rdb.Pipeline()
	lenCmd := pipe.LLen(ctx, key)
	rangeCmd := pipe.LRange(ctx, key, 0, limit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, nil, err
	}
	return lenCmd.Val(), sessionsOf(rangeCmd.Val()), nil
}

func sessionsOf(entries []string) []uint {
	sessions := make([]uint, 0, len(entries))
	for _, raw := range entries {
		var e FailedReport
		if json.Unmarshal([]byte(raw), &e) == nil && e.SessionID != 0 {
			sessions = append(sessions, e.SessionID)
		}
	}
	return sessions
}
