package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedJob_CarriesSessionID(t *testing.T) {
	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	job := Job{ID: "j-1", Type: JobTypeReport, Payload: json.RawMessage(`{"session_id":42}`), Attempts: 3}

	entry := failedJob(job, "smtp down", at)
	assert.Equal(t, uint(42), entry.SessionID)
	assert.Equal(t, "j-1", entry.JobID)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, time.UTC, entry.FailedAt.Location())
}

func TestFailedJob_UnreadablePayloadHasNoSession(t *testing.T) {
	entry := failedJob(Job{Type: JobTypeReport, Payload: json.RawMessage(`"oops"`)}, "bad", time.Now())
	assert.Zero(t, entry.SessionID)

	entry = failedJob(Job{Type: "other", Payload: json.RawMessage(`{"session_id":9}`)}, "no handler", time.Now())
	assert.Zero(t, entry.SessionID)
}

func TestSessionsOf_NewestFirstSkipsUnknown(t *testing.T) {
	var raws []string
	for _, e := range []FailedReport{
		failedJob(Job{Type: JobTypeReport, Payload: json.RawMessage(`{"session_id":8}`)}, "x", time.Now()),
		malformedJob("{not json", "malformed envelope", time.Now()),
		failedJob(Job{Type: JobTypeReport, Payload: json.RawMessage(`{"session_id":5}`)}, "x", time.Now()),
	} {
		data, err := json.Marshal(e)
		require.NoError(t, err)
		raws = append(raws, string(data))
	}
	raws = append(raws, "garbage")

	assert.Equal(t, []uint{8, 5}, sessionsOf(raws))
}
