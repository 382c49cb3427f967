//go:build integration

package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func openRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(url)
	require.NoError(t, err)
	return rdb
}

func TestDispatcherRoutesJobsToTheirQueues(t *testing.T) {
	rdb := openRedis(t)
	ctx := context.Background()
	d := NewDispatcher(rdb)

	require.NoError(t, d.EnqueueAlertSweep(ctx))
	require.NoError(t, d.EnqueueNotification(ctx, dto.NotificationJob{AlertID: "a1", ToEmail: "nurse@example.org"}))

	raw, err := rdb.RPop(ctx, QueueAlerts).Result()
	require.NoError(t, err)
	var sweep Job
	require.NoError(t, json.Unmarshal([]byte(raw), &sweep))
	assert.Equal(t, JobAlertSweep, sweep.Type)

	raw, err = rdb.RPop(ctx, QueueNotifications).Result()
	require.NoError(t, err)
	var note Job
	require.NoError(t, json.Unmarshal([]byte(raw), &note))
	assert.Equal(t, JobNotification, note.Type)
	var payload dto.NotificationJob
	require.NoError(t, json.Unmarshal(note.Payload, &payload))
	assert.Equal(t, "nurse@example.org", payload.ToEmail)
}

func TestRedisDLQ(t *testing.T) {
	rdb := openRedis(t)
	ctx := context.Background()
	dlq := NewRedisDLQ(rdb)

	sendToDLQ(ctx, dlq, QueueNotifications, JobNotification, json.RawMessage(`{"alert_id":"a1"}`), "smtp down", 1)

	n, err := dlq.Length(ctx, QueueNotifications)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	raw, err := rdb.LIndex(ctx, DLQPrefix+QueueNotifications, 0).Result()
	require.NoError(t, err)
	var entry DLQEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, "smtp down", entry.Reason)
	assert.Equal(t, 1, entry.Attempts)
}
