package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Lahari-104/Mediguard/internal/service"

	"github.com/rs/zerolog/log"
)

// SweepWorker runs a full alert sweep for each job on QueueAlerts.
type SweepWorker struct {
	engine service.AlertEngine
	now    func() time.Time
}

func NewSweepWorker(engine service.AlertEngine) *SweepWorker {
	return &SweepWorker{engine: engine, now: time.Now}
}

// Process ignores payload content beyond logging; every sweep evaluates
// current state at processing time.
func (w *SweepWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload SweepJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Warn().Err(err).Msg("sweep_worker: unreadable payload, sweeping anyway")
	}
	res := w.engine.Sweep(ctx, w.now())
	if res.Err != nil {
		log.Error().Err(res.Err).Time("requested_at", payload.RequestedAt).Msg("sweep_worker: sweep finished with errors")
	}
}
