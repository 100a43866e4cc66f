package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
	"github.com/spec-kit/workforce-service/internal/service"
)

const popTimeout = 5 * time.Second

// AuditWorker drains queued audit events from Redis into the audit trail.
type AuditWorker struct {
	queue    *redis.Client
	queueKey string
	logs     repository.AuditLogRepository
	logger   *zap.Logger
}

// NewAuditWorker constructs the worker.
func NewAuditWorker(queue *redis.Client, queueKey string, logs repository.AuditLogRepository, logger *zap.Logger) *AuditWorker {
	return &AuditWorker{
		queue:    queue,
		queueKey: queueKey,
		logs:     logs,
		logger:   logger,
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *AuditWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *AuditWorker) run(ctx context.Context) {
	w.logger.Info("audit worker started", zap.String("queue", w.queueKey))
	for {
		if err := ctx.Err(); err != nil {
			w.logger.Info("audit worker stopped")
			return
		}
		res, err := w.queue.BRPop(ctx, popTimeout, w.queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				w.logger.Info("audit worker stopped")
				return
			}
			w.logger.Warn("audit queue pop failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value].
		if len(res) < 2 {
			continue
		}
		w.persist(ctx, []byte(res[1]))
	}
}

func (w *AuditWorker) persist(ctx context.Context, payload []byte) {
	var event events.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.Warn("discarding malformed audit payload", zap.Error(err))
		return
	}
	if err := w.logs.Insert(ctx, service.EventToAuditLog(event)); err != nil {
		w.logger.Error("audit insert failed",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
