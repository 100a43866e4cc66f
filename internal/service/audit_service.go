package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/workforce-service/internal/authz"
	"github.com/spec-kit/workforce-service/internal/config"
	"github.com/spec-kit/workforce-service/internal/domain"
	"github.com/spec-kit/workforce-service/internal/events"
	"github.com/spec-kit/workforce-service/internal/repository"
)

// AuditService records every published domain event into the audit trail.
// Events are queued through Redis and drained by the audit worker; when
// the queue is unreachable the record is written directly so the trail
// stays complete. Recording never fails the operation that emitted the
// event.
type AuditService struct {
	logs       repository.AuditLogRepository
	dispatcher events.Dispatcher
	queue      *redis.Client
	gate       *authz.Gate
	logger     *zap.Logger
	cfg        config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(logs repository.AuditLogRepository, dispatcher events.Dispatcher, queue *redis.Client, gate *authz.Gate, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		logs:       logs,
		dispatcher: dispatcher,
		queue:      queue,
		gate:       gate,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes the recorder to every event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range events.Types() {
		a.dispatcher.Subscribe(t, a.record)
	}
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	if a.queue != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			if err := a.queue.LPush(ctx, a.cfg.QueueKey, payload).Err(); err == nil {
				return nil
			}
			a.logger.Warn("audit queue unavailable, writing directly", zap.String("event_id", event.ID))
		}
	}
	if err := a.logs.Insert(ctx, EventToAuditLog(event)); err != nil {
		a.logger.Error("audit record dropped",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}

// EventToAuditLog maps a domain event to its audit trail row.
func EventToAuditLog(event events.Event) *domain.AuditLog {
	return &domain.AuditLog{
		AccountID:  event.ActorID,
		Action:     event.Action,
		EntityName: event.EntityName,
		EntityID:   event.EntityID,
		Details:    event.Details,
		CreatedAt:  event.Timestamp,
	}
}

// ListAuditLogs returns the full trail, newest first.
func (a *AuditService) ListAuditLogs(ctx context.Context, p *authz.Principal) ([]domain.AuditLog, error) {
	if err := a.gate.Guard(ctx, p, authz.OpList, authz.KindAuditLog, nil); err != nil {
		return nil, err
	}
	return a.logs.List(ctx)
}

// ListAccountAuditLogs returns the trail entries attributed to one account.
func (a *AuditService) ListAccountAuditLogs(ctx context.Context, p *authz.Principal, accountID string) ([]domain.AuditLog, error) {
	if err := a.gate.Guard(ctx, p, authz.OpList, authz.KindAuditLog, nil); err != nil {
		return nil, err
	}
	return a.logs.ListByAccount(ctx, accountID)
}
