package service

import (
	"context"

	"github.com/spec-kit/workforce-service/internal/events"
)

// publish emits a domain event after a successful mutation. Emission is
// fire-and-forget; a failing subscriber never fails the operation.
func publish(ctx context.Context, d events.Dispatcher, t events.EventType, actorID, action, entityName, entityID, details string) {
	if d == nil {
		return
	}
	var actor *string
	if actorID != "" {
		actor = &actorID
	}
	_ = d.Publish(ctx, events.Event{
		Type:       t,
		ActorID:    actor,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Details:    details,
	})
}
