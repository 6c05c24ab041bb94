package listeners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"warranty-console/internal/entities"
	"warranty-console/internal/events"
	"warranty-console/internal/repositories"
	"warranty-console/pkg/eventbus"
)

// ActivityLogListener turns console actions into activity_logs rows.
type ActivityLogListener struct {
	repo   repositories.ActivityLogRepositoryInterface
	logger *zap.Logger
}

func NewActivityLogListener(repo repositories.ActivityLogRepositoryInterface, logger *zap.Logger) *ActivityLogListener {
	return &ActivityLogListener{repo: repo, logger: logger.Named("activity")}
}

func (l *ActivityLogListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ConsoleActionName, l.handle)
	l.logger.Info("subscribed", zap.String("event", events.ConsoleActionName))
}

func (l *ActivityLogListener) handle(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ConsoleActionEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	entry := &entities.ActivityLog{
		AdminID:    e.Actor.ID,
		AdminName:  optional(e.Actor.Name),
		AdminEmail: optional(e.Actor.Email),
		ActionType: e.Action,
		TargetType: optional(e.TargetType),
		TargetID:   optional(e.TargetID),
		TargetName: optional(e.TargetName),
		IPAddress:  optional(e.Actor.IP),
	}
	if len(e.Details) > 0 {
		details, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("encode details: %w", err)
		}
		entry.Details = details
	}

	if err := l.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("write activity log %s: %w", e.Action, err)
	}
	l.logger.Debug("activity logged",
		zap.String("action", e.Action),
		zap.String("admin_id", e.Actor.ID),
		zap.String("target_id", e.TargetID),
	)
	return nil
}

func optional(s string) null.String {
	return null.NewString(s, s != "")
}
