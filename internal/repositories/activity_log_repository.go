package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"warranty-console/internal/entities"
)

const (
	activityLogTable = "activity_logs"
	// activityLogWindow bounds how many of the newest rows make up the
	// activity-log view.
	activityLogWindow = 10000
)

var activityLogColumns = []string{
	"id", "admin_id", "admin_name", "admin_email", "action_type",
	"target_type", "target_id", "target_name", "details", "ip_address", "created_at",
}

type ActivityLogRepositoryInterface interface {
	Create(ctx context.Context, log *entities.ActivityLog) error
	List(ctx context.Context) ([]entities.ActivityLog, error)
}

type ActivityLogRepository struct {
	storage querier
	logger  *zap.Logger
}

func NewActivityLogRepository(storage querier, logger *zap.Logger) ActivityLogRepositoryInterface {
	return &ActivityLogRepository{storage: storage, logger: logger}
}

// Create fills in the id and the timestamp when they are empty.
func (r *ActivityLogRepository) Create(ctx context.Context, log *entities.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	var details interface{}
	if len(log.Details) > 0 {
		details = string(log.Details)
	}

	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(activityLogTable).
		Columns(activityLogColumns...).
		Values(
			log.ID, log.AdminID, log.AdminName, log.AdminEmail, log.ActionType,
			log.TargetType, log.TargetID, log.TargetName, details, log.IPAddress, log.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build activity log insert: %w", err)
	}

	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List returns the newest rows first.
func (r *ActivityLogRepository) List(ctx context.Context) ([]entities.ActivityLog, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(activityLogColumns...).
		From(activityLogTable).
		OrderBy("created_at DESC").
		Limit(activityLogWindow).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity log select: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.ActivityLog, 0)
	for rows.Next() {
		l, err := scanActivityLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return logs, nil
}

func scanActivityLog(row pgx.Row) (entities.ActivityLog, error) {
	var l entities.ActivityLog
	var details []byte
	err := row.Scan(
		&l.ID, &l.AdminID, &l.AdminName, &l.AdminEmail, &l.ActionType,
		&l.TargetType, &l.TargetID, &l.TargetName, &details, &l.IPAddress, &l.CreatedAt,
	)
	if err != nil {
		return l, fmt.Errorf("scan activity log: %w", err)
	}
	if len(details) > 0 {
		l.Details = details
	}
	return l, nil
}
