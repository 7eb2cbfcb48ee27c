package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
	"github.com/jhoicas/erp-stock-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del sumidero de auditoría sobre PostgreSQL.
// Se escribe fuera de la transacción de stock (post-commit, mejor esfuerzo).
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create persiste una entrada de actividad.
func (r *ActivityLogRepo) Create(ctx context.Context, log *entity.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO activity_logs (id, activity_type, entity_type, entity_id, title, description, old_values, new_values, severity, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.ActivityType, log.EntityType, log.EntityID,
		log.Title, log.Description, log.OldValues, log.NewValues,
		log.Severity, log.Icon, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

// ListByEntity lista la actividad de una entidad, más reciente primero.
func (r *ActivityLogRepo) ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, activity_type, entity_type, entity_id, title, description, old_values, new_values, severity, icon, created_at
		FROM activity_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		if err := rows.Scan(
			&l.ID, &l.ActivityType, &l.EntityType, &l.EntityID, &l.Title,
			&l.Description, &l.OldValues, &l.NewValues, &l.Severity, &l.Icon, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
