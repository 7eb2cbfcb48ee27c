package repository

import (
	"context"

	"github.com/jhoicas/erp-stock-api/internal/domain/entity"
)

// ActivityLogRepository define el puerto del sumidero de auditoría.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	ListByEntity(ctx context.Context, entityType, entityID string, limit, offset int) ([]*entity.ActivityLog, error)
}
