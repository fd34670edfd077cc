package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

// ActivityLogRepository is append-only: there is no update or delete.
type ActivityLogRepository struct {
	logs collection[models.ActivityLog]
}

func NewActivityLogRepository(s *Store) *ActivityLogRepository {
	return &ActivityLogRepository{logs: newCollection[models.ActivityLog](s, ActivityLogsCollection)}
}

func (r *ActivityLogRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	return r.logs.insert(ctx, entry)
}

func (r *ActivityLogRepository) FindByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	return r.logs.findByID(ctx, id)
}

func (r *ActivityLogRepository) List(ctx context.Context, f models.ActivityLogFilter, page utils.PageParams) ([]models.ActivityLog, int64, error) {
	return r.logs.findPage(ctx, activityLogFilter(f), newestFirst, page)
}
