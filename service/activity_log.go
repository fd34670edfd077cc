package service

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
)

// ActivityLogService writes audit rows in the background and serves them back.
type ActivityLogService struct {
	logs ActivityLogStore
	jobs Submitter
}

func NewActivityLogService(logs ActivityLogStore, jobs Submitter) *ActivityLogService {
	return &ActivityLogService{logs: logs, jobs: jobs}
}

// Record queues entry for insertion. It never blocks the caller; a full
// queue or a failed insert is logged and counted by the dispatcher.
func (s *ActivityLogService) Record(entry models.ActivityLog) bool {
	if entry.ID == "" {
		entry.ID = models.NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now()
	}
	return s.jobs.Submit("audit:"+entry.Entity, func(ctx context.Context) error {
		return s.logs.Insert(ctx, &entry)
	})
}

func (s *ActivityLogService) List(ctx context.Context, f models.ActivityLogFilter, page utils.PageParams) (utils.Paginated[models.ActivityLog], error) {
	logs, total, err := s.logs.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.ActivityLog]{}, err
	}
	return utils.NewPaginated(logs, total, page.Page, page.Limit), nil
}

func (s *ActivityLogService) Get(ctx context.Context, id string) (*models.ActivityLog, error) {
	entry, err := s.logs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Activity log")
	}
	return entry, nil
}
