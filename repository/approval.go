package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type ApprovalRepository struct {
	approvals collection[models.ApprovalRequest]
}

func NewApprovalRepository(s *Store) *ApprovalRepository {
	return &ApprovalRepository{approvals: newCollection[models.ApprovalRequest](s, ApprovalsCollection)}
}

func (r *ApprovalRepository) Create(ctx context.Context, req *models.ApprovalRequest) error {
	return r.approvals.insert(ctx, req)
}

func (r *ApprovalRepository) FindByID(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	return r.approvals.findByID(ctx, id)
}

// UpdateFromStatus saves req only if the stored status is still from.
// It returns ErrConflict when another writer got there first.
func (r *ApprovalRepository) UpdateFromStatus(ctx context.Context, req *models.ApprovalRequest, from models.ApprovalStatus) error {
	res, err := r.approvals.coll.ReplaceOne(ctx, bson.M{"_id": req.ID, "status": from}, req)
	if err != nil {
		return r.approvals.wrap("replace", err)
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}

func (r *ApprovalRepository) List(ctx context.Context, f models.ApprovalFilter, page utils.PageParams) ([]models.ApprovalRequest, int64, error) {
	return r.approvals.findPage(ctx, approvalFilter(f), newestFirst, page)
}
