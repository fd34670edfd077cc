package service

import (
	"context"
	"errors"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"
)

// ApprovalService runs the sign-off workflow. Only PENDING requests accept
// an action; RETURNED requests go back to PENDING when resubmitted.
type ApprovalService struct {
	approvals ApprovalStore
}

func NewApprovalService(approvals ApprovalStore) *ApprovalService {
	return &ApprovalService{approvals: approvals}
}

func (s *ApprovalService) Create(ctx context.Context, req models.CreateApprovalRequest, requesterID string) (*models.ApprovalRequest, error) {
	approval := &models.ApprovalRequest{
		ID:          models.NewID(),
		Entity:      req.Entity,
		EntityID:    req.EntityID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ApprovalStatusPENDING,
		RequestedBy: requesterID,
		History:     []models.ApprovalStep{},
	}
	approval.Touch(now())

	if err := s.approvals.Create(ctx, approval); err != nil {
		return nil, err
	}
	return approval, nil
}

func (s *ApprovalService) List(ctx context.Context, f models.ApprovalFilter, page utils.PageParams) (utils.Paginated[models.ApprovalRequest], error) {
	items, total, err := s.approvals.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.ApprovalRequest]{}, err
	}
	return utils.NewPaginated(items, total, page.Page, page.Limit), nil
}

func (s *ApprovalService) Get(ctx context.Context, id string) (*models.ApprovalRequest, error) {
	approval, err := s.approvals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Approval request")
	}
	return approval, nil
}

// Process applies an approver's action to a pending request.
func (s *ApprovalService) Process(ctx context.Context, req models.ProcessApprovalRequest, approver *utils.LoginUser) (*models.ApprovalRequest, error) {
	next, ok := req.Action.ResultStatus()
	if !ok {
		return nil, utils.CreateBadRequestError("Unknown approval action " + string(req.Action))
	}

	approval, err := s.approvals.FindByID(ctx, req.ApprovalRequestID)
	if err != nil {
		return nil, notFound(err, "Approval request")
	}
	if approval.Status != models.ApprovalStatusPENDING {
		return nil, utils.CreateConflictError("Approval request is " + string(approval.Status) + ", only PENDING requests can be processed")
	}
	if approval.RequestedBy == approver.ID {
		return nil, utils.CreateForbiddenError()
	}

	approval.History = append(approval.History, models.ApprovalStep{
		UserID:  approver.ID,
		Role:    models.UserRole(approver.Role),
		Action:  req.Action,
		Remarks: req.Remarks,
		At:      now(),
	})
	approval.Status = next
	approval.Touch(now())

	if err := s.save(ctx, approval, models.ApprovalStatusPENDING); err != nil {
		return nil, err
	}
	return approval, nil
}

// Resubmit reopens a returned request. Only the requester may do this.
func (s *ApprovalService) Resubmit(ctx context.Context, id string, caller *utils.LoginUser) (*models.ApprovalRequest, error) {
	approval, err := s.approvals.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Approval request")
	}
	if approval.RequestedBy != caller.ID {
		return nil, utils.CreateForbiddenError()
	}
	if approval.Status != models.ApprovalStatusRETURNED {
		return nil, utils.CreateConflictError("Only RETURNED requests can be resubmitted")
	}

	approval.Status = models.ApprovalStatusPENDING
	approval.Touch(now())
	if err := s.save(ctx, approval, models.ApprovalStatusRETURNED); err != nil {
		return nil, err
	}
	return approval, nil
}

func (s *ApprovalService) save(ctx context.Context, approval *models.ApprovalRequest, from models.ApprovalStatus) error {
	err := s.approvals.UpdateFromStatus(ctx, approval, from)
	if errors.Is(err, repository.ErrConflict) {
		return utils.CreateConflictError("Approval request was processed concurrently")
	}
	return err
}
