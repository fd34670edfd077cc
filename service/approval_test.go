package service

import (
	"context"
	"testing"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalWorkflow(t *testing.T) {
	svc := NewApprovalService(newFakeApprovals())
	ctx := context.Background()
	requester := &utils.LoginUser{ID: "rep", Role: string(models.UserRoleSALES_REP)}
	manager := &utils.LoginUser{ID: "mgr", Role: string(models.UserRoleSALES_MANAGER)}

	req, err := svc.Create(ctx, models.CreateApprovalRequest{Entity: "deal", EntityID: models.NewID(), Title: "Discount"}, requester.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPENDING, req.Status)

	_, err = svc.Process(ctx, models.ProcessApprovalRequest{ApprovalRequestID: req.ID, Action: models.ApprovalActionAPPROVE}, requester)
	requireStatus(t, err, statusForbidden)

	returned, err := svc.Process(ctx, models.ProcessApprovalRequest{ApprovalRequestID: req.ID, Action: models.ApprovalActionRETURN, Remarks: "add margin"}, manager)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusRETURNED, returned.Status)
	require.Len(t, returned.History, 1)
	assert.Equal(t, models.UserRoleSALES_MANAGER, returned.History[0].Role)

	_, err = svc.Process(ctx, models.ProcessApprovalRequest{ApprovalRequestID: req.ID, Action: models.ApprovalActionAPPROVE}, manager)
	requireStatus(t, err, statusConflict)

	_, err = svc.Resubmit(ctx, req.ID, manager)
	requireStatus(t, err, statusForbidden)
	reopened, err := svc.Resubmit(ctx, req.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusPENDING, reopened.Status)

	approved, err := svc.Process(ctx, models.ProcessApprovalRequest{ApprovalRequestID: req.ID, Action: models.ApprovalActionAPPROVE}, manager)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalStatusAPPROVED, approved.Status)
	assert.Len(t, approved.History, 2)

	_, err = svc.Resubmit(ctx, req.ID, requester)
	requireStatus(t, err, statusConflict)
}

func TestApprovalUnknownActionAndMissing(t *testing.T) {
	svc := NewApprovalService(newFakeApprovals())
	manager := &utils.LoginUser{ID: "mgr"}

	_, err := svc.Process(context.Background(), models.ProcessApprovalRequest{ApprovalRequestID: models.NewID(), Action: "ESCALATE"}, manager)
	requireStatus(t, err, statusBadReq)

	_, err = svc.Process(context.Background(), models.ProcessApprovalRequest{ApprovalRequestID: models.NewID(), Action: models.ApprovalActionREJECT}, manager)
	requireStatus(t, err, statusNotFound)
}
