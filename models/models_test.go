package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerType(t *testing.T) {
	for _, in := range []string{"contact", "contacts", "deal", "deals", "task", "tasks", "interaction", "interactions"} {
		ot, err := ParseOwnerType(in)
		require.NoError(t, err, in)
		assert.Contains(t, OwnerTypes, ot)
	}

	_, err := ParseOwnerType("customer")
	assert.Error(t, err)
}

func TestNoteOwnerValidate(t *testing.T) {
	assert.NoError(t, NoteOwner{Type: OwnerDeal, ID: NewID()}.Validate())
	assert.Error(t, NoteOwner{Type: "invoice", ID: NewID()}.Validate())
	assert.Error(t, NoteOwner{Type: OwnerTask, ID: "42"}.Validate())
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	assert.True(t, (&Task{Status: TaskStatusPENDING, DueDate: &yesterday}).IsOverdue(now))
	assert.True(t, (&Task{Status: TaskStatusIN_PROGRESS, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusCOMPLETED, DueDate: &yesterday}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPENDING, DueDate: &tomorrow}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPENDING}).IsOverdue(now))
}

func TestApprovalActionResultStatus(t *testing.T) {
	s, ok := ApprovalActionAPPROVE.ResultStatus()
	assert.True(t, ok)
	assert.Equal(t, ApprovalStatusAPPROVED, s)

	s, _ = ApprovalActionRETURN.ResultStatus()
	assert.Equal(t, ApprovalStatusRETURNED, s)

	_, ok = ApprovalAction("ESCALATE").ResultStatus()
	assert.False(t, ok)
}

func TestEnumsValidate(t *testing.T) {
	assert.True(t, DealStageCLOSED_WON.IsValid())
	assert.True(t, DealStageCLOSED_WON.IsClosed())
	assert.False(t, DealStage("WON").IsValid())
	assert.True(t, CustomerStatusLEAD.IsValid())
	assert.False(t, CustomerStatus("lead").IsValid())
	assert.True(t, UserRoleSUPPORT.IsValid())
	assert.True(t, ContactTypeFax.IsValid())
	assert.True(t, IsID(NewID()))
}
