package service

import (
	"context"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCreateDefaultsAndComplete(t *testing.T) {
	fx := newFixture()
	svc := NewTaskService(fx.tasks, fx.customers, fx.deals)
	ctx := context.Background()

	task, err := svc.Create(ctx, models.CreateTaskRequest{Title: "Follow up", Type: models.TaskTypeFOLLOW_UP}, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskPriorityMEDIUM, task.Priority)
	assert.Equal(t, models.TaskStatusPENDING, task.Status)
	assert.Equal(t, "rep-1", task.AssignedUserID)
	assert.Nil(t, task.CompletedAt)

	done, err := svc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCOMPLETED, done.Status)
	require.NotNil(t, done.CompletedAt)

	reopen := models.TaskStatusIN_PROGRESS
	reopened, err := svc.Update(ctx, task.ID, models.UpdateTaskRequest{Status: &reopen})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	_, err = svc.Create(ctx, models.CreateTaskRequest{Title: "x", Type: models.TaskTypeDEMO, CustomerID: models.NewID()}, "rep-1")
	requireStatus(t, err, statusNotFound)
}

func TestTaskOverdueAndToday(t *testing.T) {
	fx := newFixture()
	svc := NewTaskService(fx.tasks, fx.customers, fx.deals)
	ctx := context.Background()

	current := now()
	yesterday := current.Add(-24 * time.Hour)
	start, _ := dayBounds(current)
	laterToday := start.Add(23*time.Hour + 59*time.Minute)

	for _, tk := range []*models.Task{
		{ID: models.NewID(), Title: "late", Status: models.TaskStatusPENDING, DueDate: &yesterday, AssignedUserID: "rep"},
		{ID: models.NewID(), Title: "late but done", Status: models.TaskStatusCOMPLETED, DueDate: &yesterday, AssignedUserID: "rep"},
		{ID: models.NewID(), Title: "today", Status: models.TaskStatusPENDING, DueDate: &laterToday, AssignedUserID: "rep"},
		{ID: models.NewID(), Title: "someone else", Status: models.TaskStatusPENDING, DueDate: &yesterday, AssignedUserID: "other"},
	} {
		require.NoError(t, fx.tasks.Create(ctx, tk))
	}

	overdue, err := svc.Overdue(ctx, "rep", firstPage)
	require.NoError(t, err)
	require.Len(t, overdue.Data, 1)
	assert.Equal(t, "late", overdue.Data[0].Title)

	today, err := svc.Today(ctx, "rep", firstPage)
	require.NoError(t, err)
	titles := make([]string, len(today.Data))
	for i, tk := range today.Data {
		titles[i] = tk.Title
	}
	assert.Contains(t, titles, "today")
	assert.NotContains(t, titles, "late but done")

	all, err := svc.AllOverdue(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTagDeleteUnlinksCustomers(t *testing.T) {
	fx := newFixture()
	tags := NewTagService(fx.tags, fx.customerTags)
	ctx := context.Background()
	c := fx.addCustomer("t@example.com")

	tag, err := tags.Create(ctx, models.CreateTagRequest{Name: " vip "})
	require.NoError(t, err)
	assert.Equal(t, "vip", tag.Name)
	assert.Equal(t, models.DefaultTagColor, tag.Color)

	_, err = tags.Create(ctx, models.CreateTagRequest{Name: "vip"})
	requireStatus(t, err, statusConflict)

	_, err = fx.customerTags.Add(ctx, c.ID, tag.ID)
	require.NoError(t, err)
	require.NoError(t, tags.Delete(ctx, tag.ID))

	linked, err := fx.customerTags.TagIDsByCustomer(ctx, []string{c.ID})
	require.NoError(t, err)
	assert.Empty(t, linked[c.ID])
}
