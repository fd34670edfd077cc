package repository

import (
	"context"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var dueSoonest = bson.D{{Key: "dueDate", Value: 1}, {Key: "createdAt", Value: -1}}

type TaskRepository struct {
	tasks collection[models.Task]
}

func NewTaskRepository(s *Store) *TaskRepository {
	return &TaskRepository{tasks: newCollection[models.Task](s, TasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.tasks.insert(ctx, task)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	return r.tasks.findByID(ctx, id)
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.tasks.replace(ctx, task.ID, task)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.tasks.deleteByID(ctx, id)
}

func (r *TaskRepository) List(ctx context.Context, f models.TaskFilter, page utils.PageParams) ([]models.Task, int64, error) {
	return r.tasks.findPage(ctx, taskFilter(f), dueSoonest, page)
}

func (r *TaskRepository) FindAll(ctx context.Context, f models.TaskFilter) ([]models.Task, error) {
	return r.tasks.findMany(ctx, taskFilter(f), options.Find().SetSort(dueSoonest))
}

func (r *TaskRepository) StatusCounts(ctx context.Context, customerID string) (map[string]int64, error) {
	return r.tasks.countGrouped(ctx, bson.M{"customerId": customerID}, "status")
}

func (r *TaskRepository) CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error) {
	return r.tasks.countGrouped(ctx, bson.M{"customerId": bson.M{"$in": customerIDs}}, "customerId")
}
