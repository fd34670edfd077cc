package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
	"github.com/BerniceZTT/crm_api/worker"
)

// The interfaces below are satisfied by the repository package. Services
// depend on them so tests can run against in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, f models.UserFilter, page utils.PageParams) ([]models.User, int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, f models.CustomerFilter, page utils.PageParams) ([]models.Customer, int64, error)
	FindAll(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error)
	StatusSummary(ctx context.Context) ([]models.StatusSummary, error)
}

type CustomerTagStore interface {
	Add(ctx context.Context, customerID, tagID string) (*models.CustomerTag, error)
	Remove(ctx context.Context, customerID, tagID string) error
	Replace(ctx context.Context, customerID string, tagIDs []string) error
	TagIDsByCustomer(ctx context.Context, customerIDs []string) (map[string][]string, error)
	CustomerIDsWithAnyTag(ctx context.Context, tagIDs []string) ([]string, error)
	DeleteByTag(ctx context.Context, tagID string) error
}

type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error)
	FindOrCreateByName(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page utils.PageParams) ([]models.Tag, int64, error)
}

type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, id string) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.ContactFilter, page utils.PageParams) ([]models.Contact, int64, error)
	FindAll(ctx context.Context, f models.ContactFilter) ([]models.Contact, error)
	ClearPrimary(ctx context.Context, customerID string, typ models.ContactType, exceptID string) error
	CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error)
}

type DealStore interface {
	Create(ctx context.Context, deal *models.Deal) error
	FindByID(ctx context.Context, id string) (*models.Deal, error)
	Update(ctx context.Context, deal *models.Deal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.DealFilter, page utils.PageParams) ([]models.Deal, int64, error)
	FindAll(ctx context.Context, f models.DealFilter) ([]models.Deal, error)
	CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error)
	StageTotals(ctx context.Context, f models.DealFilter) ([]models.StageBucket, error)
}

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.TaskFilter, page utils.PageParams) ([]models.Task, int64, error)
	FindAll(ctx context.Context, f models.TaskFilter) ([]models.Task, error)
	StatusCounts(ctx context.Context, customerID string) (map[string]int64, error)
	CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error)
}

type InteractionStore interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	FindByID(ctx context.Context, id string) (*models.Interaction, error)
	Update(ctx context.Context, interaction *models.Interaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.InteractionFilter, page utils.PageParams) ([]models.Interaction, int64, error)
	FindAll(ctx context.Context, f models.InteractionFilter) ([]models.Interaction, error)
	TypeCounts(ctx context.Context, customerID string) (map[string]int64, error)
	CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error)
}

type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f models.NoteFilter, page utils.PageParams) ([]models.Note, int64, error)
	FindAll(ctx context.Context, f models.NoteFilter) ([]models.Note, error)
	CountByCustomers(ctx context.Context, customerIDs []string) (map[string]int64, error)
}

type ActivityLogStore interface {
	Insert(ctx context.Context, entry *models.ActivityLog) error
	FindByID(ctx context.Context, id string) (*models.ActivityLog, error)
	List(ctx context.Context, f models.ActivityLogFilter, page utils.PageParams) ([]models.ActivityLog, int64, error)
}

type ApprovalStore interface {
	Create(ctx context.Context, req *models.ApprovalRequest) error
	FindByID(ctx context.Context, id string) (*models.ApprovalRequest, error)
	UpdateFromStatus(ctx context.Context, req *models.ApprovalRequest, from models.ApprovalStatus) error
	List(ctx context.Context, f models.ApprovalFilter, page utils.PageParams) ([]models.ApprovalRequest, int64, error)
}

// Submitter hands work to the background dispatcher.
type Submitter interface {
	Submit(name string, fn worker.Job) bool
}
