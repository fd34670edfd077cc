package routes

import (
	"context"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/controllers"
	"github.com/BerniceZTT/crm_api/middleware"
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// Cache prefixes. Writes to any entity shown inside a customer view drop
// the customers prefix too.
const (
	customersCache = "customers"
	dealsCache     = "deals"
)

// Dependencies is everything the route tables need from main.
type Dependencies struct {
	Tokens   *utils.TokenService
	Cache    cache.Backend
	CacheTTL time.Duration
	Audit    middleware.Recorder

	RateLimitMax    int
	RateLimitWindow time.Duration
	SecureCookies   bool

	Users        *service.UserService
	Customers    *service.CustomerService
	Contacts     *service.ContactService
	Deals        *service.DealService
	Tasks        *service.TaskService
	Interactions *service.InteractionService
	Notes        *service.NoteService
	Tags         *service.TagService
	ActivityLogs *service.ActivityLogService
	Approvals    *service.ApprovalService

	Database controllers.Database
	Jobs     controllers.JobStats
}

var (
	managers   = []string{string(models.UserRoleADMIN), string(models.UserRoleSALES_MANAGER)}
	salesRoles = []string{string(models.UserRoleADMIN), string(models.UserRoleSALES_MANAGER), string(models.UserRoleSALES_REP)}
)

// RegisterRoutes mounts every API group under /api.
func RegisterRoutes(router *gin.Engine, d *Dependencies) {
	api := router.Group("/api")

	RegisterUserRoutes(api, d)
	RegisterCustomerRoutes(api, d)
	RegisterContactRoutes(api, d)
	RegisterDealRoutes(api, d)
	RegisterTaskRoutes(api, d)
	RegisterInteractionRoutes(api, d)
	RegisterNoteRoutes(api, d)
	RegisterTagRoutes(api, d)
	RegisterActivityLogRoutes(api, d)
	RegisterApprovalRoutes(api, d)

	health := controllers.NewHealthController(d.Database, d.Cache, d.Jobs)
	api.GET("/health", health.Health)
	api.GET("/db-status", middleware.Authenticate(d.Tokens), middleware.Authorize(managers...), health.DatabaseStatus)
}

func (d *Dependencies) authenticated(group *gin.RouterGroup) {
	group.Use(middleware.Authenticate(d.Tokens))
}

func (d *Dependencies) audit(entity string, load func(context.Context, string) (interface{}, error)) gin.HandlerFunc {
	return middleware.Audit(d.Audit, middleware.AuditDescriptor{Entity: entity, Load: load})
}

// auditCreate records a new row whose id is read from the response.
func (d *Dependencies) auditCreate(entity string) gin.HandlerFunc {
	return middleware.Audit(d.Audit, middleware.AuditDescriptor{Entity: entity})
}

func (d *Dependencies) cached(prefix string) gin.HandlerFunc {
	return middleware.ResponseCache(d.Cache, prefix, d.CacheTTL)
}

func (d *Dependencies) invalidate(prefixes ...string) gin.HandlerFunc {
	return middleware.InvalidateCache(d.Cache, prefixes...)
}
