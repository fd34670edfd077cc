package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/config"
	"github.com/BerniceZTT/crm_api/middleware"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/routes"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"
	"github.com/BerniceZTT/crm_api/worker"

	"github.com/gin-gonic/gin"
)

const (
	jobTimeout      = 30 * time.Second
	shutdownTimeout = 5 * time.Second
	drainTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logCloser := utils.InitLogger(utils.LogOptions{
		Level:      cfg.LogLevel,
		Console:    cfg.Debug(),
		File:       cfg.LogPath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	defer logCloser.Close()

	utils.SetErrorDetail(!cfg.IsProduction())
	if cfg.Debug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := repository.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	initializeDatabase(ctx, store, cfg)

	backend, closeCache := openCache(ctx, cfg)
	jobs := worker.NewDispatcher(cfg.WorkerCount, cfg.WorkerQueueSize, jobTimeout)

	var mailer service.Mailer
	if cfg.MailEnabled() {
		mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		utils.Logger.Warn().Msg("SMTP_HOST not set, email notifications are disabled")
	}
	notifier := service.NewNotifier(mailer, jobs)

	tokens := utils.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTTL(), cfg.RefreshTTL(), cfg.ResetTTL())

	users := repository.NewUserRepository(store)
	customerTags := repository.NewCustomerTagRepository(store)
	customers := repository.NewCustomerRepository(store, customerTags)
	tags := repository.NewTagRepository(store)
	contacts := repository.NewContactRepository(store)
	deals := repository.NewDealRepository(store)
	tasks := repository.NewTaskRepository(store)
	interactions := repository.NewInteractionRepository(store)
	notes := repository.NewNoteRepository(store)

	userService := service.NewUserService(users, tokens, notifier)
	taskService := service.NewTaskService(tasks, customers, deals)
	activityLogs := service.NewActivityLogService(repository.NewActivityLogRepository(store), jobs)

	deps := &routes.Dependencies{
		Tokens:          tokens,
		Cache:           backend,
		CacheTTL:        cfg.ResponseCacheTTL(),
		Audit:           activityLogs,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateWindow(),
		SecureCookies:   cfg.IsProduction(),

		Users: userService,
		Customers: service.NewCustomerService(service.CustomerDeps{
			Customers:    customers,
			CustomerTags: customerTags,
			Tags:         tags,
			Contacts:     contacts,
			Deals:        deals,
			Tasks:        tasks,
			Interactions: interactions,
			Notes:        notes,
			Users:        users,
			Local:        cache.NewMemory(cfg.LocalCacheTTL()),
		}),
		Contacts:     service.NewContactService(contacts, customers),
		Deals:        service.NewDealService(deals, customers),
		Tasks:        taskService,
		Interactions: service.NewInteractionService(interactions, customers, deals),
		Notes:        service.NewNoteService(notes, contacts, deals, tasks, interactions),
		Tags:         service.NewTagService(tags, customerTags),
		ActivityLogs: activityLogs,
		Approvals:    service.NewApprovalService(repository.NewApprovalRepository(store)),

		Database: store,
		Jobs:     jobs,
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOriginList()))
	router.Use(middleware.ErrorHandler())
	routes.RegisterRoutes(router, deps)

	digest := service.NewOverdueDigest(taskService, userService, notifier)
	service.ScheduleDailyTaskAt(ctx, cfg.OverdueDigestHour, 0, 0, func(ctx context.Context) {
		sent := digest.Run(ctx)
		utils.Logger.Info().Int("sent", sent).Msg("overdue task digest finished")
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Int("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	utils.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("server shutdown failed")
	}

	drainCtx, cancelDrain := context.WithTimeout(context.Background(), drainTimeout)
	defer cancelDrain()
	if err := jobs.Close(drainCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("background jobs did not drain")
	}
	closeCache()
	if err := store.Close(drainCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("mongodb disconnect failed")
	}

	utils.Logger.Info().Msg("server stopped")
}

// initializeDatabase creates collections, indexes and the first admin.
// Failures are logged and the server still starts.
func initializeDatabase(ctx context.Context, store *repository.Store, cfg *config.Config) {
	utils.Logger.Info().Msg("initializing database")
	if err := store.InitializeCollections(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to initialize collections")
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("failed to hash admin password")
		return
	}
	if err := store.InitializeAdminAccount(ctx, cfg.AdminEmail, hash); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to initialize admin account")
	}
}

// openCache uses Redis when REDIS_ADDR is set and reachable, the in-process
// cache otherwise.
func openCache(ctx context.Context, cfg *config.Config) (cache.Backend, func()) {
	if cfg.RedisAddr != "" {
		redis, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			return redis, func() {
				if err := redis.Close(); err != nil {
					utils.Logger.Error().Err(err).Msg("redis close failed")
				}
			}
		}
		utils.Logger.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
	}
	return cache.NewMemory(cfg.ResponseCacheTTL()), func() {}
}
