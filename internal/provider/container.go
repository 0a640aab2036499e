package provider

import (
	"github.com/partnerconnector/internal/authz"
	"github.com/partnerconnector/internal/cache"
	"github.com/partnerconnector/internal/config"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/queue"
	"github.com/partnerconnector/internal/repository"
	"github.com/partnerconnector/internal/service"
)

// Container wires repositories and services together.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo      repository.AdminRepository
	UserRepo       repository.UserRepository
	DealRepo       repository.DealRepository
	CommissionRepo repository.CommissionRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	PartnerAuthService  *service.PartnerAuthService
	EmailService        *service.EmailService
	HierarchyService    *service.HierarchyService
	DealService         *service.DealService
	CommissionService   *service.CommissionService
	NotificationService *service.NotificationService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.DealRepo = repository.NewDealRepository(db)
	c.CommissionRepo = repository.NewCommissionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.Bootstrap(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.PartnerAuthService = service.NewPartnerAuthService(c.Config, c.UserRepo)
	c.HierarchyService = service.NewHierarchyService(c.UserRepo)
	c.DealService = service.NewDealService(c.DealRepo, c.UserRepo, c.QueueClient)
	c.CommissionService = service.NewCommissionService(c.CommissionRepo, c.DealRepo, c.UserRepo, c.HierarchyService, c.QueueClient)
	c.NotificationService = service.NewNotificationService(c.CommissionRepo, c.DealRepo, c.UserRepo, c.EmailService)
}
