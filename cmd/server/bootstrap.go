package main

import (
	"github.com/audithub/audithub/internal/authz"
	"github.com/audithub/audithub/internal/config"
	"github.com/audithub/audithub/internal/handlers"
	"github.com/audithub/audithub/internal/models"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/internal/utils"
	"github.com/audithub/audithub/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	orgService *services.OrganizationService
	guard      *authz.Guard
	owners     *authz.OwnerRegistry

	authHandler      *handlers.AuthHandler
	orgHandler       *handlers.OrganizationHandler
	libraryHandler   *handlers.LibraryHandler
	tagHandler       *handlers.TagHandler
	projectHandler   *handlers.ProjectHandler
	auditHandler     *handlers.ProjectAuditHandler
	commentHandler   *handlers.CommentHandler
	promptHandler    *handlers.PromptHandler
	systemLogHandler *handlers.SystemLogHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()

	services.InitSystemLogger(db)
	services.StartLogCleanupScheduler(db, cfg.Log.RetentionDays)

	orgService := services.NewOrganizationService(db)
	guard := authz.NewGuard(orgService)
	owners := services.BuildOwnerRegistry(db)

	authService := services.NewAuthService(db, &cfg.JWT, &cfg.LDAP)
	chatService := services.NewChatService(&cfg.AI)

	return &appServices{
		orgService: orgService,
		guard:      guard,
		owners:     owners,

		authHandler:      handlers.NewAuthHandler(authService),
		orgHandler:       handlers.NewOrganizationHandler(orgService),
		libraryHandler:   handlers.NewLibraryHandler(services.NewLibraryService(db)),
		tagHandler:       handlers.NewTagHandler(services.NewTagService(db)),
		projectHandler:   handlers.NewProjectHandler(services.NewProjectService(db)),
		auditHandler:     handlers.NewProjectAuditHandler(services.NewProjectAuditService(db)),
		commentHandler:   handlers.NewCommentHandler(services.NewCommentService(db)),
		promptHandler:    handlers.NewPromptHandler(services.NewPromptService(db, chatService)),
		systemLogHandler: handlers.NewSystemLogHandler(services.NewSystemLogService(db)),
		healthHandler:    handlers.NewHealthHandler(),
	}
}
