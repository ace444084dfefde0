package main

import (
	"github.com/audithub/audithub/internal/middleware"
	"github.com/audithub/audithub/internal/services"
	"github.com/audithub/audithub/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for AI chat routes
	chatLimiter := middleware.NewRateLimiter(1, 5)

	gate := func(kind, param string, destructive bool) gin.HandlerFunc {
		return middleware.Gate(svc.guard, svc.owners, kind, param, destructive)
	}

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.GET("/info", svc.authHandler.Info)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(
			middleware.AuthRequired(),
			middleware.OrganizationScope(svc.orgService),
			middleware.AuditLog(),
		)
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.Me)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Organizations. Listing, creating and switching need no
			// selected organization; they are how one gets selected.
			protected.GET("/organizations", svc.orgHandler.List)
			protected.POST("/organizations", svc.orgHandler.Create)
			protected.POST("/organizations/:id/switch", svc.orgHandler.Switch)

			// Membership management is scoped to the organization itself
			orgKind := services.KindOrganization
			protected.GET("/organizations/:id/members", gate(orgKind, "id", false), svc.orgHandler.ListMembers)
			protected.POST("/organizations/:id/members", gate(orgKind, "id", false), svc.orgHandler.AddMember)
			protected.PUT("/organizations/:id/members/:member_id", gate(orgKind, "id", false), svc.orgHandler.UpdateMemberRole)
			protected.DELETE("/organizations/:id/members/:member_id", gate(orgKind, "id", false), svc.orgHandler.RemoveMember)

			// Audit libraries and criteria
			protected.GET("/libraries", gate(services.KindLibrary, "", false), svc.libraryHandler.List)
			protected.POST("/libraries", gate(services.KindLibrary, "", false), svc.libraryHandler.Create)
			protected.GET("/libraries/:id", gate(services.KindLibrary, "id", false), svc.libraryHandler.Get)
			protected.PUT("/libraries/:id", gate(services.KindLibrary, "id", false), svc.libraryHandler.Update)
			protected.DELETE("/libraries/:id", gate(services.KindLibrary, "id", true), svc.libraryHandler.Delete)
			protected.GET("/libraries/:id/criteria", gate(services.KindLibrary, "id", false), svc.libraryHandler.ListCriteria)
			protected.POST("/libraries/:id/criteria", gate(services.KindLibrary, "id", false), svc.libraryHandler.CreateCriterion)
			protected.GET("/criteria/:id", gate(services.KindCriterion, "id", false), svc.libraryHandler.GetCriterion)
			protected.PUT("/criteria/:id", gate(services.KindCriterion, "id", false), svc.libraryHandler.UpdateCriterion)
			protected.DELETE("/criteria/:id", gate(services.KindCriterion, "id", true), svc.libraryHandler.DeleteCriterion)

			// Tags
			protected.GET("/tags", gate(services.KindTag, "", false), svc.tagHandler.List)
			protected.POST("/tags", gate(services.KindTag, "", false), svc.tagHandler.Create)
			protected.PUT("/tags/:id", gate(services.KindTag, "id", false), svc.tagHandler.Update)
			protected.DELETE("/tags/:id", gate(services.KindTag, "id", true), svc.tagHandler.Delete)

			// Projects and resources
			protected.GET("/projects", gate(services.KindProject, "", false), svc.projectHandler.List)
			protected.POST("/projects", gate(services.KindProject, "", false), svc.projectHandler.Create)
			protected.GET("/projects/:id", gate(services.KindProject, "id", false), svc.projectHandler.Get)
			protected.PUT("/projects/:id", gate(services.KindProject, "id", false), svc.projectHandler.Update)
			protected.DELETE("/projects/:id", gate(services.KindProject, "id", true), svc.projectHandler.Delete)
			protected.GET("/projects/:id/resources", gate(services.KindProject, "id", false), svc.projectHandler.ListResources)
			protected.POST("/projects/:id/resources", gate(services.KindProject, "id", false), svc.projectHandler.CreateResource)
			protected.PUT("/resources/:id", gate(services.KindResource, "id", false), svc.projectHandler.UpdateResource)
			protected.DELETE("/resources/:id", gate(services.KindResource, "id", true), svc.projectHandler.DeleteResource)

			// Project audits
			protected.GET("/projects/:id/audits", gate(services.KindProject, "id", false), svc.auditHandler.List)
			protected.POST("/projects/:id/audits", gate(services.KindProject, "id", false), svc.auditHandler.Create)
			protected.GET("/audits/:id", gate(services.KindAudit, "id", false), svc.auditHandler.Get)
			protected.POST("/audits/:id/archive", gate(services.KindAudit, "id", false), svc.auditHandler.Archive)
			protected.DELETE("/audits/:id", gate(services.KindAudit, "id", true), svc.auditHandler.Delete)
			protected.GET("/audit-criteria/:id", gate(services.KindAuditCriterion, "id", false), svc.auditHandler.GetCriterion)
			protected.PUT("/audit-criteria/:id/status", gate(services.KindAuditCriterion, "id", false), svc.auditHandler.UpdateCriterionStatus)

			// Comments
			protected.GET("/audit-criteria/:id/comments", gate(services.KindAuditCriterion, "id", false), svc.commentHandler.List)
			protected.POST("/audit-criteria/:id/comments", gate(services.KindAuditCriterion, "id", false), svc.commentHandler.Create)
			protected.PUT("/comments/:id", gate(services.KindComment, "id", false), svc.commentHandler.Update)
			protected.DELETE("/comments/:id", gate(services.KindComment, "id", true), svc.commentHandler.Delete)

			// AI chat sessions
			protected.GET("/audit-criteria/:id/prompts", gate(services.KindAuditCriterion, "id", false), svc.promptHandler.List)
			protected.POST("/audit-criteria/:id/prompts", gate(services.KindAuditCriterion, "id", false), svc.promptHandler.Create)
			protected.GET("/prompts/:id", gate(services.KindPrompt, "id", false), svc.promptHandler.Get)
			protected.DELETE("/prompts/:id", gate(services.KindPrompt, "id", true), svc.promptHandler.Delete)
			protected.POST("/prompts/:id/messages",
				chatLimiter.Middleware(),
				gate(services.KindPrompt, "id", false),
				svc.promptHandler.SubmitMessage)

			// System logs
			protected.GET("/system-logs", svc.systemLogHandler.List)
			protected.GET("/system-logs/modules", svc.systemLogHandler.Modules)
		}
	}
}
