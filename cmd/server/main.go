package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/audit"
	"github.com/silverstage/silverstage-api/internal/auth"
	"github.com/silverstage/silverstage-api/internal/config"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/database"
	"github.com/silverstage/silverstage-api/internal/handlers"
	"github.com/silverstage/silverstage-api/internal/logger"
	"github.com/silverstage/silverstage-api/internal/middleware"
	"github.com/silverstage/silverstage-api/internal/notify"
	"github.com/silverstage/silverstage-api/internal/policy"
	"github.com/silverstage/silverstage-api/internal/ratelimit"
	"github.com/silverstage/silverstage-api/internal/repository"
	"github.com/silverstage/silverstage-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	appLog := logger.New(cfg.LogLevel)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(appLog))

	// Setup session middleware with a cookie store
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	invRepo := repository.NewInvitationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	entryRepo := repository.NewTimeEntryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Initialize shared infrastructure
	auditWriter := audit.NewWriter(auditRepo, appLog)
	hub := notify.NewHub()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	limiter := ratelimit.NewLimiter()
	stopSweep := limiter.StartSweep(time.Minute)
	defer stopSweep()

	// Initialize services
	notifier := services.NewNotificationService(notificationRepo, hub, appLog)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, auditWriter, notifier)
	invitationService := services.NewInvitationService(invRepo, userRepo, auditWriter)
	timeEntryService := services.NewTimeEntryService(entryRepo, auditWriter, notifier)
	eventService := services.NewEventService(eventRepo, facilityRepo, userRepo, auditWriter, notifier)
	facilityService := services.NewFacilityService(facilityRepo, auditWriter)
	workSessionService := services.NewWorkSessionService(sessionRepo, auditWriter)
	messageService := services.NewMessageService(messageRepo, userRepo, notifier)
	attachmentService := services.NewAttachmentService(attachmentRepo, auditWriter)
	reminderService := services.NewReminderService(eventRepo, entryRepo, userRepo, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	notificationHandler := handlers.NewNotificationHandler(notifier, hub)
	timeEntryHandler := handlers.NewTimeEntryHandler(timeEntryService)
	eventHandler := handlers.NewEventHandler(eventService)
	facilityHandler := handlers.NewFacilityHandler(facilityService)
	workSessionHandler := handlers.NewWorkSessionHandler(workSessionService)
	messageHandler := handlers.NewMessageHandler(messageService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	cronHandler := handlers.NewCronHandler(reminderService, cfg.CronSecret)

	requireAuth := middleware.RequireAuth(tokens)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SilverStage API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login",
				middleware.RateLimit(limiter, constants.LoginRateLimit, constants.LoginRateWindow),
				authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Recovery path for broken sessions (public)
		api.GET("/clear-session", authHandler.ClearSession)

		// Invitation acceptance is the only unauthenticated mutation
		api.POST("/invitations/accept",
			middleware.RateLimit(limiter, constants.AcceptRateLimit, constants.AcceptRateWindow),
			invitationHandler.AcceptInvitation)

		// Cron endpoint authenticates with a shared secret, not a session
		api.GET("/cron/reminders", cronHandler.RunReminders)
		api.POST("/cron/reminders", cronHandler.RunReminders)

		// Invitation routes (protected)
		invitations := api.Group("/invitations")
		invitations.Use(requireAuth)
		{
			invitations.POST("", middleware.RequirePermission(policy.ActionInvitationCreate), invitationHandler.CreateInvitation)
			invitations.GET("", middleware.RequirePermission(policy.ActionInvitationList), invitationHandler.ListInvitations)
			invitations.DELETE("/:id", middleware.RequirePermission(policy.ActionInvitationCancel), invitationHandler.CancelInvitation)
		}

		// User management routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", middleware.RequirePermission(policy.ActionUserList), userHandler.ListUsers)
			users.PATCH("/:id/role", middleware.RequirePermission(policy.ActionUserManage), userHandler.UpdateRole)
			users.PATCH("/:id/status", middleware.RequirePermission(policy.ActionUserManage), userHandler.UpdateStatus)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/stream", notificationHandler.Stream)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// Time entry routes (protected)
		timeEntries := api.Group("/time-entries")
		timeEntries.Use(requireAuth)
		{
			timeEntries.POST("", timeEntryHandler.SubmitTimeEntry)
			timeEntries.GET("", timeEntryHandler.ListTimeEntries)
			timeEntries.GET("/pending", middleware.RequirePermission(policy.ActionTimeEntryListAll), timeEntryHandler.ListPendingTimeEntries)
			timeEntries.POST("/:id/approve", middleware.RequirePermission(policy.ActionTimeEntryReview), timeEntryHandler.ApproveTimeEntry)
			timeEntries.POST("/:id/reject", middleware.RequirePermission(policy.ActionTimeEntryReview), timeEntryHandler.RejectTimeEntry)
		}

		// Work session routes (protected)
		workSessions := api.Group("/work-sessions")
		workSessions.Use(requireAuth)
		{
			workSessions.POST("/start", workSessionHandler.StartWorkSession)
			workSessions.POST("/stop", workSessionHandler.StopWorkSession)
			workSessions.GET("", workSessionHandler.ListWorkSessions)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.POST("", middleware.RequirePermission(policy.ActionEventRequest), eventHandler.RequestEvent)
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.PATCH("/:id/status", middleware.RequirePermission(policy.ActionEventSetStatus), eventHandler.SetEventStatus)
			events.POST("/:id/assign", middleware.RequirePermission(policy.ActionEventAssign), eventHandler.AssignFacilitators)
		}

		// Facility routes (protected)
		facilities := api.Group("/facilities")
		facilities.Use(requireAuth)
		{
			facilities.POST("", middleware.RequirePermission(policy.ActionFacilityManage), facilityHandler.CreateFacility)
			facilities.GET("", facilityHandler.ListFacilities)
			facilities.GET("/:id", facilityHandler.GetFacility)
			facilities.PUT("/:id", middleware.RequirePermission(policy.ActionFacilityManage), facilityHandler.UpdateFacility)
		}

		// Message routes (protected)
		messages := api.Group("/messages")
		messages.Use(requireAuth)
		{
			messages.POST("", messageHandler.SendMessage)
			messages.GET("", messageHandler.Inbox)
			messages.PATCH("/:id/read", messageHandler.MarkMessageRead)
		}

		// Attachment routes (protected)
		attachments := api.Group("/attachments")
		attachments.Use(requireAuth)
		{
			attachments.POST("", attachmentHandler.RecordAttachment)
			attachments.GET("", attachmentHandler.ListAttachments)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
