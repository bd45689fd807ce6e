package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/care-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	gridCache *cache.GridCache,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	buildGridUC := ucSchedule.NewBuildGrid(
		scheduleRepo,
		gridCache,
		ucSchedule.GridSettings{
			DefaultInterval: cfg.Schedule.DefaultInterval,
			SlotWidth:       cfg.Schedule.SlotWidth,
			MinBlockWidth:   cfg.Schedule.MinBlockWidth,
		},
	)

	reassignBookingUC := ucSchedule.NewReassignBooking(
		scheduleRepo,
		gridCache,
		auditDispatcher,
	)

	updateBookingStatusUC := ucSchedule.NewUpdateBookingStatus(
		scheduleRepo,
		gridCache,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	branchHandler := handlers.NewBranchHandler(db)
	rosterHandler := handlers.NewRosterHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, gridCache)

	scheduleHandler := handlers.NewScheduleHandler(buildGridUC)
	bookingHandler := handlers.NewBookingHandler(
		reassignBookingUC,
		updateBookingStatusUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/schedule/slots", scheduleHandler.Slots)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/branch", branchHandler.GetMeBranch)
			secured.PATCH("/me/branch", middleware.RequireRole("manager"), branchHandler.UpdateMeBranch)

			secured.GET("/me/clients", rosterHandler.ListClients)
			secured.GET("/me/staff", rosterHandler.ListStaff)

			secured.GET("/me/staff/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/staff/:id/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// SCHEDULE GRIDS
			// ------------------------------
			secured.GET("/me/schedule/staff", scheduleHandler.StaffGrid)
			secured.GET("/me/schedule/clients", scheduleHandler.ClientGrid)

			secured.PATCH("/me/bookings/:id/reassign", bookingHandler.Reassign)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.UpdateStatus)

			secured.GET("/me/audit-logs", middleware.RequireRole("manager"), auditLogsHandler.List)
		}
	}
}
