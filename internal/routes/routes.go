package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	"github.com/BruksfildServices01/nail-studio/internal/auth"
	"github.com/BruksfildServices01/nail-studio/internal/cep"
	"github.com/BruksfildServices01/nail-studio/internal/config"
	"github.com/BruksfildServices01/nail-studio/internal/handlers"
	"github.com/BruksfildServices01/nail-studio/internal/live"
	"github.com/BruksfildServices01/nail-studio/internal/middleware"
	"github.com/BruksfildServices01/nail-studio/internal/models"
	"github.com/BruksfildServices01/nail-studio/internal/provision"
	"github.com/BruksfildServices01/nail-studio/internal/storage"
	ucAppointment "github.com/BruksfildServices01/nail-studio/internal/usecase/appointment"
)

// Store reúne o que os handlers leem e gravam diretamente.
type Store interface {
	handlers.ClientStore
	handlers.CatalogStore
	handlers.FinancialStore
	handlers.AppointmentReader
	handlers.UserStore
	handlers.ReportStore
	handlers.AuditStore
}

// Deps são os singletons montados no main.
type Deps struct {
	Config      *config.Config
	Store       Store
	Coordinator *ucAppointment.Coordinator
	Audit       *audit.Dispatcher
	Issuer      *auth.Issuer
	Provision   *provision.Service
	Session     *live.Session
	CEP         *cep.Client
	Uploader    storage.Uploader
	Now         func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Store, d.Issuer)
	userHandler := handlers.NewUserHandler(d.Provision)
	clientHandler := handlers.NewClientHandler(d.Store, d.Audit)
	catalogHandler := handlers.NewCatalogHandler(d.Store, d.Audit)
	financialHandler := handlers.NewFinancialHandler(d.Store, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(d.Coordinator, d.Store)
	dashboardHandler := handlers.NewDashboardHandler(d.Session, d.Now)
	cepHandler := handlers.NewCEPHandler(d.CEP)
	reportHandler := handlers.NewReportHandler(d.Store, d.Uploader, d.Audit, d.Now)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Store)

	cepLimiter := middleware.NewIPRateLimiter(d.Config.CEPRateLimit, d.Config.CEPBurst)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		// ------------------------------
		// 🌐 PÚBLICO
		// ------------------------------
		api.GET("/cep/:cep", cepLimiter.Middleware(), cepHandler.Lookup)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/users", middleware.OptionalAuth(d.Issuer), userHandler.Create)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Issuer))
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/services", catalogHandler.ListServices)
			secured.POST("/services", catalogHandler.CreateService)
			secured.PUT("/services/:id", catalogHandler.UpdateService)
			secured.DELETE("/services/:id", catalogHandler.DeleteService)

			secured.GET("/staff", catalogHandler.ListStaff)
			secured.POST("/staff", catalogHandler.CreateStaff)
			secured.PUT("/staff/:id", catalogHandler.UpdateStaff)
			secured.DELETE("/staff/:id", catalogHandler.DeleteStaff)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/conflict", appointmentHandler.CheckConflict)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/payment", appointmentHandler.ConfirmPayment)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/financial-records", financialHandler.List)
			secured.POST("/financial-records", financialHandler.Create)
			secured.PUT("/financial-records/:id", financialHandler.Update)
			secured.DELETE("/financial-records/:id", financialHandler.Delete)

			secured.GET("/dashboard", dashboardHandler.Stats)

			// ------------------------------
			// 🛡️ ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/appointments/sync-visits", appointmentHandler.SyncVisits)

				admin.GET("/reports/monthly", reportHandler.Monthly)
				admin.POST("/reports/monthly/export", reportHandler.Export)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
