package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	"github.com/BruksfildServices01/table-booking/internal/config"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/handlers"
	"github.com/BruksfildServices01/table-booking/internal/infra/crud"
	"github.com/BruksfildServices01/table-booking/internal/middleware"
	"github.com/BruksfildServices01/table-booking/internal/models"
	"github.com/BruksfildServices01/table-booking/internal/timezone"
	ucReservation "github.com/BruksfildServices01/table-booking/internal/usecase/reservation"
)

// Deps are the singletons built by main. DB may be nil, in which case the
// record management and audit log routes are not mounted.
type Deps struct {
	Cfg     *config.Config
	Gateway domain.Gateway
	DB      *gorm.DB
	Audit   *audit.Dispatcher
	Cache   ucReservation.AvailabilityCache
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loc := timezone.Location(d.Cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES — RESERVATIONS
	// ======================================================
	getAvailabilityUC := ucReservation.NewGetAvailability(
		d.Gateway,
		d.Cache,
		d.Cfg.InactiveStatusLabels,
	)

	bookTableUC := ucReservation.NewBookTable(
		d.Gateway,
		d.Cache,
		d.Audit,
	)

	changeStatusUC := ucReservation.NewChangeStatus(
		d.Gateway,
		d.Cache,
		d.Audit,
	)

	deleteReservationUC := ucReservation.NewDeleteReservation(
		d.Gateway,
		d.Cache,
		d.Audit,
	)

	listByDateUC := ucReservation.NewListReservationsByDate(d.Gateway, loc)
	listByMonthUC := ucReservation.NewListReservationsByMonth(d.Gateway, loc)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		getAvailabilityUC,
		bookTableUC,
		loc,
	)

	reservationHandler := handlers.NewReservationHandler(
		d.Gateway,
		listByDateUC,
		listByMonthUC,
		changeStatusUC,
		deleteReservationUC,
		loc,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimit(d.Cfg.PublicRatePerMin))
		{
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/reservations", publicHandler.CreateReservation)
		}

		// ------------------------------
		// RESERVAS
		// ------------------------------
		api.GET("/reservations", reservationHandler.ListByDate)
		api.GET("/reservations/month", reservationHandler.ListByMonth)
		api.GET("/reservations/:public_id", reservationHandler.Get)
		api.PATCH("/reservations/:public_id/status", reservationHandler.ChangeStatus)
		api.DELETE("/reservations/:public_id", reservationHandler.Delete)

		if d.DB == nil {
			return
		}

		// ------------------------------
		// CADASTROS
		// ------------------------------
		handlers.NewCrudHandler[models.Zone](crud.New[models.Zone](d.DB, "name ASC"), "zone", handlers.ZoneHooks()).
			Register(api.Group("/zones"))
		handlers.NewCrudHandler[models.ReservationStatus](crud.New[models.ReservationStatus](d.DB, ""), "status", handlers.StatusHooks()).
			Register(api.Group("/statuses"))
		handlers.NewCrudHandler[models.Table](crud.New[models.Table](d.DB, "number ASC"), "table", handlers.TableHooks()).
			Register(api.Group("/tables"))
		handlers.NewCrudHandler[models.Customer](crud.New[models.Customer](d.DB, ""), "customer", handlers.CustomerHooks()).
			Register(api.Group("/customers"))

		api.GET("/audit-logs", handlers.NewAuditLogsHandler(d.DB, loc).List)
	}
}
